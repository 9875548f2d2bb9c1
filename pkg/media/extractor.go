package media

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"summarybot/pkg/chunker"
	"summarybot/pkg/subtitle"
)

// CaptionLanguages is the fixed caption language preference order; the first
// available track wins.
var CaptionLanguages = []string{"en", "zh-Hant", "zh-Hans", "zh-TW", "zh"}

var (
	// ErrNoCaptions means the asset has no caption track in any preferred
	// language. This is a terminal outcome, not a transient failure.
	ErrNoCaptions = errors.New("no captions available in preferred languages")
	// ErrCaptionFetch means caption retrieval itself failed (network or tool
	// error). Distinct from ErrNoCaptions: the tracks may well exist.
	ErrCaptionFetch = errors.New("caption retrieval failed")
)

// Fallback transcribes a media URL's audio track when no captions exist.
type Fallback interface {
	Transcribe(ctx context.Context, mediaURL string) ([]string, error)
}

// Extractor retrieves the transcript of a media URL: caption tracks first, in
// the fixed language preference order, then the audio-transcription fallback
// if one is configured.
type Extractor struct {
	runner      Runner
	fallback    Fallback
	tmpDir      string
	chunkBudget int
}

// ExtractorConfig configures the media extractor.
type ExtractorConfig struct {
	Runner      Runner
	Fallback    Fallback // nil disables the audio fallback
	TmpDir      string   // defaults to os.TempDir()
	ChunkBudget int      // defaults to chunker.DefaultBudget
}

// NewExtractor creates a media extractor.
func NewExtractor(cfg ExtractorConfig) *Extractor {
	tmpDir := cfg.TmpDir
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	return &Extractor{
		runner:      cfg.Runner,
		fallback:    cfg.Fallback,
		tmpDir:      tmpDir,
		chunkBudget: cfg.ChunkBudget,
	}
}

// Extract returns the transcript of the media at mediaURL as ordered chunks.
// Returns ErrNoCaptions when no preferred-language track exists and no
// fallback is configured, and ErrCaptionFetch on transient retrieval failure.
func (e *Extractor) Extract(ctx context.Context, mediaURL string) ([]string, error) {
	text, err := e.captions(ctx, mediaURL)
	if err != nil {
		if errors.Is(err, ErrNoCaptions) {
			if e.fallback != nil {
				log.Printf("media: no captions for %s, falling back to audio transcription", mediaURL)
				return e.fallback.Transcribe(ctx, mediaURL)
			}
			return nil, err
		}
		return nil, err
	}

	return chunker.Chunk(text, e.chunkBudget), nil
}

// captions downloads caption tracks for all preferred languages and returns
// the normalized text of the first one available, in preference order.
func (e *Extractor) captions(ctx context.Context, mediaURL string) (string, error) {
	base := uuid.NewString()
	template := filepath.Join(e.tmpDir, base+".%(ext)s")

	_, err := e.runner.Run(ctx, "yt-dlp",
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-langs", strings.Join(CaptionLanguages, ","),
		"--sub-format", "vtt",
		"--no-warnings",
		"-o", template,
		mediaURL,
	)
	if err != nil {
		return "", errors.Join(ErrCaptionFetch, err)
	}

	// Every track file is scoped to this call, found or not.
	defer func() {
		for _, lang := range CaptionLanguages {
			os.Remove(filepath.Join(e.tmpDir, base+"."+lang+".vtt"))
		}
	}()

	for _, lang := range CaptionLanguages {
		path := filepath.Join(e.tmpDir, base+"."+lang+".vtt")
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		log.Printf("media: using %s captions for %s", lang, mediaURL)
		return subtitle.Normalize(string(data)), nil
	}

	return "", ErrNoCaptions
}
