package transcribe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"summarybot/pkg/chunker"
	"summarybot/pkg/media"
)

// SegmentSeconds is the fixed duration of each audio segment sent to the
// transcription service. The last segment may be shorter.
const SegmentSeconds = 100

// ErrNoTranscript means every segment failed transcription.
var ErrNoTranscript = errors.New("no segment produced any transcript text")

// Service downloads an audio asset, splits it into fixed-duration segments,
// transcribes each sequentially and concatenates the results. A single bad
// segment never fails the whole audio: its contribution is skipped.
type Service struct {
	runner      media.Runner
	transcriber Transcriber
	client      *http.Client
	tmpDir      string
	chunkBudget int
}

// ServiceConfig configures the transcription service.
type ServiceConfig struct {
	Runner      media.Runner
	Transcriber Transcriber
	TmpDir      string // defaults to os.TempDir()
	ChunkBudget int    // defaults to chunker.DefaultBudget
}

// NewService creates an audio transcription service.
func NewService(cfg ServiceConfig) *Service {
	tmpDir := cfg.TmpDir
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	return &Service{
		runner:      cfg.Runner,
		transcriber: cfg.Transcriber,
		client:      &http.Client{Timeout: 5 * time.Minute},
		tmpDir:      tmpDir,
		chunkBudget: cfg.ChunkBudget,
	}
}

// Transcribe downloads the best available audio track of a media page URL and
// runs the shared segment-and-transcribe routine. Implements media.Fallback.
func (s *Service) Transcribe(ctx context.Context, mediaURL string) ([]string, error) {
	audioPath, err := s.downloadMedia(ctx, mediaURL)
	if err != nil {
		return nil, fmt.Errorf("download audio: %w", err)
	}
	return s.processAudio(ctx, audioPath)
}

// TranscribeAsset downloads a direct audio asset URL (e.g. a podcast
// enclosure), re-encodes it to a uniform container and runs the shared
// segment-and-transcribe routine.
func (s *Service) TranscribeAsset(ctx context.Context, assetURL string) ([]string, error) {
	audioPath, err := s.downloadAsset(ctx, assetURL)
	if err != nil {
		return nil, fmt.Errorf("download asset: %w", err)
	}
	return s.processAudio(ctx, audioPath)
}

// DownloadAudio extracts the audio track of a media page to an mp3 file and
// returns its path. The caller owns the file and must remove it.
func (s *Service) DownloadAudio(ctx context.Context, mediaURL string) (string, error) {
	return s.downloadMedia(ctx, mediaURL)
}

// downloadMedia extracts the audio track of a media page with yt-dlp,
// re-encoded to mp3.
func (s *Service) downloadMedia(ctx context.Context, mediaURL string) (string, error) {
	id := uuid.NewString()
	template := filepath.Join(s.tmpDir, id+".%(ext)s")

	_, err := s.runner.Run(ctx, "yt-dlp",
		"-f", "bestaudio/best",
		"-x",
		"--audio-format", "mp3",
		"--audio-quality", "192K",
		"--no-warnings",
		"-o", template,
		mediaURL,
	)
	if err != nil {
		return "", err
	}

	return filepath.Join(s.tmpDir, id+".mp3"), nil
}

// downloadAsset fetches a direct audio URL and re-encodes it to mp3 so the
// segmenter always sees a uniform container.
func (s *Service) downloadAsset(ctx context.Context, assetURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	id := uuid.NewString()
	rawPath := filepath.Join(s.tmpDir, id+".raw")
	out, err := os.Create(rawPath)
	if err != nil {
		return "", err
	}
	_, copyErr := io.Copy(out, resp.Body)
	closeErr := out.Close()
	if copyErr != nil {
		os.Remove(rawPath)
		return "", copyErr
	}
	if closeErr != nil {
		os.Remove(rawPath)
		return "", closeErr
	}
	defer os.Remove(rawPath)

	mp3Path := filepath.Join(s.tmpDir, id+".mp3")
	_, err = s.runner.Run(ctx, "ffmpeg", "-y", "-i", rawPath, "-vn", "-acodec", "libmp3lame", mp3Path)
	if err != nil {
		os.Remove(mp3Path)
		return "", fmt.Errorf("re-encode asset: %w", err)
	}

	return mp3Path, nil
}

// processAudio segments the downloaded audio, transcribes each segment
// sequentially and chunks the concatenated transcript. The source file and
// every segment file are deleted on all exit paths.
func (s *Service) processAudio(ctx context.Context, audioPath string) ([]string, error) {
	defer os.Remove(audioPath)

	segments, err := s.segment(ctx, audioPath)
	if err != nil {
		return nil, fmt.Errorf("segment audio: %w", err)
	}
	defer func() {
		for _, seg := range segments {
			os.Remove(seg)
		}
	}()

	var transcript strings.Builder
	succeeded := 0
	for i, seg := range segments {
		text, err := s.transcriber.Transcribe(ctx, seg)
		os.Remove(seg)
		if err != nil {
			log.Printf("transcribe: segment %d/%d failed, skipping: %v", i+1, len(segments), err)
			continue
		}
		transcript.WriteString(text)
		succeeded++
	}

	if succeeded == 0 || strings.TrimSpace(transcript.String()) == "" {
		return nil, ErrNoTranscript
	}

	log.Printf("transcribe: %d/%d segments transcribed", succeeded, len(segments))
	return chunker.Chunk(transcript.String(), s.chunkBudget), nil
}

// segment splits the audio into fixed-duration wav files and returns their
// paths in playback order.
func (s *Service) segment(ctx context.Context, audioPath string) ([]string, error) {
	base := uuid.NewString()
	pattern := filepath.Join(s.tmpDir, base+"_%03d.wav")

	_, err := s.runner.Run(ctx, "ffmpeg",
		"-y",
		"-i", audioPath,
		"-f", "segment",
		"-segment_time", fmt.Sprintf("%d", SegmentSeconds),
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		pattern,
	)
	if err != nil {
		return nil, err
	}

	segments, err := filepath.Glob(filepath.Join(s.tmpDir, base+"_*.wav"))
	if err != nil {
		return nil, err
	}
	sort.Strings(segments)

	if len(segments) == 0 {
		return nil, errors.New("segmenter produced no output")
	}

	return segments, nil
}
