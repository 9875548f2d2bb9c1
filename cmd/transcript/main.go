package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"summarybot/pkg/classify"
	"summarybot/pkg/media"
	"summarybot/pkg/pdfext"
	"summarybot/pkg/pipeline"
	"summarybot/pkg/podcast"
	"summarybot/pkg/transcribe"
	"summarybot/pkg/web"
)

// Standalone transcript extraction: URL or local PDF in, text chunks out.
// URLs run the same classification and extraction chain as the bot, without
// summarization.
func main() {
	var (
		groqKey   = flag.String("groq-key", os.Getenv("GROQ_API_KEY"), "API key for the audio transcription service")
		fallback  = flag.Bool("audio-fallback", false, "Transcribe audio when no captions are available")
		chunkSize = flag.Int("chunk-size", 0, "Transcript chunk budget in characters (0 uses the default)")
		tmpDir    = flag.String("tmp-dir", "", "Working directory for temporary media files")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("Usage: %s [flags] <url-or-pdf>", os.Args[0])
	}
	url := flag.Arg(0)

	if info, err := os.Stat(url); err == nil && !info.IsDir() {
		paragraphs, err := pdfext.ExtractFile(url)
		if err != nil {
			log.Fatalf("PDF extraction failed: %v", err)
		}
		for _, p := range paragraphs {
			fmt.Println(p)
		}
		return
	}

	ctx := context.Background()
	runner := &media.ExecRunner{}

	transcriber := transcribe.NewService(transcribe.ServiceConfig{
		Runner: runner,
		Transcriber: transcribe.NewWhisperClient(transcribe.WhisperConfig{
			APIKey: *groqKey,
		}),
		TmpDir:      *tmpDir,
		ChunkBudget: *chunkSize,
	})

	var audioFallback media.Fallback
	if *fallback {
		audioFallback = transcriber
	}

	proc := pipeline.New(
		classify.New(media.NewProber(runner)),
		web.NewExtractor(),
		media.NewExtractor(media.ExtractorConfig{
			Runner:      runner,
			Fallback:    audioFallback,
			TmpDir:      *tmpDir,
			ChunkBudget: *chunkSize,
		}),
		podcast.NewResolver(transcriber),
		nil, // no summarization in this command
	)

	start := time.Now()
	result, err := proc.Transcript(ctx, url)
	if err != nil {
		log.Fatalf("Transcript extraction failed: %v", err)
	}

	for i, chunk := range result.Paragraphs {
		fmt.Printf("--- chunk %d/%d ---\n%s\n\n", i+1, len(result.Paragraphs), chunk)
	}
	log.Printf("Done. %d chunks, kind=%s, duration: %s", len(result.Paragraphs), result.Kind, time.Since(start))
}
