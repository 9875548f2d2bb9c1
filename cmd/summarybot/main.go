package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"summarybot/pkg/bot"
	"summarybot/pkg/classify"
	"summarybot/pkg/config"
	"summarybot/pkg/conversation"
	"summarybot/pkg/llm"
	"summarybot/pkg/media"
	"summarybot/pkg/notify"
	"summarybot/pkg/pipeline"
	"summarybot/pkg/podcast"
	"summarybot/pkg/store"
	"summarybot/pkg/summarize"
	"summarybot/pkg/transcribe"
	"summarybot/pkg/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := &media.ExecRunner{}

	// Audio transcription, shared by the media fallback and the podcast chain.
	transcriber := transcribe.NewService(transcribe.ServiceConfig{
		Runner: runner,
		Transcriber: transcribe.NewWhisperClient(transcribe.WhisperConfig{
			APIKey: cfg.GroqAPIKey,
		}),
		TmpDir:      cfg.TmpDir,
		ChunkBudget: cfg.ChunkSize,
	})

	var fallback media.Fallback
	if cfg.UseAudioFallback {
		fallback = transcriber
	}

	mediaExtractor := media.NewExtractor(media.ExtractorConfig{
		Runner:      runner,
		Fallback:    fallback,
		TmpDir:      cfg.TmpDir,
		ChunkBudget: cfg.ChunkSize,
	})

	primary := llm.NewClient(llm.Config{
		BaseURL: cfg.LLMBaseURL,
		APIKey:  cfg.LLMAPIKey,
		Model:   cfg.LLMModel,
	})
	var secondary llm.ChatClient
	if cfg.SecondaryAPIKey != "" {
		secondary = llm.NewClient(llm.Config{
			BaseURL: cfg.SecondaryBaseURL,
			APIKey:  cfg.SecondaryAPIKey,
			Model:   cfg.SecondaryModel,
		})
	}
	orchestrator := summarize.New(primary, secondary)

	proc := pipeline.New(
		classify.New(media.NewProber(runner)),
		web.NewExtractor(),
		mediaExtractor,
		podcast.NewResolver(transcriber),
		orchestrator,
	)

	deps := bot.Deps{
		Processor: proc,
		Answerer:  orchestrator,
		Conv:      conversation.NewManager(),
		Audio:     transcriber,
	}

	if cfg.MongoURI != "" {
		dbClient := store.NewClient(cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
		if err := dbClient.Connect(ctx); err != nil {
			log.Printf("Failed to connect to MongoDB, persistence disabled: %v", err)
		} else {
			defer dbClient.Close(context.Background())
			deps.Sink = dbClient
		}
	}
	if cfg.EnableDiscord {
		deps.Discord = notify.NewDiscordNotifier(cfg.DiscordWebhookURL)
	}
	if cfg.EnableEmail {
		deps.Email = notify.NewEmailNotifier(
			cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword,
			cfg.EmailFrom, cfg.EmailTo, cfg.EmailCC,
		)
	}

	b, err := bot.New(cfg, deps)
	if err != nil {
		log.Fatalf("Failed to start bot: %v", err)
	}

	log.Printf("Bot running (language=%s, audio fallback=%v)", cfg.Language, cfg.UseAudioFallback)
	if err := b.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("Bot stopped: %v", err)
	}
}
