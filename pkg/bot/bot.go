package bot

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"summarybot/pkg/config"
	"summarybot/pkg/conversation"
	"summarybot/pkg/domain"
	"summarybot/pkg/pdfext"
	"summarybot/pkg/pipeline"
)

// pdfBatchChars is the per-batch character budget for PDF summarization;
// large documents are summarized in batches and the replies concatenated.
const pdfBatchChars = 5000

// Processor runs the full summarization chain for one message.
type Processor interface {
	Process(ctx context.Context, rawInput string, opts pipeline.Options) (*pipeline.Result, error)
	Transcript(ctx context.Context, rawInput string) (*pipeline.Result, error)
}

// Answerer answers a follow-up question over an active conversation context.
type Answerer interface {
	Answer(ctx context.Context, conv *domain.ConversationContext, question, modelOverride string) (string, error)
}

// AudioDownloader extracts the audio track of a media URL to a local file.
type AudioDownloader interface {
	DownloadAudio(ctx context.Context, mediaURL string) (string, error)
}

// SummarySink archives a produced summary. Failures are logged, never
// surfaced to the user.
type SummarySink interface {
	SaveSummary(ctx context.Context, record *domain.SummaryRecord) error
}

// Notifier pushes a produced summary to an external channel.
type Notifier interface {
	Send(ctx context.Context, content string) error
}

// EmailSender mails a produced summary.
type EmailSender interface {
	Send(subject, body string) error
}

// Bot is the Telegram front end: it receives updates, routes them through the
// pipeline or the conversation manager and delivers the replies.
type Bot struct {
	api       *tgbotapi.BotAPI
	cfg       *config.Config
	processor Processor
	answerer  Answerer
	conv      *conversation.Manager
	audio     AudioDownloader // nil disables /yt2audio
	sink      SummarySink     // nil disables persistence
	discord   Notifier        // nil disables the Discord sink
	email     EmailSender     // nil disables the email sink
	client    *http.Client

	mu    sync.Mutex
	langs map[int64]domain.Language // per-chat override of cfg.Language
}

// Deps carries the bot's collaborators. Optional sinks may be nil.
type Deps struct {
	Processor Processor
	Answerer  Answerer
	Conv      *conversation.Manager
	Audio     AudioDownloader
	Sink      SummarySink
	Discord   Notifier
	Email     EmailSender
}

// New connects to the Telegram API and assembles the bot.
func New(cfg *config.Config, deps Deps) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}
	log.Printf("bot: authorized as @%s", api.Self.UserName)

	return &Bot{
		api:       api,
		cfg:       cfg,
		processor: deps.Processor,
		answerer:  deps.Answerer,
		conv:      deps.Conv,
		audio:     deps.Audio,
		sink:      deps.Sink,
		discord:   deps.Discord,
		email:     deps.Email,
		client:    &http.Client{Timeout: 2 * time.Minute},
		langs:     make(map[int64]domain.Language),
	}, nil
}

// Run polls for updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	if !b.cfg.UserAllowed(msg.From.ID) {
		log.Printf("bot: rejected user %d", msg.From.ID)
		return
	}

	switch {
	case msg.IsCommand():
		b.handleCommand(ctx, msg)
	case msg.Document != nil:
		b.handleDocument(ctx, msg)
	case msg.Text != "":
		b.handleText(ctx, msg)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	switch msg.Command() {
	case "start":
		b.send(chatID, startMessage(b.language(chatID)))
	case "help":
		b.send(chatID, helpMessage(b.language(chatID)))
	case "clear":
		b.conv.Clear(chatID)
		b.send(chatID, clearedMessage(b.language(chatID)))
	case "lang":
		b.send(chatID, b.toggleLanguage(chatID))
	case "yt2text":
		b.handleYt2Text(ctx, msg)
	case "yt2audio":
		b.handleYt2Audio(ctx, msg)
	default:
		b.send(chatID, helpMessage(b.language(chatID)))
	}
}

// handleText routes a plain message: a follow-up question goes to the
// answerer against the active context, everything else is fresh content for
// the pipeline.
func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	lang := b.language(chatID)

	if b.conv.IsFollowUp(chatID, msg.Text) {
		b.handleFollowUp(ctx, chatID, msg.Text)
		return
	}

	placeholder := b.showProcessing(chatID, lang)

	result, err := b.processor.Process(ctx, msg.Text, pipeline.Options{Language: lang})
	b.removeProcessing(chatID, placeholder)
	if err != nil {
		log.Printf("bot: process failed for chat %d: %v", chatID, err)
		b.send(chatID, pipeline.UserMessage(result.Err, lang))
		return
	}

	title := result.Title
	if title == "" && result.Source == "" {
		title = shortTextTitle(lang)
	}
	reply := FormatSummary(title, result.Source, result.Summary.Body)

	b.conv.Store(chatID, result.Paragraphs, result.Summary.Body, result.Source, lang)
	b.dispatchSinks(chatID, title, result, reply)
	b.sendHTML(chatID, RenderHTML(reply))
}

func (b *Bot) handleFollowUp(ctx context.Context, chatID int64, question string) {
	conv := b.conv.Get(chatID)
	if conv == nil {
		return
	}

	answer, err := b.answerer.Answer(ctx, conv, question, "")
	if err != nil {
		log.Printf("bot: follow-up failed for chat %d: %v", chatID, err)
		b.send(chatID, pipeline.UserMessage(domain.ErrModelCallFailure, conv.Language))
		return
	}

	b.conv.AppendTurn(chatID, question, answer)
	b.sendHTML(chatID, RenderHTML(answer))
}

// handleDocument summarizes an attached PDF. The document is fetched from
// Telegram's file API, extracted and summarized in batches so arbitrarily
// large files never exceed one model call.
func (b *Bot) handleDocument(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	lang := b.language(chatID)

	if !strings.EqualFold(msg.Document.MimeType, "application/pdf") &&
		!strings.HasSuffix(strings.ToLower(msg.Document.FileName), ".pdf") {
		b.send(chatID, unsupportedDocumentMessage(lang))
		return
	}

	placeholder := b.showProcessing(chatID, lang)
	defer func() { b.removeProcessing(chatID, placeholder) }()

	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: msg.Document.FileID})
	if err != nil {
		log.Printf("bot: get file failed for chat %d: %v", chatID, err)
		b.send(chatID, pipeline.UserMessage(domain.ErrDownloadFailure, lang))
		return
	}

	paragraphs, err := b.fetchPDF(ctx, file.Link(b.api.Token))
	if err != nil {
		log.Printf("bot: pdf extraction failed for chat %d: %v", chatID, err)
		b.send(chatID, pipeline.UserMessage(domain.ErrExtractionEmpty, lang))
		return
	}

	summary, err := b.summarizePDFBatches(ctx, paragraphs, lang)
	if err != nil {
		log.Printf("bot: pdf summarization failed for chat %d: %v", chatID, err)
		b.send(chatID, pipeline.UserMessage(domain.ErrModelCallFailure, lang))
		return
	}

	reply := FormatSummary(msg.Document.FileName, "", summary)
	b.conv.Store(chatID, paragraphs, summary, "", lang)
	b.sendHTML(chatID, RenderHTML(reply))
}

func (b *Bot) fetchPDF(ctx context.Context, fileURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return pdfext.Extract(resp.Body)
}

// summarizePDFBatches groups paragraphs into character-bounded batches, runs
// one summarization per batch and concatenates the replies.
func (b *Bot) summarizePDFBatches(ctx context.Context, paragraphs []string, lang domain.Language) (string, error) {
	var parts []string
	for _, batch := range batchParagraphs(paragraphs, pdfBatchChars) {
		result, err := b.processor.Process(ctx, strings.Join(batch, "\n"), pipeline.Options{Language: lang})
		if err != nil {
			return "", err
		}
		parts = append(parts, result.Summary.Body)
	}
	return strings.Join(parts, "\n\n"), nil
}

// batchParagraphs packs paragraphs into groups of at most budget characters.
// A single oversized paragraph forms its own batch.
func batchParagraphs(paragraphs []string, budget int) [][]string {
	var batches [][]string
	var current []string
	size := 0

	for _, p := range paragraphs {
		if size > 0 && size+len(p) > budget {
			batches = append(batches, current)
			current = nil
			size = 0
		}
		current = append(current, p)
		size += len(p)
	}
	if len(current) > 0 {
		batches = append(batches, current)
	}
	return batches
}

// handleYt2Text replies with the raw transcript of a media URL as a document.
func (b *Bot) handleYt2Text(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	lang := b.language(chatID)

	url := strings.TrimSpace(msg.CommandArguments())
	if url == "" {
		b.send(chatID, usageMessage("/yt2text", lang))
		return
	}

	placeholder := b.showProcessing(chatID, lang)
	result, err := b.processor.Transcript(ctx, url)
	b.removeProcessing(chatID, placeholder)
	if err != nil {
		log.Printf("bot: transcript failed for chat %d: %v", chatID, err)
		b.send(chatID, pipeline.UserMessage(result.Err, lang))
		return
	}

	transcript := strings.Join(result.Paragraphs, "\n\n")
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  "transcript.txt",
		Bytes: []byte(transcript),
	})
	if _, err := b.api.Send(doc); err != nil {
		log.Printf("bot: send transcript failed for chat %d: %v", chatID, err)
	}
}

// handleYt2Audio replies with the extracted audio track of a media URL.
func (b *Bot) handleYt2Audio(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	lang := b.language(chatID)

	if b.audio == nil {
		b.send(chatID, pipeline.UserMessage(domain.ErrTranscriptionService, lang))
		return
	}

	url := strings.TrimSpace(msg.CommandArguments())
	if url == "" {
		b.send(chatID, usageMessage("/yt2audio", lang))
		return
	}

	placeholder := b.showProcessing(chatID, lang)
	path, err := b.audio.DownloadAudio(ctx, url)
	b.removeProcessing(chatID, placeholder)
	if err != nil {
		log.Printf("bot: audio download failed for chat %d: %v", chatID, err)
		b.send(chatID, audioFailedMessage(lang))
		return
	}
	defer os.Remove(path)

	audio := tgbotapi.NewAudio(chatID, tgbotapi.FilePath(path))
	if _, err := b.api.Send(audio); err != nil {
		log.Printf("bot: send audio failed for chat %d: %v", chatID, err)
		b.send(chatID, audioFailedMessage(lang))
	}
}

// dispatchSinks pushes the produced summary to every configured sink.
// Sink failures are logged and never affect the user-facing reply.
func (b *Bot) dispatchSinks(chatID int64, title string, result *pipeline.Result, reply string) {
	record := &domain.SummaryRecord{
		TelegramID:      chatID,
		URL:             result.Source,
		Summary:         reply,
		OriginalContent: result.Paragraphs,
		Language:        string(b.language(chatID)),
		Timestamp:       time.Now(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if b.sink != nil {
			if err := b.sink.SaveSummary(ctx, record); err != nil {
				log.Printf("bot: save summary failed: %v", err)
			}
		}
		if b.discord != nil {
			if err := b.discord.Send(ctx, "🔔 新的摘要已生成：\n"+reply); err != nil {
				log.Printf("bot: discord notification failed: %v", err)
			}
		}
		if b.email != nil {
			if err := b.email.Send(title, reply); err != nil {
				log.Printf("bot: email notification failed: %v", err)
			}
		}
	}()
}

// language returns the chat's output language, falling back to the
// configured default.
func (b *Bot) language(chatID int64) domain.Language {
	b.mu.Lock()
	defer b.mu.Unlock()
	if lang, ok := b.langs[chatID]; ok {
		return lang
	}
	return b.cfg.Language
}

// toggleLanguage flips the chat between zh-TW and en and returns the
// confirmation message in the new language.
func (b *Bot) toggleLanguage(chatID int64) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	current := b.cfg.Language
	if lang, ok := b.langs[chatID]; ok {
		current = lang
	}

	next := domain.LangZhTW
	if current == domain.LangZhTW {
		next = domain.LangEN
	}
	b.langs[chatID] = next

	if next == domain.LangEN {
		return "Language switched to English."
	}
	return "語言已切換為繁體中文。"
}

// showProcessing sends the transient "working on it" notice and returns its
// message id, or 0 when the notice is disabled or could not be sent.
func (b *Bot) showProcessing(chatID int64, lang domain.Language) int {
	if !b.cfg.ShowProcessing {
		return 0
	}
	sent, err := b.api.Send(tgbotapi.NewMessage(chatID, processingMessage(lang)))
	if err != nil {
		log.Printf("bot: send processing notice failed: %v", err)
		return 0
	}
	return sent.MessageID
}

func (b *Bot) removeProcessing(chatID int64, messageID int) {
	if messageID == 0 {
		return
	}
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		log.Printf("bot: delete processing notice failed: %v", err)
	}
}

// send delivers plain text, split to fit the outbound message limit.
func (b *Bot) send(chatID int64, text string) {
	for _, part := range SplitMessage(text, MessageLimit) {
		if _, err := b.api.Send(tgbotapi.NewMessage(chatID, part)); err != nil {
			log.Printf("bot: send failed for chat %d: %v", chatID, err)
		}
	}
}

// sendHTML delivers rendered HTML, split to fit the outbound message limit.
// A part rejected by Telegram's HTML parser is resent as plain text.
func (b *Bot) sendHTML(chatID int64, text string) {
	for _, part := range SplitMessage(text, MessageLimit) {
		msg := tgbotapi.NewMessage(chatID, part)
		msg.ParseMode = tgbotapi.ModeHTML
		if _, err := b.api.Send(msg); err != nil {
			log.Printf("bot: html send failed for chat %d, retrying as plain text: %v", chatID, err)
			if _, err := b.api.Send(tgbotapi.NewMessage(chatID, part)); err != nil {
				log.Printf("bot: send failed for chat %d: %v", chatID, err)
			}
		}
	}
}
