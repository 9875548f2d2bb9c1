package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"

	"summarybot/pkg/domain"
	"summarybot/pkg/media"
	"summarybot/pkg/podcast"
	"summarybot/pkg/summarize"
	"summarybot/pkg/transcribe"
	"summarybot/pkg/web"
)

// Classifier assigns exactly one content kind to a raw inbound message.
type Classifier interface {
	Classify(ctx context.Context, raw string) domain.ContentRequest
}

// WebExtractor extracts readable article text from a generic web page.
type WebExtractor interface {
	Extract(ctx context.Context, rawURL string) ([]string, error)
	Title(ctx context.Context, rawURL string) (string, error)
}

// MediaExtractor retrieves the transcript of a media URL.
type MediaExtractor interface {
	Extract(ctx context.Context, mediaURL string) ([]string, error)
}

// PodcastResolver turns a podcast front-end URL into transcript chunks.
type PodcastResolver interface {
	Resolve(ctx context.Context, pageURL string) ([]string, error)
}

// Summarizer produces the final decorated summary from extracted paragraphs.
type Summarizer interface {
	Summarize(ctx context.Context, req summarize.Request) (domain.SummaryResult, error)
}

// Options carries per-request summarization settings.
type Options struct {
	Language      domain.Language
	ModelOverride string
	UseSecondary  bool
}

// Result is the outcome of one processed message. On failure Err names the
// category and the summary is empty; Paragraphs always holds whatever was
// extracted.
type Result struct {
	Kind       domain.Kind
	Source     string // the URL, or empty for plain text
	Title      string // page title for generic URLs, best effort
	Paragraphs []string
	Summary    domain.SummaryResult
	Err        domain.ErrorKind
}

// Pipeline routes one inbound message through classification, the
// kind-matched extractor and summarization. Exactly one extractor runs per
// request.
type Pipeline struct {
	classifier Classifier
	web        WebExtractor
	media      MediaExtractor
	podcast    PodcastResolver
	summarizer Summarizer
}

// New creates a pipeline from its stage implementations.
func New(classifier Classifier, webEx WebExtractor, mediaEx MediaExtractor, podcastRes PodcastResolver, summarizer Summarizer) *Pipeline {
	return &Pipeline{
		classifier: classifier,
		web:        webEx,
		media:      mediaEx,
		podcast:    podcastRes,
		summarizer: summarizer,
	}
}

// Process runs the full chain for one message. The returned error wraps the
// stage failure for logging; Result.Err carries the category the caller maps
// to a user-facing message.
func (p *Pipeline) Process(ctx context.Context, rawInput string, opts Options) (*Result, error) {
	req := p.classifier.Classify(ctx, rawInput)
	log.Printf("pipeline: classified input as %s", req.Kind)

	result := &Result{Kind: req.Kind}
	if req.Kind != domain.KindPlainText {
		result.Source = rawInput
	}

	extraction, err := p.extract(ctx, req)
	result.Paragraphs = extraction.Paragraphs
	if !extraction.OK() {
		result.Err = extraction.Err
		return result, fmt.Errorf("extract %s: %w", req.Kind, err)
	}

	if req.Kind == domain.KindGenericURL {
		if title, err := p.web.Title(ctx, rawInput); err == nil {
			result.Title = title
		}
	}

	summary, err := p.summarizer.Summarize(ctx, summarize.Request{
		Paragraphs:    extraction.Paragraphs,
		Language:      opts.Language,
		ModelOverride: opts.ModelOverride,
		UseSecondary:  opts.UseSecondary,
	})
	if err != nil {
		result.Err = domain.ErrModelCallFailure
		return result, fmt.Errorf("summarize: %w", err)
	}

	result.Summary = summary
	return result, nil
}

// Transcript runs only the extraction stage, without summarization. Used by
// the transcript-only commands.
func (p *Pipeline) Transcript(ctx context.Context, rawInput string) (*Result, error) {
	req := p.classifier.Classify(ctx, rawInput)

	result := &Result{Kind: req.Kind}
	if req.Kind != domain.KindPlainText {
		result.Source = rawInput
	}

	extraction, err := p.extract(ctx, req)
	result.Paragraphs = extraction.Paragraphs
	if !extraction.OK() {
		result.Err = extraction.Err
		return result, fmt.Errorf("extract %s: %w", req.Kind, err)
	}

	return result, nil
}

// extract runs the single extractor matching the request kind and wraps the
// outcome: either paragraphs or a failure category, never both absent. The
// underlying error is returned alongside for logging.
func (p *Pipeline) extract(ctx context.Context, req domain.ContentRequest) (domain.ExtractionResult, error) {
	paragraphs, err := p.extractParagraphs(ctx, req)
	if err != nil {
		return domain.Failed(extractionErrorKind(req.Kind, err)), err
	}
	if len(paragraphs) == 0 {
		return domain.Failed(domain.ErrExtractionEmpty), errors.New("no content")
	}
	return domain.Extracted(paragraphs), nil
}

// extractParagraphs dispatches to the extractor matching the request kind.
func (p *Pipeline) extractParagraphs(ctx context.Context, req domain.ContentRequest) ([]string, error) {
	switch req.Kind {
	case domain.KindPlainText:
		return web.SplitParagraphs(req.RawInput), nil
	case domain.KindGenericURL:
		return p.web.Extract(ctx, req.RawInput)
	case domain.KindMediaURL:
		return p.media.Extract(ctx, req.RawInput)
	case domain.KindPodcastURL:
		return p.podcast.Resolve(ctx, req.RawInput)
	default:
		return nil, fmt.Errorf("unhandled content kind %s", req.Kind)
	}
}

// extractionErrorKind maps a stage error to its failure category.
func extractionErrorKind(kind domain.Kind, err error) domain.ErrorKind {
	switch {
	case errors.Is(err, web.ErrDownload):
		return domain.ErrDownloadFailure
	case errors.Is(err, web.ErrNoContent), errors.Is(err, web.ErrWhitespaceOnly):
		return domain.ErrExtractionEmpty
	case errors.Is(err, media.ErrNoCaptions):
		return domain.ErrNoCaptions
	case errors.Is(err, media.ErrCaptionFetch), errors.Is(err, transcribe.ErrNoTranscript):
		return domain.ErrTranscriptionService
	case errors.Is(err, podcast.ErrFeedNotFound):
		return domain.ErrFeedNotFound
	case errors.Is(err, podcast.ErrNoAudioAsset), errors.Is(err, podcast.ErrEmptyFeed):
		return domain.ErrAudioAssetNotFound
	default:
		switch kind {
		case domain.KindGenericURL:
			return domain.ErrDownloadFailure
		case domain.KindMediaURL:
			return domain.ErrTranscriptionService
		case domain.KindPodcastURL:
			return domain.ErrFeedNotFound
		default:
			return domain.ErrExtractionEmpty
		}
	}
}
