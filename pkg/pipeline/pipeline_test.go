package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"summarybot/pkg/domain"
	"summarybot/pkg/media"
	"summarybot/pkg/podcast"
	"summarybot/pkg/summarize"
	"summarybot/pkg/web"
)

type fakeClassifier struct {
	kind domain.Kind
}

func (f *fakeClassifier) Classify(_ context.Context, raw string) domain.ContentRequest {
	return domain.ContentRequest{RawInput: raw, Kind: f.kind}
}

type fakeWeb struct {
	paragraphs []string
	title      string
	err        error
	calls      int
}

func (f *fakeWeb) Extract(_ context.Context, _ string) ([]string, error) {
	f.calls++
	return f.paragraphs, f.err
}

func (f *fakeWeb) Title(_ context.Context, _ string) (string, error) {
	if f.title == "" {
		return "", errors.New("no title")
	}
	return f.title, nil
}

type fakeMedia struct {
	paragraphs []string
	err        error
	calls      int
}

func (f *fakeMedia) Extract(_ context.Context, _ string) ([]string, error) {
	f.calls++
	return f.paragraphs, f.err
}

type fakePodcast struct {
	paragraphs []string
	err        error
	calls      int
}

func (f *fakePodcast) Resolve(_ context.Context, _ string) ([]string, error) {
	f.calls++
	return f.paragraphs, f.err
}

type fakeSummarizer struct {
	result  domain.SummaryResult
	err     error
	lastReq summarize.Request
	calls   int
}

func (f *fakeSummarizer) Summarize(_ context.Context, req summarize.Request) (domain.SummaryResult, error) {
	f.calls++
	f.lastReq = req
	return f.result, f.err
}

func newTestPipeline(kind domain.Kind, w *fakeWeb, m *fakeMedia, p *fakePodcast, s *fakeSummarizer) *Pipeline {
	return New(&fakeClassifier{kind: kind}, w, m, p, s)
}

func TestProcessRunsExactlyOneExtractor(t *testing.T) {
	w := &fakeWeb{paragraphs: []string{"web"}}
	m := &fakeMedia{paragraphs: []string{"media"}}
	pc := &fakePodcast{paragraphs: []string{"podcast"}}
	s := &fakeSummarizer{result: domain.SummaryResult{Body: "sum"}}

	p := newTestPipeline(domain.KindMediaURL, w, m, pc, s)
	result, err := p.Process(context.Background(), "https://youtu.be/abc", Options{})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if m.calls != 1 || w.calls != 0 || pc.calls != 0 {
		t.Errorf("Expected only the media extractor to run: web=%d media=%d podcast=%d",
			w.calls, m.calls, pc.calls)
	}
	if result.Summary.Body != "sum" {
		t.Errorf("Unexpected summary: %q", result.Summary.Body)
	}
	if result.Source != "https://youtu.be/abc" {
		t.Errorf("Unexpected source: %q", result.Source)
	}
}

func TestProcessPlainTextSkipsExtraction(t *testing.T) {
	w := &fakeWeb{}
	s := &fakeSummarizer{result: domain.SummaryResult{Body: "sum"}}
	p := newTestPipeline(domain.KindPlainText, w, &fakeMedia{}, &fakePodcast{}, s)

	result, err := p.Process(context.Background(), "line one\n\nline two", Options{Language: domain.LangZhTW})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if w.calls != 0 {
		t.Error("Plain text must not invoke any extractor")
	}
	if len(result.Paragraphs) != 2 {
		t.Errorf("Expected 2 paragraphs, got %v", result.Paragraphs)
	}
	if result.Source != "" {
		t.Errorf("Plain text must carry no source, got %q", result.Source)
	}
	if s.lastReq.Language != domain.LangZhTW {
		t.Errorf("Language not passed through: %q", s.lastReq.Language)
	}
}

func TestProcessGenericURLCarriesTitle(t *testing.T) {
	w := &fakeWeb{paragraphs: []string{"body"}, title: "Page Title"}
	s := &fakeSummarizer{result: domain.SummaryResult{Body: "sum"}}
	p := newTestPipeline(domain.KindGenericURL, w, &fakeMedia{}, &fakePodcast{}, s)

	result, err := p.Process(context.Background(), "https://example.com/a", Options{})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if result.Title != "Page Title" {
		t.Errorf("Expected title carried through, got %q", result.Title)
	}
}

func TestProcessMapsExtractionErrors(t *testing.T) {
	tests := []struct {
		name string
		kind domain.Kind
		err  error
		want domain.ErrorKind
	}{
		{"download failure", domain.KindGenericURL, web.ErrDownload, domain.ErrDownloadFailure},
		{"empty extraction", domain.KindGenericURL, web.ErrWhitespaceOnly, domain.ErrExtractionEmpty},
		{"no captions", domain.KindMediaURL, media.ErrNoCaptions, domain.ErrNoCaptions},
		{"caption fetch", domain.KindMediaURL, media.ErrCaptionFetch, domain.ErrTranscriptionService},
		{"feed not found", domain.KindPodcastURL, podcast.ErrFeedNotFound, domain.ErrFeedNotFound},
		{"no audio asset", domain.KindPodcastURL, podcast.ErrNoAudioAsset, domain.ErrAudioAssetNotFound},
		{"unknown media error", domain.KindMediaURL, errors.New("boom"), domain.ErrTranscriptionService},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := &fakeWeb{err: tc.err}
			m := &fakeMedia{err: tc.err}
			pc := &fakePodcast{err: tc.err}
			s := &fakeSummarizer{}

			p := newTestPipeline(tc.kind, w, m, pc, s)
			result, err := p.Process(context.Background(), "https://example.com", Options{})
			if err == nil {
				t.Fatal("Expected error")
			}
			if result.Err != tc.want {
				t.Errorf("Expected error kind %s, got %s", tc.want, result.Err)
			}
			if s.calls != 0 {
				t.Error("Summarizer must not run after extraction failure")
			}
		})
	}
}

func TestProcessEmptyExtractionIsFailure(t *testing.T) {
	w := &fakeWeb{paragraphs: nil} // fetch succeeded, nothing extracted
	s := &fakeSummarizer{}
	p := newTestPipeline(domain.KindGenericURL, w, &fakeMedia{}, &fakePodcast{}, s)

	result, err := p.Process(context.Background(), "https://example.com", Options{})
	if err == nil {
		t.Fatal("Expected error")
	}
	if result.Err != domain.ErrExtractionEmpty {
		t.Errorf("Expected ErrExtractionEmpty, got %s", result.Err)
	}
	if s.calls != 0 {
		t.Error("Summarizer must not run on empty extraction")
	}
}

func TestProcessSummarizerFailure(t *testing.T) {
	w := &fakeWeb{paragraphs: []string{"body"}}
	s := &fakeSummarizer{err: summarize.ErrNoCompletion}
	p := newTestPipeline(domain.KindGenericURL, w, &fakeMedia{}, &fakePodcast{}, s)

	result, err := p.Process(context.Background(), "https://example.com", Options{})
	if err == nil {
		t.Fatal("Expected error")
	}
	if result.Err != domain.ErrModelCallFailure {
		t.Errorf("Expected ErrModelCallFailure, got %s", result.Err)
	}
	if len(result.Paragraphs) == 0 {
		t.Error("Extracted paragraphs must survive a summarizer failure")
	}
}

func TestTranscriptSkipsSummarization(t *testing.T) {
	m := &fakeMedia{paragraphs: []string{"chunk one", "chunk two"}}
	s := &fakeSummarizer{}
	p := newTestPipeline(domain.KindMediaURL, &fakeWeb{}, m, &fakePodcast{}, s)

	result, err := p.Transcript(context.Background(), "https://youtu.be/abc")
	if err != nil {
		t.Fatalf("Transcript failed: %v", err)
	}
	if len(result.Paragraphs) != 2 {
		t.Errorf("Expected 2 chunks, got %v", result.Paragraphs)
	}
	if s.calls != 0 {
		t.Error("Transcript must not summarize")
	}
}

func TestUserMessagesLocalized(t *testing.T) {
	msg := UserMessage(domain.ErrFeedNotFound, domain.LangZhTW)
	if !strings.Contains(msg, "RSS feed") {
		t.Errorf("zh-TW feed message should name the RSS feed: %q", msg)
	}

	for _, kind := range []domain.ErrorKind{
		domain.ErrDownloadFailure, domain.ErrExtractionEmpty, domain.ErrNoCaptions,
		domain.ErrTranscriptionService, domain.ErrFeedNotFound,
		domain.ErrAudioAssetNotFound, domain.ErrModelCallFailure,
	} {
		if UserMessage(kind, domain.LangZhTW) == UserMessage(domain.ErrUnclassifiable, domain.LangZhTW) {
			t.Errorf("Kind %s should have a specific zh-TW message", kind)
		}
		if UserMessage(kind, domain.LangEN) == "" {
			t.Errorf("Kind %s has no English message", kind)
		}
	}
}
