package domain

// Kind is the classification assigned to one inbound reference.
type Kind int

const (
	// KindPlainText is raw text pasted by the user; no extraction needed.
	KindPlainText Kind = iota
	// KindGenericURL is any URL that is neither a media host nor a podcast front-end.
	KindGenericURL
	// KindMediaURL is a URL on a known media host, confirmed by a metadata probe.
	KindMediaURL
	// KindPodcastURL is a URL on a supported podcast front-end.
	KindPodcastURL
)

func (k Kind) String() string {
	switch k {
	case KindPlainText:
		return "plain-text"
	case KindGenericURL:
		return "generic-url"
	case KindMediaURL:
		return "media-url"
	case KindPodcastURL:
		return "podcast-url"
	default:
		return "unknown"
	}
}

// ContentRequest is created once per inbound message and is immutable after
// classification.
type ContentRequest struct {
	RawInput string
	Kind     Kind
}

// ErrorKind names the failure categories an extractor can report.
type ErrorKind int

const (
	// ErrNone means extraction succeeded.
	ErrNone ErrorKind = iota
	// ErrDownloadFailure means the source could not be fetched.
	ErrDownloadFailure
	// ErrExtractionEmpty means the source was fetched but yielded no usable text.
	ErrExtractionEmpty
	// ErrNoCaptions means a media asset has no caption track in any preferred language.
	ErrNoCaptions
	// ErrTranscriptionService means a caption fetch failed for transient reasons
	// (network or parse error), distinct from "no captions exist".
	ErrTranscriptionService
	// ErrFeedNotFound means podcast feed discovery found no feed URL.
	ErrFeedNotFound
	// ErrAudioAssetNotFound means the feed entry carried no audio asset.
	ErrAudioAssetNotFound
	// ErrModelCallFailure means the language-model call produced no completion.
	ErrModelCallFailure
	// ErrUnclassifiable means the input matched no classifier strategy.
	ErrUnclassifiable
)

func (e ErrorKind) String() string {
	switch e {
	case ErrNone:
		return "none"
	case ErrDownloadFailure:
		return "download-failure"
	case ErrExtractionEmpty:
		return "extraction-empty"
	case ErrNoCaptions:
		return "no-captions"
	case ErrTranscriptionService:
		return "transcription-service"
	case ErrFeedNotFound:
		return "feed-not-found"
	case ErrAudioAssetNotFound:
		return "audio-asset-not-found"
	case ErrModelCallFailure:
		return "model-call-failure"
	case ErrUnclassifiable:
		return "unclassifiable"
	default:
		return "unknown"
	}
}

// ExtractionResult is produced by exactly one extractor per request.
// Either Paragraphs is non-empty or Err is set, never both absent.
type ExtractionResult struct {
	Paragraphs []string
	Err        ErrorKind
}

// Extracted wraps a successful extraction.
func Extracted(paragraphs []string) ExtractionResult {
	return ExtractionResult{Paragraphs: paragraphs}
}

// Failed wraps a failed extraction with its error kind.
func Failed(kind ErrorKind) ExtractionResult {
	return ExtractionResult{Err: kind}
}

// OK reports whether the extraction produced usable content.
func (r ExtractionResult) OK() bool {
	return r.Err == ErrNone && len(r.Paragraphs) > 0
}
