package classify

import (
	"context"
	"log"
	"regexp"

	lru "github.com/hashicorp/golang-lru/v2"

	"summarybot/pkg/domain"
)

// probeCacheSize bounds the media-probe outcome cache. A probe outcome for a
// given URL is stable for the lifetime of the process.
const probeCacheSize = 512

// Prober confirms that a URL on a known media host actually serves media.
// It must observe at least one media-indicating signal (an available format
// list, a positive duration, or a recognizable uploader/date field) to return
// true. A probe error means "unconfirmed", not "confirmed".
type Prober interface {
	Probe(ctx context.Context, rawURL string) (bool, error)
}

var (
	applePodcastPattern = regexp.MustCompile(`(?i)^https?://(www\.)?podcasts\.apple\.com/`)
	pocketCastsPattern  = regexp.MustCompile(`(?i)^https?://(www\.)?pca\.st/`)
	castboxPattern      = regexp.MustCompile(`(?i)^https?://(www\.)?castbox\.fm/`)

	mediaHostPattern = regexp.MustCompile(`(?i)^https?://(www\.|m\.)?(youtube\.com|youtu\.be)/`)

	schemePattern = regexp.MustCompile(`(?i)^[a-z][a-z0-9+.-]*://`)
	urlPattern    = regexp.MustCompile(`(?i)^(https?://\S+|www\.\S+)`)
)

// IsPodcastURL reports whether the input matches any supported podcast
// front-end pattern.
func IsPodcastURL(raw string) bool {
	return applePodcastPattern.MatchString(raw) ||
		pocketCastsPattern.MatchString(raw) ||
		castboxPattern.MatchString(raw)
}

// IsURL reports whether the input looks like a URL. Used by the follow-up
// heuristic and for attribution formatting.
func IsURL(raw string) bool {
	return urlPattern.MatchString(raw)
}

// strategy pairs a classifier predicate with the kind it assigns.
// Strategies are evaluated in order; the first match wins.
type strategy struct {
	name  string
	kind  domain.Kind
	match func(ctx context.Context, raw string) bool
}

// Classifier routes a raw user string to exactly one content kind.
type Classifier struct {
	strategies []strategy
	prober     Prober
	probeCache *lru.Cache[string, bool]
}

// New creates a classifier backed by the given media prober.
func New(prober Prober) *Classifier {
	cache, _ := lru.New[string, bool](probeCacheSize)

	c := &Classifier{
		prober:     prober,
		probeCache: cache,
	}

	c.strategies = []strategy{
		{
			name: "apple-podcasts",
			kind: domain.KindPodcastURL,
			match: func(_ context.Context, raw string) bool {
				return applePodcastPattern.MatchString(raw)
			},
		},
		{
			name: "pocket-casts",
			kind: domain.KindPodcastURL,
			match: func(_ context.Context, raw string) bool {
				return pocketCastsPattern.MatchString(raw)
			},
		},
		{
			name: "castbox",
			kind: domain.KindPodcastURL,
			match: func(_ context.Context, raw string) bool {
				return castboxPattern.MatchString(raw)
			},
		},
		{
			name:  "media-host",
			kind:  domain.KindMediaURL,
			match: c.matchMedia,
		},
		{
			name: "generic-url",
			kind: domain.KindGenericURL,
			match: func(_ context.Context, raw string) bool {
				return schemePattern.MatchString(raw)
			},
		},
	}

	return c
}

// Classify inspects the raw input and returns an immutable ContentRequest.
// Plain non-URL text never matches any strategy and falls through to
// KindPlainText.
func (c *Classifier) Classify(ctx context.Context, raw string) domain.ContentRequest {
	for _, s := range c.strategies {
		if s.match(ctx, raw) {
			return domain.ContentRequest{RawInput: raw, Kind: s.kind}
		}
	}
	return domain.ContentRequest{RawInput: raw, Kind: domain.KindPlainText}
}

// matchMedia requires both a known media-host pattern and a successful probe.
// A domain match alone never classifies as media: hosts also serve channel
// pages, community posts and other non-media content. Probe errors and
// signal-free probes fall through to the next strategy.
func (c *Classifier) matchMedia(ctx context.Context, raw string) bool {
	if !mediaHostPattern.MatchString(raw) {
		return false
	}
	if c.prober == nil {
		return false
	}

	if confirmed, ok := c.probeCache.Get(raw); ok {
		return confirmed
	}

	confirmed, err := c.prober.Probe(ctx, raw)
	if err != nil {
		log.Printf("classify: media probe failed for %s: %v", raw, err)
		return false
	}

	c.probeCache.Add(raw, confirmed)
	return confirmed
}
