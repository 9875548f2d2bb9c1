package podcast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/mmcdole/gofeed"

	"summarybot/pkg/domain"
	"summarybot/pkg/httpclient"
)

// DefaultLookupEndpoint is the public show-lookup API used for Apple Podcasts
// URLs, keyed by the numeric id in the URL path.
const DefaultLookupEndpoint = "https://itunes.apple.com/lookup"

var (
	// ErrFeedNotFound means no feed URL could be discovered for the page.
	ErrFeedNotFound = errors.New("podcast feed not found")
	// ErrNoAudioAsset means the feed's latest entry carries no audio asset.
	ErrNoAudioAsset = errors.New("no audio asset in feed entry")
	// ErrEmptyFeed means the feed parsed but contains no entries.
	ErrEmptyFeed = errors.New("feed contains no entries")
)

var (
	appleIDPattern = regexp.MustCompile(`(?i)podcasts\.apple\.com/.*/id(\d+)`)

	// Known JSON key names that carry a feed URL in podcast front-end pages.
	feedKeyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`"feedUrl"\s*:\s*"([^"]+)"`),
		regexp.MustCompile(`"rssUrl"\s*:\s*"([^"]+)"`),
		regexp.MustCompile(`"rss_url"\s*:\s*"([^"]+)"`),
	}
)

// AssetTranscriber runs the shared download-and-transcribe routine on a
// direct audio asset URL.
type AssetTranscriber interface {
	TranscribeAsset(ctx context.Context, assetURL string) ([]string, error)
}

// Resolver turns a podcast front-end URL into transcript chunks: it discovers
// the underlying episode feed, picks the most recent entry's audio asset and
// hands it to the shared audio pipeline.
type Resolver struct {
	client         *httpclient.HTTPClient
	feedParser     *gofeed.Parser
	transcriber    AssetTranscriber
	lookupEndpoint string
}

// NewResolver creates a podcast resolver.
func NewResolver(transcriber AssetTranscriber) *Resolver {
	return &Resolver{
		client:         httpclient.NewClient(httpclient.BrowserClient),
		feedParser:     gofeed.NewParser(),
		transcriber:    transcriber,
		lookupEndpoint: DefaultLookupEndpoint,
	}
}

// SetLookupEndpoint overrides the show-lookup API endpoint. Used by tests.
func (r *Resolver) SetLookupEndpoint(endpoint string) {
	r.lookupEndpoint = endpoint
}

// Resolve runs the full chain: feed discovery, latest-episode selection, and
// audio transcription. Absence at either discovery step surfaces as
// ErrFeedNotFound or ErrNoAudioAsset without any audio download attempt.
func (r *Resolver) Resolve(ctx context.Context, pageURL string) ([]string, error) {
	feedURL, found, err := r.DiscoverFeed(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrFeedNotFound
	}

	episode, found, err := r.LatestEpisode(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoAudioAsset
	}

	log.Printf("podcast: transcribing %q from %s", episode.Title, episode.AudioURL)
	return r.transcriber.TranscribeAsset(ctx, episode.AudioURL)
}

// DiscoverFeed finds the episode feed URL behind a podcast front-end page.
// Apple Podcasts URLs resolve through the public lookup API by the numeric id
// in the path; other supported platforms embed the feed URL in the page under
// known JSON key names. found=false means discovery ran but matched nothing.
func (r *Resolver) DiscoverFeed(ctx context.Context, pageURL string) (string, bool, error) {
	if m := appleIDPattern.FindStringSubmatch(pageURL); m != nil {
		return r.lookupFeed(ctx, m[1])
	}
	return r.scanPageForFeed(ctx, pageURL)
}

// lookupFeed queries the show-lookup API and returns the first result with a
// non-empty feed-URL field.
func (r *Resolver) lookupFeed(ctx context.Context, showID string) (string, bool, error) {
	endpoint := r.lookupEndpoint + "?id=" + url.QueryEscape(showID)
	body, err := r.fetch(ctx, endpoint)
	if err != nil {
		return "", false, fmt.Errorf("lookup show %s: %w", showID, err)
	}

	var payload struct {
		Results []struct {
			FeedURL string `json:"feedUrl"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", false, fmt.Errorf("decode lookup response: %w", err)
	}

	for _, result := range payload.Results {
		if result.FeedURL != "" {
			return result.FeedURL, true, nil
		}
	}
	return "", false, nil
}

// scanPageForFeed downloads the page and pattern-searches its content for
// known JSON keys carrying a feed URL.
func (r *Resolver) scanPageForFeed(ctx context.Context, pageURL string) (string, bool, error) {
	body, err := r.fetch(ctx, pageURL)
	if err != nil {
		return "", false, fmt.Errorf("fetch podcast page: %w", err)
	}

	page := string(body)
	for _, pattern := range feedKeyPatterns {
		if m := pattern.FindStringSubmatch(page); m != nil {
			feedURL := unescapeJSONString(m[1])
			if feedURL != "" {
				return feedURL, true, nil
			}
		}
	}
	return "", false, nil
}

// LatestEpisode parses the feed and selects its most recent entry, locating
// the audio asset by checking enclosures, then generic links, then
// media-content entries. found=false means the newest entry has no audio
// asset; an empty feed is ErrEmptyFeed.
func (r *Resolver) LatestEpisode(ctx context.Context, feedURL string) (domain.PodcastEpisode, bool, error) {
	feed, err := r.feedParser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return domain.PodcastEpisode{}, false, fmt.Errorf("parse feed: %w", err)
	}
	if feed == nil || len(feed.Items) == 0 {
		return domain.PodcastEpisode{}, false, ErrEmptyFeed
	}

	item := newestItem(feed.Items)

	audioURL, found := findAudioAsset(item)
	if !found {
		return domain.PodcastEpisode{}, false, nil
	}

	return domain.PodcastEpisode{
		Title:       item.Title,
		AudioURL:    audioURL,
		Description: item.Description,
	}, true, nil
}

// newestItem picks the entry with the latest publication date, falling back
// to the feed's first entry when dates are absent.
func newestItem(items []*gofeed.Item) *gofeed.Item {
	newest := items[0]
	for _, item := range items[1:] {
		if item.PublishedParsed == nil || newest.PublishedParsed == nil {
			continue
		}
		if item.PublishedParsed.After(*newest.PublishedParsed) {
			newest = item
		}
	}
	return newest
}

// findAudioAsset locates an audio-typed resource URL in a feed entry.
// Precedence: enclosure entries, then generic link entries, then
// media-content extension entries.
func findAudioAsset(item *gofeed.Item) (string, bool) {
	for _, enc := range item.Enclosures {
		if enc.URL != "" && isAudioResource(enc.URL, enc.Type) {
			return enc.URL, true
		}
	}

	for _, link := range item.Links {
		if isAudioResource(link, "") {
			return link, true
		}
	}

	if media, ok := item.Extensions["media"]; ok {
		for _, content := range media["content"] {
			contentURL := content.Attrs["url"]
			contentType := content.Attrs["type"]
			if content.Attrs["medium"] == "audio" && contentURL != "" {
				return contentURL, true
			}
			if contentURL != "" && isAudioResource(contentURL, contentType) {
				return contentURL, true
			}
		}
	}

	return "", false
}

// isAudioResource reports whether a URL/MIME pair names an audio resource.
func isAudioResource(rawURL, mimeType string) bool {
	if strings.HasPrefix(mimeType, "audio/") {
		return true
	}

	parsed, err := url.Parse(rawURL)
	path := rawURL
	if err == nil {
		path = parsed.Path
	}
	lower := strings.ToLower(path)
	for _, ext := range []string{".mp3", ".m4a", ".aac", ".ogg", ".opus", ".wav", ".flac"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func (r *Resolver) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// unescapeJSONString undoes the escaping of a feed URL lifted out of embedded
// page JSON (typically \/ sequences).
func unescapeJSONString(s string) string {
	var out string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &out); err != nil {
		return strings.ReplaceAll(s, `\/`, `/`)
	}
	return out
}
