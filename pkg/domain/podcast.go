package domain

// PodcastEpisode is the newest entry discovered from a podcast feed.
// Transient: consumed immediately by the audio pipeline, never persisted.
type PodcastEpisode struct {
	Title       string
	AudioURL    string
	Description string
}
