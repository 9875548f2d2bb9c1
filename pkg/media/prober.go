package media

import (
	"context"
	"encoding/json"
	"fmt"
)

// Prober confirms media URLs by dumping metadata with yt-dlp and looking for
// media-indicating signals: an available format list, a positive duration, or
// a recognizable uploader/date field. Absence of all signals means the page is
// not a media asset even though it lives on a media host.
type Prober struct {
	runner Runner
}

// NewProber creates a metadata prober backed by the given runner.
func NewProber(runner Runner) *Prober {
	return &Prober{runner: runner}
}

func (p *Prober) Probe(ctx context.Context, rawURL string) (bool, error) {
	out, err := p.runner.Run(ctx, "yt-dlp", "-J", "--skip-download", "--no-warnings", rawURL)
	if err != nil {
		return false, fmt.Errorf("probe %s: %w", rawURL, err)
	}

	var info struct {
		Formats    []json.RawMessage `json:"formats"`
		Duration   float64           `json:"duration"`
		Uploader   string            `json:"uploader"`
		UploadDate string            `json:"upload_date"`
	}
	if err := json.Unmarshal(out, &info); err != nil {
		return false, fmt.Errorf("probe %s: decode metadata: %w", rawURL, err)
	}

	confirmed := len(info.Formats) > 0 ||
		info.Duration > 0 ||
		info.Uploader != "" ||
		info.UploadDate != ""
	return confirmed, nil
}
