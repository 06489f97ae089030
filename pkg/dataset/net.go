package dataset

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Fetcher downloads pages and data files. A single instance is shared by a
// run so the polite delay applies across all requests to the source site.
type Fetcher struct {
	Client *http.Client
	Delay  time.Duration
	Log    *zap.SugaredLogger
}

func NewFetcher(log *zap.SugaredLogger) *Fetcher {
	return &Fetcher{
		Client: &http.Client{Timeout: 30 * time.Second},
		Delay:  250 * time.Millisecond,
		Log:    log,
	}
}

// Get downloads a URL. Any failure is final: the pipeline runs once and
// aborts on a bad fetch, it never retries.
func (f *Fetcher) Get(url string) ([]byte, error) {
	f.Log.Infow("download", "url", url)

	// Sleep to not hammer the source site!
	time.Sleep(f.Delay)

	resp, err := f.Client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	return data, nil
}
