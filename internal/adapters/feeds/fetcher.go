package feeds

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mmcdole/gofeed"

	"github.com/mvasconcelos/horaculo/pkg/models"
)

// Fetcher retrieves signals from a single syndication feed URL
type Fetcher struct {
	url    string
	limit  int
	parser *gofeed.Parser
}

// New creates new feed fetcher for url, emitting at most limit signals
func New(url string, limit int) *Fetcher {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: 10 * time.Second}

	return &Fetcher{
		url:    url,
		limit:  limit,
		parser: parser,
	}
}

func (f *Fetcher) Name() string {
	return f.url
}

// Fetch parses the feed and maps entries to signals. The query argument is
// ignored; syndication feeds are not searchable.
func (f *Fetcher) Fetch(ctx context.Context, _ string) ([]models.Signal, error) {
	feed, err := f.parser.ParseURLWithContext(f.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	source := feed.Title
	if source == "" {
		source = "rss"
	}

	signals := make([]models.Signal, 0, f.limit)
	for _, entry := range feed.Items {
		if len(signals) >= f.limit {
			break
		}
		signals = append(signals, models.NewSignal(source, entry.Title, entry.Description, entry.Link, entry.Published))
	}

	return signals, nil
}

// FetchMatching parses the feed and keeps only entries whose title or
// summary contains query, case-insensitive. Used by the crypto satellite.
func (f *Fetcher) FetchMatching(ctx context.Context, query string) ([]models.Signal, error) {
	feed, err := f.parser.ParseURLWithContext(f.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	source := feed.Title
	if source == "" {
		source = "Crypto Source"
	}

	needle := strings.ToLower(query)
	signals := make([]models.Signal, 0, f.limit)

	for _, entry := range feed.Items {
		if len(signals) >= f.limit {
			break
		}
		if !strings.Contains(strings.ToLower(entry.Title), needle) &&
			!strings.Contains(strings.ToLower(entry.Description), needle) {
			continue
		}

		summary := truncate(entry.Description, 300)

		s := models.NewSignal(source, entry.Title, entry.Description, entry.Link, entry.Published)
		s.Text = entry.Title + ". " + summary
		signals = append(signals, s)
	}

	return signals, nil
}

// truncate cuts s to at most n bytes without splitting a rune
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
