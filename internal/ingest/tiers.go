package ingest

import (
	"github.com/mvasconcelos/horaculo/internal/adapters/feeds"
	"github.com/mvasconcelos/horaculo/internal/adapters/newsapi"
)

const feedLimit = 10

// DefaultTier1 builds the default Tier-1 fetchers: NewsAPI when a key is
// present, plus the two wire-service feeds.
func DefaultTier1(apiKey string, pageSize int) []Fetcher {
	var tier []Fetcher
	if apiKey != "" {
		tier = append(tier, newsapi.New(apiKey, pageSize))
	}
	tier = append(tier,
		feeds.New(ReutersFeedURL, feedLimit),
		feeds.New(BloombergFeedURL, feedLimit),
	)
	return tier
}

// DefaultTier2 builds the default Tier-2 fallback fetchers.
func DefaultTier2() []Fetcher {
	return []Fetcher{
		feeds.New(YahooFeedURL, feedLimit),
		feeds.New(InvestingFeedURL, feedLimit),
	}
}
