package newsapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"context"

	"github.com/mvasconcelos/horaculo/pkg/models"
)

const everythingURL = "https://newsapi.org/v2/everything"

// Client fetches signals from the NewsAPI "everything" endpoint
type Client struct {
	apiKey   string
	pageSize int
	client   *http.Client
}

// New creates new NewsAPI client
func New(apiKey string, pageSize int) *Client {
	return &Client{
		apiKey:   apiKey,
		pageSize: pageSize,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Name() string {
	return "newsapi"
}

// Fetch retrieves the most recent English articles matching query
func (c *Client) Fetch(ctx context.Context, query string) ([]models.Signal, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("language", "en")
	params.Set("pageSize", strconv.Itoa(c.pageSize))
	params.Set("sortBy", "publishedAt")

	req, err := http.NewRequestWithContext(ctx, "GET", everythingURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("HTTP error %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Articles []struct {
			Source struct {
				Name string `json:"name"`
			} `json:"source"`
			Title       string `json:"title"`
			Description string `json:"description"`
			URL         string `json:"url"`
			PublishedAt string `json:"publishedAt"`
		} `json:"articles"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	signals := make([]models.Signal, 0, len(result.Articles))
	for _, a := range result.Articles {
		source := a.Source.Name
		if source == "" {
			source = "unknown"
		}
		signals = append(signals, models.NewSignal(source, a.Title, a.Description, a.URL, a.PublishedAt))
	}

	return signals, nil
}
