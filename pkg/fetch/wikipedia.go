package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// PortraitFetcher resolves a person's portrait thumbnail from the Wikipedia
// pageimages API.
type PortraitFetcher struct {
	client *http.Client
}

// NewPortraitFetcher creates a portrait fetcher.
func NewPortraitFetcher() *PortraitFetcher {
	return &PortraitFetcher{client: &http.Client{Timeout: 15 * time.Second}}
}

// Fetch returns a thumbnail URL, or empty when no image is available.
func (p *PortraitFetcher) Fetch(ctx context.Context, name string) (string, error) {
	endpoint := fmt.Sprintf(
		"https://en.wikipedia.org/w/api.php?action=query&titles=%s&prop=pageimages&format=json&pithumbsize=400",
		url.QueryEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create portrait request: %w", err)
	}
	req.Header.Set("User-Agent", "influenceiq/1.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch portrait for %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("portrait query status %d", resp.StatusCode)
	}

	var payload struct {
		Query struct {
			Pages map[string]struct {
				Thumbnail struct {
					Source string `json:"source"`
				} `json:"thumbnail"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode portrait response: %w", err)
	}

	for _, page := range payload.Query.Pages {
		if page.Thumbnail.Source != "" {
			return page.Thumbnail.Source, nil
		}
	}
	return "", nil
}
