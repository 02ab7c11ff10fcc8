package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/influence-iq/influenceiq/pkg/signal"
)

// Feed is a named RSS/Atom feed URL.
type Feed struct {
	Name string
	URL  string
}

// NewsFetcher collects coverage items mentioning a person from a fixed set
// of RSS feeds.
type NewsFetcher struct {
	client   *http.Client
	parser   *gofeed.Parser
	feeds    []Feed
	limiter  *rate.Limiter
	cache    *cache.Cache
	maxItems int
}

// NewNewsFetcher creates a news fetcher. maxItems caps the returned corpus;
// zero means the default of 10.
func NewNewsFetcher(feeds []Feed, maxItems int) *NewsFetcher {
	if maxItems <= 0 {
		maxItems = 10
	}
	return &NewsFetcher{
		client:   &http.Client{Timeout: 30 * time.Second},
		parser:   gofeed.NewParser(),
		feeds:    feeds,
		limiter:  rate.NewLimiter(rate.Every(200*time.Millisecond), 3),
		cache:    cache.New(15*time.Minute, 30*time.Minute),
		maxItems: maxItems,
	}
}

// Fetch returns up to maxItems news items whose title or summary mentions
// the person. Individual feed failures are logged and skipped; an empty
// result is not an error.
func (n *NewsFetcher) Fetch(ctx context.Context, name string) ([]signal.NewsItem, error) {
	if cached, ok := n.cache.Get(cacheKey("news", name)); ok {
		return cached.([]signal.NewsItem), nil
	}

	var items []signal.NewsItem
	for _, feed := range n.feeds {
		if len(items) >= n.maxItems {
			break
		}
		feedItems, err := n.collectFeed(ctx, feed, name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  news feed %s error: %v\n", feed.Name, err)
			continue
		}
		items = append(items, feedItems...)
	}

	if len(items) > n.maxItems {
		items = items[:n.maxItems]
	}

	n.cache.Set(cacheKey("news", name), items, cache.DefaultExpiration)
	return items, nil
}

func (n *NewsFetcher) collectFeed(ctx context.Context, feed Feed, name string) ([]signal.NewsItem, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feed.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request %s: %w", feed.Name, err)
	}
	req.Header.Set("User-Agent", "influenceiq/1.0")

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", feed.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s status %d", feed.Name, resp.StatusCode)
	}

	parsed, err := n.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", feed.Name, err)
	}

	domain := feedDomain(feed.URL)

	var items []signal.NewsItem
	for _, entry := range parsed.Items {
		if !mentions(entry.Title, entry.Description, name) {
			continue
		}
		items = append(items, signal.NewsItem{
			Title:        entry.Title,
			URL:          entry.Link,
			SourceDomain: domain,
			PublishedAt:  publishedStamp(entry),
		})
	}
	return items, nil
}

// mentions reports whether the person's name appears in the entry title or
// summary, case-insensitively.
func mentions(title, description, name string) bool {
	needle := strings.ToLower(name)
	return strings.Contains(strings.ToLower(title), needle) ||
		strings.Contains(strings.ToLower(description), needle)
}

// feedDomain extracts the bare host of a feed URL, with any www. prefix
// dropped so it matches the reputable-domain allow-list.
func feedDomain(feedURL string) string {
	u, err := url.Parse(feedURL)
	if err != nil || u.Host == "" {
		return feedURL
	}
	return strings.TrimPrefix(u.Host, "www.")
}

// publishedStamp formats an entry's publish time in the corpus timestamp
// form, or the unknown-date sentinel when the feed gave none.
func publishedStamp(entry *gofeed.Item) string {
	if entry.PublishedParsed != nil {
		return entry.PublishedParsed.UTC().Format("2006-01-02T15:04:05Z")
	}
	if entry.UpdatedParsed != nil {
		return entry.UpdatedParsed.UTC().Format("2006-01-02T15:04:05Z")
	}
	return signal.UnknownDate
}
