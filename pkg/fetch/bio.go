// Package fetch holds the I/O collaborators that assemble raw source
// payloads for the scoring engine: biography lookup, news coverage, social
// analytics and portrait resolution. All timeouts, caching and fallback
// behavior live here; the engine packages stay pure.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	openai "github.com/sashabaranov/go-openai"

	"github.com/influence-iq/influenceiq/pkg/signal"
)

const bioPrompt = `Provide detailed information about %s in valid JSON format with double quotes.
Ensure the response is strictly JSON, no extra text.
The format should be:
{
  "full_name": "value",
  "ethnicity": "value",
  "dob": "value",
  "age": "value",
  "net_worth": "value",
  "charity": "value",
  "companies": ["company1", "company2"]
}
If any value is unknown, use "unknown".`

// BioFetcher retrieves structured biographical details from an
// OpenAI-compatible chat completion API.
type BioFetcher struct {
	client *openai.Client
	model  string
	cache  *cache.Cache
}

// NewBioFetcher creates a biography fetcher. baseURL may be empty for the
// default endpoint.
func NewBioFetcher(apiKey, model, baseURL string) *BioFetcher {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &BioFetcher{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		cache:  cache.New(1*time.Hour, 2*time.Hour),
	}
}

// Fetch returns the raw biographical payload for a person. Model responses
// wrapped in markdown code fences are unwrapped before parsing.
func (f *BioFetcher) Fetch(ctx context.Context, name string) (signal.RawBio, error) {
	if cached, ok := f.cache.Get(cacheKey("bio", name)); ok {
		return cached.(signal.RawBio), nil
	}

	resp, err := f.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: f.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(bioPrompt, name)},
		},
	})
	if err != nil {
		return signal.RawBio{}, fmt.Errorf("bio completion for %s: %w", name, err)
	}
	if len(resp.Choices) == 0 {
		return signal.RawBio{}, fmt.Errorf("bio completion for %s: empty response", name)
	}

	raw, err := parseBioResponse(resp.Choices[0].Message.Content)
	if err != nil {
		return signal.RawBio{}, fmt.Errorf("bio response for %s: %w", name, err)
	}

	f.cache.Set(cacheKey("bio", name), raw, cache.DefaultExpiration)
	return raw, nil
}

// parseBioResponse unwraps an optional ```json fence and unmarshals the
// payload.
func parseBioResponse(content string) (signal.RawBio, error) {
	s := strings.TrimSpace(content)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}

	var raw signal.RawBio
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return signal.RawBio{}, fmt.Errorf("parse json: %w", err)
	}
	return raw, nil
}

func cacheKey(kind, name string) string {
	return kind + ":" + strings.ToLower(strings.TrimSpace(name))
}
