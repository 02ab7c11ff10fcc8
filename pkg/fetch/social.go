package fetch

import (
	"math/rand"
	"strings"

	"github.com/influence-iq/influenceiq/pkg/signal"
)

// SocialSource resolves a person to social analytics. People without a
// registered handle have no linked account and yield a nil payload.
//
// No public analytics backend is wired, so registered handles get a
// synthetic profile drawn from a caller-seeded generator; the draw happens
// here, outside the engine, which keeps scoring reproducible for identical
// inputs.
type SocialSource struct {
	handles map[string]string
	rng     *rand.Rand
}

// NewSocialSource creates a social source. handles maps lowercase person
// names to handles.
func NewSocialSource(handles map[string]string, rng *rand.Rand) *SocialSource {
	normalized := make(map[string]string, len(handles))
	for name, handle := range handles {
		normalized[strings.ToLower(strings.TrimSpace(name))] = handle
	}
	return &SocialSource{handles: normalized, rng: rng}
}

// Lookup returns the raw social payload for a person, or nil when no linked
// account exists.
func (s *SocialSource) Lookup(name string) *signal.RawSocial {
	handle, ok := s.handles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil
	}
	return s.synthesize(handle)
}

// synthesize draws a plausible analytics payload for a handle: follower
// counts from 500 to 10k, engagement between 1% and 8%, content quality in
// the 5.0-8.5 band, sentiment leaning neutral-to-positive.
func (s *SocialSource) synthesize(handle string) *signal.RawSocial {
	return &signal.RawSocial{
		Handle:         handle,
		Followers:      500 + s.rng.Intn(9500),
		EngagementRate: round3(0.01 + s.rng.Float64()*0.07),
		ContentQuality: round1(5.0 + s.rng.Float64()*3.5),
		YearsActive:    round1(1.0 + s.rng.Float64()*7.0),
		Verified:       false,
		Sentiment:      round2(0.3 + s.rng.Float64()*0.5),
		Topics:         []string{"business", "technology", "finance"},
	}
}

func round1(v float64) float64 { return float64(int(v*10+0.5)) / 10 }
func round2(v float64) float64 { return float64(int(v*100+0.5)) / 100 }
func round3(v float64) float64 { return float64(int(v*1000+0.5)) / 1000 }
