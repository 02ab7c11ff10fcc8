package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/influence-iq/influenceiq/pkg/signal"
)

func fullProfile() *signal.SocialProfile {
	return &signal.SocialProfile{
		Handle:         "testuser",
		Followers:      50000,
		EngagementRate: 0.04,
		ContentQuality: 8.0,
		YearsActive:    6.0,
		Verified:       true,
		Sentiment:      0.6,
		Topics:         []string{"tech", "startups"},
	}
}

func fullBio() signal.BiographicalRecord {
	return signal.BiographicalRecord{
		FullName:  "Test Person",
		NetWorth:  signal.NetWorth{State: signal.NetWorthParsed, Value: 2.5e9},
		Charity:   "Test Foundation",
		Companies: []string{"Acme", "Globex"},
	}
}

func TestScorer_Score_ComponentRanges(t *testing.T) {
	scorer := NewScorer(DefaultWeights())
	news := signal.NewsSignalFromReduction(0.3, 0.65)

	b := scorer.Score(fullBio(), fullProfile(), &news)

	require.Len(t, b.Components, 6)
	assert.GreaterOrEqual(t, b.Components[ComponentReach].Earned, 0.0)
	assert.LessOrEqual(t, b.Components[ComponentReach].Earned, 20.0)
	assert.GreaterOrEqual(t, b.Components[ComponentEngagement].Earned, 0.0)
	assert.LessOrEqual(t, b.Components[ComponentEngagement].Earned, 20.0)
	assert.GreaterOrEqual(t, b.Components[ComponentLongevity].Earned, 0.0)
	assert.LessOrEqual(t, b.Components[ComponentLongevity].Earned, 15.0)
	assert.GreaterOrEqual(t, b.Overall, 0)
	assert.LessOrEqual(t, b.Overall, 100)
}

func TestScorer_Score_ReachMonotonicInFollowers(t *testing.T) {
	scorer := NewScorer(DefaultWeights())
	bio := signal.BiographicalRecord{}

	prev := -1.0
	for _, followers := range []int{0, 500, 1000, 5000, 100000, 10000000, 2000000000} {
		p := fullProfile()
		p.Followers = followers
		b := scorer.Score(bio, p, nil)
		reach := b.Components[ComponentReach].Earned
		assert.GreaterOrEqual(t, reach, prev, "followers=%d", followers)
		assert.LessOrEqual(t, reach, 20.0)
		prev = reach
	}
}

func TestScorer_Score_ReachFlooredAtBaseline(t *testing.T) {
	scorer := NewScorer(DefaultWeights())

	small := fullProfile()
	small.Followers = 10
	baseline := fullProfile()
	baseline.Followers = 1000

	a := scorer.Score(signal.BiographicalRecord{}, small, nil)
	b := scorer.Score(signal.BiographicalRecord{}, baseline, nil)

	// Accounts under the 1000-follower baseline score as if at the baseline.
	assert.Equal(t, b.Components[ComponentReach].Earned, a.Components[ComponentReach].Earned)
	assert.InDelta(t, 4.0, a.Components[ComponentReach].Earned, 1e-9)
}

func TestScorer_Score_NoSources(t *testing.T) {
	scorer := NewScorer(DefaultWeights())

	b := scorer.Score(signal.BiographicalRecord{}, nil, nil)

	assert.Equal(t, 0, b.Overall)
	assert.Equal(t, "D (Limited Influence)", b.Grade)
	assert.Zero(t, b.Components[ComponentReach].Earned)
	assert.Zero(t, b.Components[ComponentImpact].Earned)
}

func TestScorer_Score_BioOnlyUsesImpactBucketOnly(t *testing.T) {
	scorer := NewScorer(DefaultWeights())
	bio := signal.BiographicalRecord{Charity: "Red Cross"}

	b := scorer.Score(bio, nil, nil)

	// Only impact's weight is active: 5 earned of 10 rescales to 50.
	assert.Equal(t, 50, b.Overall)
	assert.Equal(t, "C+ (Growing Influencer)", b.Grade)
	assert.Equal(t, 5.0, b.Components[ComponentImpact].Earned)
	assert.Zero(t, b.Components[ComponentCredibility].Earned)
}

func TestScorer_Score_AbsentSourceExcludedFromDenominator(t *testing.T) {
	scorer := NewScorer(DefaultWeights())
	bio := signal.BiographicalRecord{}

	// Social present but every value near its floor: the social weights
	// stay in the denominator. Reach floors at 4.0 and content quality 5
	// earns 2.5 engagement points, scored against the 95 active points
	// (everything but consistency, which needs news too).
	p := &signal.SocialProfile{Followers: 0, EngagementRate: 0, ContentQuality: 5, YearsActive: 0, Sentiment: 0.2}
	b := scorer.Score(bio, p, nil)
	assert.InDelta(t, 4.0, b.Components[ComponentReach].Earned, 1e-9)
	assert.Equal(t, 7, b.Overall) // round(100 * 6.5 / 95)

	// Same numerator with the social source wholly absent: only impact's
	// weight remains and nothing was earned.
	b = scorer.Score(bio, nil, nil)
	assert.Equal(t, 0, b.Overall)
}

func TestScorer_Score_CredibilityFromNewsAndSocial(t *testing.T) {
	scorer := NewScorer(DefaultWeights())

	// Reducer aggregates sentiment=0.4, credibility=0.7 scale to a 0-10
	// news credibility of 7, doubled to 14 points.
	news := signal.NewsSignalFromReduction(0.4, 0.7)
	b := scorer.Score(signal.BiographicalRecord{}, nil, &news)
	assert.InDelta(t, 14.0, b.Components[ComponentCredibility].Earned, 1e-9)

	// Verified alone maxes the 5-point social bonus.
	p := fullProfile()
	p.Verified = true
	p.Sentiment = 0.2
	b = scorer.Score(signal.BiographicalRecord{}, p, &news)
	assert.InDelta(t, 19.0, b.Components[ComponentCredibility].Earned, 1e-9)

	// Unverified with sentiment 0.8 earns 5*(0.8-0.3) = 2.5.
	p.Verified = false
	p.Sentiment = 0.8
	b = scorer.Score(signal.BiographicalRecord{}, p, &news)
	assert.InDelta(t, 16.5, b.Components[ComponentCredibility].Earned, 1e-9)

	// Sentiment at the 0.3 threshold earns no bonus.
	p.Sentiment = 0.3
	b = scorer.Score(signal.BiographicalRecord{}, p, &news)
	assert.InDelta(t, 14.0, b.Components[ComponentCredibility].Earned, 1e-9)
}

func TestScorer_Score_ConsistencyAgreement(t *testing.T) {
	scorer := NewScorer(DefaultWeights())
	bio := signal.BiographicalRecord{}

	p := fullProfile()
	p.Sentiment = 0.6
	news := &signal.NewsSignal{Sentiment: 0.6, Credibility: 5}
	b := scorer.Score(bio, p, news)
	assert.InDelta(t, 5.0, b.Components[ComponentConsistency].Earned, 1e-9)

	p.Sentiment = 0.1
	news = &signal.NewsSignal{Sentiment: 0.9, Credibility: 5}
	b = scorer.Score(bio, p, news)
	assert.Zero(t, b.Components[ComponentConsistency].Earned)
}

func TestScorer_Score_ConsistencyRequiresBothSources(t *testing.T) {
	scorer := NewScorer(DefaultWeights())

	b := scorer.Score(signal.BiographicalRecord{}, fullProfile(), nil)
	c := b.Components[ComponentConsistency]
	assert.Zero(t, c.Earned)
	// Weight excluded: a social-only run scores against 95 points, not 100.
	news := signal.NewsSignal{Sentiment: 0.6, Credibility: 0}
	withNews := scorer.Score(signal.BiographicalRecord{}, fullProfile(), &news)
	assert.NotEqual(t, b.Overall, withNews.Overall)
}

func TestScorer_Score_ImpactNetWorthStates(t *testing.T) {
	scorer := NewScorer(DefaultWeights())

	cases := []struct {
		name string
		nw   signal.NetWorth
		want float64
	}{
		{"absent", signal.NetWorth{State: signal.NetWorthAbsent}, 0},
		{"unparseable floor", signal.NetWorth{State: signal.NetWorthUnparsed}, 1},
		{"small parsed", signal.NetWorth{State: signal.NetWorthParsed, Value: 2}, 1.5},
		{"large parsed capped", signal.NetWorth{State: signal.NetWorthParsed, Value: 1e12}, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := scorer.Score(signal.BiographicalRecord{NetWorth: tc.nw}, nil, nil)
			assert.InDelta(t, tc.want, b.Components[ComponentImpact].Earned, 1e-9)
		})
	}
}

func TestScorer_Score_ImpactSumUncapped(t *testing.T) {
	scorer := NewScorer(DefaultWeights())
	bio := signal.BiographicalRecord{
		NetWorth:  signal.NetWorth{State: signal.NetWorthParsed, Value: 1e11},
		Charity:   "Foundation",
		Companies: []string{"a", "b", "c", "d", "e", "f", "g"},
	}

	b := scorer.Score(bio, nil, nil)

	// 5 + 5 + 5 = 15 earned against a nominal weight of 10.
	assert.InDelta(t, 15.0, b.Components[ComponentImpact].Earned, 1e-9)
	assert.Equal(t, 100, b.Overall) // clamped from 150
}

func TestScorer_Score_MonotonicInFollowersOverall(t *testing.T) {
	scorer := NewScorer(DefaultWeights())
	news := signal.NewsSignalFromReduction(0.2, 0.5)

	prev := -1
	for _, followers := range []int{1000, 10000, 100000, 1000000} {
		p := fullProfile()
		p.Followers = followers
		b := scorer.Score(fullBio(), p, &news)
		assert.GreaterOrEqual(t, b.Overall, prev)
		prev = b.Overall
	}
}

func TestGradeFor_Bands(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{100, "A+ (Elite Influencer)"},
		{90, "A+ (Elite Influencer)"},
		{89, "A (Top-tier Influencer)"},
		{80, "A (Top-tier Influencer)"},
		{70, "B+ (Major Influencer)"},
		{69, "B (Established Influencer)"},
		{60, "B (Established Influencer)"},
		{50, "C+ (Growing Influencer)"},
		{40, "C (Moderate Influence)"},
		{30, "D+ (Emerging Influence)"},
		{29, "D (Limited Influence)"},
		{0, "D (Limited Influence)"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, GradeFor(tc.score), "score=%d", tc.score)
	}
}

func TestScorer_Score_CustomWeights(t *testing.T) {
	w := DefaultWeights()
	w.Impact = 50
	scorer := NewScorer(w)

	b := scorer.Score(signal.BiographicalRecord{Charity: "x"}, nil, nil)

	assert.Equal(t, 50.0, b.Components[ComponentImpact].Max)
	assert.Equal(t, 10, b.Overall) // 5 of 50
}
