// Package score implements the composite influence scoring engine: six
// weighted components combined into a 0-100 score and grade, degrading
// gracefully when optional sources are absent.
package score

import (
	"math"

	"github.com/influence-iq/influenceiq/pkg/signal"
)

// Component names, in display order.
const (
	ComponentReach       = "reach"
	ComponentEngagement  = "engagement"
	ComponentLongevity   = "longevity"
	ComponentCredibility = "credibility"
	ComponentImpact      = "impact"
	ComponentConsistency = "consistency"
)

// ComponentOrder is the fixed presentation order of the six components.
var ComponentOrder = []string{
	ComponentReach,
	ComponentEngagement,
	ComponentLongevity,
	ComponentCredibility,
	ComponentImpact,
	ComponentConsistency,
}

// Weights are the nominal component maxima. The defaults sum to 100.
type Weights struct {
	Reach       float64
	Engagement  float64
	Longevity   float64
	Credibility float64
	Impact      float64
	Consistency float64
}

// DefaultWeights returns the calibrated weight table.
func DefaultWeights() Weights {
	return Weights{
		Reach:       25,
		Engagement:  20,
		Longevity:   15,
		Credibility: 25,
		Impact:      10,
		Consistency: 5,
	}
}

// Component is one earned/maximum pair in a breakdown.
type Component struct {
	Earned float64 `json:"earned"`
	Max    float64 `json:"max"`
}

// Breakdown is the auditable output of a scoring run.
type Breakdown struct {
	Components map[string]Component `json:"components"`
	Overall    int                  `json:"overall"`
	Grade      string               `json:"grade"`
}

// Scorer combines normalized signals into a Breakdown. It is stateless and
// safe for concurrent use.
type Scorer struct {
	weights Weights
}

// NewScorer creates a scorer with the given weight table.
func NewScorer(w Weights) *Scorer {
	return &Scorer{weights: w}
}

// Score computes the composite breakdown. social and news are nil when the
// source is wholly absent; an absent source leaves its components at zero
// and removes their weights from the scaling denominator, so missing data
// degrades the evidence base rather than the score.
func (s *Scorer) Score(bio signal.BiographicalRecord, social *signal.SocialProfile, news *signal.NewsSignal) Breakdown {
	components := make(map[string]Component, len(ComponentOrder))
	var earnedSum, activeMax float64

	add := func(name string, earned, max float64, active bool) {
		components[name] = Component{Earned: earned, Max: max}
		if active {
			earnedSum += earned
			activeMax += max
		}
	}

	// reach: log-scaled audience size, floored at a 1000-follower baseline
	// and capped at 20. The remaining 5 nominal points are structurally
	// unused by this formula.
	reach := 0.0
	if social != nil {
		followers := math.Max(float64(social.Followers), 1000)
		reach = math.Min(20, 4*(1+math.Log10(followers/1000)))
	}
	add(ComponentReach, reach, s.weights.Reach, social != nil)

	// engagement: rate-driven up to 15, content quality adds up to 5.
	engagement := 0.0
	if social != nil {
		engagement = math.Min(15, social.EngagementRate*500) + social.ContentQuality/2
	}
	add(ComponentEngagement, engagement, s.weights.Engagement, social != nil)

	longevity := 0.0
	if social != nil {
		longevity = math.Min(15, social.YearsActive*1.5)
	}
	add(ComponentLongevity, longevity, s.weights.Longevity, social != nil)

	// credibility: news contributes its 0-10 aggregate doubled; social adds
	// up to 5 from verification and above-neutral sentiment. Active when
	// either source exists.
	credibility := 0.0
	if news != nil {
		credibility += news.Credibility * 2
	}
	if social != nil {
		bonus := 0.0
		if social.Verified {
			bonus += 5
		}
		if social.Sentiment > 0.3 {
			bonus += 5 * (social.Sentiment - 0.3)
		}
		credibility += math.Min(5, bonus)
	}
	add(ComponentCredibility, credibility, s.weights.Credibility, social != nil || news != nil)

	// impact: additive from net worth, associated organizations and charity
	// involvement. The sum is deliberately not clamped to the nominal
	// weight; a crowded resume can exceed 100% of this component.
	impact := 0.0
	switch bio.NetWorth.State {
	case signal.NetWorthParsed:
		if bio.NetWorth.Value > 0 {
			impact += math.Min(5, 1+math.Log2(bio.NetWorth.Value)/2)
		}
	case signal.NetWorthUnparsed:
		impact += 1
	}
	impact += math.Min(5, float64(len(bio.Companies)))
	if bio.HasCharity() {
		impact += 5
	}
	add(ComponentImpact, impact, s.weights.Impact, true)

	// consistency: agreement between independently derived sentiment
	// signals, so it needs both. Divergence is penalized at twice its
	// magnitude, floored at zero: half a point of sentiment disagreement
	// already forfeits the whole component.
	consistency := 0.0
	both := social != nil && news != nil
	if both {
		divergence := math.Min(1, 2*math.Abs(social.Sentiment-news.Sentiment))
		consistency = 5 * (1 - divergence)
	}
	add(ComponentConsistency, consistency, s.weights.Consistency, both)

	overall := 0
	if activeMax > 0 {
		overall = int(math.Round(100 * earnedSum / activeMax))
	}
	if overall > 100 {
		overall = 100
	}
	if overall < 0 {
		overall = 0
	}

	return Breakdown{
		Components: components,
		Overall:    overall,
		Grade:      GradeFor(overall),
	}
}

// GradeFor maps a composite score to its grade band.
func GradeFor(overall int) string {
	switch {
	case overall >= 90:
		return "A+ (Elite Influencer)"
	case overall >= 80:
		return "A (Top-tier Influencer)"
	case overall >= 70:
		return "B+ (Major Influencer)"
	case overall >= 60:
		return "B (Established Influencer)"
	case overall >= 50:
		return "C+ (Growing Influencer)"
	case overall >= 40:
		return "C (Moderate Influence)"
	case overall >= 30:
		return "D+ (Emerging Influence)"
	default:
		return "D (Limited Influence)"
	}
}
