package news

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/influence-iq/influenceiq/pkg/signal"
)

// fixedEstimator returns the same polarity for every title.
type fixedEstimator struct{ polarity float64 }

func (f fixedEstimator) Polarity(string) float64 { return f.polarity }

var evalTime = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func testReducer(polarity float64) *Reducer {
	return NewReducer(
		fixedEstimator{polarity},
		[]string{"forbes.com", "bloomberg.com", "wsj.com", "businessinsider.com", "inc.com", "bbc.co.uk"},
		func() time.Time { return evalTime },
	)
}

func item(domain string, published time.Time) signal.NewsItem {
	return signal.NewsItem{
		Title:        "Headline",
		SourceDomain: domain,
		PublishedAt:  published.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func TestReducer_Reduce_EmptyCorpus(t *testing.T) {
	sentiment, credibility := testReducer(0.9).Reduce(nil)
	assert.Zero(t, sentiment)
	assert.Zero(t, credibility)

	sentiment, credibility = testReducer(0.9).Reduce([]signal.NewsItem{})
	assert.Zero(t, sentiment)
	assert.Zero(t, credibility)
}

func TestReducer_Reduce_ReputableRecentItem(t *testing.T) {
	r := testReducer(0.4)
	items := []signal.NewsItem{item("forbes.com", evalTime.Add(-2*time.Hour))}

	sentiment, credibility := r.Reduce(items)

	// reliability 1.0, recency 1.0 -> per-item credibility 1.0;
	// aggregate = (1.0 + 0.4) / 2 = 0.7.
	assert.InDelta(t, 0.4, sentiment, 1e-9)
	assert.InDelta(t, 0.7, credibility, 1e-9)
}

func TestReducer_Reduce_UnknownSourceHalfCredit(t *testing.T) {
	r := testReducer(0)
	items := []signal.NewsItem{item("random-blog.example", evalTime.Add(-time.Hour))}

	_, credibility := r.Reduce(items)

	// reliability 0.5, recency 1.0 -> per-item 0.75; aggregate 0.375.
	assert.InDelta(t, 0.375, credibility, 1e-9)
}

func TestReducer_Reduce_RecencyBuckets(t *testing.T) {
	r := testReducer(0)
	cases := []struct {
		name string
		age  time.Duration
		want float64
	}{
		{"today", 0, 1.0},
		{"six days", 6 * 24 * time.Hour, 1.0},
		{"two weeks", 14 * 24 * time.Hour, 0.7},
		{"thirty days", 30 * 24 * time.Hour, 0.7},
		{"old", 90 * 24 * time.Hour, 0.3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := r.recency(evalTime.Add(-tc.age).Format("2006-01-02T15:04:05Z"))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReducer_Reduce_UnknownDate(t *testing.T) {
	r := testReducer(0)

	assert.Equal(t, 0.5, r.recency(signal.UnknownDate))
	assert.Equal(t, 0.5, r.recency("yesterday-ish"))
	assert.Equal(t, 0.5, r.recency(""))
}

func TestReducer_Reduce_NegativeSentimentDragsCredibility(t *testing.T) {
	r := testReducer(-0.8)
	items := []signal.NewsItem{item("bbc.co.uk", evalTime.Add(-time.Hour))}

	sentiment, credibility := r.Reduce(items)

	assert.InDelta(t, -0.8, sentiment, 1e-9)
	// (1.0 + -0.8) / 2 = 0.1: hostile coverage pulls credibility down even
	// from perfect sourcing.
	assert.InDelta(t, 0.1, credibility, 1e-9)
}

func TestReducer_Reduce_MultipleItems(t *testing.T) {
	r := testReducer(0.2)
	items := []signal.NewsItem{
		item("forbes.com", evalTime.Add(-time.Hour)),          // 1.0
		item("random.example", evalTime.Add(-40*24*time.Hour)), // (0.5+0.3)/2 = 0.4
		{Title: "x", SourceDomain: "wsj.com", PublishedAt: signal.UnknownDate}, // (1.0+0.5)/2 = 0.75
	}

	sentiment, credibility := r.Reduce(items)

	assert.InDelta(t, 0.2, sentiment, 1e-9)
	mean := (1.0 + 0.4 + 0.75) / 3
	assert.InDelta(t, (mean+0.2)/2, credibility, 1e-9)
}

func TestBandFor_Boundaries(t *testing.T) {
	cases := []struct {
		score       float64
		credibility string
		nature      string
	}{
		{0.71, "High Credibility", "Positive"},
		{0.7, "Moderate Credibility", "Neutral"}, // strict inequality at 0.7
		{0.4, "Moderate Credibility", "Neutral"},
		{0.39, "Low Credibility", "Negative"},
		{0, "Low Credibility", "Negative"},
		{-0.2, "Low Credibility", "Negative"},
	}
	for _, tc := range cases {
		band := BandFor(tc.score)
		assert.Equal(t, tc.credibility, band.Credibility, "score=%v", tc.score)
		assert.Equal(t, tc.nature, band.Nature, "score=%v", tc.score)
	}
}

func TestVADER_Polarity_Range(t *testing.T) {
	v := NewVADER()
	for _, text := range []string{
		"Company celebrates record-breaking, fantastic quarterly results",
		"Executive faces fraud charges after devastating collapse",
		"Quarterly report published on schedule",
	} {
		p := v.Polarity(text)
		assert.GreaterOrEqual(t, p, -1.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}
