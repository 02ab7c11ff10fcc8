package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNetWorth(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		state NetWorthState
		value float64
	}{
		{"absent empty", "", NetWorthAbsent, 0},
		{"absent marker", "unknown", NetWorthAbsent, 0},
		{"absent marker mixed case", "  UnKnOwN ", NetWorthAbsent, 0},
		{"plain number", "1500000", NetWorthParsed, 1500000},
		{"currency prefix", "$219.2 billion", NetWorthParsed, 219.2},
		{"thousands separators", "$1,500,000 USD", NetWorthParsed, 1500000},
		{"trailing unit glued", "2.5B", NetWorthParsed, 2.5},
		{"approximate prefix", "~45 million", NetWorthParsed, 45},
		{"unparseable words", "a considerable fortune", NetWorthUnparsed, 0},
		{"unparseable symbols", "$$$", NetWorthUnparsed, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseNetWorth(tc.in)
			assert.Equal(t, tc.state, got.State)
			if tc.state == NetWorthParsed {
				assert.InDelta(t, tc.value, got.Value, 1e-9)
			}
		})
	}
}

func TestNormalizeBio_UnknownMarker(t *testing.T) {
	rec := NormalizeBio(RawBio{
		FullName:  "Ada Example",
		Ethnicity: "unknown",
		DOB:       "Unknown",
		Age:       "36",
		NetWorth:  "unknown",
		Charity:   "unknown",
		Companies: []string{"Acme", "unknown", " Globex "},
	})

	assert.Equal(t, "Ada Example", rec.FullName)
	assert.Empty(t, rec.Ethnicity)
	assert.Empty(t, rec.DOB)
	assert.Equal(t, "36", rec.Age)
	assert.Equal(t, NetWorthAbsent, rec.NetWorth.State)
	assert.False(t, rec.HasCharity())
	assert.Equal(t, []string{"Acme", "Globex"}, rec.Companies)
}

func TestNormalizeBio_AbsentNotZero(t *testing.T) {
	absent := NormalizeBio(RawBio{NetWorth: "unknown"})
	zero := NormalizeBio(RawBio{NetWorth: "0"})

	assert.Equal(t, NetWorthAbsent, absent.NetWorth.State)
	require.Equal(t, NetWorthParsed, zero.NetWorth.State)
	assert.Zero(t, zero.NetWorth.Value)
}

func TestNormalizeSocial(t *testing.T) {
	p, err := NormalizeSocial(&RawSocial{
		Handle:         "ada",
		Followers:      12000,
		EngagementRate: 0.03,
		ContentQuality: 7.5,
		YearsActive:    4.2,
		Verified:       true,
		Sentiment:      0.55,
		Topics:         []string{"science"},
	})
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 12000, p.Followers)
	assert.Equal(t, 0.55, p.Sentiment)
}

func TestNormalizeSocial_Absent(t *testing.T) {
	p, err := NormalizeSocial(nil)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestNormalizeSocial_ContractViolations(t *testing.T) {
	cases := []struct {
		name string
		raw  RawSocial
	}{
		{"negative followers", RawSocial{Followers: -1, Sentiment: 0.5}},
		{"sentiment above one", RawSocial{Followers: 10, Sentiment: 1.2}},
		{"negative sentiment", RawSocial{Followers: 10, Sentiment: -0.1}},
		{"negative engagement", RawSocial{Followers: 10, Sentiment: 0.5, EngagementRate: -0.01}},
		{"quality out of scale", RawSocial{Followers: 10, Sentiment: 0.5, ContentQuality: 11}},
		{"negative years", RawSocial{Followers: 10, Sentiment: 0.5, YearsActive: -2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NormalizeSocial(&tc.raw)
			assert.Error(t, err)
			assert.Nil(t, p)
		})
	}
}

func TestNormalizeNews(t *testing.T) {
	assert.Nil(t, NormalizeNews(nil))
	assert.Nil(t, NormalizeNews([]NewsItem{}))

	corpus := NormalizeNews([]NewsItem{
		{Title: "a", SourceDomain: "forbes.com", PublishedAt: "2025-06-01T00:00:00Z"},
		{Title: "b", SourceDomain: "blog.example", PublishedAt: ""},
		{Title: "c", SourceDomain: "blog.example", PublishedAt: "unknown"},
	})
	require.NotNil(t, corpus)
	require.Len(t, corpus.Items, 3)
	assert.Equal(t, "2025-06-01T00:00:00Z", corpus.Items[0].PublishedAt)
	assert.Equal(t, UnknownDate, corpus.Items[1].PublishedAt)
	assert.Equal(t, UnknownDate, corpus.Items[2].PublishedAt)
}

func TestNewsSignalFromReduction(t *testing.T) {
	sig := NewsSignalFromReduction(0.4, 0.7)
	assert.InDelta(t, 0.7, sig.Sentiment, 1e-9)
	assert.InDelta(t, 7.0, sig.Credibility, 1e-9)

	neutral := NewsSignalFromReduction(0, 0)
	assert.InDelta(t, 0.5, neutral.Sentiment, 1e-9)
	assert.Zero(t, neutral.Credibility)
}
