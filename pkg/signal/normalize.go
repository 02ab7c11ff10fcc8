package signal

import (
	"strconv"
	"strings"
	"unicode"
)

// RawBio is the biography collaborator's wire shape. Any field may carry the
// unknown marker.
type RawBio struct {
	FullName  string   `json:"full_name"`
	Ethnicity string   `json:"ethnicity"`
	DOB       string   `json:"dob"`
	Age       string   `json:"age"`
	NetWorth  string   `json:"net_worth"`
	Charity   string   `json:"charity"`
	Companies []string `json:"companies"`
}

// RawSocial is the social-analytics collaborator's wire shape.
type RawSocial struct {
	Handle         string   `json:"username"`
	Followers      int      `json:"followers"`
	EngagementRate float64  `json:"engagement_rate"`
	ContentQuality float64  `json:"content_quality"`
	YearsActive    float64  `json:"years_active"`
	Verified       bool     `json:"verified"`
	Sentiment      float64  `json:"sentiment"`
	Topics         []string `json:"topics"`
}

// IsAbsent reports whether a free-text field is missing or carries the
// unknown marker.
func IsAbsent(s string) bool {
	t := strings.TrimSpace(s)
	return t == "" || strings.EqualFold(t, UnknownMarker)
}

// NormalizeBio converts a raw biographical payload into the canonical record.
// Unknown-marked fields become empty; the net worth field keeps its
// absent / unparseable / parsed distinction.
func NormalizeBio(raw RawBio) BiographicalRecord {
	rec := BiographicalRecord{
		FullName:  cleanField(raw.FullName),
		Ethnicity: cleanField(raw.Ethnicity),
		DOB:       cleanField(raw.DOB),
		Age:       cleanField(raw.Age),
		NetWorth:  ParseNetWorth(raw.NetWorth),
		Charity:   cleanField(raw.Charity),
	}
	for _, c := range raw.Companies {
		if !IsAbsent(c) {
			rec.Companies = append(rec.Companies, strings.TrimSpace(c))
		}
	}
	return rec
}

// NormalizeSocial converts a raw social payload into a canonical profile.
// A nil payload stays nil (no linked account). Malformed present data is a
// contract violation and returns an error; the pipeline never invents a
// profile from bad input.
func NormalizeSocial(raw *RawSocial) (*SocialProfile, error) {
	if raw == nil {
		return nil, nil
	}
	p := &SocialProfile{
		Handle:         raw.Handle,
		Followers:      raw.Followers,
		EngagementRate: raw.EngagementRate,
		ContentQuality: raw.ContentQuality,
		YearsActive:    raw.YearsActive,
		Verified:       raw.Verified,
		Sentiment:      raw.Sentiment,
		Topics:         append([]string(nil), raw.Topics...),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// NormalizeNews converts raw items into a corpus. A nil slice means the news
// source is absent; an empty corpus is represented the same way since zero
// coverage contributes nothing downstream.
func NormalizeNews(items []NewsItem) *NewsCorpus {
	if len(items) == 0 {
		return nil
	}
	corpus := &NewsCorpus{Items: make([]NewsItem, len(items))}
	for i, it := range items {
		if IsAbsent(it.PublishedAt) {
			it.PublishedAt = UnknownDate
		}
		corpus.Items[i] = it
	}
	return corpus
}

// ParseNetWorth extracts a numeric magnitude from free text such as
// "$219.2 billion" or "1,500,000 USD": take the first whitespace-delimited
// token, strip non-numeric leading/trailing characters, parse the rest.
// Failure yields the unparseable state, distinct from absence.
func ParseNetWorth(s string) NetWorth {
	if IsAbsent(s) {
		return NetWorth{State: NetWorthAbsent}
	}

	fields := strings.Fields(s)
	tok := strings.ReplaceAll(fields[0], ",", "")
	tok = strings.TrimFunc(tok, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.'
	})

	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return NetWorth{State: NetWorthUnparsed}
	}
	return NetWorth{State: NetWorthParsed, Value: v}
}

func cleanField(s string) string {
	if IsAbsent(s) {
		return ""
	}
	return strings.TrimSpace(s)
}
