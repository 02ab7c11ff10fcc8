package signal

import "fmt"

// UnknownMarker is the sentinel collaborators use for fields they could not
// determine. It is case-insensitive and equivalent to true absence.
const UnknownMarker = "unknown"

// UnknownDate is the sentinel for a news item with no usable publish time.
const UnknownDate = "Unknown Date"

// NetWorthState tracks how the free-text net worth field parsed.
type NetWorthState int

const (
	// NetWorthAbsent means the field was missing or carried the unknown marker.
	NetWorthAbsent NetWorthState = iota
	// NetWorthUnparsed means a value was present but no numeric magnitude
	// could be extracted from it.
	NetWorthUnparsed
	// NetWorthParsed means Value holds the extracted magnitude.
	NetWorthParsed
)

// NetWorth is the parsed state of a biographical net worth field. Absent and
// zero are distinct: an unstated net worth never becomes a numeric zero.
type NetWorth struct {
	State NetWorthState
	Value float64
}

// BiographicalRecord is the canonical biography signal. String fields are
// empty when the collaborator reported the unknown marker.
type BiographicalRecord struct {
	FullName  string
	Ethnicity string
	DOB       string
	Age       string
	NetWorth  NetWorth
	Charity   string
	Companies []string
}

// HasCharity reports whether charity involvement was stated.
func (b BiographicalRecord) HasCharity() bool { return b.Charity != "" }

// SocialProfile is the canonical social-analytics signal. A nil
// *SocialProfile means no linked account exists; a non-nil profile always has
// every field populated (the normalizer fills defaults rather than omitting).
type SocialProfile struct {
	Handle         string
	Followers      int
	EngagementRate float64
	ContentQuality float64
	YearsActive    float64
	Verified       bool
	Sentiment      float64
	Topics         []string
}

// Validate surfaces collaborator data-contract violations. The scoring
// engine never clamps nonsensical inputs beyond the caps intrinsic to its
// own formulas, so these must be rejected before scoring.
func (p *SocialProfile) Validate() error {
	if p.Followers < 0 {
		return fmt.Errorf("social profile %q: negative follower count %d", p.Handle, p.Followers)
	}
	if p.Sentiment < 0 || p.Sentiment > 1 {
		return fmt.Errorf("social profile %q: sentiment %.3f outside [0,1]", p.Handle, p.Sentiment)
	}
	if p.EngagementRate < 0 {
		return fmt.Errorf("social profile %q: negative engagement rate %.3f", p.Handle, p.EngagementRate)
	}
	if p.ContentQuality < 0 || p.ContentQuality > 10 {
		return fmt.Errorf("social profile %q: content quality %.1f outside [0,10]", p.Handle, p.ContentQuality)
	}
	if p.YearsActive < 0 {
		return fmt.Errorf("social profile %q: negative years active %.1f", p.Handle, p.YearsActive)
	}
	return nil
}

// NewsItem is a single coverage item. PublishedAt is either an RFC 3339 UTC
// timestamp (YYYY-MM-DDTHH:MM:SSZ) or the UnknownDate sentinel.
type NewsItem struct {
	Title        string
	URL          string
	SourceDomain string
	PublishedAt  string
}

// NewsCorpus is an ordered collection of coverage items. An empty corpus is
// a defined case everywhere, never an error.
type NewsCorpus struct {
	Items []NewsItem
}

// NewsSignal carries the reducer aggregates rescaled to the composite
// scorer's consumer convention.
type NewsSignal struct {
	// Sentiment is the aggregate polarity renormalized from [-1,1] to [0,1].
	Sentiment float64
	// Credibility is the aggregate credibility on a 0-10 scale.
	Credibility float64
}

// NewsSignalFromReduction rescales raw reducer output (polarity in [-1,1],
// credibility in [0,1]) into the scorer's convention.
func NewsSignalFromReduction(sentiment, credibility float64) NewsSignal {
	return NewsSignal{
		Sentiment:   (sentiment + 1) / 2,
		Credibility: credibility * 10,
	}
}
