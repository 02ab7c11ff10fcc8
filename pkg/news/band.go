package news

// Band classifies an aggregate credibility score for display. It is not
// consumed numerically by the composite scorer.
type Band struct {
	Credibility string
	Nature      string
}

// BandFor maps a credibility score to its display band. The 0.7 boundary is
// strict: exactly 0.7 is Moderate, not High.
func BandFor(score float64) Band {
	switch {
	case score > 0.7:
		return Band{Credibility: "High Credibility", Nature: "Positive"}
	case score >= 0.4:
		return Band{Credibility: "Moderate Credibility", Nature: "Neutral"}
	default:
		return Band{Credibility: "Low Credibility", Nature: "Negative"}
	}
}
