package news

import "github.com/jonreiter/govader"

// VADER is the default polarity estimator, a lexical analyzer tuned for
// short social and headline text.
type VADER struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVADER creates a VADER estimator.
func NewVADER() *VADER {
	return &VADER{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Polarity returns the compound polarity of text in [-1,1].
func (v *VADER) Polarity(text string) float64 {
	return v.analyzer.PolarityScores(text).Compound
}
