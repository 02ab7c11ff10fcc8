// Package analyze wires the collaborator fetchers to the scoring engine and
// produces one complete, reproducible analysis per request.
package analyze

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/influence-iq/influenceiq/internal/store"
	"github.com/influence-iq/influenceiq/pkg/fetch"
	"github.com/influence-iq/influenceiq/pkg/news"
	"github.com/influence-iq/influenceiq/pkg/score"
	"github.com/influence-iq/influenceiq/pkg/signal"
)

// Analyzer runs the full pipeline: fetch raw payloads, normalize, reduce the
// news corpus, score. Fetchers may be nil when their source is not
// configured; the engine degrades accordingly.
type Analyzer struct {
	bio      *fetch.BioFetcher
	newsSrc  *fetch.NewsFetcher
	social   *fetch.SocialSource
	portrait *fetch.PortraitFetcher
	reducer  *news.Reducer
	scorer   *score.Scorer
}

// New creates an analyzer. reducer and scorer are required; the fetchers are
// optional sources.
func New(bio *fetch.BioFetcher, newsSrc *fetch.NewsFetcher, social *fetch.SocialSource,
	portrait *fetch.PortraitFetcher, reducer *news.Reducer, scorer *score.Scorer) *Analyzer {
	return &Analyzer{
		bio:      bio,
		newsSrc:  newsSrc,
		social:   social,
		portrait: portrait,
		reducer:  reducer,
		scorer:   scorer,
	}
}

// Result is one completed analysis.
type Result struct {
	Person          string
	Bio             signal.BiographicalRecord
	Social          *signal.SocialProfile
	Corpus          *signal.NewsCorpus
	NewsSentiment   float64
	NewsCredibility float64
	NewsBand        news.Band
	Breakdown       score.Breakdown
	PortraitURL     string
}

// Analyze runs the pipeline for one person. Source fetch failures degrade
// that source to absent; a collaborator handing over malformed present data
// is a contract violation and fails the run.
func (a *Analyzer) Analyze(ctx context.Context, person string) (*Result, error) {
	var rawBio signal.RawBio
	if a.bio != nil {
		rb, err := a.bio.Fetch(ctx, person)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  bio fetch error: %v\n", err)
		} else {
			rawBio = rb
		}
	}

	var items []signal.NewsItem
	if a.newsSrc != nil {
		fetched, err := a.newsSrc.Fetch(ctx, person)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  news fetch error: %v\n", err)
		} else {
			items = fetched
		}
	}

	var rawSocial *signal.RawSocial
	if a.social != nil {
		rawSocial = a.social.Lookup(person)
	}

	bio := signal.NormalizeBio(rawBio)
	social, err := signal.NormalizeSocial(rawSocial)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", person, err)
	}
	corpus := signal.NormalizeNews(items)

	result := &Result{
		Person: person,
		Bio:    bio,
		Social: social,
		Corpus: corpus,
	}

	var newsSig *signal.NewsSignal
	if corpus != nil {
		sentiment, credibility := a.reducer.Reduce(corpus.Items)
		sig := signal.NewsSignalFromReduction(sentiment, credibility)
		newsSig = &sig
		result.NewsSentiment = sentiment
		result.NewsCredibility = credibility
		result.NewsBand = news.BandFor(credibility)
	}

	result.Breakdown = a.scorer.Score(bio, social, newsSig)

	if a.portrait != nil {
		if url, err := a.portrait.Fetch(ctx, person); err == nil {
			result.PortraitURL = url
		}
	}

	return result, nil
}

// Record converts a result into its persisted form.
func (r *Result) Record(at time.Time) *store.Analysis {
	return &store.Analysis{
		Person:          r.Person,
		Overall:         r.Breakdown.Overall,
		Grade:           r.Breakdown.Grade,
		NewsSentiment:   r.NewsSentiment,
		NewsCredibility: r.NewsCredibility,
		NewsLabel:       r.NewsBand.Credibility,
		Breakdown:       r.Breakdown.Components,
		CreatedAt:       at.UTC(),
	}
}
