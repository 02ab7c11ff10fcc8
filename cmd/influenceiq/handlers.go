package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/influence-iq/influenceiq/internal/config"
	"github.com/influence-iq/influenceiq/internal/scheduler"
	"github.com/influence-iq/influenceiq/internal/store"
	"github.com/influence-iq/influenceiq/pkg/alert"
	"github.com/influence-iq/influenceiq/pkg/analyze"
	"github.com/influence-iq/influenceiq/pkg/fetch"
	"github.com/influence-iq/influenceiq/pkg/news"
	"github.com/influence-iq/influenceiq/pkg/score"
	"github.com/influence-iq/influenceiq/pkg/server"
)

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func buildNewsFetcher(cfg *config.Config) *fetch.NewsFetcher {
	feeds := make([]fetch.Feed, len(cfg.News.Feeds))
	for i, f := range cfg.News.Feeds {
		feeds[i] = fetch.Feed{Name: f.Name, URL: f.URL}
	}
	return fetch.NewNewsFetcher(feeds, cfg.News.MaxItems)
}

func buildReducer(cfg *config.Config) *news.Reducer {
	return news.NewReducer(news.NewVADER(), cfg.News.ReputableDomains, nil)
}

func buildScorer(cfg *config.Config) *score.Scorer {
	w := cfg.Scoring.Weights
	return score.NewScorer(score.Weights{
		Reach:       w.Reach,
		Engagement:  w.Engagement,
		Longevity:   w.Longevity,
		Credibility: w.Credibility,
		Impact:      w.Impact,
		Consistency: w.Consistency,
	})
}

func buildAnalyzer(cfg *config.Config) *analyze.Analyzer {
	var bio *fetch.BioFetcher
	if cfg.Bio.Enabled && cfg.Bio.APIKey != "" {
		bio = fetch.NewBioFetcher(cfg.Bio.APIKey, cfg.Bio.Model, cfg.Bio.BaseURL)
		fmt.Fprintf(os.Stderr, "bio fetcher: %s\n", cfg.Bio.Model)
	}

	social := fetch.NewSocialSource(cfg.Social.Handles, rand.New(rand.NewSource(cfg.Social.Seed)))

	return analyze.New(
		bio,
		buildNewsFetcher(cfg),
		social,
		fetch.NewPortraitFetcher(),
		buildReducer(cfg),
		buildScorer(cfg),
	)
}

func buildAlertManager(cfg *config.Config) *alert.Manager {
	var notifiers []alert.Notifier

	if cfg.Alerts.Slack.Enabled && cfg.Alerts.Slack.WebhookURL != "" {
		notifiers = append(notifiers, alert.NewSlack(cfg.Alerts.Slack.WebhookURL))
	}
	if cfg.Alerts.Discord.Enabled && cfg.Alerts.Discord.WebhookURL != "" {
		notifiers = append(notifiers, alert.NewDiscord(cfg.Alerts.Discord.WebhookURL))
	}
	if cfg.Alerts.Webhook.Enabled && cfg.Alerts.Webhook.URL != "" {
		notifiers = append(notifiers, alert.NewWebhook(cfg.Alerts.Webhook.URL, cfg.Alerts.Webhook.Secret))
	}

	return alert.NewManager(notifiers)
}

func runAnalyze(name string, jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	analyzer := buildAnalyzer(cfg)
	ctx := context.Background()

	fmt.Fprintf(os.Stderr, "analyzing %s...\n", name)
	result, err := analyzer.Analyze(ctx, name)
	if err != nil {
		return err
	}

	if err := db.SaveAnalysis(ctx, result.Record(time.Now())); err != nil {
		fmt.Fprintf(os.Stderr, "save analysis error: %v\n", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"person":           result.Person,
			"report":           result.Breakdown.Report(),
			"news_sentiment":   result.NewsSentiment,
			"news_credibility": result.NewsCredibility,
			"news_label":       result.NewsBand.Credibility,
			"news_nature":      result.NewsBand.Nature,
			"portrait_url":     result.PortraitURL,
		})
	}

	printResult(result)
	return nil
}

func printResult(result *analyze.Result) {
	fmt.Printf("\n%s — %d/100, %s\n\n", result.Person, result.Breakdown.Overall, result.Breakdown.Grade)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COMPONENT\tEARNED\tMAX\tPCT")
	for _, c := range result.Breakdown.Report().Components {
		fmt.Fprintf(w, "%s\t%.1f\t%.0f\t%.0f%%\n", c.Name, c.Earned, c.Max, c.Percentage)
	}
	w.Flush()

	if result.Corpus != nil {
		fmt.Printf("\nnews: %d items, sentiment %.2f, credibility %.2f (%s, %s)\n",
			len(result.Corpus.Items), result.NewsSentiment, result.NewsCredibility,
			result.NewsBand.Credibility, result.NewsBand.Nature)
	} else {
		fmt.Println("\nnews: no coverage found")
	}
	if result.Social == nil {
		fmt.Println("social: no linked account")
	} else {
		fmt.Printf("social: @%s, %d followers, %.1f years active\n",
			result.Social.Handle, result.Social.Followers, result.Social.YearsActive)
	}
	if result.PortraitURL != "" {
		fmt.Printf("portrait: %s\n", result.PortraitURL)
	}
}

func runNews(name string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	fetcher := buildNewsFetcher(cfg)
	reducer := buildReducer(cfg)

	items, err := fetcher.Fetch(context.Background(), name)
	if err != nil {
		return fmt.Errorf("fetch news: %w", err)
	}
	if len(items) == 0 {
		fmt.Println("no articles found")
		return nil
	}

	sentiment, credibility := reducer.Reduce(items)
	band := news.BandFor(credibility)

	fmt.Printf("sentiment score: %.2f\n", sentiment)
	fmt.Printf("credibility score: %.2f\n", credibility)
	fmt.Printf("credibility: %s\n", band.Credibility)
	fmt.Printf("overall nature of news: %s\n\n", band.Nature)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PUBLISHED\tSOURCE\tTITLE")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\n", item.PublishedAt, item.SourceDomain, item.Title)
	}
	return w.Flush()
}

func runHistory(name string, limit int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	analyses, err := db.ListAnalyses(context.Background(), store.ListOpts{Person: name, Limit: limit})
	if err != nil {
		return err
	}
	if len(analyses) == 0 {
		fmt.Println("no analyses found (try: influenceiq analyze)")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tSCORE\tGRADE\tNEWS")
	for _, a := range analyses {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
			a.CreatedAt.Format(time.RFC3339), a.Overall, a.Grade, a.NewsLabel)
	}
	return w.Flush()
}

func runWatchAdd(name string) error {
	return withStore(func(ctx context.Context, db store.Store) error {
		if err := db.AddWatch(ctx, name); err != nil {
			return err
		}
		fmt.Printf("watching %s\n", name)
		return nil
	})
}

func runWatchRemove(name string) error {
	return withStore(func(ctx context.Context, db store.Store) error {
		if err := db.RemoveWatch(ctx, name); err != nil {
			return err
		}
		fmt.Printf("removed %s\n", name)
		return nil
	})
}

func runWatchList() error {
	return withStore(func(ctx context.Context, db store.Store) error {
		watches, err := db.ListWatches(ctx)
		if err != nil {
			return err
		}
		if len(watches) == 0 {
			fmt.Println("watchlist is empty")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PERSON\tADDED\tLAST SCORE")
		for _, entry := range watches {
			last := "-"
			if entry.LastScore.Valid {
				last = fmt.Sprintf("%d", entry.LastScore.Int64)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", entry.Person, entry.AddedAt.Format("2006-01-02"), last)
		}
		return w.Flush()
	})
}

func withStore(fn func(context.Context, store.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	return fn(context.Background(), db)
}

func runServe(port int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if port == 0 {
		port = cfg.Server.Port
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	srv := server.New(db, buildAnalyzer(cfg), port)
	return srv.ListenAndServe()
}

func runDaemon(port int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if port == 0 {
		port = cfg.Server.Port
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	analyzer := buildAnalyzer(cfg)
	alertMgr := buildAlertManager(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sched := scheduler.New(db, analyzer, alertMgr,
		cfg.Schedule.ParseRefreshInterval(),
		cfg.Schedule.AlertDelta,
	)

	// Start scheduler in background.
	go func() {
		if err := sched.Run(ctx); err != nil && ctx.Err() == nil {
			fmt.Fprintf(os.Stderr, "scheduler error: %v\n", err)
		}
	}()

	srv := server.New(db, analyzer, port)
	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nshutting down...")
	}()

	return srv.ListenAndServe()
}
