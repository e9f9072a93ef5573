package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/malbright/frontpage/internal/config"
	"github.com/malbright/frontpage/internal/pipeline"
	"github.com/malbright/frontpage/internal/rank"
	"github.com/malbright/frontpage/internal/render"
	"github.com/malbright/frontpage/internal/scorer"
)

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	sc, err := buildScorer(cfg)
	if err != nil {
		return err
	}

	renderer, err := render.New(cfg.Template)
	if err != nil {
		return fmt.Errorf("loading template: %w", err)
	}

	articles, err := pipeline.Run(context.Background(), pipeline.Options{
		Config:       cfg,
		CachePath:    config.CachePath(),
		ForceRefresh: flagRefresh,
		Scorer:       sc,
		Warnf:        warnf,
	})
	if err != nil {
		return err
	}

	rank.Sort(articles, cfg.RankBy)
	page := rank.Paginate(articles, cfg.ColumnCount())

	out := cfg.OutputPath()
	if flagOutput != "" {
		out = flagOutput
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	defer f.Close()

	if err := renderer.Render(f, render.BuildData(page, articles, time.Now())); err != nil {
		return fmt.Errorf("rendering: %w", err)
	}

	fmt.Printf("Wrote %s (%d articles)\n", out, len(articles))
	return nil
}

// buildScorer resolves the scorer from config. Scoring enabled without a
// credential is the one fatal configuration error, raised before any
// network activity.
func buildScorer(cfg *config.Config) (*scorer.Scorer, error) {
	if flagNoScore || !cfg.ScoringEnabled() {
		return nil, nil
	}
	key := cfg.APIKey()
	if key == "" {
		return nil, fmt.Errorf("scorer is enabled but no API key is configured: set FRONTPAGE_OPENAI_KEY or scorer.api_key")
	}
	sc := scorer.New(key, cfg.ScorerModel(), cfg.CallDelayDuration())
	sc.SetWarnf(warnf)
	return sc, nil
}
