package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/malbright/frontpage/internal/article"
	"github.com/malbright/frontpage/internal/config"
	"github.com/malbright/frontpage/internal/pipeline"
	"github.com/malbright/frontpage/internal/rank"
	"github.com/malbright/frontpage/internal/tui"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Browse the ranked batch in the terminal",
	Long:  "Run the pipeline and inspect the ranked articles in a two-pane browser before publishing.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		sc, err := buildScorer(cfg)
		if err != nil {
			return err
		}

		rankKey := cfg.RankBy
		if rankKey == "" {
			rankKey = rank.ByDate
		}

		load := func() ([]article.Article, []string, error) {
			var warnings []string
			articles, err := pipeline.Run(context.Background(), pipeline.Options{
				Config:       cfg,
				CachePath:    config.CachePath(),
				ForceRefresh: flagRefresh,
				Scorer:       sc,
				Warnf: func(format string, args ...any) {
					warnings = append(warnings, fmt.Sprintf(format, args...))
				},
			})
			if err != nil {
				return nil, nil, err
			}
			rank.Sort(articles, rankKey)
			return articles, warnings, nil
		}

		return tui.Run(load, rankKey)
	},
}
