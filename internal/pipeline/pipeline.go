package pipeline

import (
	"context"

	"github.com/malbright/frontpage/internal/article"
	"github.com/malbright/frontpage/internal/cache"
	"github.com/malbright/frontpage/internal/config"
	"github.com/malbright/frontpage/internal/feed"
	"github.com/malbright/frontpage/internal/imageurl"
	"github.com/malbright/frontpage/internal/scorer"
)

// Options wires one pipeline run. Scorer is optional; nil disables the
// rewrite/score stage. CachePath empty disables caching (used by tests).
type Options struct {
	Config       *config.Config
	CachePath    string
	ForceRefresh bool
	Scorer       *scorer.Scorer
	Warnf        func(format string, args ...any)
}

// Run produces the deduplicated, scored batch for one page generation:
// cache check, concurrent fetch, extraction, optional image filter, stable
// dedup, optional scoring, cache store. Ranking and pagination are the
// caller's concern. Feed and cache failures degrade to warnings; only a
// broken config can error here.
func Run(ctx context.Context, opts Options) ([]article.Article, error) {
	cfg := opts.Config
	warnf := opts.Warnf
	if warnf == nil {
		warnf = func(string, ...any) {}
	}

	var store *cache.Cache
	if opts.CachePath != "" {
		c, err := cache.Open(opts.CachePath)
		if err != nil {
			warnf("cache unavailable: %v", err)
		} else {
			store = c
			defer store.Close()
		}
	}

	if store != nil && !opts.ForceRefresh {
		if cached, ok := store.Load(cfg.CacheTTLDuration()); ok {
			return cached, nil
		}
	}

	policy := imageurl.Policy(cfg.ImagePolicy)
	if policy == "" {
		policy = imageurl.Lenient
	}

	result := feed.FetchAll(ctx, cfg.Sources, feed.Options{
		Timeout:     cfg.FetchTimeoutDuration(),
		Concurrency: cfg.FetchConcurrency(),
		Policy:      policy,
	})
	for _, w := range result.Warnings {
		warnf("%v", w)
	}

	articles := result.Articles
	if cfg.RequireImage {
		kept := make([]article.Article, 0, len(articles))
		for _, a := range articles {
			if a.ImageURL != "" {
				kept = append(kept, a)
			}
		}
		articles = kept
	}

	articles = article.Dedupe(articles)

	if opts.Scorer != nil {
		opts.Scorer.ScoreBatch(ctx, articles, scorer.NewBoost(cfg.Boost))
	}

	if store != nil {
		if err := store.Store(articles); err != nil {
			warnf("caching batch: %v", err)
		}
	}

	return articles, nil
}
