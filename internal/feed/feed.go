package feed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/malbright/frontpage/internal/article"
	"github.com/malbright/frontpage/internal/config"
	"github.com/malbright/frontpage/internal/imageurl"
)

// Fetcher downloads and parses one feed at a time.
type Fetcher struct {
	parser  *gofeed.Parser
	timeout time.Duration
	policy  imageurl.Policy
}

func NewFetcher(timeout time.Duration, policy imageurl.Policy) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{
		parser:  gofeed.NewParser(),
		timeout: timeout,
		policy:  policy,
	}
}

// Fetch downloads a single source and extracts its entries, capped to the
// source's MaxItems in parser order. Parse errors surface to the caller;
// FetchAll downgrades them to warnings.
func (f *Fetcher) Fetch(ctx context.Context, source config.Source) ([]article.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	parsed, err := f.parser.ParseURLWithContext(source.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", source.Name, err)
	}

	items := parsed.Items
	if source.MaxItems > 0 && len(items) > source.MaxItems {
		items = items[:source.MaxItems]
	}

	now := time.Now()
	articles := make([]article.Article, 0, len(items))
	for _, item := range items {
		articles = append(articles, Extract(item, source, f.policy, now))
	}
	return articles, nil
}

// Options configures a FetchAll run.
type Options struct {
	Timeout     time.Duration
	Concurrency int
	Policy      imageurl.Policy
}

// Result collects articles from all sources plus per-feed warnings.
// A failed feed contributes zero articles and one warning; it never
// aborts the batch.
type Result struct {
	Articles []article.Article
	Warnings []error
}

// FetchAll fetches every source through a bounded worker pool. Article
// order across feeds is not guaranteed; ordering is the ranker's job.
func FetchAll(ctx context.Context, sources []config.Source, opts Options) Result {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	fetcher := NewFetcher(opts.Timeout, opts.Policy)

	var (
		mu     sync.Mutex
		result Result
		wg     sync.WaitGroup
	)
	sem := make(chan struct{}, concurrency)

	for _, src := range sources {
		wg.Add(1)
		go func(s config.Source) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			articles, err := fetcher.Fetch(ctx, s)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Warnings = append(result.Warnings, err)
				return
			}
			result.Articles = append(result.Articles, articles...)
		}(src)
	}

	wg.Wait()
	return result
}
