package scorer

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/malbright/frontpage/internal/article"
)

// neutralScore is assigned whenever the API cannot supply one.
const neutralScore = 5

const summaryPromptLimit = 500

const scorePrompt = `You are a tabloid front-page editor. Rewrite the headline below to be as attention-grabbing as possible, and rate how viral the story is on a scale of 1-10, plus its importance to the tech industry on a scale of 0-10.

Answer with EXACTLY one line in the form:
score|headline|tech_importance

Title: %s
Summary: %s`

// Result is the scorer's verdict for one article. It is always usable;
// API failures resolve to the fallback, never to an error.
type Result struct {
	Headline       string
	Score          int
	TechImportance int
}

// completionClient is the slice of the OpenAI client the scorer uses.
type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Scorer rewrites headlines and scores articles through the OpenAI chat
// completions API. Calls are serialized with a fixed delay between them;
// a failed call is retried once after a short fixed sleep.
type Scorer struct {
	client     completionClient
	model      string
	callDelay  time.Duration
	retryDelay time.Duration
	warnf      func(format string, args ...any)
}

func New(apiKey, model string, callDelay time.Duration) *Scorer {
	return NewWithClient(openai.NewClient(apiKey), model, callDelay)
}

// NewWithClient allows substituting the API client, e.g. one pointed at a
// test server.
func NewWithClient(client completionClient, model string, callDelay time.Duration) *Scorer {
	return &Scorer{
		client:     client,
		model:      model,
		callDelay:  callDelay,
		retryDelay: 2 * time.Second,
		warnf:      func(string, ...any) {},
	}
}

// SetWarnf installs a logging hook for recovered API failures.
func (s *Scorer) SetWarnf(f func(format string, args ...any)) {
	if f != nil {
		s.warnf = f
	}
}

// ScoreArticle resolves a Result for one article. Transport errors and
// malformed replies fall back to the original title with a neutral score.
func (s *Scorer) ScoreArticle(ctx context.Context, a article.Article) Result {
	fallback := Result{Headline: a.Title, Score: neutralScore}

	raw, err := s.complete(ctx, a)
	if err != nil {
		time.Sleep(s.retryDelay)
		raw, err = s.complete(ctx, a)
	}
	if err != nil {
		s.warnf("scoring %q: %v", a.Title, err)
		return fallback
	}

	result, ok := parseResponse(raw)
	if !ok {
		s.warnf("scoring %q: malformed reply %q", a.Title, raw)
		return fallback
	}
	return result
}

// ScoreBatch scores every article in place, pausing between consecutive
// API calls.
func (s *Scorer) ScoreBatch(ctx context.Context, articles []article.Article, boost Boost) {
	for i := range articles {
		if i > 0 && s.callDelay > 0 {
			time.Sleep(s.callDelay)
		}
		r := s.ScoreArticle(ctx, articles[i])
		articles[i].Headline = r.Headline
		articles[i].Score = r.Score + boost.Adjustment(articles[i])
		articles[i].TechImportance = r.TechImportance
	}
}

func (s *Scorer) complete(ctx context.Context, a article.Article) (string, error) {
	summary := a.Summary
	if len(summary) > summaryPromptLimit {
		summary = summary[:summaryPromptLimit]
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(scorePrompt, a.Title, summary),
			},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

// parseResponse applies the pipe-delimited contract: exactly
// "score|headline|tech_importance" with integer numeric fields. Anything
// else reports ok=false and the caller falls back.
func parseResponse(raw string) (Result, bool) {
	fields := strings.SplitN(strings.TrimSpace(raw), "|", 3)
	if len(fields) != 3 {
		return Result{}, false
	}

	score, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return Result{}, false
	}
	tech, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return Result{}, false
	}
	headline := strings.TrimSpace(fields[1])
	if headline == "" {
		return Result{}, false
	}

	return Result{Headline: headline, Score: score, TechImportance: tech}, true
}
