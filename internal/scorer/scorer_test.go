package scorer

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/malbright/frontpage/internal/article"
)

// fakeClient returns canned replies, or errors for the first failures
// calls.
type fakeClient struct {
	reply    string
	failures int
	calls    int
}

func (f *fakeClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls++
	if f.calls <= f.failures {
		return openai.ChatCompletionResponse{}, errors.New("api down")
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.reply}},
		},
	}, nil
}

func newTestScorer(client completionClient) *Scorer {
	s := NewWithClient(client, "test-model", 0)
	s.retryDelay = 0
	return s
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Result
		ok   bool
	}{
		{"well formed", "8|SHOCKING News|3", Result{Headline: "SHOCKING News", Score: 8, TechImportance: 3}, true},
		{"padded fields", "  7 | Breaking | 10 ", Result{Headline: "Breaking", Score: 7, TechImportance: 10}, true},
		{"trailing newline", "5|Calm Day|0\n", Result{Headline: "Calm Day", Score: 5, TechImportance: 0}, true},
		{"missing tech field", "8|Just A Headline", Result{}, false},
		{"no pipes at all", "a plain sentence", Result{}, false},
		{"non-numeric score", "loud|Headline|2", Result{}, false},
		{"non-numeric tech", "8|Headline|very", Result{}, false},
		{"empty headline", "8||2", Result{}, false},
		{"empty reply", "", Result{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseResponse(tt.raw)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestScoreArticleMalformedReplyFallsBack(t *testing.T) {
	s := newTestScorer(&fakeClient{reply: "no pipes here"})
	a := article.Article{Title: "Original Title", Summary: "s"}

	got := s.ScoreArticle(context.Background(), a)
	want := Result{Headline: "Original Title", Score: 5}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestScoreArticleRetriesOnce(t *testing.T) {
	client := &fakeClient{reply: "9|Second Try Wins|4", failures: 1}
	s := newTestScorer(client)

	got := s.ScoreArticle(context.Background(), article.Article{Title: "T"})
	if got.Headline != "Second Try Wins" || got.Score != 9 {
		t.Errorf("retry did not recover: %+v", got)
	}
	if client.calls != 2 {
		t.Errorf("calls = %d, want 2", client.calls)
	}
}

func TestScoreArticleGivesUpAfterRetry(t *testing.T) {
	client := &fakeClient{reply: "9|Never Seen|4", failures: 2}
	s := newTestScorer(client)

	var warned bool
	s.SetWarnf(func(string, ...any) { warned = true })

	got := s.ScoreArticle(context.Background(), article.Article{Title: "Original"})
	if got.Headline != "Original" || got.Score != 5 || got.TechImportance != 0 {
		t.Errorf("expected fallback, got %+v", got)
	}
	if client.calls != 2 {
		t.Errorf("calls = %d, want exactly 2 (one retry)", client.calls)
	}
	if !warned {
		t.Error("expected a warning for the dropped score")
	}
}

func TestScoreBatch(t *testing.T) {
	s := newTestScorer(&fakeClient{reply: "6|Rewritten|1"})
	articles := []article.Article{
		{Title: "A", URL: "http://x.com/a"},
		{Title: "B", URL: "http://x.com/b"},
	}

	s.ScoreBatch(context.Background(), articles, Boost{})

	for i, a := range articles {
		if a.Headline != "Rewritten" || a.Score != 6 || a.TechImportance != 1 {
			t.Errorf("article %d not scored: %+v", i, a)
		}
	}
}

func TestScoreBatchAppliesBoost(t *testing.T) {
	s := newTestScorer(&fakeClient{reply: "6|Rewritten|1"})
	boost := NewBoost(&boostFixture)
	articles := []article.Article{
		{Title: "OpenAI releases a new model", Source: "wire"},
	}

	s.ScoreBatch(context.Background(), articles, boost)

	// 6 base + 2 company + 1 source tier
	if articles[0].Score != 9 {
		t.Errorf("Score = %d, want 9", articles[0].Score)
	}
}
