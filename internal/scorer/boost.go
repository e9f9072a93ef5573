package scorer

import (
	"strings"

	"github.com/malbright/frontpage/internal/article"
	"github.com/malbright/frontpage/internal/config"
)

// Boost is the deterministic, side-effect-free score adjustment. It is
// independent of the API call: static keyword and company lists plus a
// per-source tier, all injected from config.
type Boost struct {
	keywords  []string
	companies []string
	tiers     map[string]int
}

func NewBoost(cfg *config.BoostConfig) Boost {
	if cfg == nil {
		return Boost{}
	}
	b := Boost{tiers: cfg.SourceTiers}
	for _, k := range cfg.Keywords {
		b.keywords = append(b.keywords, strings.ToLower(k))
	}
	for _, c := range cfg.Companies {
		b.companies = append(b.companies, strings.ToLower(c))
	}
	return b
}

// Adjustment returns the additive score delta for an article: +1 per
// matched keyword, +2 per matched company, plus the source tier.
func (b Boost) Adjustment(a article.Article) int {
	text := strings.ToLower(a.Title + " " + a.Summary)

	delta := 0
	for _, k := range b.keywords {
		if strings.Contains(text, k) {
			delta++
		}
	}
	for _, c := range b.companies {
		if strings.Contains(text, c) {
			delta += 2
		}
	}
	return delta + b.tiers[a.Source]
}
