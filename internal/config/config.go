package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// Source is one configured feed. Category is the editorial bucket the
// feed's articles land in; MaxItems caps how many entries are taken from
// the feed, in parser order. Style is a cosmetic tag the template may
// hook on, defaulting "normal".
type Source struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
	MaxItems int    `yaml:"max_items,omitempty"`
	Style    string `yaml:"style,omitempty"`
}

// ScorerConfig controls the generative headline rewriter.
type ScorerConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Model     string `yaml:"model,omitempty"`
	APIKey    string `yaml:"api_key,omitempty"`
	CallDelay string `yaml:"call_delay,omitempty"`
}

// BoostConfig holds the static lists for the deterministic score boost.
type BoostConfig struct {
	Keywords    []string       `yaml:"keywords,omitempty"`
	Companies   []string       `yaml:"companies,omitempty"`
	SourceTiers map[string]int `yaml:"source_tiers,omitempty"`
}

type Config struct {
	CacheTTL     string        `yaml:"cache_ttl,omitempty"`
	FetchTimeout string        `yaml:"fetch_timeout,omitempty"`
	Concurrency  int           `yaml:"concurrency,omitempty"`
	RankBy       string        `yaml:"rank_by,omitempty"`
	Columns      int           `yaml:"columns,omitempty"`
	ImagePolicy  string        `yaml:"image_policy,omitempty"`
	RequireImage bool          `yaml:"require_image,omitempty"`
	Output       string        `yaml:"output,omitempty"`
	Template     string        `yaml:"template,omitempty"`
	Scorer       *ScorerConfig `yaml:"scorer,omitempty"`
	Boost        *BoostConfig  `yaml:"boost,omitempty"`
	Sources      []Source      `yaml:"sources"`
}

// ScoringEnabled reports whether the generative scorer should run.
func (c *Config) ScoringEnabled() bool {
	return c.Scorer != nil && c.Scorer.Enabled
}

// APIKey returns the resolved OpenAI credential (config value, then the
// FRONTPAGE_OPENAI_KEY environment variable).
func (c *Config) APIKey() string {
	if c.Scorer != nil && c.Scorer.APIKey != "" {
		return c.Scorer.APIKey
	}
	return os.Getenv("FRONTPAGE_OPENAI_KEY")
}

func (c *Config) CacheTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil || d <= 0 {
		return 30 * time.Minute
	}
	return d
}

func (c *Config) FetchTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.FetchTimeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

func (c *Config) CallDelayDuration() time.Duration {
	if c.Scorer == nil {
		return 0
	}
	d, err := time.ParseDuration(c.Scorer.CallDelay)
	if err != nil || d < 0 {
		return time.Second
	}
	return d
}

// FetchConcurrency returns the worker pool size, defaulting to 10.
func (c *Config) FetchConcurrency() int {
	if c.Concurrency <= 0 {
		return 10
	}
	return c.Concurrency
}

// ColumnCount returns the number of layout columns, defaulting to 3.
func (c *Config) ColumnCount() int {
	if c.Columns <= 0 {
		return 3
	}
	return c.Columns
}

func (c *Config) OutputPath() string {
	if c.Output == "" {
		return "index.html"
	}
	return c.Output
}

func (c *Config) ScorerModel() string {
	if c.Scorer != nil && c.Scorer.Model != "" {
		return c.Scorer.Model
	}
	return "gpt-4o-mini"
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "frontpage", "config.yaml")
}

func CachePath() string {
	return filepath.Join(xdg.CacheHome, "frontpage", "frontpage.db")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config file at path, falling back to the default XDG
// location and, on first run, the embedded defaults (which are also
// written out so the user has a file to edit).
func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

// Validate checks source URLs and the enumerated config fields.
func Validate(cfg *Config) error {
	switch cfg.RankBy {
	case "", "date", "score":
	default:
		return fmt.Errorf("rank_by must be \"date\" or \"score\", got %q", cfg.RankBy)
	}
	switch cfg.ImagePolicy {
	case "", "lenient", "strict":
	default:
		return fmt.Errorf("image_policy must be \"lenient\" or \"strict\", got %q", cfg.ImagePolicy)
	}
	for i, s := range cfg.Sources {
		if s.Name == "" {
			return fmt.Errorf("source %d: name is required", i)
		}
		if s.Category == "" {
			return fmt.Errorf("source %q: category is required", s.Name)
		}
		if s.URL == "" {
			return fmt.Errorf("source %q: url is required", s.Name)
		}
		u, err := url.Parse(s.URL)
		if err != nil {
			return fmt.Errorf("source %q: invalid url: %w", s.Name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("source %q: url scheme must be http or https, got %q", s.Name, u.Scheme)
		}
	}
	return nil
}
