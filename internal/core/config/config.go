// Package config handles configuration loading and validation for shortlist.
package config

import (
	"fmt"
	"os"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/shortlist/internal/core/rowlist"
	"github.com/colonyops/shortlist/internal/core/styles"
	"github.com/colonyops/shortlist/internal/ranker"
)

// Config holds the application configuration.
type Config struct {
	Ranking RankingConfig `yaml:"ranking"`
	View    ViewConfig    `yaml:"view"`
	DataDir string        `yaml:"-"` // set by caller, not from config file
}

// RankingConfig tunes the resume scoring pipeline.
type RankingConfig struct {
	OverlapWeight  float64  `yaml:"overlap_weight"`
	FuzzyThreshold float64  `yaml:"fuzzy_threshold"`
	Extensions     []string `yaml:"extensions"`
	SkillsFile     string   `yaml:"skills_file"` // optional YAML merged into the built-in dictionary
	SnippetChars   int      `yaml:"snippet_chars"`
}

// ViewConfig configures the interactive results view.
type ViewConfig struct {
	DefaultSort rowlist.SortKey `yaml:"default_sort"`
	Locale      string          `yaml:"locale"`
	Theme       string          `yaml:"theme"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	opts := ranker.DefaultOptions()
	return Config{
		Ranking: RankingConfig{
			OverlapWeight:  opts.OverlapWeight,
			FuzzyThreshold: opts.FuzzyThreshold,
			Extensions:     opts.Extensions,
			SnippetChars:   opts.SnippetChars,
		},
		View: ViewConfig{
			DefaultSort: rowlist.DefaultSortKey,
			Locale:      "en",
			Theme:       styles.DefaultTheme,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Ranking.FuzzyThreshold == 0 {
		c.Ranking.FuzzyThreshold = defaults.Ranking.FuzzyThreshold
	}
	if len(c.Ranking.Extensions) == 0 {
		c.Ranking.Extensions = defaults.Ranking.Extensions
	}
	if c.Ranking.SnippetChars == 0 {
		c.Ranking.SnippetChars = defaults.Ranking.SnippetChars
	}
	if c.View.DefaultSort == "" {
		c.View.DefaultSort = defaults.View.DefaultSort
	}
	if c.View.Locale == "" {
		c.View.Locale = defaults.View.Locale
	}
	if c.View.Theme == "" {
		c.View.Theme = defaults.View.Theme
	}
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if c.Ranking.OverlapWeight < 0 {
		return fmt.Errorf("ranking.overlap_weight cannot be negative")
	}

	if c.Ranking.FuzzyThreshold < 0 || c.Ranking.FuzzyThreshold > 100 {
		return fmt.Errorf("ranking.fuzzy_threshold must be between 0 and 100")
	}

	if c.Ranking.SnippetChars < 0 {
		return fmt.Errorf("ranking.snippet_chars cannot be negative")
	}

	if !c.View.DefaultSort.IsValid() {
		return fmt.Errorf("view.default_sort %q is not one of %v", c.View.DefaultSort, rowlist.SortKeys())
	}

	if _, err := language.Parse(c.View.Locale); err != nil {
		return fmt.Errorf("view.locale %q: %w", c.View.Locale, err)
	}

	if _, ok := styles.GetPalette(c.View.Theme); !ok {
		return fmt.Errorf("view.theme %q is not one of %v", c.View.Theme, styles.ThemeNames())
	}

	return nil
}

// Language returns the parsed collation language. Validate guarantees it parses.
func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.View.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// RankerOptions converts the ranking section into ranker options.
func (c *Config) RankerOptions() ranker.Options {
	return ranker.Options{
		OverlapWeight:  c.Ranking.OverlapWeight,
		FuzzyThreshold: c.Ranking.FuzzyThreshold,
		Extensions:     c.Ranking.Extensions,
		SnippetChars:   c.Ranking.SnippetChars,
	}
}

// SkillDictionary returns the built-in dictionary merged with skills_file, if set.
func (c *Config) SkillDictionary() (*ranker.SkillDictionary, error) {
	d := ranker.DefaultSkillDictionary()
	if c.Ranking.SkillsFile == "" {
		return d, nil
	}
	if err := d.MergeFile(c.Ranking.SkillsFile); err != nil {
		return nil, err
	}
	return d, nil
}
