package ranker

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed skills.yaml
var builtinSkillsYAML []byte

// SkillDictionary matches known skill phrases against cleaned text.
type SkillDictionary struct {
	categories map[string][]string
	// phrases maps the cleaned token form of a skill to its canonical spelling.
	phrases map[string]string
	// maxTokens is the longest phrase length, bounding the match window.
	maxTokens int
}

// LoadSkillDictionary parses a YAML document mapping category names to skill lists.
func LoadSkillDictionary(data []byte) (*SkillDictionary, error) {
	var categories map[string][]string
	if err := yaml.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("parse skill dictionary: %w", err)
	}

	d := &SkillDictionary{
		categories: map[string][]string{},
		phrases:    map[string]string{},
	}
	d.Merge(categories)
	return d, nil
}

// DefaultSkillDictionary returns the built-in dictionary.
func DefaultSkillDictionary() *SkillDictionary {
	d, err := LoadSkillDictionary(builtinSkillsYAML)
	if err != nil {
		panic(err) // embedded file is covered by tests
	}
	return d
}

// MergeFile adds the categories from a YAML file on disk.
func (d *SkillDictionary) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read skill dictionary: %w", err)
	}

	extra, err := LoadSkillDictionary(data)
	if err != nil {
		return err
	}

	d.Merge(extra.categories)
	return nil
}

// Merge adds categories. Skills that reduce to a single one-letter token after
// cleaning ("c++", "c#") are skipped because they would match stray letters.
func (d *SkillDictionary) Merge(categories map[string][]string) {
	for cat, skills := range categories {
		for _, skill := range skills {
			canonical := strings.ToLower(strings.TrimSpace(skill))
			key := CleanText(canonical)
			if !matchable(key) {
				continue
			}

			d.categories[cat] = append(d.categories[cat], canonical)
			if _, ok := d.phrases[key]; !ok {
				d.phrases[key] = canonical
			}
			if n := len(strings.Fields(key)); n > d.maxTokens {
				d.maxTokens = n
			}
		}
	}
}

func matchable(key string) bool {
	if key == "" {
		return false
	}
	for _, tok := range strings.Fields(key) {
		if len(tok) < 2 {
			return false
		}
	}
	return true
}

// Categories returns the category names in sorted order.
func (d *SkillDictionary) Categories() []string {
	out := make([]string, 0, len(d.categories))
	for cat := range d.categories {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of distinct matchable skills.
func (d *SkillDictionary) Len() int { return len(d.phrases) }

// Extract returns the sorted, de-duplicated skills found in cleaned text.
func (d *SkillDictionary) Extract(cleaned string) []string {
	tokens := strings.Fields(cleaned)
	found := map[string]bool{}

	for i := range tokens {
		for n := 1; n <= d.maxTokens && i+n <= len(tokens); n++ {
			key := strings.Join(tokens[i:i+n], " ")
			if canonical, ok := d.phrases[key]; ok {
				found[canonical] = true
			}
		}
	}

	out := make([]string, 0, len(found))
	for s := range found {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}
