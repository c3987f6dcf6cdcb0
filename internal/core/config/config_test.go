package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/colonyops/shortlist/internal/core/rowlist"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "/data")
	require.NoError(t, err)

	assert.Equal(t, "/data", cfg.DataDir)
	assert.Equal(t, rowlist.SortScoreDesc, cfg.View.DefaultSort)
	assert.InDelta(t, 0.05, cfg.Ranking.OverlapWeight, 1e-9)
	assert.InDelta(t, 85, cfg.Ranking.FuzzyThreshold, 1e-9)
	assert.Equal(t, language.English, cfg.Language())
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
ranking:
  overlap_weight: 0.1
  extensions: [txt]
view:
  default_sort: name_asc
  locale: sv
`)

	cfg, err := Load(path, "/data")
	require.NoError(t, err)

	assert.InDelta(t, 0.1, cfg.Ranking.OverlapWeight, 1e-9)
	assert.Equal(t, []string{"txt"}, cfg.Ranking.Extensions)
	assert.Equal(t, 600, cfg.Ranking.SnippetChars, "zero values fall back to defaults")
	assert.Equal(t, rowlist.SortNameAsc, cfg.View.DefaultSort)
	assert.Equal(t, language.Swedish, cfg.Language())

	opts := cfg.RankerOptions()
	assert.Equal(t, []string{"txt"}, opts.Extensions)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "bad yaml", body: "ranking: [", wantErr: "parse config file"},
		{name: "bad sort", body: "view:\n  default_sort: random\n", wantErr: "view.default_sort"},
		{name: "bad threshold", body: "ranking:\n  fuzzy_threshold: 120\n", wantErr: "fuzzy_threshold"},
		{name: "negative weight", body: "ranking:\n  overlap_weight: -1\n", wantErr: "overlap_weight"},
		{name: "bad locale", body: "view:\n  locale: \"!!\"\n", wantErr: "view.locale"},
		{name: "bad theme", body: "view:\n  theme: neon\n", wantErr: "view.theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body), "/data")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_EmptyDataDir(t *testing.T) {
	cfg := DefaultConfig()
	assert.ErrorContains(t, cfg.Validate(), "data directory")
}

func TestValidateDeep(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.DataDir = dir
	require.NoError(t, cfg.ValidateDeep(""))

	cfg.Ranking.SkillsFile = filepath.Join(dir, "missing.yaml")
	cfg.Ranking.Extensions = []string{".txt", "docx", "PDF"}

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 3)
}

func TestValidateDeep_ConfigPathIsDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()

	err := cfg.ValidateDeep(cfg.DataDir)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "config_file", fieldErrs[0].Field)
}

func TestSkillDictionary(t *testing.T) {
	skills := filepath.Join(t.TempDir(), "skills.yaml")
	require.NoError(t, os.WriteFile(skills, []byte("OPS:\n  - terraform\n"), 0o644))

	cfg := DefaultConfig()
	cfg.Ranking.SkillsFile = skills

	d, err := cfg.SkillDictionary()
	require.NoError(t, err)
	assert.Equal(t, []string{"terraform"}, d.Extract("terraform modules"))
}
