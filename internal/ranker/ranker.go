// Package ranker scores resumes against a job description. Each resume is
// reduced to cleaned text, compared to the job description with TF-IDF cosine
// similarity, and boosted for every job skill it shares.
package ranker

import (
	"cmp"
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/colonyops/shortlist/internal/core/logging"
	"github.com/colonyops/shortlist/pkg/randid"
)

// ErrNoResumes is returned when no input file yielded a usable resume.
var ErrNoResumes = errors.New("no resumes could be processed")

// NoRelevantSkills stands in for an empty skill list when displayed.
const NoRelevantSkills = "No relevant skills"

// Options tune scoring.
type Options struct {
	OverlapWeight  float64  // added per job skill the resume shares
	FuzzyThreshold float64  // minimum Ratio for a resume skill to count as job relevant
	Extensions     []string // accepted file extensions, without dots
	SnippetChars   int      // length of the preview snippet
}

// DefaultOptions mirror the defaults in the config file.
func DefaultOptions() Options {
	return Options{
		OverlapWeight:  0.05,
		FuzzyThreshold: 85,
		Extensions:     []string{"pdf", "txt", "docx", "html", "htm", "md"},
		SnippetChars:   600,
	}
}

// Result is one ranked resume.
type Result struct {
	Rank    int      `json:"rank"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	File    string   `json:"basename"`
	Path    string   `json:"path"`
	Score   float64  `json:"score"`
	Skills  []string `json:"skills"`
	Snippet string   `json:"snippet,omitempty"`
}

// Ranker ranks resume files. It holds no per-run state and may be reused.
type Ranker struct {
	opts   Options
	skills *SkillDictionary
	log    zerolog.Logger
}

// New creates a Ranker. A nil dictionary selects the built-in one.
func New(opts Options, skills *SkillDictionary, logger zerolog.Logger) *Ranker {
	if skills == nil {
		skills = DefaultSkillDictionary()
	}
	return &Ranker{opts: opts, skills: skills, log: logger}
}

// Allowed reports whether path has one of the accepted extensions.
func (r *Ranker) Allowed(path string) bool {
	return slices.Contains(r.opts.Extensions, Ext(path))
}

type resume struct {
	path    string
	contact Contact
	text    string
	skills  []string
	snippet string
}

// Rank scores every accepted file in paths against jd and returns results
// ordered by score, highest first. Files that cannot be read are logged and
// skipped. Cancellation is checked between files.
func (r *Ranker) Rank(ctx context.Context, jd string, paths []string) ([]Result, error) {
	ctx = logging.WithRunID(ctx, randid.Generate(8))

	jdClean := CleanText(jd)
	jdSkills := r.skills.Extract(jdClean)

	r.log.Debug().Ctx(ctx).
		Int("files", len(paths)).
		Strs("jd_skills", jdSkills).
		Msg("ranking resumes")

	resumes := make([]resume, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fctx := logging.WithFile(ctx, filepath.Base(path))
		if !r.Allowed(path) {
			r.log.Debug().Ctx(fctx).Msg("skipping file with unsupported extension")
			continue
		}

		raw, err := ExtractText(path)
		if err != nil {
			r.log.Warn().Ctx(fctx).Err(err).Msg("failed to read resume")
			continue
		}

		cleaned := CleanText(raw)
		resumes = append(resumes, resume{
			path:    path,
			contact: ExtractContact(raw),
			text:    cleaned,
			skills:  r.relevantSkills(r.skills.Extract(cleaned), jdSkills),
			snippet: snippet(raw, r.opts.SnippetChars),
		})
	}

	if len(resumes) == 0 {
		return nil, ErrNoResumes
	}

	texts := make([]string, len(resumes))
	for i, res := range resumes {
		texts[i] = res.text
	}
	sims := Similarities(jdClean, texts)

	results := make([]Result, len(resumes))
	for i, res := range resumes {
		overlap := countShared(res.skills, jdSkills)
		results[i] = Result{
			Name:    res.contact.Name,
			Email:   res.contact.Email,
			Phone:   res.contact.Phone,
			File:    filepath.Base(res.path),
			Path:    res.path,
			Score:   round3(sims[i] + r.opts.OverlapWeight*float64(overlap)),
			Skills:  res.skills,
			Snippet: res.snippet,
		}
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		return cmp.Compare(b.Score, a.Score)
	})
	for i := range results {
		results[i].Rank = i + 1
	}

	r.log.Info().Ctx(ctx).Int("ranked", len(results)).Msg("ranking complete")
	return results, nil
}

// relevantSkills keeps the resume skills that closely match any job skill.
func (r *Ranker) relevantSkills(found, jdSkills []string) []string {
	out := make([]string, 0, len(found))
	for _, s := range found {
		for _, j := range jdSkills {
			if Ratio(s, j) > r.opts.FuzzyThreshold {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

func countShared(a, b []string) int {
	n := 0
	for _, s := range a {
		if slices.Contains(b, s) {
			n++
		}
	}
	return n
}

// snippet returns the first n runes of raw with whitespace collapsed, cut at a
// word boundary when possible.
func snippet(raw string, n int) string {
	s := strings.Join(strings.Fields(raw), " ")
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}

	cut := string([]rune(s)[:n])
	if i := strings.LastIndexByte(cut, ' '); i > n/2 {
		cut = cut[:i]
	}
	return cut + "…"
}

// SkillsText joins skills for display, using NoRelevantSkills when empty.
func SkillsText(skills []string) string {
	if len(skills) == 0 {
		return NoRelevantSkills
	}
	return strings.Join(skills, ", ")
}

