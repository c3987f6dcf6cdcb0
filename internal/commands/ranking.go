package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/shortlist/internal/core/logging"
	"github.com/colonyops/shortlist/internal/core/selection"
	"github.com/colonyops/shortlist/internal/ranker"
)

var errNoJobDescription = errors.New("job description is required (use --jd or --jd-text)")

// jdFlags are shared by commands that rank resumes.
type jdFlags struct {
	path string
	text string
}

func (f *jdFlags) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "jd",
			Usage:       "path to the job description (pdf, txt, md, html, docx)",
			Destination: &f.path,
		},
		&cli.StringFlag{
			Name:        "jd-text",
			Usage:       "job description text, used when --jd is not set",
			Destination: &f.text,
		},
	}
}

// read returns the job description text. An empty result with a nil error
// means neither flag was given.
func (f *jdFlags) read() (string, error) {
	if f.path != "" {
		text, err := ranker.ExtractText(f.path)
		if err != nil {
			return "", fmt.Errorf("read job description: %w", err)
		}
		return text, nil
	}
	return strings.TrimSpace(f.text), nil
}

// rankFiles expands patterns into a selection and ranks it against jd.
func rankFiles(ctx context.Context, flags *Flags, jd string, patterns []string) ([]ranker.Result, *selection.Selection, error) {
	if strings.TrimSpace(jd) == "" {
		return nil, nil, errNoJobDescription
	}
	if len(patterns) == 0 {
		return nil, nil, fmt.Errorf("no resume paths given")
	}

	files, err := selection.FromPaths(patterns)
	if err != nil {
		return nil, nil, fmt.Errorf("expand paths: %w", err)
	}
	sel := selection.New(files...)

	skills, err := flags.Config.SkillDictionary()
	if err != nil {
		return nil, nil, fmt.Errorf("load skills: %w", err)
	}

	r := ranker.New(flags.Config.RankerOptions(), skills, logging.Component("ranker"))
	results, err := r.Rank(ctx, jd, sel.Paths())
	if err != nil {
		return nil, sel, fmt.Errorf("rank resumes: %w", err)
	}

	return results, sel, nil
}

// firstLine returns the first non-empty line of s, shortened to n runes.
func firstLine(s string, n int) string {
	for line := range strings.SplitSeq(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if r := []rune(line); len(r) > n {
			return string(r[:n]) + "…"
		}
		return line
	}
	return ""
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
