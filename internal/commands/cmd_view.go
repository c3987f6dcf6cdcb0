package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/shortlist/internal/core/logging"
	"github.com/colonyops/shortlist/internal/core/rowlist"
	"github.com/colonyops/shortlist/internal/core/selection"
	"github.com/colonyops/shortlist/internal/core/styles"
	"github.com/colonyops/shortlist/internal/ranker"
	"github.com/colonyops/shortlist/internal/tui"
	"github.com/colonyops/shortlist/pkg/iojson"
	"github.com/colonyops/shortlist/pkg/profiler"
)

type ViewCmd struct {
	flags *Flags

	// flags
	jd      jdFlags
	results *iojson.FileReader[ranker.Result]
	sort    string
	query   string
}

// NewViewCmd creates a new view command
func NewViewCmd(flags *Flags) *ViewCmd {
	return &ViewCmd{
		flags:   flags,
		results: &iojson.FileReader[ranker.Result]{},
	}
}

// Flags returns the view flags. A fresh set is built on every call so the same
// destinations can be registered on both the root and the view command.
func (cmd *ViewCmd) Flags() []cli.Flag {
	return append(cmd.jd.flags(),
		cmd.results.Flag(),
		&cli.StringFlag{
			Name:        "sort",
			Usage:       "initial sort (score_desc, score_asc, name_asc, name_desc)",
			Destination: &cmd.sort,
		},
		&cli.StringFlag{
			Name:        "query",
			Aliases:     []string{"q"},
			Usage:       "initial filter",
			Destination: &cmd.query,
		},
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("SHORTLIST_PROFILER_PORT"),
			Destination: &cmd.flags.ProfilerPort,
		},
	)
}

// RootFlags returns the view flags marked local, for registering on the root
// command without leaking into subcommands that define flags of the same name.
func (cmd *ViewCmd) RootFlags() []cli.Flag {
	flags := cmd.Flags()
	for _, fl := range flags {
		switch fl := fl.(type) {
		case *cli.StringFlag:
			fl.Local = true
		case *cli.IntFlag:
			fl.Local = true
		}
	}
	return flags
}

// Register adds the view command to the application
func (cmd *ViewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "view",
		Usage:     "Browse ranked candidates interactively",
		UsageText: "shortlist view [--jd <file>] <paths or globs...>\n   shortlist rank --json ... | shortlist view",
		Description: `Opens the interactive results view.

Rows come from ranking the given files, or from ranked results read from --results
or piped stdin. When no job description is given and stdin is a terminal, you are
prompted for one.`,
		Flags:         cmd.Flags(),
		ShellComplete: ResumeFileCompleter(cmd.flags),
		Action:        cmd.run,
	})

	return app
}

// Run executes the view. Exported for use as default command.
func (cmd *ViewCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *ViewCmd) run(ctx context.Context, c *cli.Command) error {
	log := logging.Component("view")

	initialSort := cmd.flags.Config.View.DefaultSort
	if cmd.sort != "" {
		k, err := rowlist.ParseSortKey(cmd.sort)
		if err != nil {
			return err
		}
		initialSort = k
	}

	if cmd.flags.ProfilerPort > 0 {
		profServer := profiler.New(cmd.flags.ProfilerPort, logging.Component("profiler"))
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
	}

	results, sel, title, err := cmd.loadResults(ctx, c)
	if err != nil {
		return err
	}

	ctrl := rowlist.New(ranker.Rows(results),
		rowlist.WithHooks(controllerHooks(log)),
		rowlist.WithLanguage(cmd.flags.Config.Language()),
		rowlist.WithInitialSort(initialSort),
	)

	m := tui.New(
		tui.Deps{Controller: ctrl, Selection: sel},
		tui.Opts{Title: title, Query: cmd.query},
	)

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if !stdinIsTerminal() {
		// stdin carried the results; read keys from the terminal instead
		progOpts = append(progOpts, tea.WithInputTTY())
	}

	p := tea.NewProgram(m, progOpts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}

// loadResults reads ranked results when given (--results or piped stdin with no
// paths), and otherwise ranks the path arguments.
func (cmd *ViewCmd) loadResults(ctx context.Context, c *cli.Command) ([]ranker.Result, *selection.Selection, string, error) {
	patterns := c.Args().Slice()

	if c.IsSet("results") || (len(patterns) == 0 && cmd.results.Provided()) {
		results, err := cmd.results.ReadStream()
		if err != nil {
			return nil, nil, "", fmt.Errorf("read results: %w", err)
		}
		return results, resultSelection(results), "", nil
	}

	if len(patterns) == 0 {
		return nil, nil, "", fmt.Errorf("no resumes given; pass paths or pipe results from 'shortlist rank --json'")
	}

	jd, err := cmd.jd.read()
	if err != nil {
		return nil, nil, "", err
	}

	if jd == "" && stdinIsTerminal() {
		jd, err = promptJobDescription()
		if err != nil {
			return nil, nil, "", err
		}
	}

	results, sel, err := rankFiles(ctx, cmd.flags, jd, patterns)
	if err != nil {
		return nil, nil, "", err
	}
	return results, sel, firstLine(jd, 60), nil
}

func promptJobDescription() (string, error) {
	var jd string

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Job description").
				Description("Paste the job description to rank resumes against").
				Validate(func(s string) error {
					if s == "" {
						return errNoJobDescription
					}
					return nil
				}).
				Value(&jd),
		),
	).WithTheme(styles.FormTheme()).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", errNoJobDescription
		}
		return "", fmt.Errorf("form: %w", err)
	}

	return jd, nil
}

// resultSelection rebuilds the file selection from result paths that still
// exist on disk.
func resultSelection(results []ranker.Result) *selection.Selection {
	sel := selection.New()
	var files []selection.File
	for _, res := range results {
		if res.Path == "" {
			continue
		}
		found, err := selection.FromPaths([]string{res.Path})
		if err != nil {
			continue
		}
		files = append(files, found...)
	}
	sel.Replace(files)
	return sel
}

func controllerHooks(log zerolog.Logger) rowlist.Hooks {
	return rowlist.Hooks{
		OnReorder: func(rows []*rowlist.Row) {
			log.Debug().Int("rows", len(rows)).Msg("rows reordered")
		},
		OnFilter: func(query string) {
			log.Debug().Str("query", query).Msg("rows filtered")
		},
		OnToggle: func(row *rowlist.Row) {
			log.Debug().
				Str("row", row.ID).
				Bool("snippet", row.SnippetVisible()).
				Msg("snippet toggled")
		},
	}
}
