package commands

import (
	"github.com/urfave/cli/v3"
)

// NewApp builds the root command with its global flags and subcommands. Setup
// hooks and version info are left to the caller so the same tree can be used
// for documentation.
func NewApp(flags *Flags) *cli.Command {
	app := &cli.Command{
		Name:      "shortlist",
		Usage:     "Rank resumes against a job description",
		UsageText: "shortlist [global options] [command] [command options] <paths or globs...>",
		Description: `Shortlist scores resumes (pdf, txt, md, html, docx) against a job description and
lets you browse, filter, and sort the ranked candidates.

Run 'shortlist --jd job.md resumes/' to rank a folder and open the results view.
Run 'shortlist rank --jd job.md resumes/' to print a ranked table instead.`,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("SHORTLIST_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/shortlist.log)",
				Sources:     cli.EnvVars("SHORTLIST_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("SHORTLIST_CONFIG"),
				Value:       DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("SHORTLIST_DATA_DIR"),
				Value:       DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
	}

	viewCmd := NewViewCmd(flags)

	app = NewRankCmd(flags).Register(app)
	app = viewCmd.Register(app)
	app = NewFilesCmd(flags).Register(app)
	app = NewConfigValidateCmd(flags).Register(app)
	app = NewDoctorCmd(flags).Register(app)

	// Register view flags on root command
	app.Flags = append(app.Flags, viewCmd.RootFlags()...)

	// Paths given to the root command are ranked and opened in the view
	app.Action = viewCmd.Run

	return app
}
