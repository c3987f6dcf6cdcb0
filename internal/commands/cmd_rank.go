package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/shortlist/internal/ranker"
	"github.com/colonyops/shortlist/pkg/iojson"
)

type RankCmd struct {
	flags *Flags

	// flags
	jd         jdFlags
	jsonOutput bool
	csvPath    string
}

// NewRankCmd creates a new rank command
func NewRankCmd(flags *Flags) *RankCmd {
	return &RankCmd{flags: flags}
}

// Register adds the rank command to the application
func (cmd *RankCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "rank",
		Usage:     "Rank resumes against a job description",
		UsageText: "shortlist rank --jd <file> [--json] [--csv <path>] <paths or globs...>",
		Description: `Scores every resume against the job description and prints a ranked table.

Paths may be files, directories (their direct files), or doublestar globs such as
'resumes/**/*.docx'. Use --json for one JSON object per line, suitable for piping
into 'shortlist view'. Use --csv to also write the results to a file.`,
		Flags: append(cmd.jd.flags(),
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.StringFlag{
				Name:        "csv",
				Usage:       "write results as CSV to this path",
				Destination: &cmd.csvPath,
			},
		),
		ShellComplete: ResumeFileCompleter(cmd.flags),
		Action:        cmd.run,
	})

	return app
}

func (cmd *RankCmd) run(ctx context.Context, c *cli.Command) error {
	jd, err := cmd.jd.read()
	if err != nil {
		return err
	}

	results, _, err := rankFiles(ctx, cmd.flags, jd, c.Args().Slice())
	if err != nil {
		return err
	}

	if cmd.csvPath != "" {
		if err := writeCSVFile(cmd.csvPath, results); err != nil {
			return err
		}
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		for _, res := range results {
			if err := iojson.WriteLine(out, res); err != nil {
				return fmt.Errorf("encode result: %w", err)
			}
		}
		return nil
	}

	return writeTable(out, results)
}

func writeTable(out io.Writer, results []ranker.Result) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "RANK\tNAME\tSCORE\tEMAIL\tFILE\tSKILLS")

	for _, res := range results {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%.3f\t%s\t%s\t%s\n",
			res.Rank, res.Name, res.Score, res.Email, res.File, ranker.SkillsText(res.Skills))
	}

	return w.Flush()
}

func writeCSVFile(path string, results []ranker.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}

	if err := ranker.WriteCSV(f, results); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close csv: %w", err)
	}
	return nil
}
