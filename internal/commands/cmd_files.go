package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/shortlist/internal/core/selection"
	"github.com/colonyops/shortlist/internal/core/styles"
	"github.com/colonyops/shortlist/pkg/iojson"
)

type FilesCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewFilesCmd creates a new files command
func NewFilesCmd(flags *Flags) *FilesCmd {
	return &FilesCmd{flags: flags}
}

// Register adds the files command to the application
func (cmd *FilesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "files",
		Usage:     "Show the files a set of paths selects",
		UsageText: "shortlist files [--json] <paths or globs...>",
		Description: `Expands paths, directories, and globs the same way 'rank' does and prints one
summary line per selected file, followed by the total size.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		ShellComplete: ResumeFileCompleter(cmd.flags),
		Action:        cmd.run,
	})

	return app
}

func (cmd *FilesCmd) run(_ context.Context, c *cli.Command) error {
	files, err := selection.FromPaths(c.Args().Slice())
	if err != nil {
		return fmt.Errorf("expand paths: %w", err)
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		for _, f := range files {
			if err := iojson.WriteLine(out, f); err != nil {
				return fmt.Errorf("encode file: %w", err)
			}
		}
		return nil
	}

	return printSelection(out, selection.New(files...))
}

func printSelection(out io.Writer, sel *selection.Selection) error {
	if _, err := fmt.Fprintln(out, sel.Render()); err != nil {
		return err
	}
	if sel.Len() == 0 {
		return nil
	}

	total := fmt.Sprintf("%d file(s), %s", sel.Len(), humanize.IBytes(uint64(sel.TotalBytes())))
	_, err := fmt.Fprintln(out, styles.MutedStyle.Render(total))
	return err
}
