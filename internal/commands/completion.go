package commands

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/shortlist/internal/ranker"
)

// ResumeFileCompleter returns a ShellCompleteFunc that suggests files in the
// working directory whose extension the ranker accepts.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func ResumeFileCompleter(flags *Flags) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		entries, err := os.ReadDir(".")
		if err != nil {
			return
		}

		exts := ranker.DefaultOptions().Extensions
		if flags.Config != nil {
			exts = flags.Config.Ranking.Extensions
		}

		w := cmd.Root().Writer
		for _, e := range entries {
			if e.IsDir() || !slices.Contains(exts, ranker.Ext(e.Name())) {
				continue
			}
			_, _ = fmt.Fprintln(w, e.Name())
		}
	}
}
