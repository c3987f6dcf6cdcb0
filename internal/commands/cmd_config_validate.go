package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/shortlist/internal/core/styles"
	"github.com/colonyops/shortlist/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "shortlist config validate [options]",
				Description: "Validates the configuration file, checking value ranges, the skills file, and directory access.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

type validationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationOutput struct {
	Valid      bool              `json:"valid"`
	ConfigPath string            `json:"config_path"`
	Errors     []validationIssue `json:"errors,omitempty"`
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	result := validationOutput{
		ConfigPath: cmd.flags.ConfigPath,
		Errors:     issues(cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath)),
	}
	result.Valid = len(result.Errors) == 0

	out := c.Root().Writer
	if cmd.format == "json" {
		if err := iojson.WriteWith(out, c.Root().ErrWriter, result); err != nil {
			return err
		}
	} else {
		outputText(out, result)
	}

	if !result.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

// issues flattens criterio field errors; any other error becomes a single
// issue without a field.
func issues(err error) []validationIssue {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []validationIssue{{Message: err.Error()}}
	}

	out := make([]validationIssue, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = validationIssue{Field: fe.Field, Message: fe.Err.Error()}
	}
	return out
}

func outputText(out io.Writer, result validationOutput) {
	for _, issue := range result.Errors {
		if issue.Field != "" {
			_, _ = fmt.Fprintln(out, styles.ErrorStyle.Render("✗ "+issue.Field+": "+issue.Message))
			continue
		}
		_, _ = fmt.Fprintln(out, styles.ErrorStyle.Render("✗ "+issue.Message))
	}

	if result.Valid {
		_, _ = fmt.Fprintln(out, styles.SuccessStyle.Render("✓ Configuration is valid"))
		return
	}

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, styles.ErrorStyle.Render(fmt.Sprintf("%d error(s) found", len(result.Errors))))
}
