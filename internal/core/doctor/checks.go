package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/shortlist/internal/core/config"
	"github.com/colonyops/shortlist/internal/ranker"
)

// ConfigCheck reports where configuration came from and whether it passes
// deep validation.
type ConfigCheck struct {
	cfg        *config.Config
	configPath string
}

func NewConfigCheck(cfg *config.Config, configPath string) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, configPath: configPath}
}

func (c *ConfigCheck) Name() string { return "Configuration" }

func (c *ConfigCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if _, err := os.Stat(c.configPath); err == nil {
		result.Items = append(result.Items, CheckItem{Label: "config file", Status: StatusPass, Detail: c.configPath})
	} else {
		result.Items = append(result.Items, CheckItem{Label: "config file", Status: StatusWarn, Detail: "not found, using defaults"})
	}

	err := c.cfg.ValidateDeep(c.configPath)
	if err == nil {
		result.Items = append(result.Items, CheckItem{Label: "validation", Status: StatusPass})
		return result
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		result.Items = append(result.Items, CheckItem{Label: "validation", Status: StatusFail, Detail: err.Error()})
		return result
	}
	for _, fe := range fieldErrs {
		result.Items = append(result.Items, CheckItem{Label: fe.Field, Status: StatusFail, Detail: fe.Err.Error()})
	}
	return result
}

// DataDirCheck verifies the data directory, which holds the log file, exists
// and is writable. A missing directory is fixable.
type DataDirCheck struct {
	dir     string
	autofix bool
}

func NewDataDirCheck(dir string, autofix bool) *DataDirCheck {
	return &DataDirCheck{dir: dir, autofix: autofix}
}

func (c *DataDirCheck) Name() string { return "Data Directory" }

func (c *DataDirCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	info, err := os.Stat(c.dir)
	switch {
	case os.IsNotExist(err) && c.autofix:
		if err := os.MkdirAll(c.dir, 0o755); err != nil {
			result.Items = append(result.Items, CheckItem{Label: c.dir, Status: StatusFail, Detail: err.Error()})
			return result
		}
		result.Items = append(result.Items, CheckItem{Label: c.dir, Status: StatusPass, Detail: "created"})
		return result
	case os.IsNotExist(err):
		result.Items = append(result.Items, CheckItem{Label: c.dir, Status: StatusWarn, Detail: "does not exist", Fixable: true})
		return result
	case err != nil:
		result.Items = append(result.Items, CheckItem{Label: c.dir, Status: StatusFail, Detail: err.Error()})
		return result
	case !info.IsDir():
		result.Items = append(result.Items, CheckItem{Label: c.dir, Status: StatusFail, Detail: "exists but is not a directory"})
		return result
	}

	if err := probeWrite(c.dir); err != nil {
		result.Items = append(result.Items, CheckItem{Label: c.dir, Status: StatusFail, Detail: "not writable: " + err.Error()})
		return result
	}

	result.Items = append(result.Items, CheckItem{Label: c.dir, Status: StatusPass, Detail: "writable"})
	return result
}

func probeWrite(dir string) error {
	f, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

// SkillsCheck loads the skill dictionary, including any configured skills file.
type SkillsCheck struct {
	cfg *config.Config
}

func NewSkillsCheck(cfg *config.Config) *SkillsCheck {
	return &SkillsCheck{cfg: cfg}
}

func (c *SkillsCheck) Name() string { return "Skills" }

func (c *SkillsCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	label := "built-in dictionary"
	if c.cfg.Ranking.SkillsFile != "" {
		label = filepath.Base(c.cfg.Ranking.SkillsFile)
	}

	d, err := c.cfg.SkillDictionary()
	if err != nil {
		result.Items = append(result.Items, CheckItem{Label: label, Status: StatusFail, Detail: err.Error()})
		return result
	}

	result.Items = append(result.Items, CheckItem{
		Label:  label,
		Status: StatusPass,
		Detail: fmt.Sprintf("%d skills in %d categories", d.Len(), len(d.Categories())),
	})
	return result
}

// FormatsCheck warns about configured extensions no extractor can read.
type FormatsCheck struct {
	extensions []string
}

func NewFormatsCheck(extensions []string) *FormatsCheck {
	return &FormatsCheck{extensions: extensions}
}

func (c *FormatsCheck) Name() string { return "File Formats" }

func (c *FormatsCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	for _, ext := range c.extensions {
		if ranker.Supported(ext) {
			result.Items = append(result.Items, CheckItem{Label: "." + ext, Status: StatusPass})
			continue
		}
		result.Items = append(result.Items, CheckItem{
			Label:  "." + ext,
			Status: StatusWarn,
			Detail: "no text extractor; these files are skipped",
		})
	}
	return result
}

// TerminalCheck reports whether the interactive results view can run.
type TerminalCheck struct {
	isTerminal func(fd int) bool
}

func NewTerminalCheck(isTerminal func(fd int) bool) *TerminalCheck {
	return &TerminalCheck{isTerminal: isTerminal}
}

func (c *TerminalCheck) Name() string { return "Terminal" }

func (c *TerminalCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if c.isTerminal(int(os.Stdout.Fd())) {
		result.Items = append(result.Items, CheckItem{Label: "stdout", Status: StatusPass, Detail: "interactive"})
	} else {
		result.Items = append(result.Items, CheckItem{
			Label:  "stdout",
			Status: StatusWarn,
			Detail: "not a terminal; use 'shortlist rank' for plain output",
		})
	}
	return result
}
