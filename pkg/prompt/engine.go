package prompt

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/spry/pkg/capability"
	"github.com/arthur-debert/spry/pkg/config"
	"github.com/arthur-debert/spry/pkg/errors"
	"github.com/arthur-debert/spry/pkg/execx"
)

// Engine wraps the external prompt-theming engine. Contract: given a
// theme config path, the engine emits shell code that, when evaluated,
// defines the prompt function for the target shell.
type Engine struct {
	cmd      execx.Commander
	detector *capability.Detector
	cfg      config.Prompt
}

// NewEngine returns an Engine for the configured binary.
func NewEngine(cmd execx.Commander, detector *capability.Detector, cfg config.Prompt) *Engine {
	return &Engine{cmd: cmd, detector: detector, cfg: cfg}
}

// Available reports whether the engine binary resolves on PATH.
func (e *Engine) Available() bool {
	return e.detector.Has(e.cfg.Engine)
}

// Init returns the shell code that installs the themed prompt.
func (e *Engine) Init(ctx context.Context, shell string) (string, error) {
	if !e.Available() {
		return "", errors.Newf(errors.ErrToolMissing, "prompt engine %s is not installed", e.cfg.Engine)
	}

	args := []string{"init", shell}
	if e.cfg.Theme != "" {
		if err := ValidateTheme(e.cfg.Theme); err != nil {
			return "", err
		}
		args = append(args, "--config", e.cfg.Theme)
	}

	out, err := e.cmd.Run(ctx, e.cfg.Engine, args...)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrToolFailed, "%s init failed", e.cfg.Engine)
	}
	return string(out), nil
}

// ValidateTheme checks that the theme config file exists and parses.
// Engines accept JSON, YAML and TOML themes; JSON parses fine through
// the YAML parser.
func ValidateTheme(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileNotFound, "theme config %s", path)
	}

	var doc map[string]interface{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &doc)
	default:
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "theme config %s is not valid", path)
	}
	return nil
}
