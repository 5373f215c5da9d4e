// Package config loads shiftgraph settings from a TOML file.
//
// The file is optional. Every key it leaves out keeps its default:
//
//	[vocabulary]
//	terminal      = "Terminal"
//	punctuation   = "U"
//	link_relation = "LR"
//	link_argument = "LA"
//
//	[runner]
//	max_actions = 100000
//	concurrency = 4
//	freeze      = false
//	fail_fast   = false
//
//	[log]
//	level = "info"
//
// The default location follows the XDG convention:
// $XDG_CONFIG_HOME/shiftgraph/config.toml, else
// ~/.config/shiftgraph/config.toml.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/shiftgraph/pkg/errors"
	"github.com/matzehuels/shiftgraph/pkg/layer1"
	"github.com/matzehuels/shiftgraph/pkg/pipeline"
)

// AppName names the configuration directory.
const AppName = "shiftgraph"

// LogLevels lists the accepted values of log.level.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Config holds all settings.
type Config struct {
	Vocabulary layer1.Vocabulary `toml:"vocabulary"`
	Runner     pipeline.Options  `toml:"runner"`
	Log        Log               `toml:"log"`
}

// Log configures the CLI logger.
type Log struct {
	Level string `toml:"level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Vocabulary: layer1.DefaultVocabulary(),
		Runner:     pipeline.Options{}.WithDefaults(),
		Log:        Log{Level: "info"},
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Vocabulary.Validate(); err != nil {
		return err
	}
	if err := c.Runner.Validate(); err != nil {
		return err
	}
	if !slices.Contains(LogLevels, c.Log.Level) {
		return errors.New(errors.ErrCodeInvalidInput, "log level %q must be one of %s",
			c.Log.Level, strings.Join(LogLevels, ", "))
	}
	return nil
}

// Load reads the file at path over the defaults and validates the result.
// Unknown keys are an INVALID_FORMAT error.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidFormat, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	cfg.Runner = cfg.Runner.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	return cfg, nil
}

// LoadDefault loads the file at [Path] if it exists, else returns
// [Default].
func LoadDefault() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Path returns the default configuration file location.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}
