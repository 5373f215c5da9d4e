// Package cli implements the shiftgraph command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/shiftgraph/pkg/buildinfo"
	"github.com/matzehuels/shiftgraph/pkg/config"
	"github.com/matzehuels/shiftgraph/pkg/layer0"
	"github.com/matzehuels/shiftgraph/pkg/pipeline"
	"github.com/matzehuels/shiftgraph/pkg/transition"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger and the built-in
// configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Shiftgraph builds annotation graphs with a transition system",
		Long: `Shiftgraph replays shift-reduce action sequences over tokenized text and
finalizes them into layered annotation graphs. It can derive action
sequences from gold graphs, render graphs, and step through construction.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return c.loadConfig() },
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/shiftgraph/config.toml)")

	// Register all subcommands
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.oracleCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.stepCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the --config file, or the default file if present. The
// configured log level applies unless debug logging was already requested.
func (c *CLI) loadConfig() error {
	var (
		cfg config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.Load(c.configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}
	c.Config = cfg

	if c.Logger.GetLevel() != log.DebugLevel {
		if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
			c.SetLogLevel(level)
		}
	}
	c.Logger.Debug("configuration loaded", "path", c.configPath, "max_actions", cfg.Runner.MaxActions)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for the loaded configuration.
func (c *CLI) newRunner() *pipeline.Runner {
	f := &transition.Finalizer{Builder: layer0.Builder{}, Vocabulary: c.Config.Vocabulary}
	return pipeline.NewRunner(f, c.Logger, c.Config.Runner)
}
