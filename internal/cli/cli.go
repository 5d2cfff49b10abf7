// Package cli implements the rucaptcha command-line interface.
package cli

import (
	"fmt"
	"io"

	"github.com/leeforge/rucaptcha/captcha"
	"github.com/leeforge/rucaptcha/config"
	"github.com/leeforge/rucaptcha/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the values shown by --version, usually injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// AppConfig is the whole configuration tree bound from captcha.yaml.
type AppConfig struct {
	Captcha captcha.Config `mapstructure:"captcha" json:"captcha" yaml:"captcha"`
	Log     logging.Config `mapstructure:"log" json:"log" yaml:"log"`
}

// CLI holds shared state for all commands.
type CLI struct {
	out io.Writer
	err io.Writer

	configPath string
	verbose    bool

	cfg    *config.Config
	app    AppConfig
	logger logging.Logger
}

// New creates a CLI writing command output to out and messages to errOut.
func New(out, errOut io.Writer) *CLI {
	return &CLI{
		out:    out,
		err:    errOut,
		logger: logging.Nop(),
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "rucaptcha",
		Short:         "rucaptcha generates image captchas",
		Long:          `rucaptcha renders random text over interference shapes and noise and writes the result as PNG, JPEG or WebP.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
			if c.cfg != nil {
				_ = c.cfg.Close()
			}
		},
	}

	root.SetOut(c.out)
	root.SetErr(c.err)
	root.SetVersionTemplate(fmt.Sprintf("rucaptcha %s\ncommit: %s\nbuilt: %s\n", version, commit, date))

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "configuration file (default: captcha.yaml in $"+config.PathEnvKey+" or the working directory)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.configCommand())

	return root
}

// setup loads configuration and builds the logger before any subcommand runs.
func (c *CLI) setup() error {
	opts := config.DefaultOptions()
	if c.configPath != "" {
		opts.File = c.configPath
	}

	cfg, err := config.New(opts)
	if err != nil {
		return err
	}

	var app AppConfig
	if err := cfg.Bind(&app); err != nil {
		return err
	}

	logCfg := app.Log
	if c.verbose {
		logCfg.Level = "debug"
	}
	c.logger = logging.NewLogger(logCfg).Named("rucaptcha")
	logging.SetGlobal(c.logger)

	c.cfg = cfg
	c.app = app
	c.logger.Debug("configuration loaded", zap.Strings("files", cfg.Files()))
	return nil
}
