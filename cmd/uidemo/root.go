package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-uidemo/internal/config"
	"github.com/goliatone/go-uidemo/internal/logging"
	"github.com/goliatone/go-uidemo/internal/prompt"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// newDriver builds the terminal prompt driver. Tests swap it.
var newDriver = prompt.NewSurveyDriver

type rootFlags struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "uidemo",
		Short:         "uidemo serves the component demo pages and drives them from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", config.DefaultFile, "Configuration file")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override the configured log level")

	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newSubmitCmd(flags))
	cmd.AddCommand(newTodosCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// load reads the configuration and builds the logger writing to the
// command's error stream.
func (f *rootFlags) load(cmd *cobra.Command) (*config.Config, *logging.Logger, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, nil, err
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	log, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
