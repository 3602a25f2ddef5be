package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-adminview/internal/config"
	"github.com/goliatone/go-adminview/internal/logging"
	"github.com/goliatone/go-adminview/internal/prompt"
)

type rootFlags struct {
	configs  []string
	logLevel string
	human    bool
}

// newDriver is swapped in tests.
var newDriver = func() prompt.Driver { return prompt.NewSurveyDriver() }

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "adminview",
		Short:         "Admin view host with the enhancement and newadmin plugins",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringArrayVarP(&flags.configs, "config", "c", nil, "Config file (repeatable, later files override earlier ones; defaults to config.yaml and setup.yaml)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level override (trace, debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&flags.human, "human", false, "Human readable log output")

	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newSwaggerCmd(flags))
	cmd.AddCommand(newDevProxyCmd(flags))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func (f *rootFlags) loadConfig() (*config.Config, error) {
	return config.Load(f.configs...)
}

func (f *rootFlags) logger(cmd *cobra.Command, cfg *config.Config) (*logging.Logger, error) {
	level := f.logLevel
	human := f.human
	if cfg != nil {
		if level == "" {
			level = cfg.Log.Level
		}
		human = human || cfg.Log.Human
	}
	return logging.New(logging.Options{
		Level:         level,
		HumanReadable: human,
		Writer:        cmd.ErrOrStderr(),
	})
}
