// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The pianoman Authors

// Package app implements the pianoman command: a thin cobra front end that
// resolves the layered configuration and prints it in several forms.
//
// Every configuration subcommand takes the flags generated from the schema
// plus -c/--config. Those flags are parsed by config.FlagSet rather than by
// cobra, because list and dict flags take a variable number of values.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kevingerman/pianoman/config"
	"github.com/kevingerman/pianoman/internal/logger"
	"github.com/kevingerman/pianoman/models"
	"github.com/kevingerman/pianoman/schema"
)

// App holds what every subcommand needs.
type App struct {
	settings Settings
	build    models.BuildInfo
	log      *logger.Logger
	loader   *schema.Loader
}

// New returns an App. A SchemaFile setting replaces the embedded schema.
func New(settings Settings, build models.BuildInfo, log *logger.Logger) *App {
	loader := schema.DefaultLoader()
	if settings.SchemaFile != "" {
		loader = schema.NewLoader(schema.FileSource(settings.SchemaFile))
	}

	return &App{
		settings: settings,
		build:    build,
		log:      log,
		loader:   loader,
	}
}

// Run executes the command line args (without the program name), writing
// command output to out.
func (a *App) Run(ctx context.Context, args []string, out io.Writer) error {
	root := a.Command()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(out)

	return root.ExecuteContext(a.log.WithContext(ctx))
}

// Command builds the root cobra command.
func (a *App) Command() *cobra.Command {
	root := &cobra.Command{
		Use:   Name,
		Short: "Resolve layered, schema-typed configuration",
		Long: `pianoman resolves configuration from schema defaults, a config file,
PIANOMAN_* environment variables, command-line flags and explicit values,
in that order of precedence, and prints the result.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		a.configCommand("show", "Print resolved values as key = value lines", a.show),
		a.configCommand("json", "Print resolved values as a JSON object", a.json),
		a.configCommand("env", "Print values as PREFIX<key>=value export lines", a.env),
		a.configCommand("get KEY", "Print the resolved value of one key", a.get),
		a.schemaCommand(),
		a.versionCommand(),
	)

	return root
}

type configRunner func(cmd *cobra.Command, cfg *config.Config, args []string) error

// configCommand wraps run with schema flag parsing and configuration
// loading. Positional arguments left after the flags are passed to run.
func (a *App) configCommand(use, short string, run configRunner) *cobra.Command {
	return &cobra.Command{
		Use:                use,
		Short:              short,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := a.loader.Load(ctx)
			if err != nil {
				return fmt.Errorf("%s: %w", MsgSchemaFailed, err)
			}

			fs := config.NewFlagSet(cmd.Name(), s)
			if err := fs.Parse(args); err != nil {
				if errors.Is(err, pflag.ErrHelp) {
					return a.help(cmd, fs)
				}
				return err
			}

			cfg, err := config.Load(ctx, config.WithSchema(s), config.WithFlagSet(fs))
			if err != nil {
				return fmt.Errorf("%s: %w", MsgLoadFailed, err)
			}

			return run(cmd, cfg, fs.Args())
		},
	}
}

func (a *App) help(cmd *cobra.Command, fs *config.FlagSet) error {
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\n\nUsage:\n  %s [flags]\n\nFlags:\n%s",
		cmd.Short, cmd.CommandPath(), fs.Usage())
	return err
}

func (a *App) colors() (key, value *color.Color) {
	key = color.New(color.FgCyan)
	value = color.New(color.FgGreen)
	if a.settings.NoColor {
		key.DisableColor()
		value.DisableColor()
	}
	return key, value
}
