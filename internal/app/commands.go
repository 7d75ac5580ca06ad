package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kevingerman/pianoman/config"
	"github.com/kevingerman/pianoman/models"
)

func noArgs(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%s: %s", MsgUnexpectedArgs, strings.Join(args, " "))
	}
	return nil
}

func (a *App) show(cmd *cobra.Command, cfg *config.Config, args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}

	resolved, err := cfg.Resolved()
	if err != nil {
		return err
	}

	keyColor, valueColor := a.colors()
	out := cmd.OutOrStdout()
	for _, k := range cfg.Keys() {
		if _, err := fmt.Fprintf(out, "%s = %s\n",
			keyColor.Sprint(k), valueColor.Sprint(models.Stringify(resolved[k]))); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) json(cmd *cobra.Command, cfg *config.Config, args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}

	resolved, err := cfg.Resolved()
	if err != nil {
		return err
	}
	return writeJSON(cmd, resolved)
}

func (a *App) env(cmd *cobra.Command, cfg *config.Config, args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, line := range cfg.Environ(cfg.Prefix()) {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) get(cmd *cobra.Command, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return errors.New(MsgKeyRequired)
	}

	v, err := cfg.String(args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
	return err
}

func (a *App) schemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the effective schema as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.loader.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s: %w", MsgSchemaFailed, err)
			}
			return writeJSON(cmd, s)
		},
	}
}

func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), a.build.String())
			return err
		},
	}
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
