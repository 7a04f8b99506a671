package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/covview/cli"
	"github.com/grovetools/covview/config"
	"github.com/grovetools/covview/errors"
	"github.com/grovetools/covview/logging"
	"github.com/grovetools/covview/schema"
	"github.com/grovetools/covview/tui"
)

// ConfigSchema returns the covview.yml schema with the extension sections
// (`logging`, `tui`) composed in.
func ConfigSchema() ([]byte, error) {
	base, err := config.GenerateSchema()
	if err != nil {
		return nil, err
	}
	logSchema, err := logging.GenerateSchema()
	if err != nil {
		return nil, err
	}
	tuiSchema, err := tui.GenerateSchema()
	if err != nil {
		return nil, err
	}
	return schema.Compose(base, map[string][]byte{
		"logging": logSchema,
		"tui":     tuiSchema,
	})
}

// NewConfigCmd creates the `config` command and its subcommands.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate covview configuration",
		Long: `covview reads covview.yml (or covview.toml) from the working directory or
the nearest parent, layered over ~/.config/covview/covview.yml and under
covview.override.yml.`,
	}

	cmd.AddCommand(newConfigSchemaCmd())
	cmd.AddCommand(newConfigValidateCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for covview.yml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := ConfigSchema()
			if err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, "failed to generate schema")
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a config file against the schema and the semantic rules",
		Long: `Validates the whole file, extension sections included, against the
composed schema and then loads it. Without an argument the discovered
config file is checked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				found, err := cli.InitConfig(cli.GetOptions(cmd).ConfigFile)
				if err != nil {
					return err
				}
				path = found
			}
			if path == "" {
				return errors.ConfigNotFound("covview.yml")
			}

			if err := validateFile(path); err != nil {
				return err
			}
			if _, err := config.Load(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid\n", path)
			return nil
		},
	}
}

// validateFile checks the raw document against ConfigSchema.
func validateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.ConfigNotFound(path)
		}
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	var doc map[string]interface{}
	if config.FormatForPath(path) == config.FormatTOML {
		err = toml.NewDecoder(bytes.NewReader(data)).Decode(&doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config file").
			WithDetail("path", path)
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}

	schemaData, err := ConfigSchema()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to generate schema")
	}
	validator, err := schema.NewValidator("covview.schema.json", schemaData)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to compile schema")
	}
	if err := validator.Validate(doc); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigValidation, "schema validation failed").
			WithDetail("path", path)
	}
	return nil
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with defaults applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			if cli.GetOptions(cmd).JSONOutput {
				return writeJSON(cmd, cfg)
			}

			out := cmd.OutOrStdout()
			if path != "" {
				fmt.Fprintf(out, "# Source: %s\n", path)
			} else {
				fmt.Fprintln(out, "# Defaults (no config file found)")
			}
			data, err := cfg.Marshal()
			if err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, "failed to render config")
			}
			fmt.Fprint(out, string(data))
			return nil
		},
	}
}
