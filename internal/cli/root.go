package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bamaas/cbactl/internal/config"
	"github.com/bamaas/cbactl/internal/extension"
	"github.com/bamaas/cbactl/internal/logging"
)

const name = "cbactl"

// overridden during build with ldflags
var version = "dev"

type rootOptions struct {
	schemaPath string
	logLevel   string
	logFormat  string
}

// loadExtension returns the schema named by --schema or CBACTL_SCHEMA,
// falling back to the embedded CBA schema.
func (o *rootOptions) loadExtension() (*extension.Extension, error) {
	if o.schemaPath == "" {
		return extension.Load()
	}
	slog.Debug("loading schema from file", "path", o.schemaPath)
	return extension.LoadFromFile(o.schemaPath)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   name,
		Short: "Inspect the CBA model extension and validate items against it",
		Long: `cbactl: inspects the CBA model extension schema (item types, property types,
defaults) and runs its validators over item property maps before they are
handed to the host model.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadSettings()
			if err != nil {
				return err
			}
			if opts.logLevel == "" {
				opts.logLevel = settings.LogLevel
			}
			if opts.logFormat == "" {
				opts.logFormat = settings.LogFormat
			}
			if opts.schemaPath == "" {
				opts.schemaPath = settings.SchemaPath
			}

			level, err := logging.ParseLevel(opts.logLevel)
			if err != nil {
				return err
			}
			format, err := logging.ParseFormat(opts.logFormat)
			if err != nil {
				return err
			}
			logging.SetDefault(name, version, level, format)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.schemaPath, "schema", "s", "", "Path to a schema document replacing the embedded CBA schema")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (default: info)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format: text or json (default: text)")

	cmd.AddCommand(newGetCmd(opts))
	cmd.AddCommand(newInitCmd(opts))
	cmd.AddCommand(newValidateCmd(opts))

	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
