package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bamaas/cbactl/internal/config"
)

func newGetCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get schema definitions",
		Long:  "Get property types, item types and defaults from the loaded schema.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newGetPropertyTypesCmd(opts))
	cmd.AddCommand(newGetItemTypesCmd(opts))
	cmd.AddCommand(newGetItemTypeCmd(opts))
	cmd.AddCommand(newGetDefaultsCmd(opts))

	return cmd
}

func newGetPropertyTypesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "property-types",
		Short: "List property types and their regexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := opts.loadExtension()
			if err != nil {
				return err
			}
			return writeYAML(cmd.OutOrStdout(), ext.PropertyTypes())
		},
	}
}

func newGetItemTypesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "item-types",
		Short: "List all item types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := opts.loadExtension()
			if err != nil {
				return err
			}
			return writeYAML(cmd.OutOrStdout(), ext.ItemTypes())
		},
	}
}

func newGetItemTypeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "item-type <name>",
		Short: "Show a single item type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := opts.loadExtension()
			if err != nil {
				return err
			}
			it, err := ext.ItemType(args[0])
			if err != nil {
				return err
			}
			return writeYAML(cmd.OutOrStdout(), it)
		},
	}
}

func newGetDefaultsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "defaults <item-type>",
		Short: "Show the default property values of an item type",
		Long: `Show the default property values declared for an item type.

Examples:
  # Defaults of a CMW cluster
  cbactl get defaults cmw-cluster

  # Save to file
  cbactl get defaults cmw-cluster > cluster.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := opts.loadExtension()
			if err != nil {
				return err
			}
			defaults, err := ext.Defaults(args[0])
			if err != nil {
				return err
			}
			item := &config.Item{Type: args[0], Properties: defaults}
			data, err := item.ToYAML()
			if err != nil {
				return fmt.Errorf("failed to render defaults: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func writeYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to render YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}
