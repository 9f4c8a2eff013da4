package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bamaas/cbactl/internal/config"
	"github.com/bamaas/cbactl/internal/extension"
)

func newInitCmd(opts *rootOptions) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init <item-type>",
		Short: "Create a skeleton item document",
		Long: `Create a skeleton item document for an item type. Declared defaults are
filled in and required properties are left empty for you to complete.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := opts.loadExtension()
			if err != nil {
				return err
			}

			item, err := skeletonItem(ext, args[0])
			if err != nil {
				return err
			}

			data, err := item.ToYAML()
			if err != nil {
				return fmt.Errorf("failed to render item: %w", err)
			}

			if outputPath == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			if _, err := os.Stat(outputPath); err == nil {
				return fmt.Errorf("item file '%s' already exists", outputPath)
			}
			if err := os.WriteFile(outputPath, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outputPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Generated %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the item document to this file instead of stdout")

	return cmd
}

// skeletonItem builds an item holding the declared defaults plus an empty
// value for every required property.
func skeletonItem(ext *extension.Extension, itemType string) (*config.Item, error) {
	it, err := ext.ItemType(itemType)
	if err != nil {
		return nil, err
	}
	defaults, err := ext.Defaults(itemType)
	if err != nil {
		return nil, err
	}

	props := make(map[string]string, len(it.Properties))
	for k, v := range defaults {
		props[k] = v
	}
	for _, p := range it.Properties {
		if p.Required {
			if _, ok := props[p.Name]; !ok {
				props[p.Name] = ""
			}
		}
	}

	return &config.Item{Type: itemType, Properties: props}, nil
}
