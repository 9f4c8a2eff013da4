package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bamaas/cbactl/internal/config"
	cbaerrors "github.com/bamaas/cbactl/internal/errors"
	"github.com/bamaas/cbactl/internal/extension"
	"github.com/bamaas/cbactl/internal/validator"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var (
		itemFile string
		itemType string
		sets     []string
		strict   bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an item's properties against its item type",
		Long: `Run the validators registered for an item type over an item's properties.

The item is read from a YAML document with a 'type' and a 'properties'
mapping, from --set flags, or both (--set wins). With --strict, required
properties, property type regexes and undeclared properties are checked too.

Examples:
  cbactl validate -f cluster.yaml
  cbactl validate -t lsb-runtime --set status_interval=30 --set status_timeout=60
  cbactl validate -f cluster.yaml --set tipc_networks=hb1,hb2 --strict`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if itemFile == "" && len(sets) == 0 {
				return cbaerrors.New(cbaerrors.ErrCodeInvalidInput, "either --file or --set is required")
			}

			item := &config.Item{Properties: make(map[string]string)}
			if itemFile != "" {
				loaded, err := config.LoadItemFromFile(itemFile)
				if err != nil {
					return err
				}
				item = loaded
			}
			if itemType != "" {
				item.Type = itemType
			}
			if item.Type == "" {
				return cbaerrors.New(cbaerrors.ErrCodeInvalidInput, "item type is required (--type or 'type' in the item file)")
			}
			if err := applySets(item, sets); err != nil {
				return err
			}

			ext, err := opts.loadExtension()
			if err != nil {
				return err
			}

			errs, err := validateItem(ext, item, strict)
			if err != nil {
				return err
			}
			if len(errs) > 0 {
				return fmt.Errorf("validation errors:\n\n%s", formatErrors(item.Type, errs))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: validated\n", item.Type)
			return nil
		},
	}

	cmd.Flags().StringVarP(&itemFile, "file", "f", "", "Path to an item document")
	cmd.Flags().StringVarP(&itemType, "type", "t", "", "Item type (overrides 'type' in the item file)")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Set a property value (key=value), repeatable")
	cmd.Flags().BoolVar(&strict, "strict", false, "Also check required properties, property types and undeclared properties")

	return cmd
}

// applySets applies key=value overrides to the item's properties
func applySets(item *config.Item, sets []string) error {
	for _, kv := range sets {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return cbaerrors.NewWithContext(cbaerrors.ErrCodeInvalidInput,
				fmt.Sprintf("invalid --set %q, expected key=value", kv), map[string]any{"set": kv})
		}
		item.Properties[strings.TrimSpace(key)] = value
	}
	return nil
}

// validateItem runs the item type's validators, or the strict check
func validateItem(ext *extension.Extension, item *config.Item, strict bool) ([]*validator.ValidationError, error) {
	props := validator.Properties(item.Properties)

	slog.Debug("validating item",
		"itemType", item.Type,
		"properties", len(props),
		"strict", strict)

	if strict {
		return ext.Check(item.Type, props)
	}
	return ext.Validate(item.Type, props)
}

func formatErrors(itemType string, errs []*validator.ValidationError) string {
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", itemType, e.PropertyName, e.Message))
	}
	return strings.Join(lines, "\n")
}
