// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docspec-io/docspec/cmd/docspec/internal/clierr"
	"github.com/docspec-io/docspec/internal/config"
	"github.com/docspec-io/docspec/internal/format"
	"github.com/docspec-io/docspec/internal/validate"
)

// NewValidateCommand validates one or more docspec files.
func NewValidateCommand() *cobra.Command {
	var formatPath string

	cmd := &cobra.Command{
		Use:   "validate <docspec-file>...",
		Short: "Validate docspec files against the canonical format",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := loadDefinition(formatPath, ".")
			if err != nil {
				return err
			}
			v := validate.New(def)

			failed := 0
			for _, path := range args {
				res := v.ValidateFile(path)
				if res.Valid {
					fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", path)
					continue
				}
				failed++
				fmt.Fprintf(cmd.OutOrStdout(), "✗ %s\n", path)
				for _, e := range res.Errors {
					fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", e)
				}
			}

			if failed > 0 {
				return clierr.Newf(clierr.CodeValidation, "%d of %d docspec file(s) failed validation", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&formatPath, "format", "", "Path to the format definition (overrides probing and .docspec.yaml)")

	return cmd
}

// loadDefinition resolves the format definition: an explicit flag wins, then
// the .docspec.yaml override, then the loader's standard probing.
func loadDefinition(formatFlag, root string) (*format.Definition, error) {
	loader := format.NewLoader()

	switch {
	case formatFlag != "":
		loader.Override = formatFlag
	default:
		cfg, err := config.Load(root)
		if err != nil {
			return nil, clierr.Wrap(clierr.CodeConfig, "loading configuration", err)
		}
		if cfg.Format != "" {
			loader.Override = filepath.Join(root, cfg.Format)
		}
	}

	def, err := loader.Load()
	if err != nil {
		return nil, clierr.Wrap(clierr.CodeConfig, "loading format definition", err)
	}
	return def, nil
}
