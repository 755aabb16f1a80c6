// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docspec-io/docspec/cmd/docspec/internal/clierr"
	"github.com/docspec-io/docspec/internal/discovery"
	"github.com/docspec-io/docspec/internal/generate"
	"github.com/docspec-io/docspec/internal/logger"
)

// NewGenerateCommand scaffolds a docspec file from the format definition.
func NewGenerateCommand() *cobra.Command {
	var (
		formatPath string
		target     string
	)

	cmd := &cobra.Command{
		Use:   "generate <docspec-path>",
		Short: "Generate a boilerplate docspec file",
		Long: `Generate writes a fully-instantiated docspec document at the given path,
overwriting any existing file. The target identifier defaults to the
counterpart markdown name (README.docspec.md describes README.md).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			def, err := loadDefinition(formatPath, ".")
			if err != nil {
				return err
			}

			if target == "" {
				target = discovery.TargetMarkdown(filepath.Base(path))
				if target == "" {
					return clierr.Newf(clierr.CodeIO,
						"cannot derive a target from %q: docspec files end in %s (or pass --target)",
						path, discovery.DocspecSuffix)
				}
			}
			logger.Debug("generating %s for target %s", path, target)

			if err := generate.New(def).WriteFile(path, target); err != nil {
				return clierr.Wrap(clierr.CodeIO, "writing docspec", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Generated %s (target: %s)\n", path, target)
			return nil
		},
	}

	cmd.Flags().StringVar(&formatPath, "format", "", "Path to the format definition (overrides probing and .docspec.yaml)")
	cmd.Flags().StringVar(&target, "target", "", "Target document identifier substituted into the template")

	return cmd
}
