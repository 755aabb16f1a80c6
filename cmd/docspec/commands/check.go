// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docspec-io/docspec/cmd/docspec/internal/clierr"
	"github.com/docspec-io/docspec/internal/batch"
	"github.com/docspec-io/docspec/internal/config"
	"github.com/docspec-io/docspec/internal/discovery"
	"github.com/docspec-io/docspec/internal/logger"
	"github.com/docspec-io/docspec/internal/render"
	"github.com/docspec-io/docspec/internal/scanner"
	"github.com/docspec-io/docspec/internal/validate"
)

// NewCheckCommand validates the docspecs relevant to a change set, or every
// tracked docspec with --all.
func NewCheckCommand() *cobra.Command {
	var (
		formatPath string
		root       string
		base       string
		head       string
		all        bool
		stateDir   string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Discover and validate the docspecs a change set touches",
		Long: `Check finds relevant docspec files and validates each one, continuing past
failures so a single run reports every defect. With --base and --head the
candidates come from the changed files of that range (each changed file's
directory chain is searched for docspecs); with --all every tracked docspec
is checked. A run summary is persisted under the state directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && (base == "" || head == "") {
				return clierr.New(clierr.CodeIO, "check needs either --all or both --base and --head")
			}

			cfg, err := config.Load(root)
			if err != nil {
				return clierr.Wrap(clierr.CodeConfig, "loading configuration", err)
			}

			def, err := loadDefinition(formatPath, root)
			if err != nil {
				return err
			}

			s := scanner.New(root)
			ctx := cmd.Context()

			var files []string
			if all {
				files, err = s.TrackedDocspecs(ctx, scanner.FilterOptions{
					ExcludeDirs:     append(scanner.DefaultExcludeDirs(), cfg.Exclude...),
					IncludePatterns: cfg.Include,
				})
				if err != nil {
					return clierr.Wrap(clierr.CodeIO, "listing tracked docspecs", err)
				}
			} else {
				tracked, err := s.TrackedFiles(ctx)
				if err != nil {
					return clierr.Wrap(clierr.CodeIO, "listing tracked files", err)
				}
				changed, err := s.ChangedFiles(ctx, base, head)
				if err != nil {
					return clierr.Wrap(clierr.CodeIO, "listing changed files", err)
				}
				logger.Debug("%d changed file(s) between %s and %s", len(changed), base, head)
				files = discovery.FindCandidates(tracked, changed, cfg.MaxDocspecs)
			}

			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No relevant docspec files found.")
				return nil
			}

			store := batch.NewStateStore(filepath.Join(root, stateDir))
			results, last, err := batch.NewRunner(validate.New(def), store, root).Run(ctx, files)
			if err != nil {
				return clierr.Wrap(clierr.CodeIO, "running checks", err)
			}

			for _, fr := range results {
				if fr.Status == batch.StatusPass {
					fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", fr.File)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✗ %s\n", fr.File)
				for _, e := range fr.Errors {
					fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", e)
				}
			}

			if last.Status == batch.StatusFail {
				fmt.Fprintf(cmd.OutOrStdout(), "\nFailed:\n%s", render.List(last.Failed))
				return clierr.Newf(clierr.CodeValidation, "%d of %d docspec file(s) failed validation", len(last.Failed), len(last.Files))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Checked %d docspec file(s)\n", len(last.Files))
			return nil
		},
	}

	cmd.Flags().StringVar(&formatPath, "format", "", "Path to the format definition (overrides probing and .docspec.yaml)")
	cmd.Flags().StringVar(&root, "root", ".", "Repository root")
	cmd.Flags().StringVar(&base, "base", "", "Base revision of the change set")
	cmd.Flags().StringVar(&head, "head", "", "Head revision of the change set")
	cmd.Flags().BoolVar(&all, "all", false, "Check every tracked docspec file")
	cmd.Flags().StringVar(&stateDir, "state-dir", ".docspec", "Directory to store run state, relative to the root")

	return cmd
}
