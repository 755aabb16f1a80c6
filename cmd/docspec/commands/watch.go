// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/docspec-io/docspec/cmd/docspec/internal/clierr"
	"github.com/docspec-io/docspec/internal/config"
	"github.com/docspec-io/docspec/internal/scanner"
	"github.com/docspec-io/docspec/internal/validate"
	"github.com/docspec-io/docspec/internal/watch"
)

// NewWatchCommand re-validates docspec files whenever they change on disk.
func NewWatchCommand() *cobra.Command {
	var (
		formatPath string
		root       string
		debounce   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch [docspec-file...]",
		Short: "Watch docspec files and re-validate on change",
		Long: `Watch validates the given docspec files (or every tracked docspec when
none are given) each time one changes. Runs until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := loadDefinition(formatPath, root)
			if err != nil {
				return err
			}
			v := validate.New(def)

			files := args
			if len(files) == 0 {
				cfg, err := config.Load(root)
				if err != nil {
					return clierr.Wrap(clierr.CodeConfig, "loading configuration", err)
				}
				tracked, err := scanner.New(root).TrackedDocspecs(cmd.Context(), scanner.FilterOptions{
					ExcludeDirs:     append(scanner.DefaultExcludeDirs(), cfg.Exclude...),
					IncludePatterns: cfg.Include,
				})
				if err != nil {
					return clierr.Wrap(clierr.CodeIO, "listing tracked docspecs", err)
				}
				for _, f := range tracked {
					files = append(files, filepath.Join(root, f))
				}
			}
			if len(files) == 0 {
				return clierr.New(clierr.CodeIO, "no docspec files to watch")
			}

			w, err := watch.New(debounce)
			if err != nil {
				return clierr.Wrap(clierr.CodeIO, "starting watcher", err)
			}
			defer w.Close()
			if err := w.Add(files); err != nil {
				return clierr.Wrap(clierr.CodeIO, "watching files", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Watching %d docspec file(s)...\n", len(files))

			go func() {
				for ev := range w.Events() {
					res := v.ValidateFile(ev.Path)
					if res.Valid {
						fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", ev.Path)
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "✗ %s\n", ev.Path)
					for _, e := range res.Errors {
						fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", e)
					}
				}
			}()

			if err := w.Run(cmd.Context()); err != nil && cmd.Context().Err() == nil {
				return clierr.Wrap(clierr.CodeIO, "watcher stopped", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&formatPath, "format", "", "Path to the format definition (overrides probing and .docspec.yaml)")
	cmd.Flags().StringVar(&root, "root", ".", "Repository root")
	cmd.Flags().DurationVar(&debounce, "debounce", 100*time.Millisecond, "How long to wait for further changes before re-validating")

	return cmd
}
