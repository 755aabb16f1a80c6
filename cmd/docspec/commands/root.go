// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Docspec - Docspec is a structured-document convention and toolchain for
keeping markdown documentation honest. It parses docspec files, validates
that their sections contain genuine content rather than unmodified
boilerplate, and scaffolds new docspec instances from a canonical format
definition.

Copyright (C) 2025  Docspec Authors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docspec-io/docspec/internal/logger"
)

// NewRootCmd constructs the docspec root Cobra command.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("DOCSPEC_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	var verbose bool

	cmd := &cobra.Command{
		Use:           "docspec",
		Short:         "Docspec - keep markdown documentation in sync with its docspec",
		Long:          "Docspec validates docspec files against the canonical format, scaffolds new ones, and discovers which docspecs a change set touches.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of docspec",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "docspec version %s\n", version)
		},
	})

	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewGenerateCommand())
	cmd.AddCommand(NewCheckCommand())
	cmd.AddCommand(NewWatchCommand())

	return cmd
}
