// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hybridrank",
		Short:         "Hybridrank model artifact tool",
		Long:          "Inspect, validate, convert and generate hybrid matrix-factorization model artifacts.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newInspectCmd(),
		newValidateCmd(),
		newConvertCmd(),
		newDemoCmd(),
		newVersionCmd(),
	)

	return root
}

// addWriteFlags registers the encoding flags shared by convert and demo.
func addWriteFlags(cmd *cobra.Command, defaultCompression string) {
	cmd.Flags().String("codec", "gob", "payload codec: gob or json")
	cmd.Flags().String("compression", defaultCompression, "payload compression: none, gzip, zstd or lz4")
	cmd.Flags().Bool("bare", false, "write headerless JSON (json codec only)")
}
