// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/hybridrank/internal/recommend/artifact"
	"github.com/tomtom215/hybridrank/internal/recommend/recerr"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <path>",
		Short: "Check that an artifact loads; exit non-zero with the error kind if not",
		Args:  cobra.ExactArgs(1),
		RunE:  runValidate,
	}
	cmd.Flags().Bool("normalize", true, "also build the normalized item matrix")
	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	normalize, _ := cmd.Flags().GetBool("normalize")

	a, _, err := artifact.ReadFile(args[0])
	if err == nil {
		_, err = a.Store(normalize)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", recerr.KindOf(err), err)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %s\n", a.Summary())
	return err
}
