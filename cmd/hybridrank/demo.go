// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/hybridrank/internal/recommend/artifact"
)

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo <out>",
		Short: "Write a small synthetic artifact for local runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runDemo,
	}
	cmd.Flags().Int("users", 20, "number of users")
	cmd.Flags().Int("items", 50, "number of items")
	cmd.Flags().Int("dim", 8, "latent dimension")
	cmd.Flags().Int("features", 10, "number of side features (0 for pure CF)")
	cmd.Flags().Uint64("seed", 42, "random seed")
	addWriteFlags(cmd, "none")
	return cmd
}

func runDemo(cmd *cobra.Command, args []string) error {
	opts, err := writeOptions(cmd)
	if err != nil {
		return err
	}

	var demo artifact.DemoOptions
	demo.Users, _ = cmd.Flags().GetInt("users")
	demo.Items, _ = cmd.Flags().GetInt("items")
	demo.Dim, _ = cmd.Flags().GetInt("dim")
	demo.Features, _ = cmd.Flags().GetInt("features")
	demo.Seed, _ = cmd.Flags().GetUint64("seed")

	a := artifact.Demo(demo)
	if err := artifact.WriteFile(args[0], a, opts); err != nil {
		return fmt.Errorf("write %s: %w", args[0], err)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %s\n", args[0], a.Summary())
	return err
}
