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

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Re-encode an artifact with another codec or compression",
		Args:  cobra.ExactArgs(2),
		RunE:  runConvert,
	}
	addWriteFlags(cmd, "zstd")
	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	opts, err := writeOptions(cmd)
	if err != nil {
		return err
	}

	a, from, err := artifact.ReadFile(args[0])
	if err != nil {
		return err
	}
	if _, err := a.Store(false); err != nil {
		return err
	}
	if err := artifact.WriteFile(args[1], a, opts); err != nil {
		return fmt.Errorf("write %s: %w", args[1], err)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "converted %s (%s/%s, %d bytes) -> %s (%s/%s, %d bytes)\n",
		args[0], from.Codec, from.Compression, from.Size,
		args[1], opts.Codec, opts.Compression, fileSize(args[1]))
	return err
}

// writeOptions reads the --codec, --compression and --bare flags.
func writeOptions(cmd *cobra.Command) (artifact.WriteOptions, error) {
	codecName, _ := cmd.Flags().GetString("codec")
	compressionName, _ := cmd.Flags().GetString("compression")
	bare, _ := cmd.Flags().GetBool("bare")

	codec, err := artifact.ParseCodec(codecName)
	if err != nil {
		return artifact.WriteOptions{}, err
	}
	compression, err := artifact.ParseCompression(compressionName)
	if err != nil {
		return artifact.WriteOptions{}, err
	}
	return artifact.WriteOptions{Codec: codec, Compression: compression, Bare: bare}, nil
}
