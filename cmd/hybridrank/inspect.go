// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/hybridrank/internal/recommend/artifact"
)

// inspectReport is the --json form of inspect.
type inspectReport struct {
	Path          string            `json:"path"`
	FormatVersion int               `json:"format_version"`
	Container     string            `json:"container"`
	Codec         string            `json:"codec"`
	Compression   string            `json:"compression"`
	Checksum      string            `json:"checksum,omitempty"`
	SizeBytes     int64             `json:"size_bytes"`
	Dim           int               `json:"dim"`
	Users         int               `json:"users"`
	Items         int               `json:"items"`
	Features      int               `json:"features"`
	CatalogItems  int               `json:"catalog_items"`
	HistoryUsers  int               `json:"history_users"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <path>",
		Short: "Print an artifact's format, dimensions and metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	cmd.Flags().Bool("json", false, "print the report as JSON")
	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	a, format, err := artifact.ReadFile(args[0])
	if err != nil {
		return err
	}
	if _, err := a.Store(false); err != nil {
		return err
	}

	report := inspectReport{
		Path:          args[0],
		FormatVersion: a.FormatVersion,
		Container:     format.Container(),
		Codec:         format.Codec.String(),
		Compression:   format.Compression.String(),
		Checksum:      format.Checksum,
		SizeBytes:     format.Size,
		Dim:           a.Dim,
		Users:         len(a.UserIndex),
		Items:         len(a.ItemIndex),
		Features:      len(a.FeatureIndex),
		CatalogItems:  len(a.Items),
		HistoryUsers:  len(a.Interactions),
		Metadata:      a.Metadata,
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return writeReport(out, &report)
}

func writeReport(out io.Writer, r *inspectReport) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"path", r.Path},
		{"format_version", fmt.Sprint(r.FormatVersion)},
		{"container", r.Container},
		{"codec", r.Codec},
		{"compression", r.Compression},
		{"checksum", r.Checksum},
		{"size_bytes", fmt.Sprint(r.SizeBytes)},
		{"dim", fmt.Sprint(r.Dim)},
		{"users", fmt.Sprint(r.Users)},
		{"items", fmt.Sprint(r.Items)},
		{"features", fmt.Sprint(r.Features)},
		{"catalog_items", fmt.Sprint(r.CatalogItems)},
		{"history_users", fmt.Sprint(r.HistoryUsers)},
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1]); err != nil {
			return err
		}
	}

	keys := make([]string, 0, len(r.Metadata))
	for k := range r.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(tw, "metadata.%s\t%s\n", k, r.Metadata[k]); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// fileSize returns the size of path, or 0 when it cannot be read.
func fileSize(path string) int64 {
	fi, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return fi.Size()
}
