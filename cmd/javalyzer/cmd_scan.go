package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javalyzer/config"
	"github.com/dhamidi/javalyzer/format"
	"github.com/dhamidi/javalyzer/scan"
)

func newScanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <path>...",
		Short: "Summarize the classes found in directories and jars",
		Long: `Parse and check every class reachable from the given paths and print
a summary: how many classes were found, how many were distinct, and
every class that failed.

Unlike check, scan exits with status 0 when classes fail.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := scan.New(a.cfg.ScanOptions()).Scan(cmd.Context(), args)
			if err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), results)
		},
	}

	config.BindFlags(cmd.Flags())

	return cmd
}

func writeSummary(w io.Writer, results []scan.Result) error {
	counts := make(map[format.Status]int)
	unique := 0
	for _, r := range results {
		counts[r.Status]++
		if r.DuplicateOf == "" {
			unique++
		}
	}

	fmt.Fprintf(w, "classes\t%d\n", len(results))
	fmt.Fprintf(w, "unique\t%d\n", unique)
	for _, status := range []format.Status{format.StatusOK, format.StatusRejected, format.StatusInvalid, format.StatusError} {
		fmt.Fprintf(w, "%s\t%d\n", status, counts[status])
	}
	for _, r := range results {
		if r.Err == nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "  - %s: %v\n", r.Path, r.Err); err != nil {
			return err
		}
	}
	return nil
}
