package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javalyzer/config"
	"github.com/dhamidi/javalyzer/format"
	"github.com/dhamidi/javalyzer/scan"
)

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <path>...",
		Short: "Parse and check class files, directories and jars",
		Long: `Parse and check every class reachable from the given paths.

Directories are walked for .class files and archives; archives (.jar and
.zip by default) are read entry by entry. One report is written per
class. The command exits with status 1 if any class failed.

Examples:
  javalyzer check build/classes
  javalyzer check -f json -o report.json.lz4 app.jar
  javalyzer check --method-duplicates=name -j 4 lib/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := scan.New(a.cfg.ScanOptions()).Scan(cmd.Context(), args)
			if err != nil {
				return err
			}
			if err := a.writeWith(cmd, func(enc format.Encoder) error {
				return enc.EncodeReports(scan.Reports(results))
			}); err != nil {
				return err
			}
			if failed := scan.Failed(results); failed > 0 {
				return fmt.Errorf("%d of %d classes failed", failed, len(results))
			}
			return nil
		},
	}

	config.BindFlags(cmd.Flags())

	return cmd
}
