package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javalyzer/classfile"
	"github.com/dhamidi/javalyzer/config"
	"github.com/dhamidi/javalyzer/format"
)

func newParseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file.class>",
		Short: "Decode a class file and dump its structure",
		Long: `Decode a class file and dump its structure.

Only decoding is performed; use "javalyzer check" to also apply the
structural rules.

Examples:
  javalyzer parse Hello.class
  javalyzer parse -f json Hello.class
  javalyzer parse -f cbor -o hello.cbor.lz4 Hello.class`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := classfile.ParseFile(args[0], a.cfg.ParseOptions()...)
			if err != nil {
				return fmt.Errorf("parse class file: %w", err)
			}
			return a.writeWith(cmd, func(enc format.Encoder) error {
				return enc.EncodeClass(cf)
			})
		},
	}

	d := config.Default()
	cmd.Flags().StringP(config.FlagFormat, "f", d.Output.Format, "output format (line, json, yaml, cbor)")
	cmd.Flags().StringP(config.FlagOutput, "o", d.Output.File, "output file; a .lz4 suffix compresses it")
	cmd.Flags().Int(config.FlagMaxDepth, d.Decode.MaxDepth, "maximum attribute and annotation nesting")

	return cmd
}
