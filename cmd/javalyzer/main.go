package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/javalyzer/config"
	"github.com/dhamidi/javalyzer/format"
)

var version = "0.1.0"

// app carries the settings resolved before any subcommand runs.
type app struct {
	cfg *config.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Default()}

	rootCmd := &cobra.Command{
		Use:          "javalyzer",
		Short:        "Java class file decoder and checker",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.configure(cmd)
		},
	}
	config.BindLogFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newScanCmd(a))
	rootCmd.AddCommand(newLSPCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// configure layers the config file and the command's flags over the
// defaults, then sets up logging.
func (a *app) configure(cmd *cobra.Command) error {
	cfg, err := config.Load(config.ConfigPath(cmd.Flags(), os.LookupEnv))
	if err != nil {
		return err
	}
	if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
		return err
	}
	a.cfg = cfg

	var logPath *string
	if cfg.Log.File != "" {
		logPath = &cfg.Log.File
	}
	commonlog.Configure(cfg.Log.Verbosity, logPath)
	return nil
}

// openOutput returns the configured output file, or the command's
// standard output when none is set.
func (a *app) openOutput(cmd *cobra.Command) (io.WriteCloser, error) {
	if a.cfg.Output.File == "" || a.cfg.Output.File == "-" {
		return nopCloser{cmd.OutOrStdout()}, nil
	}
	return format.Create(a.cfg.Output.File)
}

// writeWith encodes through the configured format and closes the
// output, reporting the first error.
func (a *app) writeWith(cmd *cobra.Command, encode func(format.Encoder) error) (err error) {
	out, err := a.openOutput(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()
	enc, err := format.NewEncoder(a.cfg.Output.Format, out)
	if err != nil {
		return err
	}
	if err := encode(enc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
