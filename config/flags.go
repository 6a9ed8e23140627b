package config

import (
	"github.com/spf13/pflag"
)

// Flag names shared by BindFlags, BindLogFlags and ApplyFlags.
const (
	FlagConfig           = "config"
	FlagVerbose          = "verbose"
	FlagLog              = "log"
	FlagMaxDepth         = "max-depth"
	FlagMethodDuplicates = "method-duplicates"
	FlagWorkers          = "workers"
	FlagArchives         = "archives"
	FlagFormat           = "format"
	FlagOutput           = "output"
)

// BindLogFlags registers the flags every command shares. The defaults
// shown in help are the built-in ones.
func BindLogFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(FlagConfig, "", "configuration file (.toml, .yaml or .jsonc); defaults to $"+EnvConfig)
	fs.CountP(FlagVerbose, "v", "increase log verbosity (repeatable)")
	fs.String(FlagLog, d.Log.File, "write logs to this file instead of stderr")
}

// BindFlags registers the flags that override decode, check, scan and
// output settings.
func BindFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.Int(FlagMaxDepth, d.Decode.MaxDepth, "maximum attribute and annotation nesting")
	fs.String(FlagMethodDuplicates, d.Check.MethodDuplicates, `duplicate method rule: "signature" or "name"`)
	fs.IntP(FlagWorkers, "j", d.Scan.Workers, "classes checked in parallel (0 = one per CPU)")
	fs.StringSlice(FlagArchives, d.Scan.Archives, "extensions opened as zip archives")
	fs.StringP(FlagFormat, "f", d.Output.Format, "output format (line, json, yaml, cbor)")
	fs.StringP(FlagOutput, "o", d.Output.File, "output file; a .lz4 suffix compresses it")
}

// ConfigPath returns the --config value, falling back to lookupEnv for
// EnvConfig.
func ConfigPath(fs *pflag.FlagSet, lookupEnv func(string) (string, bool)) string {
	if path, err := fs.GetString(FlagConfig); err == nil && path != "" {
		return path
	}
	if path, ok := lookupEnv(EnvConfig); ok {
		return path
	}
	return ""
}

// ApplyFlags copies every flag the user set explicitly onto c, then
// validates the result. Flags missing from fs are ignored.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	var err error
	set := func(name string, apply func()) {
		if f := fs.Lookup(name); f != nil && f.Changed && err == nil {
			apply()
		}
	}
	set(FlagVerbose, func() { c.Log.Verbosity, err = fs.GetCount(FlagVerbose) })
	set(FlagLog, func() { c.Log.File, err = fs.GetString(FlagLog) })
	set(FlagMaxDepth, func() { c.Decode.MaxDepth, err = fs.GetInt(FlagMaxDepth) })
	set(FlagMethodDuplicates, func() { c.Check.MethodDuplicates, err = fs.GetString(FlagMethodDuplicates) })
	set(FlagWorkers, func() { c.Scan.Workers, err = fs.GetInt(FlagWorkers) })
	set(FlagArchives, func() { c.Scan.Archives, err = fs.GetStringSlice(FlagArchives) })
	set(FlagFormat, func() { c.Output.Format, err = fs.GetString(FlagFormat) })
	set(FlagOutput, func() { c.Output.File, err = fs.GetString(FlagOutput) })
	if err != nil {
		return err
	}
	return c.Validate()
}
