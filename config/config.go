// Package config loads javalyzer settings.
//
// Settings come from three layers, later ones winning: built-in defaults,
// one configuration file, and command line flags. The file is named by
// the --config flag or the JAVALYZER_CONFIG environment variable; its
// extension selects the syntax (.toml, .yaml/.yml, or .json/.jsonc).
// There is no automatic discovery.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/javalyzer/check"
	"github.com/dhamidi/javalyzer/classfile"
	"github.com/dhamidi/javalyzer/format"
	"github.com/dhamidi/javalyzer/scan"
)

// EnvConfig names the environment variable consulted when no --config
// flag is given.
const EnvConfig = "JAVALYZER_CONFIG"

const (
	DuplicatesSignature = "signature"
	DuplicatesName      = "name"
)

var (
	ErrUnsupportedFile = errors.New("unsupported config file type")
	ErrInvalid         = errors.New("invalid config")
)

type Config struct {
	Decode DecodeConfig `toml:"decode" yaml:"decode" json:"decode"`
	Check  CheckConfig  `toml:"check" yaml:"check" json:"check"`
	Scan   ScanConfig   `toml:"scan" yaml:"scan" json:"scan"`
	Output OutputConfig `toml:"output" yaml:"output" json:"output"`
	Log    LogConfig    `toml:"log" yaml:"log" json:"log"`
}

type DecodeConfig struct {
	// MaxDepth bounds attribute and annotation nesting.
	MaxDepth int `toml:"max_depth" yaml:"max_depth" json:"max_depth"`
}

type CheckConfig struct {
	// MethodDuplicates is "signature" to allow overloads or "name" to
	// reject any two methods sharing a name.
	MethodDuplicates string `toml:"method_duplicates" yaml:"method_duplicates" json:"method_duplicates"`
}

type ScanConfig struct {
	// Workers is the number of classes checked at once; 0 means one per
	// CPU.
	Workers int `toml:"workers" yaml:"workers" json:"workers"`
	// Archives lists extensions opened as zip archives.
	Archives []string `toml:"archives" yaml:"archives" json:"archives"`
}

type OutputConfig struct {
	Format string `toml:"format" yaml:"format" json:"format"`
	// File receives reports; empty means stdout. A .lz4 suffix
	// compresses the output.
	File string `toml:"file" yaml:"file" json:"file"`
}

type LogConfig struct {
	Verbosity int    `toml:"verbosity" yaml:"verbosity" json:"verbosity"`
	File      string `toml:"file" yaml:"file" json:"file"`
}

func Default() *Config {
	return &Config{
		Decode: DecodeConfig{MaxDepth: classfile.DefaultMaxDepth},
		Check:  CheckConfig{MethodDuplicates: DuplicatesSignature},
		Scan:   ScanConfig{Archives: slices.Clone(scan.DefaultArchives)},
		Output: OutputConfig{Format: "line"},
	}
}

// Load returns the defaults overlaid with the file at path. An empty
// path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := decode(path, data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// decode rejects keys the Config does not know, so typos surface.
func decode(path string, data []byte, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(cfg)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	case ".json", ".jsonc":
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		return dec.Decode(cfg)
	default:
		return fmt.Errorf("%w: %q (expected .toml, .yaml, .yml, .json or .jsonc)", ErrUnsupportedFile, ext)
	}
}

func (c *Config) Validate() error {
	if !slices.Contains(format.Formats, c.Output.Format) {
		return fmt.Errorf("%w: output.format %q (expected one of %s)", ErrInvalid, c.Output.Format, strings.Join(format.Formats, ", "))
	}
	if c.Check.MethodDuplicates != DuplicatesSignature && c.Check.MethodDuplicates != DuplicatesName {
		return fmt.Errorf("%w: check.method_duplicates %q (expected %q or %q)", ErrInvalid, c.Check.MethodDuplicates, DuplicatesSignature, DuplicatesName)
	}
	if c.Scan.Workers < 0 {
		return fmt.Errorf("%w: scan.workers %d is negative", ErrInvalid, c.Scan.Workers)
	}
	if c.Decode.MaxDepth < 0 {
		return fmt.Errorf("%w: decode.max_depth %d is negative", ErrInvalid, c.Decode.MaxDepth)
	}
	for _, ext := range c.Scan.Archives {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%w: scan.archives entry %q must start with a dot", ErrInvalid, ext)
		}
	}
	return nil
}

func (c *Config) ParseOptions() []classfile.Option {
	return []classfile.Option{classfile.WithMaxDepth(c.Decode.MaxDepth)}
}

func (c *Config) CheckOptions() []check.Option {
	if c.Check.MethodDuplicates == DuplicatesName {
		return []check.Option{check.WithNameOnlyMethodDuplicates()}
	}
	return nil
}

func (c *Config) ScanOptions() scan.Options {
	return scan.Options{
		Workers:  c.Scan.Workers,
		Archives: c.Scan.Archives,
		MaxDepth: c.Decode.MaxDepth,
		Check:    c.CheckOptions(),
	}
}
