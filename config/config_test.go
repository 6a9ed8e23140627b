package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/pflag"

	"github.com/dhamidi/javalyzer/check"
	"github.com/dhamidi/javalyzer/classfile"
	cft "github.com/dhamidi/javalyzer/classfile/classfiletest"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Decode.MaxDepth != classfile.DefaultMaxDepth {
		t.Errorf("MaxDepth = %d, want %d", cfg.Decode.MaxDepth, classfile.DefaultMaxDepth)
	}
	if cfg.Output.Format != "line" {
		t.Errorf("Format = %q, want line", cfg.Output.Format)
	}
	if got := cfg.CheckOptions(); got != nil {
		t.Errorf("CheckOptions() = %v, want nil", got)
	}

	cfg.Scan.Archives[0] = ".changed"
	if Default().Scan.Archives[0] == ".changed" {
		t.Error("Default() shares its archives slice")
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadFormats(t *testing.T) {
	want := Default()
	want.Scan.Workers = 2
	want.Scan.Archives = []string{".jar", ".war"}
	want.Check.MethodDuplicates = DuplicatesName
	want.Output.Format = "json"

	tests := []struct {
		name    string
		content string
	}{
		{"javalyzer.toml", `
[check]
method_duplicates = "name"

[scan]
workers = 2
archives = [".jar", ".war"]

[output]
format = "json"
`},
		{"javalyzer.yaml", `
check:
  method_duplicates: name
scan:
  workers: 2
  archives: [".jar", ".war"]
output:
  format: json
`},
		{"javalyzer.jsonc", `{
  // overloads are not allowed here
  "check": {"method_duplicates": "name"},
  "scan": {
    "workers": 2,
    "archives": [".jar", ".war"], /* trailing comma below */
  },
  "output": {"format": "json"},
}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.name, tt.content))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !reflect.DeepEqual(cfg, want) {
				t.Errorf("Load() = %+v, want %+v", cfg, want)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{"unknown toml key", "c.toml", "[scan]\nthreads = 4\n", nil},
		{"unknown yaml key", "c.yaml", "scan:\n  threads: 4\n", nil},
		{"unknown json key", "c.json", `{"scan": {"threads": 4}}`, nil},
		{"unsupported extension", "c.ini", "workers=4", ErrUnsupportedFile},
		{"bad format", "c.toml", "[output]\nformat = \"xml\"\n", ErrInvalid},
		{"bad duplicates rule", "c.yaml", "check:\n  method_duplicates: both\n", ErrInvalid},
		{"negative workers", "c.toml", "[scan]\nworkers = -1\n", ErrInvalid},
		{"archive without dot", "c.toml", "[scan]\narchives = [\"jar\"]\n", ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.file, tt.content))
			if err == nil {
				t.Fatal("Load() error = nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want %v", err, os.ErrNotExist)
	}
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindLogFlags(fs)
	BindFlags(fs)
	return fs
}

func TestApplyFlagsPrecedence(t *testing.T) {
	cfg, err := Load(writeConfig(t, "c.toml", "[scan]\nworkers = 2\n\n[output]\nformat = \"yaml\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	fs := newFlagSet()
	if err := fs.Parse([]string{"--workers=3", "-vv", "--archives=.ear,.jar"}); err != nil {
		t.Fatal(err)
	}
	if err := cfg.ApplyFlags(fs); err != nil {
		t.Fatalf("ApplyFlags() error = %v", err)
	}

	if cfg.Scan.Workers != 3 {
		t.Errorf("Workers = %d, want 3 from flags", cfg.Scan.Workers)
	}
	if cfg.Output.Format != "yaml" {
		t.Errorf("Format = %q, want yaml from file", cfg.Output.Format)
	}
	if cfg.Decode.MaxDepth != classfile.DefaultMaxDepth {
		t.Errorf("MaxDepth = %d, want default", cfg.Decode.MaxDepth)
	}
	if cfg.Log.Verbosity != 2 {
		t.Errorf("Verbosity = %d, want 2", cfg.Log.Verbosity)
	}
	if want := []string{".ear", ".jar"}; !reflect.DeepEqual(cfg.Scan.Archives, want) {
		t.Errorf("Archives = %v, want %v", cfg.Scan.Archives, want)
	}
}

func TestApplyFlagsValidates(t *testing.T) {
	fs := newFlagSet()
	if err := fs.Parse([]string{"-f", "xml"}); err != nil {
		t.Fatal(err)
	}
	if err := Default().ApplyFlags(fs); !errors.Is(err, ErrInvalid) {
		t.Errorf("ApplyFlags() error = %v, want %v", err, ErrInvalid)
	}
}

func TestApplyFlagsPartialSet(t *testing.T) {
	fs := pflag.NewFlagSet("partial", pflag.ContinueOnError)
	fs.String(FlagFormat, "line", "")
	if err := fs.Parse([]string{"--format=cbor"}); err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	if err := cfg.ApplyFlags(fs); err != nil {
		t.Fatalf("ApplyFlags() error = %v", err)
	}
	if cfg.Output.Format != "cbor" {
		t.Errorf("Format = %q, want cbor", cfg.Output.Format)
	}
}

func TestConfigPath(t *testing.T) {
	env := func(vals map[string]string) func(string) (string, bool) {
		return func(k string) (string, bool) {
			v, ok := vals[k]
			return v, ok
		}
	}
	tests := []struct {
		name string
		args []string
		env  map[string]string
		want string
	}{
		{"none", nil, nil, ""},
		{"env", nil, map[string]string{EnvConfig: "/etc/j.toml"}, "/etc/j.toml"},
		{"flag wins", []string{"--config=local.yaml"}, map[string]string{EnvConfig: "/etc/j.toml"}, "local.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFlagSet()
			if err := fs.Parse(tt.args); err != nil {
				t.Fatal(err)
			}
			if got := ConfigPath(fs, env(tt.env)); got != tt.want {
				t.Errorf("ConfigPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScanOptions(t *testing.T) {
	cfg := Default()
	cfg.Check.MethodDuplicates = DuplicatesName
	cfg.Scan.Workers = 5
	cfg.Decode.MaxDepth = 8

	opts := cfg.ScanOptions()
	if opts.Workers != 5 || opts.MaxDepth != 8 || len(opts.Check) != 1 {
		t.Errorf("ScanOptions() = %+v", opts)
	}
	if len(cfg.ParseOptions()) != 1 {
		t.Errorf("ParseOptions() = %v", cfg.ParseOptions())
	}

	overloaded := cft.New().This("O").Super("java/lang/Object").
		Method(classfile.AccNative, "f", "()V").
		Method(classfile.AccNative, "f", "(I)V").Parse(t)
	if err := check.Check(overloaded); err != nil {
		t.Errorf("default rule rejected overloads: %v", err)
	}
	if err := check.Check(overloaded, cfg.CheckOptions()...); !errors.Is(err, check.ErrDuplicateMethod) {
		t.Errorf("name rule error = %v, want %v", err, check.ErrDuplicateMethod)
	}
}
