package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cft "github.com/dhamidi/javalyzer/classfile/classfiletest"
	"github.com/dhamidi/javalyzer/config"
	"github.com/dhamidi/javalyzer/format"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvConfig, "")
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func classDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	bad := cft.New().This("Bad").Super("java/lang/Object").
		Field(0, "x", "I").Field(0, "x", "J")
	files := map[string][]byte{
		"Hello.class": cft.HelloWorld().Bytes(),
		"Bad.class":   bad.Bytes(),
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestParseCommand(t *testing.T) {
	dir := classDir(t)
	out, err := run(t, "parse", filepath.Join(dir, "Hello.class"))
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	if !strings.HasPrefix(out, "class\tHelloWorld\t") {
		t.Errorf("parse output starts with %q", strings.SplitN(out, "\n", 2)[0])
	}

	if _, err := run(t, "parse", "-f", "xml", filepath.Join(dir, "Hello.class")); err == nil {
		t.Error("parse -f xml succeeded")
	}
}

func TestCheckCommand(t *testing.T) {
	dir := classDir(t)
	out, err := run(t, "check", dir)
	if err == nil {
		t.Fatal("check with a rejected class succeeded")
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("check wrote %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "rejected\t"+filepath.Join(dir, "Bad.class")) {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "ok\t"+filepath.Join(dir, "Hello.class")) {
		t.Errorf("line 1 = %q", lines[1])
	}

	if _, err := run(t, "check", filepath.Join(dir, "Hello.class")); err != nil {
		t.Errorf("check of a valid class error = %v", err)
	}
}

func TestCheckCompressedOutput(t *testing.T) {
	dir := classDir(t)
	report := filepath.Join(t.TempDir(), "report.json"+format.CompressedSuffix)
	if _, err := run(t, "check", "-f", "json", "-o", report, filepath.Join(dir, "Hello.class")); err != nil {
		t.Fatalf("check error = %v", err)
	}
	f, err := os.Open(report)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(format.NewCompressedReader(f)); err != nil {
		t.Fatalf("decompress report: %v", err)
	}
	if !strings.Contains(buf.String(), `"status": "ok"`) {
		t.Errorf("report = %s", buf.String())
	}
}

func TestCheckConfigFile(t *testing.T) {
	dir := classDir(t)
	cfgPath := filepath.Join(t.TempDir(), "javalyzer.toml")
	if err := os.WriteFile(cfgPath, []byte("[output]\nformat = \"yaml\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "--config", cfgPath, "check", filepath.Join(dir, "Hello.class"))
	if err != nil {
		t.Fatalf("check error = %v", err)
	}
	if !strings.Contains(out, "status: ok") {
		t.Errorf("expected yaml output, got:\n%s", out)
	}
}

func TestScanCommand(t *testing.T) {
	dir := classDir(t)
	out, err := run(t, "scan", dir)
	if err != nil {
		t.Fatalf("scan error = %v", err)
	}
	for _, want := range []string{"classes\t2\n", "unique\t2\n", "ok\t1\n", "rejected\t1\n", "Bad.class: check: duplicate field"} {
		if !strings.Contains(out, want) {
			t.Errorf("scan output missing %q:\n%s", want, out)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if out != "javalyzer "+version+"\n" {
		t.Errorf("version output = %q", out)
	}
}
