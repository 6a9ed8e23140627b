package lsp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"

	cft "github.com/dhamidi/javalyzer/classfile/classfiletest"
	"github.com/dhamidi/javalyzer/scan"
)

func TestURIToPath(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"file:///tmp/Hello.class", "/tmp/Hello.class"},
		{"file:///tmp/a%20b/Hello.class", "/tmp/a b/Hello.class"},
		{"file:///tmp/x/../Hello.class", "/tmp/Hello.class"},
		{"/plain/path.class", "/plain/path.class"},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := uriToPath(tt.uri)
			if err != nil {
				t.Fatalf("uriToPath() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("uriToPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDiagnose(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	tests := []struct {
		name        string
		path        string
		wantMessage string
	}{
		{"valid class", write("Hello.class", cft.HelloWorld().Bytes()), ""},
		{"rejected class", write("Bad.class", cft.New().This("Bad").Super("java/lang/Object").
			Field(0, "x", "I").Field(0, "x", "J").Bytes()), "duplicate field"},
		{"not a class", write("Junk.class", []byte("not a class")), "magic"},
		{"missing file", filepath.Join(dir, "Gone.class"), "no such file"},
	}

	ls := NewServer("test", scan.Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ls.Diagnose(tt.path)
			if got == nil {
				t.Fatal("Diagnose() = nil, want non-nil slice")
			}
			if tt.wantMessage == "" {
				if len(got) != 0 {
					t.Errorf("Diagnose() = %+v, want none", got)
				}
				return
			}
			if len(got) != 1 {
				t.Fatalf("Diagnose() returned %d diagnostics, want 1", len(got))
			}
			d := got[0]
			if !strings.Contains(d.Message, tt.wantMessage) {
				t.Errorf("Message = %q, want it to contain %q", d.Message, tt.wantMessage)
			}
			if d.Source == nil || *d.Source != "javalyzer" {
				t.Errorf("Source = %v, want javalyzer", d.Source)
			}
			if d.Severity == nil || *d.Severity != protocol.DiagnosticSeverityError {
				t.Errorf("Severity = %v, want error", d.Severity)
			}
			if d.Range != (protocol.Range{}) {
				t.Errorf("Range = %+v, want 0:0-0:0", d.Range)
			}
		})
	}
}
