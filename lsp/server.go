// Package lsp is a language server that reports check failures for
// opened .class files as diagnostics.
package lsp

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/javalyzer/scan"
)

const lsName = "javalyzer"

func logger() commonlog.Logger { return commonlog.GetLogger("javalyzer.lsp") }

type Server struct {
	scanner *scan.Scanner
	handler protocol.Handler
	server  *server.Server
	version string
}

// NewServer returns a server that checks classes with opts.
func NewServer(version string, opts scan.Options) *Server {
	ls := &Server{
		scanner: scan.New(opts),
		version: version,
	}

	ls.handler = protocol.Handler{
		Initialize:           ls.initialize,
		Initialized:          ls.initialized,
		Shutdown:             ls.shutdown,
		SetTrace:             ls.setTrace,
		TextDocumentDidOpen:  ls.textDocumentDidOpen,
		TextDocumentDidSave:  ls.textDocumentDidSave,
		TextDocumentDidClose: ls.textDocumentDidClose,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Save:      &protocol.SaveOptions{IncludeText: boolPtr(false)},
	}

	if params.ClientInfo != nil {
		logger().Infof("initialize from %s", params.ClientInfo.Name)
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.publish(ctx, params.TextDocument.URI)
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	ls.publish(ctx, params.TextDocument.URI)
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

// publish ignores documents that are not class files on disk.
func (ls *Server) publish(ctx *glsp.Context, uri protocol.DocumentUri) {
	path, err := uriToPath(uri)
	if err != nil || filepath.Ext(path) != ".class" {
		return
	}
	diagnostics := ls.Diagnose(path)
	logger().Debugf("%s: %d diagnostics", path, len(diagnostics))
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// Diagnose reads, parses and checks the class at path. The result holds
// at most one diagnostic, since checking stops at the first failure.
func (ls *Server) Diagnose(path string) []protocol.Diagnostic {
	data, err := os.ReadFile(path)
	if err != nil {
		logger().Warningf("%s: %s", path, err)
		return []protocol.Diagnostic{diagnostic(err.Error())}
	}
	r := ls.scanner.ScanBytes(path, data)
	if r.Err == nil {
		return []protocol.Diagnostic{}
	}
	return []protocol.Diagnostic{diagnostic(r.Err.Error())}
}

// diagnostic places message at the start of the document; class files
// have no source positions to point at.
func diagnostic(message string) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := lsName
	return protocol.Diagnostic{
		Range:    protocol.Range{},
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}
