// Package lsp serves parse diagnostics and document outlines over the
// Language Server Protocol.
package lsp

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/dhamidi/cfront/project"
	"github.com/dhamidi/cfront/workspace"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "cfront"

type Server struct {
	workspace *workspace.Workspace
	handler   protocol.Handler
	server    *server.Server
	version   string
	log       commonlog.Logger
}

func NewServer(version string) *Server {
	ls := &Server{
		version: version,
		log:     commonlog.GetLogger("cfront.lsp"),
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	proj, err := project.LoadFrom(rootDir)
	if err != nil {
		return nil, err
	}
	ls.workspace, err = workspace.New(proj)
	if err != nil {
		return nil, err
	}

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
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
	if err := ls.workspace.ScanAll(context.Background()); err != nil {
		ls.log.Errorf("scan: %s", err)
		return nil
	}
	for _, path := range ls.workspace.Paths() {
		ls.publish(ctx, pathToURI(path), ls.workspace.GetFile(path))
	}
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
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	f := ls.workspace.UpdateFile(path, []byte(params.TextDocument.Text))
	ls.publish(ctx, params.TextDocument.URI, f)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			f := ls.workspace.UpdateFile(path, []byte(textChange.Text))
			ls.publish(ctx, params.TextDocument.URI, f)
		}
	}
	return nil
}

// Closed documents fall back to their content on disk.
func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	f := ls.workspace.ScanFile(path)
	if f.Err != nil {
		ls.workspace.RemoveFile(path)
		f = nil
	}
	ls.publish(ctx, params.TextDocument.URI, f)
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	var f *workspace.File
	if params.Text != nil {
		f = ls.workspace.UpdateFile(path, []byte(*params.Text))
	} else {
		f = ls.workspace.ScanFile(path)
	}
	ls.publish(ctx, params.TextDocument.URI, f)
	return nil
}

func (ls *Server) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	f := ls.workspace.GetFile(path)
	if f == nil || f.AST == nil {
		return nil, nil
	}
	return DocumentSymbols(f.AST, f.Content), nil
}

// publish replaces the client's diagnostics for uri. A nil file clears them.
func (ls *Server) publish(ctx *glsp.Context, uri protocol.DocumentUri, f *workspace.File) {
	diagnostics := []protocol.Diagnostic{}
	if f != nil {
		diagnostics = Diagnostics(f.Diagnostics, f.Content)
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
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

func pathToURI(path string) protocol.DocumentUri {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
