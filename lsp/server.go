// Package lsp serves the document queries over the Language Server Protocol.
package lsp

import (
	"context"
	"log/slog"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	// Backend for glsp's internal logging.
	_ "github.com/tliron/commonlog/simple"

	"github.com/sevigo/gqlsense/parsers/graphql"
	"github.com/sevigo/gqlsense/query"
)

const languageID = "graphql"

var symbolKinds = map[graphql.Category]protocol.SymbolKind{
	graphql.CategoryClass:     protocol.SymbolKindClass,
	graphql.CategoryEnum:      protocol.SymbolKindEnum,
	graphql.CategoryInterface: protocol.SymbolKindInterface,
	graphql.CategoryConstant:  protocol.SymbolKindConstant,
	graphql.CategoryStruct:    protocol.SymbolKindStruct,
}

// Server is a stdio language server for GraphQL schema files.
type Server struct {
	name    string
	version string
	logger  *slog.Logger
	docs    *Documents
	handler protocol.Handler

	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	telemetry      *telemetry
}

type Option func(*Server)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// WithTracerProvider overrides the global OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Server) {
		if tp != nil {
			s.tracerProvider = tp
		}
	}
}

// WithMeterProvider overrides the global OpenTelemetry meter provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(s *Server) {
		if mp != nil {
			s.meterProvider = mp
		}
	}
}

func NewServer(name string, opts ...Option) *Server {
	s := &Server{
		name:           name,
		version:        "dev",
		logger:         slog.Default(),
		docs:           NewDocuments(),
		tracerProvider: otel.GetTracerProvider(),
		meterProvider:  otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(s)
	}

	t, err := newTelemetry(s.tracerProvider, s.meterProvider)
	if err != nil {
		s.logger.Warn("Telemetry disabled", "error", err)
		t, _ = newTelemetry(tracenoop.NewTracerProvider(), metricnoop.NewMeterProvider())
	}
	s.telemetry = t

	s.handler = protocol.Handler{
		Initialize:                 s.initialize,
		Initialized:                s.initialized,
		Shutdown:                   s.shutdown,
		SetTrace:                   s.setTrace,
		TextDocumentDidOpen:        s.didOpen,
		TextDocumentDidChange:      s.didChange,
		TextDocumentDidClose:       s.didClose,
		TextDocumentDefinition:     s.definition,
		TextDocumentHover:          s.hover,
		TextDocumentDocumentSymbol: s.documentSymbol,
	}
	return s
}

// Handler exposes the protocol handler table.
func (s *Server) Handler() *protocol.Handler {
	return &s.handler
}

func (s *Server) Documents() *Documents {
	return s.docs
}

// RunStdio serves requests on stdin/stdout until the client exits.
// verbosity controls glsp's own logging, which goes to stderr.
func (s *Server) RunStdio(verbosity int) error {
	commonlog.Configure(verbosity, nil)
	s.logger.Info("Starting language server", "name", s.name, "version", s.version)
	return server.NewServer(&s.handler, s.name, false).RunStdio()
}

func (s *Server) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	if params.ClientInfo != nil {
		s.logger.Debug("Client connected", "client", params.ClientInfo.Name)
	}

	capabilities := s.handler.CreateServerCapabilities()
	openClose := true
	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = protocol.TextDocumentSyncOptions{
		OpenClose: &openClose,
		Change:    &syncKind,
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    s.name,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) didOpen(_ *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := params.TextDocument
	if doc.LanguageID != "" && doc.LanguageID != languageID {
		s.logger.Debug("Opening document with foreign language id", "uri", doc.URI, "language", doc.LanguageID)
	}
	s.docs.Open(doc.URI, doc.Text)
	return nil
}

func (s *Server) didChange(_ *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if err := s.docs.Change(params.TextDocument.URI, params.ContentChanges); err != nil {
		s.logger.Warn("Failed to apply document change", "uri", params.TextDocument.URI, "error", err)
		return err
	}
	return nil
}

func (s *Server) didClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.Close(params.TextDocument.URI)
	return nil
}

func (s *Server) definition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	uri := params.TextDocument.URI
	results := 0
	obs := s.telemetry.begin(context.Background(), opDefinition, uri)
	defer func() { obs.finish(results) }()

	text, offset, err := s.docs.OffsetAt(uri, params.Position)
	if err != nil {
		s.logger.Debug("Definition requested for unknown document", "uri", uri)
		return nil, nil
	}

	r, found := query.Locate(text, offset)
	if !found {
		return nil, nil
	}
	results = 1
	return protocol.Location{URI: uri, Range: toProtocolRange(r)}, nil
}

func (s *Server) hover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	uri := params.TextDocument.URI
	results := 0
	obs := s.telemetry.begin(context.Background(), opHover, uri)
	defer func() { obs.finish(results) }()

	text, offset, err := s.docs.OffsetAt(uri, params.Position)
	if err != nil {
		s.logger.Debug("Hover requested for unknown document", "uri", uri)
		return nil, nil
	}

	h, found := query.Describe(text, offset)
	if !found {
		return nil, nil
	}
	results = 1
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: h.Value,
		},
	}, nil
}

func (s *Server) documentSymbol(_ *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	uri := params.TextDocument.URI
	symbols := []protocol.DocumentSymbol{}
	obs := s.telemetry.begin(context.Background(), opDocumentSymbol, uri)
	defer func() { obs.finish(len(symbols)) }()

	text, ok := s.docs.Text(uri)
	if !ok {
		s.logger.Debug("Symbols requested for unknown document", "uri", uri)
		return symbols, nil
	}

	for _, sym := range query.Enumerate(text) {
		detail := string(sym.Kind)
		symbols = append(symbols, protocol.DocumentSymbol{
			Name:           sym.Name,
			Detail:         &detail,
			Kind:           toSymbolKind(sym.Category),
			Range:          toProtocolRange(sym.Range),
			SelectionRange: toProtocolRange(sym.SelectionRange),
		})
	}
	return symbols, nil
}

func toSymbolKind(c graphql.Category) protocol.SymbolKind {
	if kind, ok := symbolKinds[c]; ok {
		return kind
	}
	return protocol.SymbolKindClass
}

func toProtocolRange(r query.Range) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: protocol.UInteger(r.Start.Line), Character: protocol.UInteger(r.Start.Character)},
		End:   protocol.Position{Line: protocol.UInteger(r.End.Line), Character: protocol.UInteger(r.End.Character)},
	}
}
