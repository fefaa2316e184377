// Package lsp implements the stdio JSON-RPC transport that drives the
// crontab analysis engine: document sync notifications, hover and
// semantic-token requests, and diagnostic publication.
package lsp

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Brendon-Hablutzel/crontab-ls/internal/diagnostic"
	"github.com/Brendon-Hablutzel/crontab-ls/internal/document"
	"github.com/Brendon-Hablutzel/crontab-ls/internal/semtok"
)

// ExitError carries the process exit code requested by the client's
// shutdown/exit sequence: 0 after a clean shutdown, 1 otherwise.
type ExitError struct {
	Code int
}

func (e ExitError) Error() string {
	return fmt.Sprintf("exit with code %d", e.Code)
}

var _ error = ExitError{}

// Server is a single-threaded LSP server over a reader/writer pair
// (stdin/stdout in production). All requests are dispatched from one
// loop, so the document store needs no locking.
type Server struct {
	r         *bufio.Reader
	w         *bufio.Writer
	store     *document.Store
	logger    *slog.Logger
	sessionID string
	shutdown  bool
}

func NewServer(r io.Reader, w io.Writer, store *document.Store, logger *slog.Logger, sessionID string) *Server {
	return &Server{
		r:         bufio.NewReader(r),
		w:         bufio.NewWriter(w),
		store:     store,
		logger:    logger.With("sessionID", sessionID),
		sessionID: sessionID,
	}
}

// Run reads and dispatches messages until the client disconnects or
// requests exit. An exit request surfaces as ExitError so the caller can
// propagate the code to the process.
func (s *Server) Run() error {
	s.logger.Info("server started")
	for {
		data, err := readMessage(s.r)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}
		var msg request
		if err := json.Unmarshal(data, &msg); err != nil {
			if err := s.sendError(nil, codeParseError, err.Error()); err != nil {
				return err
			}
			continue
		}
		if err := s.dispatch(&msg); err != nil {
			return err
		}
	}
}

func (s *Server) dispatch(msg *request) error {
	s.logger.Debug("dispatching", "method", msg.Method)
	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return nil
	case "shutdown":
		s.shutdown = true
		return s.reply(msg.ID, nil)
	case "exit":
		if s.shutdown {
			return ExitError{Code: 0}
		}
		return ExitError{Code: 1}
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/hover":
		return s.handleHover(msg)
	case "textDocument/semanticTokens/full":
		return s.handleSemanticTokens(msg)
	case "$/cancelRequest", "workspace/didChangeConfiguration":
		return nil
	default:
		if msg.ID != nil {
			return s.sendError(msg.ID, codeMethodNotFound, fmt.Sprintf("unsupported method %q", msg.Method))
		}
		return nil
	}
}

func (s *Server) handleInitialize(msg *request) error {
	return s.reply(msg.ID, map[string]any{
		"capabilities": map[string]any{
			"textDocumentSync": map[string]any{
				"openClose": true,
				// 1 = full document sync: every change carries the
				// whole text.
				"change": 1,
			},
			"hoverProvider": true,
			"semanticTokensProvider": map[string]any{
				"legend": map[string]any{
					"tokenTypes":     semtok.TokenTypes,
					"tokenModifiers": []string{},
				},
				"full": true,
			},
		},
		"serverInfo": map[string]any{
			"name": "crontab-ls",
		},
	})
}

func (s *Server) handleDidOpen(msg *request) error {
	var p struct {
		TextDocument struct {
			URI  string `json:"uri"`
			Text string `json:"text"`
		} `json:"textDocument"`
	}
	if err := json.Unmarshal(msg.Params, &p); err != nil {
		return nil
	}
	s.store.Open(p.TextDocument.URI, p.TextDocument.Text)
	return s.publishDiagnostics(p.TextDocument.URI)
}

func (s *Server) handleDidChange(msg *request) error {
	var p struct {
		TextDocument   textDocumentIdentifier `json:"textDocument"`
		ContentChanges []struct {
			Text string `json:"text"`
		} `json:"contentChanges"`
	}
	if err := json.Unmarshal(msg.Params, &p); err != nil {
		return nil
	}
	if len(p.ContentChanges) == 0 {
		return nil
	}
	// Full sync: the last change carries the complete document text.
	s.store.Change(p.TextDocument.URI, p.ContentChanges[len(p.ContentChanges)-1].Text)
	return s.publishDiagnostics(p.TextDocument.URI)
}

func (s *Server) handleDidClose(msg *request) error {
	var p struct {
		TextDocument textDocumentIdentifier `json:"textDocument"`
	}
	if err := json.Unmarshal(msg.Params, &p); err != nil {
		return nil
	}
	s.store.Close(p.TextDocument.URI)
	return nil
}

func (s *Server) handleHover(msg *request) error {
	if msg.ID == nil {
		return nil
	}
	var p struct {
		TextDocument textDocumentIdentifier `json:"textDocument"`
		Position     position               `json:"position"`
	}
	if err := json.Unmarshal(msg.Params, &p); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, err.Error())
	}
	result, err := s.store.Hover(p.TextDocument.URI, p.Position.Line, p.Position.Character)
	if err != nil {
		var notOpen *document.NotOpenError
		if errors.As(err, &notOpen) {
			return s.sendError(msg.ID, codeInvalidParams, err.Error())
		}
		return s.sendError(msg.ID, codeInternalError, err.Error())
	}
	if result == nil {
		return s.reply(msg.ID, nil)
	}
	return s.reply(msg.ID, hoverResponse{
		Contents: markupContent{Kind: "plaintext", Value: result.Text},
		Range: lspRange{
			Start: position{Line: result.Line, Character: result.StartChar},
			End:   position{Line: result.Line, Character: result.EndChar},
		},
	})
}

func (s *Server) handleSemanticTokens(msg *request) error {
	if msg.ID == nil {
		return nil
	}
	var p struct {
		TextDocument textDocumentIdentifier `json:"textDocument"`
	}
	if err := json.Unmarshal(msg.Params, &p); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, err.Error())
	}
	tokens, err := s.store.Tokens(p.TextDocument.URI)
	if err != nil {
		var notOpen *document.NotOpenError
		if errors.As(err, &notOpen) {
			return s.sendError(msg.ID, codeInvalidParams, err.Error())
		}
		return s.sendError(msg.ID, codeInternalError, err.Error())
	}
	data, err := semtok.Encode(tokens)
	if err != nil {
		// Legend miss: internal invariant violation, fatal to this
		// request only.
		s.logger.Error("semantic token encoding failed", "uri", p.TextDocument.URI, "error", err)
		return s.sendError(msg.ID, codeInternalError, err.Error())
	}
	return s.reply(msg.ID, struct {
		Data []uint32 `json:"data"`
	}{Data: data})
}

func (s *Server) publishDiagnostics(uri string) error {
	tokens, err := s.store.Tokens(uri)
	if err != nil {
		return fmt.Errorf("failed to load tokens for diagnostics: %w", err)
	}
	records := diagnostic.FromTokens(tokens)
	diags := make([]lspDiagnostic, len(records))
	for i, rec := range records {
		diags[i] = lspDiagnostic{
			Range: lspRange{
				Start: position{Line: rec.Line, Character: rec.StartChar},
				End:   position{Line: rec.Line, Character: rec.EndChar},
			},
			Severity: int(rec.Severity),
			Source:   rec.Source,
			Message:  rec.Message,
		}
	}
	s.logger.Debug("publishing diagnostics", "uri", uri, "count", len(diags))
	return s.notify("textDocument/publishDiagnostics", struct {
		URI         string          `json:"uri"`
		Diagnostics []lspDiagnostic `json:"diagnostics"`
	}{
		URI:         uri,
		Diagnostics: diags,
	})
}

func (s *Server) reply(id json.RawMessage, result any) error {
	data, err := json.Marshal(struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      json.RawMessage `json:"id"`
		Result  any             `json:"result"`
	}{JSONRPC: "2.0", ID: id, Result: result})
	if err != nil {
		return err
	}
	return writeMessage(s.w, data)
}

func (s *Server) sendError(id json.RawMessage, code int, message string) error {
	type rpcError struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	data, err := json.Marshal(struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      json.RawMessage `json:"id"`
		Error   rpcError        `json:"error"`
	}{JSONRPC: "2.0", ID: id, Error: rpcError{Code: code, Message: message}})
	if err != nil {
		return err
	}
	return writeMessage(s.w, data)
}

func (s *Server) notify(method string, params any) error {
	data, err := json.Marshal(struct {
		JSONRPC string `json:"jsonrpc"`
		Method  string `json:"method"`
		Params  any    `json:"params,omitempty"`
	}{JSONRPC: "2.0", Method: method, Params: params})
	if err != nil {
		return err
	}
	return writeMessage(s.w, data)
}
