// Package mcp serves the diagnostic engine as Model Context Protocol tools
// over newline-delimited JSON-RPC 2.0 on stdio.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/blackwell-systems/funnelplan/internal/store"
	"github.com/rs/zerolog"
)

const protocolVersion = "2024-11-05"

// JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

// DiagnosticLister reads saved diagnostics.
type DiagnosticLister interface {
	ListDiagnostics(ctx context.Context, clientID string, limit int) ([]store.DiagnosticSummary, error)
}

// Server is an MCP stdio server.
type Server struct {
	tools       []toolDef
	byName      map[string]int
	diagnostics DiagnosticLister
	version     string
	log         zerolog.Logger
}

// toolDef describes a registered MCP tool.
type toolDef struct {
	Name        string
	Description string
	InputSchema json.RawMessage
	Handler     toolHandler
}

// toolHandler runs a tool. The returned value is sent back as JSON text.
type toolHandler func(ctx context.Context, args json.RawMessage) (any, error)

type request struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method"`
	Params  json.RawMessage  `json:"params,omitempty"`
}

type response struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Result  any              `json:"result,omitempty"`
	Error   *rpcError        `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// toolsCallResult is the MCP content envelope of a tool result.
type toolsCallResult struct {
	Content []mcpContent `json:"content"`
	IsError bool         `json:"isError"`
}

type mcpContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type toolListEntry struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// NewServer constructs a Server. diagnostics backs list_diagnostics and may
// be nil, in which case that tool reports an error.
func NewServer(diagnostics DiagnosticLister, version string, log zerolog.Logger) *Server {
	s := &Server{
		byName:      map[string]int{},
		diagnostics: diagnostics,
		version:     version,
		log:         log,
	}
	addTools(s)
	return s
}

// registerTool adds def, replacing any tool with the same name.
func (s *Server) registerTool(def toolDef) {
	if i, ok := s.byName[def.Name]; ok {
		s.tools[i] = def
		return
	}
	s.byName[def.Name] = len(s.tools)
	s.tools = append(s.tools, def)
}

// Run serves requests read from r until r is exhausted or ctx is cancelled.
// It returns nil on either, and an error only when reading or writing fails.
func (s *Server) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	bw := bufio.NewWriter(w)
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			resp, reply := s.handle(ctx, line)
			if !reply {
				continue
			}
			if err := writeResponse(bw, resp); err != nil {
				return err
			}
		}
	}
}

// handle answers one request line. reply is false for notifications.
func (s *Server) handle(ctx context.Context, line string) (resp response, reply bool) {
	resp.JSONRPC = "2.0"

	var req request
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		s.log.Debug().Err(err).Msg("malformed request")
		resp.Error = &rpcError{Code: codeParseError, Message: "Parse error"}
		return resp, true
	}
	if req.ID == nil {
		return resp, false
	}
	resp.ID = req.ID

	switch req.Method {
	case "initialize":
		resp.Result = s.initialize()
	case "ping":
		resp.Result = map[string]any{}
	case "tools/list":
		resp.Result = s.listTools()
	case "tools/call":
		var params struct {
			Name      string          `json:"name"`
			Arguments json.RawMessage `json:"arguments,omitempty"`
		}
		if err := json.Unmarshal(req.Params, &params); err != nil {
			resp.Error = &rpcError{Code: codeInvalidParams, Message: "Invalid params"}
			break
		}
		resp.Result = s.callTool(ctx, params.Name, params.Arguments)
	default:
		resp.Error = &rpcError{Code: codeMethodNotFound, Message: "Method not found"}
	}
	return resp, true
}

func (s *Server) initialize() map[string]any {
	return map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities":    map[string]any{"tools": map[string]any{}},
		"serverInfo":      map[string]any{"name": "funnelplan", "version": s.version},
	}
}

func (s *Server) listTools() map[string]any {
	entries := make([]toolListEntry, len(s.tools))
	for i, t := range s.tools {
		entries[i] = toolListEntry{Name: t.Name, Description: t.Description, InputSchema: t.InputSchema}
	}
	return map[string]any{"tools": entries}
}

// callTool runs a tool and wraps its result or error as MCP content.
func (s *Server) callTool(ctx context.Context, name string, args json.RawMessage) toolsCallResult {
	i, ok := s.byName[name]
	if !ok {
		return errorResult(fmt.Sprintf("unknown tool: %s", name))
	}
	if len(args) == 0 || string(args) == "null" {
		args = json.RawMessage(`{}`)
	}

	start := time.Now()
	result, err := s.tools[i].Handler(ctx, args)
	s.log.Debug().Str("tool", name).Dur("elapsed", time.Since(start)).Err(err).Msg("tool call")
	if err != nil {
		return errorResult(err.Error())
	}

	text, err := json.Marshal(result)
	if err != nil {
		return errorResult(err.Error())
	}
	return toolsCallResult{Content: []mcpContent{{Type: "text", Text: string(text)}}}
}

func errorResult(msg string) toolsCallResult {
	return toolsCallResult{Content: []mcpContent{{Type: "text", Text: msg}}, IsError: true}
}

// writeResponse writes resp as one JSON line and flushes.
func writeResponse(bw *bufio.Writer, resp response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if _, err := bw.Write(data); err != nil {
		return err
	}
	return bw.Flush()
}
