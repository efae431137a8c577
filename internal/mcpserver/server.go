// Package mcpserver serves a tool registry over the Model Context Protocol
// on a pair of streams (JSON-RPC 2.0, stdio transport).
package mcpserver

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mwiater/steam-mcp/internal/tools"
)

// Registry is the tool surface the server exposes.
type Registry interface {
	Definitions() []tools.Definition
	Call(ctx context.Context, name string, args map[string]any) (string, error)
}

// Server answers MCP requests for one registry.
type Server struct {
	registry Registry
	info     serverInfo
	log      zerolog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for request tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// New returns a server advertising itself as name/version.
func New(registry Registry, name, version string, opts ...Option) *Server {
	s := &Server{
		registry: registry,
		info:     serverInfo{Name: name, Version: version},
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type inbound struct {
	body []byte
	f    framing
	err  error
}

// Serve reads requests from r and writes replies to w until r is exhausted
// or ctx is cancelled. Requests are handled one at a time, in order.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)

	msgs := make(chan inbound)
	go func() {
		defer close(msgs)
		for {
			body, f, err := readMessage(br)
			select {
			case msgs <- inbound{body: body, f: f, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			if msg.err != nil {
				if errors.Is(msg.err, io.EOF) {
					return nil
				}
				// Framing is lost; report once and stop.
				_ = writeMessage(bw, msg.f, makeError(nil, codeParseError, msg.err.Error()))
				return fmt.Errorf("read message: %w", msg.err)
			}
			if err := s.handleMessage(ctx, msg.body, msg.f, bw); err != nil {
				return fmt.Errorf("write response: %w", err)
			}
		}
	}
}

// handleMessage decodes and answers a single message. Only write failures
// are returned; protocol problems become JSON-RPC errors.
func (s *Server) handleMessage(ctx context.Context, body []byte, f framing, w *bufio.Writer) error {
	if len(body) > 0 && body[0] == '[' {
		return writeMessage(w, f, makeError(nil, codeInvalidRequest, "batch requests are not supported"))
	}

	var req jsonrpcRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return writeMessage(w, f, makeError(nil, codeParseError, "Parse error"))
	}
	if req.Method == "" {
		if req.isNotification() {
			return nil
		}
		return writeMessage(w, f, makeError(req.ID, codeInvalidRequest, "Invalid request: missing method"))
	}

	resp, reply := s.dispatch(ctx, &req)
	if !reply || req.isNotification() {
		return nil
	}
	return writeMessage(w, f, resp)
}

// dispatch routes a request to its method. reply is false for notifications.
func (s *Server) dispatch(ctx context.Context, req *jsonrpcRequest) (jsonrpcResponse, bool) {
	switch req.Method {
	case "initialize":
		var p initializeParams
		if len(req.Params) > 0 {
			if err := json.Unmarshal(req.Params, &p); err != nil {
				return makeError(req.ID, codeInvalidParams, "Invalid params"), true
			}
		}
		s.log.Info().
			Str("client", p.ClientInfo.Name).
			Str("clientVersion", p.ClientInfo.Version).
			Str("protocolVersion", p.ProtocolVersion).
			Msg("initialize")
		return makeResult(req.ID, initializeResult{
			ProtocolVersion: negotiateVersion(p.ProtocolVersion),
			ServerInfo:      s.info,
			Capabilities: map[string]any{
				"tools": map[string]any{"listChanged": false},
			},
		}), true

	case "ping":
		return makeResult(req.ID, map[string]any{}), true

	case "tools/list":
		return makeResult(req.ID, map[string]any{"tools": s.registry.Definitions()}), true

	case "tools/call":
		var p toolsCallParams
		if len(req.Params) > 0 {
			if err := json.Unmarshal(req.Params, &p); err != nil {
				return makeError(req.ID, codeInvalidParams, "Invalid params"), true
			}
		}
		if p.Name == "" {
			return makeError(req.ID, codeInvalidParams, "Invalid params: tool name is required"), true
		}
		return makeResult(req.ID, s.callTool(ctx, p.Name, p.Arguments)), true
	}

	if req.isNotification() {
		s.log.Debug().Str("method", req.Method).Msg("notification")
		return jsonrpcResponse{}, false
	}
	return makeError(req.ID, codeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method)), true
}

// callTool runs a tool and wraps the outcome. Tool failures are results with
// isError set, so the host can show them to the model.
func (s *Server) callTool(ctx context.Context, name string, args map[string]any) (result toolsCallResult) {
	requestID := uuid.NewString()
	log := s.log.With().Str("tool", name).Str("requestId", requestID).Logger()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("tool panicked")
			result = toolsCallResult{
				Content: []ContentPart{{Type: "text", Text: fmt.Sprintf("internal error in %s", name)}},
				IsError: true,
			}
		}
	}()

	log.Debug().Interface("arguments", args).Msg("tool call")
	text, err := s.registry.Call(ctx, name, args)
	if err != nil {
		log.Error().Err(err).Dur("duration", time.Since(start)).Msg("tool call failed")
		return toolsCallResult{Content: []ContentPart{{Type: "text", Text: err.Error()}}, IsError: true}
	}
	log.Info().Dur("duration", time.Since(start)).Int("bytes", len(text)).Msg("tool call")
	return toolsCallResult{Content: []ContentPart{{Type: "text", Text: text}}}
}

func negotiateVersion(requested string) string {
	if slices.Contains(supportedProtocolVersions, requested) {
		return requested
	}
	return DefaultProtocolVersion
}
