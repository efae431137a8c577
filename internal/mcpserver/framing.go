package mcpserver

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// framing is how a message was delimited on the wire. Replies use the
// framing of the request they answer.
type framing int

const (
	// framingLine is newline-delimited JSON, the MCP stdio transport.
	framingLine framing = iota
	// framingHeader is LSP-style Content-Length header framing.
	framingHeader
)

var errMissingContentLength = errors.New("missing Content-Length")

// readMessage returns the next message body and the framing it arrived in.
// Blank lines between messages are skipped.
func readMessage(r *bufio.Reader) ([]byte, framing, error) {
	for {
		line, err := r.ReadBytes('\n')
		trimmed := bytes.TrimSpace(line)
		if len(trimmed) == 0 {
			if err != nil {
				return nil, framingLine, err
			}
			continue
		}
		if trimmed[0] == '{' || trimmed[0] == '[' {
			if err != nil && !errors.Is(err, io.EOF) {
				return nil, framingLine, err
			}
			return trimmed, framingLine, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, framingHeader, io.ErrUnexpectedEOF
			}
			return nil, framingHeader, err
		}
		body, err := readHeaderFramed(r, string(trimmed))
		return body, framingHeader, err
	}
}

// readHeaderFramed parses headers starting at first until a blank line, then
// reads exactly Content-Length bytes.
func readHeaderFramed(r *bufio.Reader, first string) ([]byte, error) {
	headers := map[string]string{}
	addHeader(headers, first)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		s := strings.TrimRight(line, "\r\n")
		if s == "" {
			break
		}
		addHeader(headers, s)
	}

	clStr, ok := headers["content-length"]
	if !ok {
		return nil, errMissingContentLength
	}
	length, err := strconv.Atoi(clStr)
	if err != nil || length < 0 {
		return nil, fmt.Errorf("invalid Content-Length %q", clStr)
	}
	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}
	return body, nil
}

func addHeader(headers map[string]string, s string) {
	if i := strings.IndexByte(s, ':'); i >= 0 {
		key := strings.ToLower(strings.TrimSpace(s[:i]))
		headers[key] = strings.TrimSpace(s[i+1:])
	}
}

// writeMessage encodes v in the given framing and flushes.
func writeMessage(w *bufio.Writer, f framing, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if f == framingHeader {
		if _, err := fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
		return w.Flush()
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if err := w.WriteByte('\n'); err != nil {
		return err
	}
	return w.Flush()
}
