package chunk

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// FormatGzip is the only envelope format written.
const FormatGzip = "gzip"

// Envelope wraps a compressed payload.
type Envelope struct {
	Format string `json:"format"`
	Data   string `json:"data"`
}

// Compress gzips payload and wraps it into a JSON envelope.
func Compress(payload string) (string, error) {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return "", fmt.Errorf("failed to create gzip writer: %w", err)
	}
	if _, err := io.WriteString(zw, payload); err != nil {
		return "", fmt.Errorf("failed to compress payload: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("failed to flush gzip writer: %w", err)
	}

	data, err := json.Marshal(Envelope{
		Format: FormatGzip,
		Data:   base64.StdEncoding.EncodeToString(buf.Bytes()),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal envelope: %w", err)
	}
	return string(data), nil
}

// parseEnvelope returns the envelope if content is one.
// Only objects with exactly the envelope shape qualify, so regular JSON
// documents that happen to have a "format" key are not misdetected.
func parseEnvelope(content string) (*Envelope, bool) {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return nil, false
	}
	if len(raw) != 2 {
		return nil, false
	}
	if _, ok := raw["data"]; !ok {
		return nil, false
	}

	var env Envelope
	if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
		return nil, false
	}
	if env.Format == "" {
		return nil, false
	}
	return &env, true
}

// IsEnvelope reports whether content is a compression envelope.
func IsEnvelope(content string) bool {
	_, ok := parseEnvelope(content)
	return ok
}

// Decompress unwraps an envelope. Content that is not an envelope is
// returned unchanged and treated as plain JSON by the caller.
func Decompress(content string) (string, error) {
	env, ok := parseEnvelope(content)
	if !ok {
		return content, nil
	}
	if env.Format != FormatGzip {
		return "", fmt.Errorf("unsupported envelope format %q", env.Format)
	}

	compressed, err := base64.StdEncoding.DecodeString(env.Data)
	if err != nil {
		return "", fmt.Errorf("failed to decode envelope data: %w", err)
	}

	zr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return "", fmt.Errorf("failed to open gzip stream: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return "", fmt.Errorf("failed to decompress envelope: %w", err)
	}
	return string(out), nil
}
