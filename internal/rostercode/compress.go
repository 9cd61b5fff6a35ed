package rostercode

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

// compressedPrefix marks a roster code whose payload is
// zlib-deflated and base64-encoded.
const compressedPrefix = "z;"

// IsCompressed reports whether the code carries the compression marker.
func IsCompressed(code string) bool {
	return strings.HasPrefix(code, compressedPrefix)
}

// Compress deflates a plain roster code and wraps it in the marker.
func Compress(code string) (string, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write([]byte(code)); err != nil {
		return "", fmt.Errorf("compress roster code: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("compress roster code: %w", err)
	}
	return compressedPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Decompress recovers the plain code from a compressed one. A code
// without the marker is returned unchanged.
func Decompress(code string) (string, error) {
	if !IsCompressed(code) {
		return code, nil
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(code, compressedPrefix))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadCode, err)
	}
	r, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadCode, err)
	}
	defer r.Close()
	plain, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadCode, err)
	}
	return string(plain), nil
}
