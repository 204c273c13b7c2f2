package utils

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
)

// EncodeHexLines writes each field as upper-case hexadecimal on its own line.
// Empty fields become empty lines.
func EncodeHexLines(fields ...[]byte) []byte {
	var buf bytes.Buffer
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(strings.ToUpper(hex.EncodeToString(f)))
	}
	buf.WriteByte('\n')
	return buf.Bytes()
}

// DecodeHexLines parses exactly n hex lines. Either case is accepted, carriage
// returns and surrounding blanks are ignored, and one trailing newline is optional.
func DecodeHexLines(data []byte, n int) ([][]byte, error) {
	if err := CheckLength(len(data), MaxArtifactSize); err != nil {
		return nil, err
	}
	text := strings.ReplaceAll(string(data), "\r", "")
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	if len(lines) != n {
		return nil, fmt.Errorf("expected %d lines, got %d", n, len(lines))
	}

	fields := make([][]byte, n)
	for i, line := range lines {
		line = strings.TrimSpace(line)
		f, err := hex.DecodeString(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		fields[i] = f
	}
	return fields, nil
}
