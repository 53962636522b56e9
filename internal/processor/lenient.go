package processor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"github.com/jdwit/canvastream-ingest/internal/types"
	"github.com/pkg/errors"
	"io"
	"unicode/utf8"
)

// parseRecords decodes a JSON array of objects. Raw control characters inside
// string literals are accepted and kept, numbers keep their exact literal.
func parseRecords(body []byte) ([]types.Item, error) {
	if !utf8.Valid(body) {
		return nil, errors.New("body is not valid UTF-8")
	}

	dec := json.NewDecoder(bytes.NewReader(escapeControlChars(body)))
	dec.UseNumber()

	var items []types.Item
	if err := dec.Decode(&items); err != nil {
		return nil, err
	}
	if items == nil {
		return nil, errors.New("expected a JSON array of records, got null")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after JSON array")
	}

	for i, item := range items {
		if item == nil {
			return nil, errors.Errorf("record %d is null", i)
		}
	}

	return items, nil
}

// escapeControlChars rewrites bytes below 0x20 found inside string literals
// as \u escapes. Everything outside string literals is left untouched.
func escapeControlChars(data []byte) []byte {
	var out []byte
	inString, escaped := false, false

	for i, c := range data {
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString && c < 0x20:
			if out == nil {
				out = make([]byte, 0, len(data)+16)
				out = append(out, data[:i]...)
			}
			out = append(out, fmt.Sprintf(`\u%04x`, c)...)
			continue
		}

		if out != nil {
			out = append(out, c)
		}
	}

	if out == nil {
		return data
	}
	return out
}
