package settings

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Parse decodes settings JSON that may carry the relaxations code-family
// editors allow in settings.json: // and /* */ comments and trailing commas.
// Blank or whitespace-only input yields an empty Map.
func Parse(data []byte) (*Map, error) {
	cleaned := stripTrailingCommas(stripComments(data))
	if len(bytes.TrimSpace(cleaned)) == 0 {
		return NewMap(), nil
	}
	m := NewMap()
	if err := json.Unmarshal(cleaned, m); err != nil {
		return nil, err
	}
	return m, nil
}

// stripComments removes // line comments and /* */ block comments, leaving
// string literals untouched. Comment bytes are replaced with spaces (and
// preserved newlines) so decoder error offsets stay meaningful.
func stripComments(data []byte) []byte {
	out := make([]byte, 0, len(data))
	inString := false
	escaped := false
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			out = append(out, c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}
		switch {
		case c == '"':
			inString = true
			out = append(out, c)
		case c == '/' && i+1 < len(data) && data[i+1] == '/':
			for i < len(data) && data[i] != '\n' {
				i++
			}
			if i < len(data) {
				out = append(out, '\n')
			}
		case c == '/' && i+1 < len(data) && data[i+1] == '*':
			i += 2
			for i+1 < len(data) && !(data[i] == '*' && data[i+1] == '/') {
				if data[i] == '\n' {
					out = append(out, '\n')
				}
				i++
			}
			i++ // skip the trailing '/'
		default:
			out = append(out, c)
		}
	}
	return out
}

// stripTrailingCommas removes commas that directly precede a closing brace or
// bracket, again skipping string literals.
func stripTrailingCommas(data []byte) []byte {
	out := make([]byte, 0, len(data))
	inString := false
	escaped := false
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			out = append(out, c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			out = append(out, c)
			continue
		}
		if c == ',' {
			rest := strings.TrimLeft(string(data[i+1:]), " \t\r\n")
			if strings.HasPrefix(rest, "}") || strings.HasPrefix(rest, "]") {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}
