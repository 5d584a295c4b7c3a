// Package annotations parses @name(...) markers from Go doc comments.
package annotations

import (
	"strconv"
	"strings"
)

// Annotation represents a single @name(key=value, ...) marker
type Annotation struct {
	Name   string         `json:"name"`
	Values map[string]any `json:"values,omitempty"`
}

// Value returns the value stored under key, or nil
func (a Annotation) Value(key string) any {
	if a.Values == nil {
		return nil
	}
	return a.Values[key]
}

// Flag reports whether key is present and set to true
func (a Annotation) Flag(key string) bool {
	v, ok := a.Values[key]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// ParseText extracts all annotations from a documentation text.
// Annotation lines start with @, everything else is ignored.
func ParseText(text string) []Annotation {
	if text == "" {
		return nil
	}

	var result []Annotation
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "@") {
			continue
		}
		if ann, ok := parseLine(line); ok {
			result = append(result, ann)
		}
	}
	return result
}

// parseLine parses a single "@name" or "@name(args)" line
func parseLine(line string) (Annotation, bool) {
	line = strings.TrimPrefix(line, "@")
	if line == "" {
		return Annotation{}, false
	}

	open := strings.IndexByte(line, '(')
	if open < 0 {
		name := strings.TrimSpace(line)
		if !validName(name) {
			return Annotation{}, false
		}
		return Annotation{Name: name}, true
	}

	name := strings.TrimSpace(line[:open])
	if !validName(name) {
		return Annotation{}, false
	}

	close := strings.LastIndexByte(line, ')')
	if close < open {
		return Annotation{}, false
	}

	ann := Annotation{Name: name, Values: map[string]any{}}
	for _, arg := range splitArgs(line[open+1 : close]) {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		if eq := strings.IndexByte(arg, '='); eq >= 0 {
			key := strings.TrimSpace(arg[:eq])
			ann.Values[key] = parseValue(strings.TrimSpace(arg[eq+1:]))
		} else {
			// bare argument, either a flag or the positional value
			if _, exists := ann.Values["value"]; !exists && !isFlagLike(arg) {
				ann.Values["value"] = parseValue(arg)
			} else {
				ann.Values[arg] = true
			}
		}
	}
	if len(ann.Values) == 0 {
		ann.Values = nil
	}
	return ann, true
}

// splitArgs splits on commas outside of quoted strings
func splitArgs(s string) []string {
	var args []string
	var sb strings.Builder
	inQuote := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' && (i == 0 || s[i-1] != '\\'):
			inQuote = !inQuote
			sb.WriteByte(c)
		case c == ',' && !inQuote:
			args = append(args, sb.String())
			sb.Reset()
		default:
			sb.WriteByte(c)
		}
	}
	args = append(args, sb.String())
	return args
}

// parseValue converts a textual argument into a bool, number or string
func parseValue(s string) any {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err == nil {
			return unquoted
		}
		return s[1 : len(s)-1]
	}
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// isFlagLike reports whether a bare argument looks like a boolean flag
// (a plain identifier) rather than a positional value.
func isFlagLike(s string) bool {
	if s == "true" || s == "false" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || (i > 0 && c >= '0' && c <= '9')) {
			return false
		}
	}
	return len(s) > 0
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_', c == '.':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
