// Package inspect recovers declared function signatures, documentation and
// annotations from Go source, both for whole packages and for live function
// values. It complements runtime reflection, which reports parameter types
// but not their declared names.
package inspect

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mode controls how much information is extracted from source
type Mode uint8

const (
	ModeNone        Mode = 0
	ModeSignatures  Mode = 1 << iota // Declared parameter names and types
	ModeDocs                         // Documentation text
	ModeAnnotations                  // @annotations parsed from docs
	ModeMethods                      // Include methods, not only top-level functions

	// Predefined combinations
	ModeDefault = ModeSignatures | ModeDocs
	ModeFull    = ModeSignatures | ModeDocs | ModeAnnotations | ModeMethods
)

func (m Mode) Has(mode Mode) bool {
	return m&mode == mode
}

func (m Mode) String() string {
	if m == ModeNone {
		return "none"
	}
	var parts []string
	if m.Has(ModeSignatures) {
		parts = append(parts, "signatures")
	}
	if m.Has(ModeDocs) {
		parts = append(parts, "docs")
	}
	if m.Has(ModeAnnotations) {
		parts = append(parts, "annotations")
	}
	if m.Has(ModeMethods) {
		parts = append(parts, "methods")
	}
	return strings.Join(parts, ",")
}

// ParseMode parses a comma separated list into a Mode
// e.g. "signatures,docs" -> ModeSignatures | ModeDocs
func ParseMode(str string) (Mode, error) {
	var m Mode
	for _, v := range strings.Split(strings.ToLower(str), ",") {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		switch v {
		case "none":
		case "signatures", "names":
			m |= ModeSignatures
		case "docs", "comments":
			m |= ModeDocs
		case "annotations":
			m |= ModeAnnotations
		case "methods":
			m |= ModeMethods
		case "default":
			m |= ModeDefault
		case "full":
			m |= ModeFull
		default:
			return m, fmt.Errorf("inspect: unknown mode %q", v)
		}
	}
	return m, nil
}

func (m Mode) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

func (m *Mode) UnmarshalJSON(data []byte) error {
	str := strings.Trim(string(data), `"`)
	parsed, err := ParseMode(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Mode) MarshalYAML() (any, error) {
	return m.String(), nil
}

func (m *Mode) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseMode(value.Value)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
