package autosave

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SadidSD/Productive-Workspace/internal/workspace/domain"
)

// ErrInvalidSection rejects a section payload before it can reach the
// draft: malformed JSON, or a known key carrying the wrong shape.
var ErrInvalidSection = errors.New("autosave: invalid section payload")

// Known section keys and the JSON shape each one accepts. Unknown keys
// pass through unvalidated so older servers keep accepting payloads
// from newer clients.
type sectionShape int

const (
	shapeArray sectionShape = iota
	shapeObjectOrArray
)

var knownSections = map[string]sectionShape{
	"blueprint":    shapeObjectOrArray,
	"requirements": shapeArray,
	"roadmap":      shapeArray,
	"workflow":     shapeArray,
	"notes":        shapeObjectOrArray,
	"inspiration":  shapeArray,
}

// ValidateSection checks a single section payload against the shape
// registry. Every payload must be well-formed JSON.
func ValidateSection(key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return fmt.Errorf("%w: section %q is not valid JSON", ErrInvalidSection, key)
	}

	shape, known := knownSections[key]
	if !known {
		return nil
	}

	first := firstByte(value)
	switch shape {
	case shapeArray:
		if first != '[' {
			return fmt.Errorf("%w: section %q must be a JSON array", ErrInvalidSection, key)
		}
	case shapeObjectOrArray:
		if first != '{' && first != '[' {
			return fmt.Errorf("%w: section %q must be a JSON object or array", ErrInvalidSection, key)
		}
	}
	return nil
}

// Merge returns a new section map equal to existing with key replaced
// by value. The input map is never mutated and every sibling value is
// carried over byte-identical.
func Merge(existing domain.Sections, key string, value json.RawMessage) domain.Sections {
	out := existing.Clone()
	buf := make(json.RawMessage, len(value))
	copy(buf, value)
	out[key] = buf
	return out
}

func firstByte(value json.RawMessage) byte {
	trimmed := bytes.TrimLeft(value, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
