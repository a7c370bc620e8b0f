package domain

import (
	"encoding/json"
	"time"
)

// Sections maps a section key to that section's opaque JSON content.
// Sections are independent: writing one key never alters the value
// stored under another.
type Sections map[string]json.RawMessage

// Clone returns a deep copy. The raw values are copied too, so mutating
// the clone's byte slices cannot alias the original.
func (s Sections) Clone() Sections {
	if s == nil {
		return Sections{}
	}
	out := make(Sections, len(s))
	for k, v := range s {
		buf := make(json.RawMessage, len(v))
		copy(buf, v)
		out[k] = buf
	}
	return out
}

// Document is the multi-section content body owned by exactly one
// entity (a project, a research inquiry). Mutated only through the
// autosave engine; persisted as a whole-document replace.
type Document struct {
	OwnerID   string
	Sections  Sections
	UpdatedAt time.Time
}

// User is owned by the external identity provider and read-only here.
type User struct {
	ID    string
	Email string
}
