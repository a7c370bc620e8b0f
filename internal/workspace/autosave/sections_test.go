package autosave

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SadidSD/Productive-Workspace/internal/workspace/domain"
)

func TestValidateSection(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
	}{
		{name: "roadmap array ok", key: "roadmap", value: `[{"phase":"mvp"}]`},
		{name: "roadmap object rejected", key: "roadmap", value: `{"phase":"mvp"}`, wantErr: true},
		{name: "requirements empty array ok", key: "requirements", value: `[]`},
		{name: "requirements string rejected", key: "requirements", value: `"ship it"`, wantErr: true},
		{name: "workflow array ok", key: "workflow", value: `["todo","doing","done"]`},
		{name: "inspiration array ok", key: "inspiration", value: `[{"url":"https://example.com"}]`},
		{name: "blueprint object ok", key: "blueprint", value: `{"summary":"a plan"}`},
		{name: "blueprint array ok", key: "blueprint", value: `[{"block":"intro"}]`},
		{name: "blueprint number rejected", key: "blueprint", value: `42`, wantErr: true},
		{name: "notes object ok", key: "notes", value: `{"text":"hello"}`},
		{name: "unknown key passes through", key: "scratchpad", value: `"free form"`},
		{name: "unknown key still needs valid json", key: "scratchpad", value: `{broken`, wantErr: true},
		{name: "known key malformed json", key: "notes", value: `{"text":`, wantErr: true},
		{name: "leading whitespace tolerated", key: "roadmap", value: "\n\t [1,2]"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSection(tc.key, json.RawMessage(tc.value))
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidSection)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestMergePreservesSiblings(t *testing.T) {
	existing := domain.Sections{
		"notes":   json.RawMessage(`{"text":"keep me"}`),
		"roadmap": json.RawMessage(`[1,2,3]`),
	}

	out := Merge(existing, "roadmap", json.RawMessage(`[4,5]`))

	assert.Equal(t, json.RawMessage(`[4,5]`), out["roadmap"])
	assert.Equal(t, json.RawMessage(`{"text":"keep me"}`), out["notes"])

	// The input map is untouched.
	assert.Equal(t, json.RawMessage(`[1,2,3]`), existing["roadmap"])
}

func TestMergeAddsNewKey(t *testing.T) {
	out := Merge(nil, "blueprint", json.RawMessage(`{"summary":"x"}`))
	require.Len(t, out, 1)
	assert.Equal(t, json.RawMessage(`{"summary":"x"}`), out["blueprint"])
}

func TestMergeCopiesValueBytes(t *testing.T) {
	value := json.RawMessage(`[1]`)
	out := Merge(nil, "roadmap", value)

	value[1] = '9'
	assert.Equal(t, json.RawMessage(`[1]`), out["roadmap"])
}
