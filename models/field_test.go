package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseFieldType(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    FieldType
		wantErr bool
	}{
		{name: "text", in: "text", want: FieldText},
		{name: "textarea", in: "textarea", want: FieldTextarea},
		{name: "number", in: "number", want: FieldNumber},
		{name: "select", in: "select", want: FieldSelect},
		{name: "checkbox", in: "checkbox", want: FieldCheckbox},
		{name: "trimmed", in: "  select ", want: FieldSelect},
		{name: "unknown", in: "radio", wantErr: true},
		{name: "wrong case", in: "Text", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFieldType(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFieldType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ---------------------------------------------------------------------------
// JSON shape
// ---------------------------------------------------------------------------

func TestFieldDefinition_MarshalJSON(t *testing.T) {
	t.Run("select without options emits empty array", func(t *testing.T) {
		b, err := json.Marshal(FieldDefinition{ID: "f1", Type: FieldSelect, Label: "Team"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"f1","type":"select","label":"Team","required":false,"options":[]}`, string(b))
	})

	t.Run("non-select drops options", func(t *testing.T) {
		b, err := json.Marshal(FieldDefinition{ID: "f1", Type: FieldText, Label: "Name", Required: true, Options: []string{"x"}})
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"f1","type":"text","label":"Name","required":true}`, string(b))
	})

	t.Run("invalid type fails", func(t *testing.T) {
		_, err := json.Marshal(FieldDefinition{ID: "f1", Type: "radio"})
		assert.Error(t, err)
	})
}

func TestFieldDefinition_UnmarshalJSON(t *testing.T) {
	t.Run("select keeps options", func(t *testing.T) {
		var f FieldDefinition
		require.NoError(t, json.Unmarshal([]byte(`{"id":"a","type":"select","label":"L","required":true,"options":["x","y"]}`), &f))
		assert.Equal(t, FieldDefinition{ID: "a", Type: FieldSelect, Label: "L", Required: true, Options: []string{"x", "y"}}, f)
	})

	t.Run("select without options gets empty slice", func(t *testing.T) {
		var f FieldDefinition
		require.NoError(t, json.Unmarshal([]byte(`{"id":"a","type":"select","label":"L","required":false}`), &f))
		assert.NotNil(t, f.Options)
		assert.Empty(t, f.Options)
	})

	t.Run("text ignores stray options", func(t *testing.T) {
		var f FieldDefinition
		require.NoError(t, json.Unmarshal([]byte(`{"id":"a","type":"text","label":"L","required":false,"options":["x"]}`), &f))
		assert.Nil(t, f.Options)
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		var f FieldDefinition
		err := json.Unmarshal([]byte(`{"id":"a","type":"radio","label":"L","required":false}`), &f)
		assert.ErrorIs(t, err, ErrUnknownFieldType)
	})
}

func TestFields_Scan(t *testing.T) {
	var fs Fields
	require.NoError(t, fs.Scan([]byte(`[{"id":"a","type":"text","label":"A","required":false},{"id":"b","type":"checkbox","label":"B","required":true}]`)))
	require.Len(t, fs, 2)
	assert.Equal(t, "a", fs[0].ID)
	assert.Equal(t, FieldCheckbox, fs[1].Type)

	require.NoError(t, fs.Scan(nil))
	assert.NotNil(t, fs)
	assert.Empty(t, fs)

	assert.ErrorIs(t, fs.Scan(`[{"id":"a","type":"date","label":"A","required":false}]`), ErrUnknownFieldType)
	assert.Error(t, fs.Scan(42))
}

func TestFields_Value(t *testing.T) {
	v, err := Fields(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

// ---------------------------------------------------------------------------
// list operations
// ---------------------------------------------------------------------------

func TestFields_AppendWithout(t *testing.T) {
	base := Fields{
		{ID: "a", Type: FieldText, Label: "A"},
		{ID: "b", Type: FieldText, Label: "B"},
		{ID: "c", Type: FieldText, Label: "C"},
	}

	appended := base.Append(FieldDefinition{ID: "d", Type: FieldNumber, Label: "D"})
	assert.Len(t, base, 3, "receiver must not change")
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(appended))

	removed := base.Without("b")
	assert.Equal(t, []string{"a", "c"}, ids(removed))
	assert.Equal(t, []string{"a", "b", "c"}, ids(base), "receiver must not change")

	assert.Equal(t, ids(base), ids(base.Without("zzz")))
}

func TestFields_WithOptions(t *testing.T) {
	base := Fields{{ID: "s", Type: FieldSelect, Label: "S", Options: []string{}}}

	updated, ok := base.WithOptions("s", []string{"one", "two"})
	require.True(t, ok)
	assert.Equal(t, []string{"one", "two"}, updated[0].Options)
	assert.Empty(t, base[0].Options)

	_, ok = base.WithOptions("missing", []string{"x"})
	assert.False(t, ok)
}

func TestFieldDraft_Definition(t *testing.T) {
	d := DefaultFieldDraft()
	assert.Equal(t, FieldText, d.Type)
	assert.Empty(t, d.Label)
	assert.False(t, d.Required)

	sel := FieldDraft{Type: FieldSelect, Label: "Pick", Required: true}.Definition("id-1")
	assert.Equal(t, FieldDefinition{ID: "id-1", Type: FieldSelect, Label: "Pick", Required: true, Options: []string{}}, sel)
}

func TestFieldType_YAML(t *testing.T) {
	var f FieldDefinition
	require.NoError(t, yaml.Unmarshal([]byte("type: number\nlabel: Age\n"), &f))
	assert.Equal(t, FieldNumber, f.Type)

	err := yaml.Unmarshal([]byte("type: slider\nlabel: Age\n"), &f)
	assert.ErrorIs(t, err, ErrUnknownFieldType)
}

func ids(fs Fields) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.ID)
	}
	return out
}
