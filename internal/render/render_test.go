package render

import (
	"net/url"
	"strings"
	"testing"

	"github.com/MKhiriev/go-collab-forms/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCoversEveryFieldType(t *testing.T) {
	for _, ft := range models.FieldTypes {
		r, err := For(ft)
		require.NoError(t, err, "field type %q has no renderer", ft)
		require.NotNil(t, r)
	}
	assert.Len(t, renderers, len(models.FieldTypes))

	_, err := For("radio")
	assert.ErrorIs(t, err, ErrNoRenderer)
}

func TestInitialAnswers(t *testing.T) {
	fields := models.Fields{
		{ID: "t", Type: models.FieldText, Label: "T"},
		{ID: "ta", Type: models.FieldTextarea, Label: "TA"},
		{ID: "n", Type: models.FieldNumber, Label: "N"},
		{ID: "s", Type: models.FieldSelect, Label: "S", Options: []string{"a"}},
		{ID: "c", Type: models.FieldCheckbox, Label: "C"},
	}

	answers, err := InitialAnswers(fields)
	require.NoError(t, err)
	assert.Equal(t, models.Answers{"t": "", "ta": "", "n": nil, "s": "", "c": false}, answers)
}

// ---------------------------------------------------------------------------
// controls
// ---------------------------------------------------------------------------

func TestField_Controls(t *testing.T) {
	tests := []struct {
		name     string
		field    models.FieldDefinition
		value    any
		contains []string
		absent   []string
	}{
		{
			name:     "text required",
			field:    models.FieldDefinition{ID: "f1", Type: models.FieldText, Label: "Name", Required: true},
			value:    "Ada",
			contains: []string{`type="text"`, `name="f1"`, `value="Ada"`, " required", `<span class="required">*</span>`, ">Name"},
		},
		{
			name:     "textarea has four rows",
			field:    models.FieldDefinition{ID: "f2", Type: models.FieldTextarea, Label: "Bio"},
			value:    "hello",
			contains: []string{"<textarea", `rows="4"`, ">hello</textarea>"},
			absent:   []string{"required"},
		},
		{
			name:     "number empty",
			field:    models.FieldDefinition{ID: "f3", Type: models.FieldNumber, Label: "Age"},
			value:    nil,
			contains: []string{`type="number"`, `value=""`},
		},
		{
			name:     "number value",
			field:    models.FieldDefinition{ID: "f3", Type: models.FieldNumber, Label: "Age"},
			value:    42.5,
			contains: []string{`value="42.5"`},
		},
		{
			name:     "select with placeholder and selection",
			field:    models.FieldDefinition{ID: "f4", Type: models.FieldSelect, Label: "Team", Options: []string{"red", "blue"}},
			value:    "blue",
			contains: []string{`<option value="">Select an option</option>`, `<option value="red">red</option>`, `<option value="blue" selected>blue</option>`},
		},
		{
			name:     "checkbox checked",
			field:    models.FieldDefinition{ID: "f5", Type: models.FieldCheckbox, Label: "Agree"},
			value:    true,
			contains: []string{`type="checkbox"`, " checked"},
		},
		{
			name:   "checkbox unchecked",
			field:  models.FieldDefinition{ID: "f5", Type: models.FieldCheckbox, Label: "Agree"},
			value:  false,
			absent: []string{"checked"},
		},
		{
			name:     "label is escaped",
			field:    models.FieldDefinition{ID: "f6", Type: models.FieldText, Label: "<b>x</b>"},
			contains: []string{"&lt;b&gt;x&lt;/b&gt;"},
			absent:   []string{"<b>x</b>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := Field(tt.field, tt.value)
			require.NoError(t, err)
			out := string(html)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestField_UnknownType(t *testing.T) {
	_, err := Field(models.FieldDefinition{ID: "x", Type: "radio"}, nil)
	assert.ErrorIs(t, err, ErrNoRenderer)
}

// ---------------------------------------------------------------------------
// parsing
// ---------------------------------------------------------------------------

func TestParseAnswers(t *testing.T) {
	fields := models.Fields{
		{ID: "t", Type: models.FieldText, Label: "T"},
		{ID: "n", Type: models.FieldNumber, Label: "N"},
		{ID: "s", Type: models.FieldSelect, Label: "S", Options: []string{"a", "b"}},
		{ID: "c", Type: models.FieldCheckbox, Label: "C"},
	}

	t.Run("all values", func(t *testing.T) {
		answers, err := ParseAnswers(fields, url.Values{
			"t":     {"hello"},
			"n":     {" 3.25 "},
			"s":     {"b"},
			"c":     {"true"},
			"extra": {"ignored"},
		})
		require.NoError(t, err)
		assert.Equal(t, models.Answers{"t": "hello", "n": 3.25, "s": "b", "c": true}, answers)
	})

	t.Run("nothing submitted", func(t *testing.T) {
		answers, err := ParseAnswers(fields, url.Values{})
		require.NoError(t, err)
		assert.Equal(t, models.Answers{"t": "", "n": nil, "s": "", "c": false}, answers)
	})

	t.Run("bad number keeps raw text and the other answers", func(t *testing.T) {
		answers, err := ParseAnswers(fields, url.Values{"n": {"abc"}, "t": {"kept"}, "c": {"true"}})
		require.ErrorIs(t, err, ErrInvalidNumber)
		assert.True(t, strings.HasPrefix(err.Error(), "N: "))
		assert.Equal(t, models.Answers{"t": "kept", "n": "abc", "s": "", "c": true}, answers)
	})

	t.Run("every failing field is reported", func(t *testing.T) {
		_, err := ParseAnswers(fields, url.Values{"n": {"abc"}, "s": {"z"}})
		assert.ErrorIs(t, err, ErrInvalidNumber)
		assert.ErrorIs(t, err, ErrInvalidOption)
	})

	t.Run("non-finite number", func(t *testing.T) {
		_, err := ParseAnswers(fields, url.Values{"n": {"NaN"}})
		assert.ErrorIs(t, err, ErrInvalidNumber)
		_, err = ParseAnswers(fields, url.Values{"n": {"+Inf"}})
		assert.ErrorIs(t, err, ErrInvalidNumber)
	})

	t.Run("unknown option", func(t *testing.T) {
		_, err := ParseAnswers(fields, url.Values{"s": {"z"}})
		assert.ErrorIs(t, err, ErrInvalidOption)
	})
}
