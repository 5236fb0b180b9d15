package render

import (
	"fmt"
	"html/template"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-collab-forms/models"
)

var controls = template.Must(template.New("controls").Parse(`
{{define "text"}}<input type="text" id="{{.ID}}" name="{{.ID}}" value="{{.Value}}"{{if .Required}} required{{end}}>{{end}}
{{define "textarea"}}<textarea id="{{.ID}}" name="{{.ID}}" rows="4"{{if .Required}} required{{end}}>{{.Value}}</textarea>{{end}}
{{define "number"}}<input type="number" step="any" id="{{.ID}}" name="{{.ID}}" value="{{.Value}}"{{if .Required}} required{{end}}>{{end}}
{{define "select"}}<select id="{{.ID}}" name="{{.ID}}"{{if .Required}} required{{end}}><option value="">Select an option</option>{{range .Options}}<option value="{{.}}"{{if eq . $.Value}} selected{{end}}>{{.}}</option>{{end}}</select>{{end}}
{{define "checkbox"}}<input type="checkbox" id="{{.ID}}" name="{{.ID}}" value="true"{{if .Checked}} checked{{end}}{{if .Required}} required{{end}}>{{end}}
`))

type controlData struct {
	ID       string
	Required bool
	Value    string
	Checked  bool
	Options  []string
}

// text and textarea

type textRenderer struct {
	control string
}

func (textRenderer) Initial() any { return "" }

func (r textRenderer) Control(field models.FieldDefinition, value any) (template.HTML, error) {
	s, _ := value.(string)
	return execute(r.control, controlData{ID: field.ID, Required: field.Required, Value: s})
}

func (textRenderer) Parse(_ models.FieldDefinition, raw []string) (any, error) {
	return first(raw), nil
}

// number

type numberRenderer struct{}

func (numberRenderer) Initial() any { return nil }

func (numberRenderer) Control(field models.FieldDefinition, value any) (template.HTML, error) {
	var s string
	switch v := value.(type) {
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		s = strconv.Itoa(v)
	case string:
		// an unparsable entry is echoed back so the user can correct it
		s = v
	}
	return execute("number", controlData{ID: field.ID, Required: field.Required, Value: s})
}

// Parse returns nil for empty input. It never yields NaN or infinities.
func (numberRenderer) Parse(_ models.FieldDefinition, raw []string) (any, error) {
	s := strings.TrimSpace(first(raw))
	if s == "" {
		return nil, nil
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return n, nil
}

// select

type selectRenderer struct{}

func (selectRenderer) Initial() any { return "" }

func (selectRenderer) Control(field models.FieldDefinition, value any) (template.HTML, error) {
	s, _ := value.(string)
	return execute("select", controlData{ID: field.ID, Required: field.Required, Value: s, Options: field.Options})
}

func (selectRenderer) Parse(field models.FieldDefinition, raw []string) (any, error) {
	s := first(raw)
	if s != "" && !slices.Contains(field.Options, s) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOption, s)
	}
	return s, nil
}

// checkbox

type checkboxRenderer struct{}

func (checkboxRenderer) Initial() any { return false }

func (checkboxRenderer) Control(field models.FieldDefinition, value any) (template.HTML, error) {
	checked, _ := value.(bool)
	return execute("checkbox", controlData{ID: field.ID, Required: field.Required, Checked: checked})
}

// Parse treats any submitted value as checked; browsers omit unchecked boxes.
func (checkboxRenderer) Parse(_ models.FieldDefinition, raw []string) (any, error) {
	return len(raw) > 0, nil
}
