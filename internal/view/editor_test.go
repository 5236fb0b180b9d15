package view

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-collab-forms/internal/mock"
	"github.com/MKhiriev/go-collab-forms/internal/service"
	"github.com/MKhiriev/go-collab-forms/internal/store"
	"github.com/MKhiriev/go-collab-forms/internal/validators"
	"github.com/MKhiriev/go-collab-forms/models"
)

func baseForm() models.Form {
	return models.Form{
		ID:    "f1",
		Title: "Survey",
		Fields: models.Fields{
			{ID: "a", Type: models.FieldCheckbox, Label: "Agree"},
			{ID: "b", Type: models.FieldText, Label: "Name"},
		},
		Version: 1,
	}
}

// loadedEditor returns an editor over baseForm with a mocked form service.
func loadedEditor(t *testing.T) (*FormEditor, *mock.MockFormService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	forms := mock.NewMockFormService(ctrl)
	forms.EXPECT().GetForm(gomock.Any(), "f1").Return(baseForm(), nil)

	e := NewFormEditor(forms)
	require.NoError(t, e.Load(context.Background(), "f1"))
	return e, forms
}

// acceptWrites makes ReplaceFields succeed and bump the version, recording
// every list it was given.
func acceptWrites(forms *mock.MockFormService, writes *[]models.Fields) {
	forms.EXPECT().ReplaceFields(gomock.Any(), "f1", gomock.Any(), gomock.Any()).AnyTimes().DoAndReturn(
		func(_ context.Context, _ string, fields models.Fields, v int64) (int64, error) {
			*writes = append(*writes, fields)
			return v + 1, nil
		},
	)
}

// ---------------------------------------------------------------------------
// Load
// ---------------------------------------------------------------------------

func TestFormEditor_Load_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	forms := mock.NewMockFormService(ctrl)
	forms.EXPECT().GetForm(gomock.Any(), "missing").Return(models.Form{}, store.ErrFormNotFound)

	e := NewFormEditor(forms)
	err := e.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrFormNotFound)
	assert.False(t, e.Loaded)
	assert.Equal(t, models.DefaultFieldDraft(), e.Draft)
}

// ---------------------------------------------------------------------------
// AddField / RemoveField
// ---------------------------------------------------------------------------

func TestFormEditor_AddThenRemoveRestoresSequence(t *testing.T) {
	e, forms := loadedEditor(t)
	var writes []models.Fields
	acceptWrites(forms, &writes)
	forms.EXPECT().NewFieldID(gomock.Any()).Return("new-id")

	original := e.Fields()

	require.NoError(t, e.AddField(context.Background(), models.FieldDraft{Type: models.FieldNumber, Label: "Age"}))
	require.Len(t, e.Fields(), 3)
	assert.Equal(t, "new-id", e.Fields()[2].ID)
	assert.Equal(t, int64(2), e.Form.Version)

	require.NoError(t, e.RemoveField(context.Background(), "new-id"))
	if diff := cmp.Diff(original, e.Fields()); diff != "" {
		t.Errorf("field list after add+remove mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, writes, 2)
	assert.Equal(t, int64(3), e.Form.Version)
}

func TestFormEditor_AddField_OptionsOnlyForSelect(t *testing.T) {
	tests := []struct {
		ft          models.FieldType
		wantOptions []string
	}{
		{ft: models.FieldSelect, wantOptions: []string{}},
		{ft: models.FieldText},
		{ft: models.FieldTextarea},
		{ft: models.FieldNumber},
		{ft: models.FieldCheckbox},
	}

	for _, tt := range tests {
		t.Run(string(tt.ft), func(t *testing.T) {
			e, forms := loadedEditor(t)
			var writes []models.Fields
			acceptWrites(forms, &writes)
			forms.EXPECT().NewFieldID(gomock.Any()).Return("x")

			require.NoError(t, e.AddField(context.Background(), models.FieldDraft{Type: tt.ft, Label: "L", Required: true}))

			added := e.Fields()[2]
			assert.Equal(t, tt.wantOptions, added.Options)
			assert.True(t, added.Required)
			assert.Equal(t, models.DefaultFieldDraft(), e.Draft, "draft resets after a successful add")
		})
	}
}

func TestFormEditor_AddField_GetsFreshID(t *testing.T) {
	e, forms := loadedEditor(t)
	var writes []models.Fields
	acceptWrites(forms, &writes)

	forms.EXPECT().NewFieldID(gomock.Any()).DoAndReturn(func(existing models.Fields) string {
		assert.True(t, existing.Contains("a"))
		assert.True(t, existing.Contains("b"))
		return "c"
	})

	require.NoError(t, e.AddField(context.Background(), models.FieldDraft{Type: models.FieldText, Label: "City"}))
	assert.Equal(t, []string{"a", "b", "c"}, fieldIDs(e.Fields()))
}

func TestFormEditor_AddField_BlankLabel(t *testing.T) {
	e, _ := loadedEditor(t)

	err := e.AddField(context.Background(), models.FieldDraft{Type: models.FieldText, Label: "   "})
	assert.ErrorIs(t, err, service.ErrInvalidDataProvided)
	assert.Len(t, e.Fields(), 2)
}

func TestFormEditor_AddField_MarkupInLabel(t *testing.T) {
	e, _ := loadedEditor(t)

	err := e.AddField(context.Background(), models.FieldDraft{Type: models.FieldText, Label: "Enter <email> here"})
	assert.ErrorIs(t, err, service.ErrInvalidDataProvided)
	assert.ErrorIs(t, err, validators.ErrMarkup)
	assert.Len(t, e.Fields(), 2)
}

func TestFormEditor_AddField_FailureLeavesStateAlone(t *testing.T) {
	e, forms := loadedEditor(t)
	forms.EXPECT().NewFieldID(gomock.Any()).Return("x")
	forms.EXPECT().ReplaceFields(gomock.Any(), "f1", gomock.Any(), int64(1)).Return(int64(0), store.ErrVersionConflict)

	draft := models.FieldDraft{Type: models.FieldText, Label: "City"}
	err := e.AddField(context.Background(), draft)
	assert.ErrorIs(t, err, store.ErrVersionConflict)

	assert.Equal(t, baseForm().Fields, e.Fields())
	assert.Equal(t, int64(1), e.Form.Version)
	assert.Equal(t, draft, e.Draft)
}

func TestFormEditor_RemoveAbsentIDStillWrites(t *testing.T) {
	e, forms := loadedEditor(t)
	var writes []models.Fields
	acceptWrites(forms, &writes)

	require.NoError(t, e.RemoveField(context.Background(), "zzz"))
	require.Len(t, writes, 1)
	assert.Equal(t, baseForm().Fields, writes[0])
	assert.Equal(t, baseForm().Fields, e.Fields())
}

func TestFormEditor_ExpectVersion(t *testing.T) {
	e, forms := loadedEditor(t)
	forms.EXPECT().ReplaceFields(gomock.Any(), "f1", gomock.Any(), int64(7)).Return(int64(8), nil)

	e.ExpectVersion(7)
	require.NoError(t, e.RemoveField(context.Background(), "a"))
	assert.Equal(t, int64(8), e.Form.Version)

	e.ExpectVersion(0)
	assert.Equal(t, int64(8), e.Form.Version, "zero means no version was sent")
}

// ---------------------------------------------------------------------------
// SetFieldOptions
// ---------------------------------------------------------------------------

func TestFormEditor_SetFieldOptions(t *testing.T) {
	ctrl := gomock.NewController(t)
	forms := mock.NewMockFormService(ctrl)
	form := baseForm()
	form.Fields = form.Fields.Append(models.FieldDefinition{ID: "s", Type: models.FieldSelect, Label: "Team", Options: []string{}})
	forms.EXPECT().GetForm(gomock.Any(), "f1").Return(form, nil)

	var writes []models.Fields
	acceptWrites(forms, &writes)

	e := NewFormEditor(forms)
	require.NoError(t, e.Load(context.Background(), "f1"))

	require.NoError(t, e.SetFieldOptions(context.Background(), "s", []string{" red", "", "blue", "red "}))
	assert.Equal(t, []string{"red", "blue"}, e.Fields()[2].Options)

	err := e.SetFieldOptions(context.Background(), "a", []string{"x"})
	assert.ErrorIs(t, err, ErrNotSelectField)

	err = e.SetFieldOptions(context.Background(), "missing", []string{"x"})
	assert.Error(t, err)

	err = e.SetFieldOptions(context.Background(), "s", []string{"green", "<i>blue</i>"})
	assert.ErrorIs(t, err, service.ErrInvalidDataProvided)
	assert.ErrorIs(t, err, validators.ErrMarkup)
	assert.Equal(t, []string{"red", "blue"}, e.Fields()[2].Options)

	require.NoError(t, e.SetFieldOptions(context.Background(), "s", []string{"x < y", "A&amp;B"}))
	assert.Equal(t, []string{"x < y", "A&amp;B"}, e.Fields()[2].Options, "options are stored as typed")
	assert.Len(t, writes, 2)
}

func TestFormEditor_WriteErrorIsReturned(t *testing.T) {
	e, forms := loadedEditor(t)
	boom := errors.New("backend unavailable")
	forms.EXPECT().ReplaceFields(gomock.Any(), "f1", gomock.Any(), int64(1)).Return(int64(0), boom)

	assert.ErrorIs(t, e.RemoveField(context.Background(), "a"), boom)
	assert.Len(t, e.Fields(), 2)
}

func fieldIDs(fs models.Fields) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.ID)
	}
	return out
}
