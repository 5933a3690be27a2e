package editing

import (
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_Dispatch(t *testing.T) {
	tests := []struct {
		name  string
		edit  Edit
		check func(t *testing.T, d types.ResumeData)
	}{
		{
			name: "personal info",
			edit: Edit{Op: OpSet, Section: "personalInfo", Field: PersonalLocation, Value: "Madrid"},
			check: func(t *testing.T, d types.ResumeData) {
				assert.Equal(t, "Madrid", d.PersonalInfo.Location)
			},
		},
		{
			name: "summary",
			edit: Edit{Op: OpSet, Section: "summary", Value: "Nuevo resumen"},
			check: func(t *testing.T, d types.ResumeData) {
				assert.Equal(t, "Nuevo resumen", d.Summary)
			},
		},
		{
			name: "education field",
			edit: Edit{Op: OpSet, Section: "education", ID: 1, Field: EntryInstitution, Value: "UV"},
			check: func(t *testing.T, d types.ResumeData) {
				assert.Equal(t, "UV", d.Education[0].Institution)
			},
		},
		{
			name: "delete experience",
			edit: Edit{Op: OpDelete, Section: "experience", ID: 1},
			check: func(t *testing.T, d types.ResumeData) {
				assert.Empty(t, d.Experience)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, _, err := Apply(types.SeedResume(), tt.edit, NewCounter(1))
			require.NoError(t, err)
			tt.check(t, data)
		})
	}
}

func TestApply_AddReturnsID(t *testing.T) {
	data, res, err := Apply(types.SeedResume(), Edit{Op: OpAdd, Section: "experience"}, NewCounter(1))
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.AddedID)
	assert.Equal(t, int64(2), data.Experience[1].ID)
}

func TestApply_InvalidEdits(t *testing.T) {
	tests := []struct {
		name string
		edit Edit
	}{
		{"missing op", Edit{Section: "summary"}},
		{"unknown op", Edit{Op: "rename", Section: "summary"}},
		{"unknown section", Edit{Op: OpSet, Section: "projects", Field: "title"}},
		{"set entry without field", Edit{Op: OpSet, Section: "experience", ID: 1}},
		{"add to scalar", Edit{Op: OpAdd, Section: "skills"}},
		{"negative id", Edit{Op: OpDelete, Section: "education", ID: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := types.SeedResume()
			after, _, err := Apply(before, tt.edit, NewCounter(1))

			var invalid *InvalidEditError
			assert.ErrorAs(t, err, &invalid)
			assert.Equal(t, before, after)
		})
	}
}

func TestApply_EditsOverwritePerPath(t *testing.T) {
	values := []string{"A", "AB", "ABC", "ABC"}
	data := types.SeedResume()
	for _, v := range values {
		var err error
		data, _, err = Apply(data, Edit{Op: OpSet, Section: "experience", ID: 1, Field: EntryCompany, Value: v}, NewCounter(1))
		require.NoError(t, err)
	}

	direct, err := SetEntryField(types.SeedResume(), types.SectionExperience, 1, EntryCompany, "ABC")
	require.NoError(t, err)
	assert.Equal(t, direct, data)
}

func TestApply_ReapplyingSameValueIsIdempotent(t *testing.T) {
	edit := Edit{Op: OpSet, Section: "personalInfo", Field: PersonalPhone, Value: "600 000 000"}

	once, _, err := Apply(types.SeedResume(), edit, NewCounter(1))
	require.NoError(t, err)
	twice, _, err := Apply(once, edit, NewCounter(1))
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}
