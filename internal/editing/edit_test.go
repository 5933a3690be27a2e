package editing

import (
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPersonalInfo_ReplacesOnlyThatField(t *testing.T) {
	before := types.SeedResume()

	after, err := SetPersonalInfo(before, PersonalName, "Luis Pérez")
	require.NoError(t, err)

	assert.Equal(t, "Luis Pérez", after.PersonalInfo.Name)
	assert.Equal(t, before.PersonalInfo.Title, after.PersonalInfo.Title)
	assert.Equal(t, "Ana García", before.PersonalInfo.Name, "input snapshot must not change")
	assert.Equal(t, before.Summary, after.Summary)
}

func TestSetPersonalInfo_AcceptsEmptyValue(t *testing.T) {
	after, err := SetPersonalInfo(types.SeedResume(), PersonalEmail, "")
	require.NoError(t, err)
	assert.Empty(t, after.PersonalInfo.Email)
}

func TestSetPersonalInfo_UnknownField(t *testing.T) {
	before := types.SeedResume()
	after, err := SetPersonalInfo(before, "twitter", "@ana")

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "twitter", fieldErr.Field)
	assert.Equal(t, before, after)
}

func TestSetText(t *testing.T) {
	after, err := SetText(types.SeedResume(), types.FieldSkills, "Go, SQL")
	require.NoError(t, err)
	assert.Equal(t, "Go, SQL", after.Skills)

	after, err = SetText(after, types.FieldSummary, "")
	require.NoError(t, err)
	assert.Empty(t, after.Summary)
}

func TestSetEntryField_SharesUntouchedSequences(t *testing.T) {
	before := types.SeedResume()

	after, err := SetEntryField(before, types.SectionExperience, 1, EntryTitle, "Backend Developer")
	require.NoError(t, err)

	assert.Equal(t, "Backend Developer", after.Experience[0].Title)
	assert.Equal(t, "Desarrolladora en Prácticas", before.Experience[0].Title)
	assert.Same(t, &before.Education[0], &after.Education[0], "education slice should be shared")
	assert.NotSame(t, &before.Experience[0], &after.Experience[0], "experience slice should be rebuilt")
}

func TestSetEntryField_UnknownIDIsNoop(t *testing.T) {
	before := types.SeedResume()
	after, err := SetEntryField(before, types.SectionEducation, 999, EntryDegree, "PhD")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSetEntryField_RejectsFieldOfOtherSection(t *testing.T) {
	_, err := SetEntryField(types.SeedResume(), types.SectionEducation, 1, EntryCompany, "Acme")
	var fieldErr *FieldError
	assert.ErrorAs(t, err, &fieldErr)
}

func TestSetEntryField_UnknownSection(t *testing.T) {
	_, err := SetEntryField(types.SeedResume(), types.Section("projects"), 1, EntryTitle, "x")
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestAddEntry_AppendsBlankEntryWithFreshID(t *testing.T) {
	before := types.SeedResume()
	ids := NewCounter(before.MaxID())

	after, id, err := AddEntry(before, types.SectionExperience, ids)
	require.NoError(t, err)

	require.Len(t, after.Experience, 2)
	assert.Len(t, before.Experience, 1)
	assert.Equal(t, types.Experience{ID: id}, after.Experience[1])
	assert.NotEqual(t, before.Experience[0].ID, id)
}

func TestAddEntry_IDsUniqueAcrossRapidAdds(t *testing.T) {
	data := types.ResumeData{}
	ids := NewCounter(0)
	seen := map[int64]bool{}

	for i := 0; i < 100; i++ {
		var id int64
		var err error
		data, id, err = AddEntry(data, types.SectionEducation, ids)
		require.NoError(t, err)
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, data.Education, 100)
}

func TestAddEntry_SiblingSnapshotsDoNotClobber(t *testing.T) {
	base := types.ResumeData{Experience: make([]types.Experience, 1, 8)}
	ids := NewCounter(10)

	a, idA, err := AddEntry(base, types.SectionExperience, ids)
	require.NoError(t, err)
	b, idB, err := AddEntry(base, types.SectionExperience, ids)
	require.NoError(t, err)

	assert.Equal(t, idA, a.Experience[1].ID)
	assert.Equal(t, idB, b.Experience[1].ID)
}

func TestAddThenDelete_RestoresSequence(t *testing.T) {
	for _, section := range []types.Section{types.SectionExperience, types.SectionEducation} {
		t.Run(string(section), func(t *testing.T) {
			before := types.SeedResume()
			ids := NewCounter(before.MaxID())

			added, id, err := AddEntry(before, section, ids)
			require.NoError(t, err)
			restored, err := DeleteEntry(added, section, id)
			require.NoError(t, err)

			assert.Equal(t, before.Experience, restored.Experience)
			assert.Equal(t, before.Education, restored.Education)
		})
	}
}

func TestAddEntry_RefusesIDAboveMaximum(t *testing.T) {
	before := types.SeedResume()
	before.Experience[0].ID = types.MaxEntryID
	ids := NewCounter(before.MaxID())

	after, id, err := AddEntry(before, types.SectionExperience, ids)
	assert.ErrorIs(t, err, ErrIDsExhausted)
	assert.Zero(t, id)
	assert.Equal(t, before, after)

	// The existing entry stays reachable.
	restored, err := DeleteEntry(after, types.SectionExperience, types.MaxEntryID)
	require.NoError(t, err)
	assert.Empty(t, restored.Experience)
}

func TestDeleteEntry_NonexistentIDIsNoop(t *testing.T) {
	before := types.SeedResume()

	after, err := DeleteEntry(before, types.SectionExperience, 42)
	require.NoError(t, err)

	assert.Len(t, after.Experience, len(before.Experience))
	assert.Equal(t, before.Experience, after.Experience)
}

func TestDeleteEntry_RemovesExactlyMatchingEntry(t *testing.T) {
	data := types.ResumeData{Experience: []types.Experience{
		{ID: 1, Title: "a"}, {ID: 2, Title: "b"}, {ID: 3, Title: "c"},
	}}

	after, err := DeleteEntry(data, types.SectionExperience, 2)
	require.NoError(t, err)

	assert.Equal(t, []types.Experience{{ID: 1, Title: "a"}, {ID: 3, Title: "c"}}, after.Experience)
	assert.Len(t, data.Experience, 3)
}

func TestCounter_ObserveKeepsIDsAboveImported(t *testing.T) {
	c := NewCounter(0)
	c.Observe(50)
	c.Observe(10)
	assert.Equal(t, int64(51), c.Next())
}
