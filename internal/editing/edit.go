package editing

import (
	"slices"

	"github.com/jonathan/resume-builder/internal/types"
)

// Personal-info field names accepted by SetPersonalInfo.
const (
	PersonalName     = "name"
	PersonalTitle    = "title"
	PersonalPhone    = "phone"
	PersonalEmail    = "email"
	PersonalLinkedIn = "linkedin"
	PersonalLocation = "location"
)

// Entry field names. Period and description exist in both sections.
const (
	EntryTitle       = "title"
	EntryCompany     = "company"
	EntryDegree      = "degree"
	EntryInstitution = "institution"
	EntryPeriod      = "period"
	EntryDescription = "description"
)

// SetPersonalInfo returns a copy of data with one personal-info field replaced.
func SetPersonalInfo(data types.ResumeData, field, value string) (types.ResumeData, error) {
	info := data.PersonalInfo
	switch field {
	case PersonalName:
		info.Name = value
	case PersonalTitle:
		info.Title = value
	case PersonalPhone:
		info.Phone = value
	case PersonalEmail:
		info.Email = value
	case PersonalLinkedIn:
		info.LinkedIn = value
	case PersonalLocation:
		info.Location = value
	default:
		return data, &FieldError{Section: "personalInfo", Field: field}
	}
	data.PersonalInfo = info
	return data, nil
}

// SetText returns a copy of data with the summary or skills blob replaced.
func SetText(data types.ResumeData, field types.TextField, value string) (types.ResumeData, error) {
	switch field {
	case types.FieldSummary:
		data.Summary = value
	case types.FieldSkills:
		data.Skills = value
	default:
		return data, &FieldError{Section: string(field), Field: string(field)}
	}
	return data, nil
}

// SetEntryField replaces one field of the entry identified by id.
// An id with no matching entry leaves data unchanged.
func SetEntryField(data types.ResumeData, section types.Section, id int64, field, value string) (types.ResumeData, error) {
	switch section {
	case types.SectionExperience:
		i := slices.IndexFunc(data.Experience, func(e types.Experience) bool { return e.ID == id })
		entry := types.Experience{}
		if i >= 0 {
			entry = data.Experience[i]
		}
		switch field {
		case EntryTitle:
			entry.Title = value
		case EntryCompany:
			entry.Company = value
		case EntryPeriod:
			entry.Period = value
		case EntryDescription:
			entry.Description = value
		default:
			return data, &FieldError{Section: string(section), Field: field}
		}
		if i < 0 {
			return data, nil
		}
		data.Experience = replaceAt(data.Experience, i, entry)
	case types.SectionEducation:
		i := slices.IndexFunc(data.Education, func(e types.Education) bool { return e.ID == id })
		entry := types.Education{}
		if i >= 0 {
			entry = data.Education[i]
		}
		switch field {
		case EntryDegree:
			entry.Degree = value
		case EntryInstitution:
			entry.Institution = value
		case EntryPeriod:
			entry.Period = value
		case EntryDescription:
			entry.Description = value
		default:
			return data, &FieldError{Section: string(section), Field: field}
		}
		if i < 0 {
			return data, nil
		}
		data.Education = replaceAt(data.Education, i, entry)
	default:
		return data, ErrUnknownSection
	}
	return data, nil
}

// AddEntry appends a blank entry with a fresh identifier and returns that identifier.
func AddEntry(data types.ResumeData, section types.Section, ids IDSource) (types.ResumeData, int64, error) {
	id := ids.Next()
	if id <= 0 || id > types.MaxEntryID {
		return data, 0, ErrIDsExhausted
	}
	switch section {
	case types.SectionExperience:
		data.Experience = append(slices.Clip(data.Experience), types.Experience{ID: id})
	case types.SectionEducation:
		data.Education = append(slices.Clip(data.Education), types.Education{ID: id})
	default:
		return data, 0, ErrUnknownSection
	}
	return data, id, nil
}

// DeleteEntry removes the entry whose identifier is id.
// Deleting an identifier that does not exist is a no-op.
func DeleteEntry(data types.ResumeData, section types.Section, id int64) (types.ResumeData, error) {
	switch section {
	case types.SectionExperience:
		data.Experience = removeMatching(data.Experience, func(e types.Experience) bool { return e.ID == id })
	case types.SectionEducation:
		data.Education = removeMatching(data.Education, func(e types.Education) bool { return e.ID == id })
	default:
		return data, ErrUnknownSection
	}
	return data, nil
}

// replaceAt returns a new slice equal to s with s[i] replaced by v.
func replaceAt[T any](s []T, i int, v T) []T {
	out := slices.Clone(s)
	out[i] = v
	return out
}

// removeMatching returns s itself when nothing matches, otherwise a new slice
// without the matching elements.
func removeMatching[T any](s []T, match func(T) bool) []T {
	if !slices.ContainsFunc(s, match) {
		return s
	}
	out := make([]T, 0, len(s)-1)
	for _, v := range s {
		if !match(v) {
			out = append(out, v)
		}
	}
	return out
}
