package rendering

import "github.com/jonathan/resume-builder/internal/types"

const (
	namePlaceholder  = "Nombre Apellido"
	titlePlaceholder = "Tu Titular Profesional"
)

// Document is the view model of the preview. Every block that is empty in
// the résumé is already dropped here, so templates only test for presence.
type Document struct {
	Name       string
	Title      string
	Contacts   []Contact
	Summary    string
	Experience []Entry
	Education  []Entry
	Skills     string
}

// Contact is one item of the header contact line.
type Contact struct {
	Kind  string // email, phone, linkedin or location
	Value string
}

// Entry is one displayed experience or education item.
type Entry struct {
	ID          int64
	Heading     string // job title or degree
	Subheading  string // company or institution
	Period      string
	Description string
}

// Project maps a résumé onto the preview view model. It has no side effects.
func Project(data types.ResumeData) Document {
	info := data.PersonalInfo
	doc := Document{
		Name:    orDefault(info.Name, namePlaceholder),
		Title:   orDefault(info.Title, titlePlaceholder),
		Summary: data.Summary,
		Skills:  data.Skills,
	}

	for _, c := range []Contact{
		{Kind: "email", Value: info.Email},
		{Kind: "phone", Value: info.Phone},
		{Kind: "linkedin", Value: info.LinkedIn},
		{Kind: "location", Value: info.Location},
	} {
		if c.Value != "" {
			doc.Contacts = append(doc.Contacts, c)
		}
	}

	for _, e := range data.Experience {
		if e.Title == "" {
			continue
		}
		doc.Experience = append(doc.Experience, Entry{
			ID:          e.ID,
			Heading:     e.Title,
			Subheading:  e.Company,
			Period:      e.Period,
			Description: e.Description,
		})
	}

	for _, e := range data.Education {
		if e.Degree == "" {
			continue
		}
		doc.Education = append(doc.Education, Entry{
			ID:          e.ID,
			Heading:     e.Degree,
			Subheading:  e.Institution,
			Period:      e.Period,
			Description: e.Description,
		})
	}

	return doc
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
