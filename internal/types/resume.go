// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// PersonalInfo holds the contact header of a résumé. Every field is optional.
type PersonalInfo struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	LinkedIn string `json:"linkedin"`
	Location string `json:"location"`
}

// Experience is one repeatable job entry. ID is only used for matching.
type Experience struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

// Education is one repeatable education entry. ID is only used for matching.
type Education struct {
	ID          int64  `json:"id"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

// ResumeData is the root aggregate edited by the user.
//
// A committed ResumeData is treated as immutable: edits build a new value that
// shares the untouched slices with the previous one.
type ResumeData struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Summary      string       `json:"summary"`
	Experience   []Experience `json:"experience"`
	Education    []Education  `json:"education"`
	Skills       string       `json:"skills"`
}

// Section names a repeatable entry sequence.
type Section string

const (
	SectionExperience Section = "experience"
	SectionEducation  Section = "education"
)

// Valid reports whether s is a known section.
func (s Section) Valid() bool {
	return s == SectionExperience || s == SectionEducation
}

// TextField names a top-level free-text field.
type TextField string

const (
	FieldSummary TextField = "summary"
	FieldSkills  TextField = "skills"
)

// Valid reports whether f is a known top-level text field.
func (f TextField) Valid() bool {
	return f == FieldSummary || f == FieldSkills
}

// MaxEntryID is the largest entry identifier. Identifiers travel through
// JSON to the browser, where integers above 2^53-1 lose precision.
const MaxEntryID int64 = 1<<53 - 1

// MaxID returns the largest entry identifier across both sequences.
func (d ResumeData) MaxID() int64 {
	var maxID int64
	for _, e := range d.Experience {
		maxID = max(maxID, e.ID)
	}
	for _, e := range d.Education {
		maxID = max(maxID, e.ID)
	}
	return maxID
}

// SeedResume returns the illustrative content shown on first load.
func SeedResume() ResumeData {
	return ResumeData{
		PersonalInfo: PersonalInfo{
			Name:     "Ana García",
			Title:    "Desarrolladora de Software Junior",
			Phone:    "+34 612 345 678",
			Email:    "ana.garcia@email.com",
			LinkedIn: "linkedin.com/in/anagarcia-dev",
			Location: "Valencia, España",
		},
		Summary: "Recién graduada en Ingeniería Informática con una gran pasión por el desarrollo de aplicaciones web y la resolución de problemas complejos. Busco una oportunidad para aplicar mis conocimientos en React y Node.js, y contribuir al éxito de un equipo dinámico.",
		Experience: []Experience{
			{
				ID:          1,
				Title:       "Desarrolladora en Prácticas",
				Company:     "Innovatec Solutions",
				Period:      "Jun 2023 - Sep 2023",
				Description: "Colaboré en el desarrollo de un panel de administración para un cliente del sector logístico. Implementé componentes de UI con React y participé en la corrección de más de 50 bugs. Me familiaricé con metodologías ágiles como Scrum.",
			},
		},
		Education: []Education{
			{
				ID:          1,
				Degree:      "Grado en Ingeniería Informática",
				Institution: "Universitat Politècnica de València (UPV)",
				Period:      "Sep 2019 - Jun 2023",
				Description: "Especialización en Ingeniería de Software. Proyecto de Fin de Grado sobre una aplicación de gestión de tareas con una calificación de 9.5/10.",
			},
		},
		Skills: "JavaScript (ES6+), React, HTML5, CSS3, Node.js, Express, Git, Scrum, Inglés (Nivel C1)",
	}
}
