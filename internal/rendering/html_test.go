package rendering

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func TestProject_EmptyResumeShowsOnlyHeader(t *testing.T) {
	doc := Project(types.ResumeData{})

	assert.Equal(t, "Nombre Apellido", doc.Name)
	assert.Equal(t, "Tu Titular Profesional", doc.Title)
	assert.Empty(t, doc.Contacts)
	assert.Empty(t, doc.Experience)
	assert.Empty(t, doc.Education)

	markup, err := RenderFragment(doc)
	require.NoError(t, err)

	page := parse(t, markup)
	assert.Equal(t, "Nombre Apellido", page.Find("h1").Text())
	assert.Equal(t, "Tu Titular Profesional", page.Find(".cv-title").Text())
	assert.Equal(t, 0, page.Find(".cv-contact").Length())
	assert.Equal(t, 0, page.Find("section").Length())
}

func TestProject_ContactOrderAndOmission(t *testing.T) {
	doc := Project(types.ResumeData{PersonalInfo: types.PersonalInfo{
		Location: "Valencia",
		Email:    "ana@example.com",
		LinkedIn: "linkedin.com/in/ana",
	}})

	kinds := make([]string, 0, len(doc.Contacts))
	for _, c := range doc.Contacts {
		kinds = append(kinds, c.Kind)
	}
	assert.Equal(t, []string{"email", "linkedin", "location"}, kinds)
}

func TestProject_FiltersEntriesWithoutHeading(t *testing.T) {
	data := types.ResumeData{
		Experience: []types.Experience{
			{ID: 1, Title: "", Company: "Oculta S.L."},
			{ID: 2, Title: "Backend", Company: "Visible S.A."},
		},
		Education: []types.Education{{ID: 3, Institution: "Sin título"}},
	}

	doc := Project(data)
	require.Len(t, doc.Experience, 1)
	assert.Equal(t, int64(2), doc.Experience[0].ID)
	assert.Empty(t, doc.Education)

	markup, err := RenderFragment(doc)
	require.NoError(t, err)
	page := parse(t, markup)
	assert.Equal(t, 1, page.Find(`section[data-section="experience"] .entry`).Length())
	assert.NotContains(t, markup, "Oculta")
	assert.Equal(t, 0, page.Find(`section[data-section="education"]`).Length())
}

func TestRenderFragment_SeedResume(t *testing.T) {
	markup, err := RenderFragment(Project(types.SeedResume()))
	require.NoError(t, err)

	page := parse(t, markup)
	headings := page.Find("h2").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"RESUMEN PROFESIONAL", "EXPERIENCIA LABORAL", "EDUCACIÓN", "HABILIDADES"}, headings)

	entry := page.Find(`section[data-section="experience"] .entry`).First()
	assert.Equal(t, "Desarrolladora en Prácticas", entry.Find("h3").Text())
	assert.Equal(t, "Jun 2023 - Sep 2023", entry.Find(".period").Text())
	assert.Equal(t, "Innovatec Solutions", entry.Find(".entry-sub").Text())
}

func TestRenderFragment_EscapesUserText(t *testing.T) {
	data := types.ResumeData{Summary: `<script>alert("x")</script>`}

	markup, err := RenderFragment(Project(data))
	require.NoError(t, err)

	assert.NotContains(t, markup, "<script>")
	assert.Equal(t, `<script>alert("x")</script>`, parse(t, markup).Find(".prose").Text())
}

func TestRenderFragment_DescriptionKeepsLineBreaks(t *testing.T) {
	data := types.ResumeData{Experience: []types.Experience{
		{ID: 1, Title: "Dev", Description: "Primera línea\nSegunda línea"},
	}}

	markup, err := RenderFragment(Project(data))
	require.NoError(t, err)
	assert.Equal(t, "Primera línea\nSegunda línea", parse(t, markup).Find(".entry .prose").Text())
	assert.Contains(t, Stylesheet(), "pre-wrap")
}

func TestRenderStandalone_WrapsFragmentWithStyles(t *testing.T) {
	doc := Project(types.SeedResume())

	standalone, err := RenderStandalone(doc)
	require.NoError(t, err)

	page := parse(t, standalone)
	assert.True(t, strings.HasPrefix(standalone, "<!DOCTYPE html>"))
	assert.Equal(t, "Ana García", page.Find("title").Text())
	assert.Contains(t, page.Find("style").Text(), ".cv-header")
	assert.Equal(t, 1, page.Find("body #cv-preview").Length())
}

func TestPlainText(t *testing.T) {
	markup, err := RenderFragment(Project(types.SeedResume()))
	require.NoError(t, err)

	text, err := PlainText(markup)
	require.NoError(t, err)

	lines := strings.Split(text, "\n")
	assert.Equal(t, "Ana García", lines[0])
	assert.Equal(t, "Desarrolladora de Software Junior", lines[1])
	assert.Equal(t, "ana.garcia@email.com | +34 612 345 678 | linkedin.com/in/anagarcia-dev | Valencia, España", lines[2])
	assert.Equal(t, "", lines[3])
	assert.Equal(t, "RESUMEN PROFESIONAL", lines[4])
	assert.Contains(t, text, "Desarrolladora en Prácticas (Jun 2023 - Sep 2023)\nInnovatec Solutions\n")
	assert.True(t, strings.HasSuffix(text, "Inglés (Nivel C1)\n"))
}
