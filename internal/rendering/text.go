package rendering

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText flattens rendered preview markup into the text an applicant
// tracking system would extract: one line per heading or paragraph, with a
// blank line before each section.
func PlainText(markup string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", &RenderError{Message: "failed to parse preview markup", Cause: err}
	}

	var lines []string
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			lines = append(lines, s)
		}
	}

	doc.Find(".cv *").Each(func(_ int, s *goquery.Selection) {
		switch {
		case s.Is("h1"), s.HasClass("cv-title"), s.HasClass("entry-sub"),
			s.HasClass("prose"), s.HasClass("plain"):
			add(s.Text())
		case s.Is("h2"):
			lines = append(lines, "")
			add(s.Text())
		case s.HasClass("cv-contact"):
			add(strings.Join(s.Find(".contact").Map(func(_ int, c *goquery.Selection) string {
				return strings.TrimSpace(c.Text())
			}), " | "))
		case s.HasClass("entry-head"):
			head := strings.TrimSpace(s.Find("h3").Text())
			if period := strings.TrimSpace(s.Find(".period").Text()); period != "" {
				head += " (" + period + ")"
			}
			add(head)
		}
	})

	return strings.Join(lines, "\n") + "\n", nil
}
