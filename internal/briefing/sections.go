package briefing

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Section titles in the order they appear in the email.
var sectionOrder = []struct {
	ID    string
	Title string
}{
	{"weather_overview", "Weather"},
	{"weather_recommendations", "Weather Recommendations"},
	{"fitness_overview", "Fitness"},
	{"daily_schedule", "Today's Schedule"},
	{"suggestions", "Suggestions"},
}

// Section is one id-tagged HTML fragment extracted from the model's answer.
type Section struct {
	ID    string
	Title string
	HTML  string
}

// ExtractSections pulls the known id-tagged fragments out of the model's HTML
// answer, in canonical order. Ids the model omitted are skipped; an answer
// with no recognizable sections yields an empty slice and the caller falls
// back to the raw text.
func ExtractSections(htmlText string) []Section {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return nil
	}

	var sections []Section
	for _, s := range sectionOrder {
		sel := doc.Find("#" + s.ID)
		if sel.Length() == 0 {
			continue
		}
		frag, err := goquery.OuterHtml(sel.First())
		if err != nil || strings.TrimSpace(frag) == "" {
			continue
		}
		sections = append(sections, Section{ID: s.ID, Title: s.Title, HTML: frag})
	}

	return sections
}
