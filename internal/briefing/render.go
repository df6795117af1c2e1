package briefing

import (
	"fmt"
	"html"
	"strings"
)

// RenderEmail wraps the generated sections in a full HTML document with a
// personalized greeting and sign-off. When no sections were extracted the raw
// report text is embedded as-is, since generation output is untyped free text.
func RenderEmail(recipientName string, sections []Section, rawReport string) string {
	var b strings.Builder

	b.WriteString("<html><head><style>li { font-weight: normal; }</style></head><body>\n")
	fmt.Fprintf(&b, "<h1>Morning Briefing for %s</h1>\n", html.EscapeString(recipientName))
	fmt.Fprintf(&b, "<p>Good morning, %s! Here's an overview of your day:</p>\n", html.EscapeString(recipientName))

	if len(sections) == 0 {
		fmt.Fprintf(&b, "<div>%s</div>\n", rawReport)
	} else {
		for _, s := range sections {
			fmt.Fprintf(&b, "<h2>%s</h2>\n", html.EscapeString(s.Title))
			b.WriteString(s.HTML)
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "<p>Wishing you a productive and balanced day, %s!</p>\n", html.EscapeString(recipientName))
	b.WriteString("<p>Best regards,</p>\n<p>Your AI Assistant</p>\n")
	b.WriteString("</body></html>\n")

	return b.String()
}
