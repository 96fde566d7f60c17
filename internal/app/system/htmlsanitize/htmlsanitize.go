// Package htmlsanitize turns plain text from the sheet into safe HTML.
package htmlsanitize

import (
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// policy allows only the paragraph markup Paragraphs produces.
var policy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "br")
	return p
}()

// Paragraphs escapes text and splits it into <p> blocks on blank lines,
// keeping single line breaks as <br>. The result is passed through the
// sanitizer so nothing a coach types into a cell can add markup.
func Paragraphs(text string) template.HTML {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var b strings.Builder
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		lines := strings.Split(para, "\n")
		for i, ln := range lines {
			lines[i] = html.EscapeString(strings.TrimSpace(ln))
		}
		b.WriteString("<p>")
		b.WriteString(strings.Join(lines, "<br>"))
		b.WriteString("</p>")
	}
	return template.HTML(policy.Sanitize(b.String()))
}

// Sanitize strips everything but <p> and <br> from s.
func Sanitize(s string) string {
	return policy.Sanitize(s)
}
