// Package delivery renders briefings to email HTML and sends them
// through Resend.
package delivery

import (
	"regexp"
	"strings"
)

var (
	linkRE = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	boldRE = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

// MarkdownToHTML converts the digest's small markdown dialect (links,
// bold, bullet lines) into inline-styled HTML that email clients can
// render.
func MarkdownToHTML(text string) string {
	text = linkRE.ReplaceAllString(text, `<a href="$2" style="color: #326891; text-decoration: none;">$1</a>`)
	text = boldRE.ReplaceAllString(text, `<strong>$1</strong>`)

	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "• "):
			b.WriteString(`<div style="margin: 8px 0; padding-left: 8px;">` + line + `</div>`)
		case strings.TrimSpace(line) == "":
			b.WriteString(`<div style="height: 8px;"></div>`)
		default:
			b.WriteString(`<div style="margin: 8px 0;">` + line + `</div>`)
		}
	}
	return b.String()
}
