package delivery

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/ew616/project-dailyupdate/internal/digest"
)

// briefingTemplate is the email layout. Styles stay inline because most
// email clients strip <style> blocks.
var briefingTemplate = template.Must(template.New("briefing").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; background: #f9fafb; margin: 0; padding: 20px;">
<div style="max-width: 600px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 24px;">
<div style="border-bottom: 2px solid #111827; padding-bottom: 12px; margin-bottom: 20px;">
<h1 style="margin: 0; font-size: 22px; color: #111827;">Daily Update</h1>
<p style="margin: 4px 0 0; color: #6b7280; font-size: 14px;">{{.Date}}</p>
{{- if .Weather}}
<p style="margin: 4px 0 0; color: #6b7280; font-size: 14px;">{{.Weather}}</p>
{{- end}}
</div>
{{- range .Sections}}
<div style="margin-bottom: 24px;">
<h2 style="font-size: 14px; letter-spacing: 1px; color: #111827; border-bottom: 1px solid #e5e7eb; padding-bottom: 6px;">{{.Title}}</h2>
{{.Body}}
</div>
{{- end}}
{{- if .Unavailable}}
<p style="color: #9ca3af; font-size: 12px; margin-bottom: 4px;">Unavailable sources: {{.Unavailable}}</p>
{{- end}}
<p style="color: #9ca3af; font-size: 12px; margin: 4px 0 0;">Compiled from {{.ArticleCount}} articles.</p>
</div>
</body>
</html>
`))

type briefingData struct {
	Date         string
	Weather      string
	Sections     []briefingSection
	Unavailable  string
	ArticleCount int
}

type briefingSection struct {
	Title string
	Body  template.HTML
}

// RenderBriefing produces the final email HTML from digest sections.
// The section markdown is already link-and-bullet formatted; it is
// converted here rather than escaped.
func RenderBriefing(now time.Time, sections []digest.Section, weather string, unavailable []string, articleCount int) (string, error) {
	data := briefingData{
		Date:         now.Format("Monday, January 02, 2006"),
		Weather:      weather,
		Unavailable:  strings.Join(unavailable, ", "),
		ArticleCount: articleCount,
	}
	for _, s := range sections {
		data.Sections = append(data.Sections, briefingSection{
			Title: strings.ToUpper(s.Topic),
			Body:  template.HTML(MarkdownToHTML(s.Content)),
		})
	}

	var buf bytes.Buffer
	if err := briefingTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering briefing: %w", err)
	}
	return buf.String(), nil
}
