package delivery

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/resend/resend-go/v2"
)

// alertTemplate renders the pipeline-failure notice. The error text is
// escaped by the template, so raw driver errors are safe to pass in.
var alertTemplate = template.Must(template.New("alert").Parse(`<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; padding: 20px;">
<div style="max-width: 600px; margin: 0 auto; background: #fef2f2; border: 1px solid #fecaca; border-radius: 8px; padding: 20px;">
<h2 style="color: #991b1b; margin-top: 0;">Daily Briefing Failed</h2>
<p style="color: #7f1d1d;">The daily briefing pipeline encountered an error on {{.Date}}.</p>
<div style="background: #ffffff; border-radius: 4px; padding: 15px; margin: 15px 0;">
<strong style="color: #991b1b;">Error:</strong>
<pre style="background: #f3f4f6; padding: 10px; border-radius: 4px; overflow-x: auto; color: #374151;">{{.Error}}</pre>
</div>
{{- if .Context}}
<p style="color: #6b7280;"><strong>Context:</strong> {{.Context}}</p>
{{- end}}
<p style="color: #6b7280; font-size: 12px; margin-bottom: 0;">Check the deployment logs for more details.</p>
</div>
</body>
</html>
`))

// Sender delivers briefing emails through Resend.
type Sender struct {
	client *resend.Client
	from   string
	to     string
}

// NewSender creates a sender. From strings may carry a display name,
// e.g. "Daily Briefing <briefing@example.com>".
func NewSender(apiKey, from, to string) *Sender {
	return &Sender{
		client: resend.NewClient(apiKey),
		from:   from,
		to:     to,
	}
}

// SendBriefing sends the rendered briefing and returns the provider's
// email ID.
func (s *Sender) SendBriefing(ctx context.Context, now time.Time, html string) (string, error) {
	return s.send(ctx, briefingSubject(now), html)
}

// SendTest sends a fixed sample briefing to verify keys, addresses and
// rendering end to end.
func (s *Sender) SendTest(ctx context.Context, now time.Time, weather string) (string, error) {
	html, err := RenderBriefing(now, SampleSections(), weather, nil, 24)
	if err != nil {
		return "", err
	}
	return s.SendBriefing(ctx, now, html)
}

// SendErrorAlert emails a failure notice when the pipeline dies. The
// note adds optional context about where it failed.
func (s *Sender) SendErrorAlert(ctx context.Context, now time.Time, pipelineErr error, note string) (string, error) {
	subject, html, err := renderErrorAlert(now, pipelineErr, note)
	if err != nil {
		return "", err
	}
	return s.send(ctx, subject, html)
}

func (s *Sender) send(ctx context.Context, subject, html string) (string, error) {
	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{s.to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return "", fmt.Errorf("sending email: %w", err)
	}
	slog.Info("email sent", "id", sent.Id, "subject", subject)
	return sent.Id, nil
}

func briefingSubject(now time.Time) string {
	return fmt.Sprintf("Elias's Daily Update - %s", now.Format("January 02, 2006"))
}

func renderErrorAlert(now time.Time, pipelineErr error, note string) (subject, html string, err error) {
	date := now.Format("January 02, 2006 at 15:04")

	var buf bytes.Buffer
	err = alertTemplate.Execute(&buf, struct {
		Date    string
		Error   string
		Context string
	}{Date: date, Error: pipelineErr.Error(), Context: note})
	if err != nil {
		return "", "", fmt.Errorf("rendering alert: %w", err)
	}

	return fmt.Sprintf("[ALERT] Daily Briefing Failed - %s", date), buf.String(), nil
}
