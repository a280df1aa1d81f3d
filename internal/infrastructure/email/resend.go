package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"
	"github.com/rithm-app/rithm-backend/internal/config"
)

var matchTemplate = template.Must(template.New("match").Parse(`
<div style="font-family: Arial, sans-serif; line-height: 1.6;">
  <h2>Hi {{.RecipientName}},</h2>
  <p>Good news! You've matched with <strong>{{.MatchedName}}</strong> on {{.AppName}}.</p>
  <p>Why not say hello or check out their profile?</p>
  <p>Happy connecting!</p>
  <p>The {{.AppName}} Team</p>
</div>
`))

type matchTemplateData struct {
	RecipientName string
	MatchedName   string
	AppName       string
}

// Sender delivers transactional mail through Resend.
type Sender struct {
	client  *resend.Client
	from    string
	appName string
}

func NewSender(cfg config.EmailConfig) *Sender {
	return &Sender{
		client:  resend.NewClient(cfg.ResendAPIKey),
		from:    fmt.Sprintf("%s <%s>", cfg.AppName, cfg.FromAddress),
		appName: cfg.AppName,
	}
}

// SendMatchNotification emails one side of a new match. Each side is sent
// independently; the caller decides what a partial failure means.
func (s *Sender) SendMatchNotification(ctx context.Context, recipientEmail, recipientName, matchedName string) error {
	var body bytes.Buffer
	err := matchTemplate.Execute(&body, matchTemplateData{
		RecipientName: recipientName,
		MatchedName:   matchedName,
		AppName:       s.appName,
	})
	if err != nil {
		return fmt.Errorf("failed to render match email: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{recipientEmail},
		Subject: fmt.Sprintf("You have a new match on %s!", s.appName),
		Html:    body.String(),
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send match email: %w", err)
	}
	return nil
}
