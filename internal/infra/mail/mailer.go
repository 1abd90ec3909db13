// Package mail delivers admission notifications over SMTP.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	gomail "github.com/wneessen/go-mail"

	"guestpass/internal/config"
	"guestpass/internal/domain/ports/adapter"
)

var _ adapter.Notifier = (*SMTPNotifier)(nil)

// SMTPNotifier sends the approval email: HTML body with a fallback link and
// the QR image attached. Failures are returned to the caller, which logs
// them; there are no retries at this layer.
type SMTPNotifier struct {
	cfg config.SMTPConfig
}

func NewSMTPNotifier(cfg config.SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg}
}

var bodyTmpl = template.Must(template.New("admission").Parse(`<!doctype html>
<html>
<body style="font-family:system-ui,Arial,sans-serif;max-width:600px;margin:0 auto;">
  <h2>You're approved, {{.Name}}!</h2>
  <p>Your access request has been approved. Show the attached QR code at the
  entrance. <strong>It works exactly once.</strong></p>
  <p>If the code cannot be scanned, open this link instead:</p>
  <p><a href="{{.FallbackURL}}">{{.FallbackURL}}</a></p>
</body>
</html>`))

func (n *SMTPNotifier) SendAdmission(ctx context.Context, recipient, displayName string, codePNG []byte, fallbackURL string) error {
	var body bytes.Buffer
	if err := bodyTmpl.Execute(&body, struct {
		Name        string
		FallbackURL string
	}{displayName, fallbackURL}); err != nil {
		return fmt.Errorf("render body: %w", err)
	}

	msg := gomail.NewMsg()
	if err := msg.From(n.cfg.From); err != nil {
		return fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("to address: %w", err)
	}
	msg.Subject("Your admission code")
	msg.SetBodyString(gomail.TypeTextHTML, body.String())
	if err := msg.AttachReader("admission-code.png", bytes.NewReader(codePNG)); err != nil {
		return fmt.Errorf("attach code image: %w", err)
	}

	client, err := gomail.NewClient(n.cfg.Host,
		gomail.WithPort(n.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(n.cfg.Username),
		gomail.WithPassword(n.cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send to %s: %w", recipient, err)
	}
	return nil
}
