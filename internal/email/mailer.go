package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/simecdev/simec-api/internal/model"
)

const notificationTemplate = `
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<p>Olá, {{.RecipientName}}.</p>
	<h2>{{.Title}}</h2>
	<p>{{.Message}}</p>
	{{if .Details}}
	<table cellpadding="6" cellspacing="0" border="0">
		{{range .Details}}
		<tr>
			<td><strong>{{.Label}}</strong></td>
			<td>{{.Value}}</td>
		</tr>
		{{end}}
	</table>
	{{end}}
	{{if .ActionURL}}
	<p><a href="{{.ActionURL}}">{{.ActionLabel}}</a></p>
	{{end}}
</body>
</html>
`

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type mailer struct {
	dialer *gomail.Dialer
	from   string
	tmpl   *template.Template
}

// NewMailer creates an SMTP-backed notification dispatcher.
func NewMailer(cfg SMTPConfig) (Service, error) {
	tmpl, err := template.New("notification").Parse(notificationTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse notification template: %w", err)
	}

	return &mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		tmpl:   tmpl,
	}, nil
}

func (m *mailer) SendNotification(_ context.Context, msg *model.NotificationMessage) error {
	var body bytes.Buffer
	if err := m.tmpl.Execute(&body, msg); err != nil {
		return fmt.Errorf("failed to render notification body: %w", err)
	}

	mail := gomail.NewMessage()
	mail.SetHeader("From", m.from)
	mail.SetHeader("To", msg.Recipient)
	mail.SetHeader("Subject", msg.Subject)
	mail.SetBody("text/html", body.String())

	if err := m.dialer.DialAndSend(mail); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}
	return nil
}
