package services

import (
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"exaura_site/internal/config"
	"exaura_site/internal/core"
)

// SMTPNotifier mails contact submissions to the configured inbox.
type SMTPNotifier struct {
	cfg    config.EmailConfig
	inbox  string
	dialer *gomail.Dialer
}

// NewSMTPNotifier returns nil when SMTP host or inbox is not configured.
func NewSMTPNotifier(cfg config.EmailConfig, inbox string) *SMTPNotifier {
	if cfg.SMTPHost == "" || inbox == "" {
		return nil
	}
	return &SMTPNotifier{
		cfg:    cfg,
		inbox:  inbox,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
	}
}

func (n *SMTPNotifier) NotifyContact(msg *core.ContactMessage) error {
	m := buildContactMail(n.cfg, n.inbox, msg)
	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func buildContactMail(cfg config.EmailConfig, inbox string, msg *core.ContactMessage) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", cfg.FromAddress, cfg.FromName)
	m.SetHeader("To", inbox)
	m.SetHeader("Reply-To", msg.Email)
	m.SetHeader("Subject", fmt.Sprintf("New contact message from %s", msg.Name))

	plainBody := fmt.Sprintf("Name: %s\nEmail: %s\nLanguage: %s\n\n%s\n", msg.Name, msg.Email, msg.Language, msg.Message)
	htmlBody := fmt.Sprintf(`<html><body>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Language:</strong> %s</p>
<p>%s</p>
</body></html>`, html.EscapeString(msg.Name), html.EscapeString(msg.Email), html.EscapeString(msg.Language), html.EscapeString(msg.Message))

	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)
	return m
}
