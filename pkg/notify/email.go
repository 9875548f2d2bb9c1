package notify

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// EmailNotifier mails produced summaries over SMTP with implicit TLS.
type EmailNotifier struct {
	host     string
	port     int
	username string
	password string
	from     string
	to       string
	cc       []string
}

func NewEmailNotifier(host string, port int, username, password, from, to string, cc []string) *EmailNotifier {
	return &EmailNotifier{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		to:       to,
		cc:       cc,
	}
}

// Send mails one summary. The subject carries the content title or source URL.
func (e *EmailNotifier) Send(subject, body string) error {
	if e.host == "" || e.to == "" {
		return fmt.Errorf("smtp not configured")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", e.from)
	msg.SetHeader("To", e.to)
	if len(e.cc) > 0 {
		msg.SetHeader("Cc", e.cc...)
	}
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(e.host, e.port, e.username, e.password)
	dialer.SSL = e.port == 465

	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send summary email: %w", err)
	}
	return nil
}
