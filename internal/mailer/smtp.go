package mailer

import (
	"errors"
	"fmt"
	"time"

	gomail "gopkg.in/mail.v2"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPMailer struct {
	dialer    dialer
	fromEmail string
	backoff   time.Duration
}

func NewSMTPMailer(host string, port int, username, password, fromEmail string) (*SMTPMailer, error) {
	if host == "" {
		return nil, errors.New("smtp host is required")
	}
	if fromEmail == "" {
		return nil, errors.New("from email is required")
	}

	d := gomail.NewDialer(host, port, username, password)
	d.Timeout = 10 * time.Second

	return &SMTPMailer{dialer: d, fromEmail: fromEmail, backoff: time.Second}, nil
}

func (m *SMTPMailer) Send(templateFile string, env Envelope, data any) error {
	body, err := render(templateFile, data)
	if err != nil {
		return fmt.Errorf("render %s: %w", templateFile, err)
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.fromEmail, FromName)
	msg.SetAddressHeader("To", env.ToEmail, env.ToName)
	if env.ReplyTo != "" {
		msg.SetHeader("Reply-To", env.ReplyTo)
	}
	msg.SetHeader("Subject", body.subject)
	msg.SetBody("text/plain", body.plainBody)
	msg.AddAlternative("text/html", body.htmlBody)

	var lastErr error
	for i := 0; i < maxRetires; i++ {
		if lastErr = m.dialer.DialAndSend(msg); lastErr == nil {
			return nil
		}
		// linear backoff
		time.Sleep(m.backoff * time.Duration(i+1))
	}

	return fmt.Errorf("failed to send email after %d attempts, error: %w", maxRetires, lastErr)
}
