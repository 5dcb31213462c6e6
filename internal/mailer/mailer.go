package mailer

import (
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"

	"reviewhub/internal/config"
)

// Sender delivers a confirmation code to a user's email address.
// Delivery is best-effort: signup never rolls back on a send failure.
type Sender interface {
	SendConfirmationCode(to, username, code string) error
}

type Mailer struct {
	host    string
	port    int
	user    string
	pass    string
	from    string
	enabled bool
}

func New(cfg *config.Config) *Mailer {
	return &Mailer{
		host:    cfg.MailHost,
		port:    cfg.MailPort,
		user:    cfg.MailUsername,
		pass:    cfg.MailPassword,
		from:    cfg.MailSenderAddress,
		enabled: cfg.MailHost != "",
	}
}

func (m *Mailer) SendConfirmationCode(to, username, code string) error {
	if !m.enabled {
		// no SMTP host configured, nothing to do
		return nil
	}
	if to == m.from {
		return errors.New("invalid email address")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your ReviewHub confirmation code")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYour confirmation code is: %s\n\nExchange it at /api/v1/auth/token for an access token.", username, code))

	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)

	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send confirmation mail: %w", err)
	}

	return nil
}
