package services

import (
	"fmt"
	"net/smtp"

	"spendwise/internal/config"
	"spendwise/internal/logger"
)

// NewMailer returns an SMTP-backed mailer when SMTP is configured, and a
// logging mailer otherwise so the rest of the app keeps working with
// degraded email delivery.
func NewMailer(cfg *config.Config) Mailer {
	if cfg.SMTPHost == "" {
		return &logMailer{}
	}
	return &smtpMailer{
		addr: cfg.SMTPHost + ":" + cfg.SMTPPort,
		auth: smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost),
		from: cfg.SMTPFrom,
	}
}

// smtpMailer delivers mail over plain SMTP.
type smtpMailer struct {
	addr string
	auth smtp.Auth
	from string
}

func (m *smtpMailer) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		m.from, to, subject, body)
	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}
	return nil
}

func (m *smtpMailer) SendVerificationEmail(to, name, link string) error {
	body := fmt.Sprintf("Hi %s,\n\nWelcome to Spendwise! Please verify your email address by opening the link below:\n\n%s\n\nIf you didn't create this account, you can ignore this email.\n", name, link)
	return m.send(to, "Verify your Spendwise email", body)
}

func (m *smtpMailer) SendPasswordResetEmail(to, link string) error {
	body := fmt.Sprintf("Hi,\n\nWe received a request to reset your Spendwise password. Open the link below to choose a new one. The link expires in 1 hour.\n\n%s\n\nIf you didn't request this, you can ignore this email.\n", link)
	return m.send(to, "Reset your Spendwise password", body)
}

// logMailer logs links instead of sending them. Used when SMTP is not
// configured.
type logMailer struct{}

func (logMailer) SendVerificationEmail(to, name, link string) error {
	logger.Get().Infow("verification email (SMTP not configured)", "to", to, "link", link)
	return nil
}

func (logMailer) SendPasswordResetEmail(to, link string) error {
	logger.Get().Infow("password reset email (SMTP not configured)", "to", to, "link", link)
	return nil
}
