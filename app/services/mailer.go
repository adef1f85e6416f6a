package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

var ErrMailerNotConfigured = errors.New("mailer is not configured")

// MailSender is the outbound mail transport the services depend on.
type MailSender interface {
	SendHTMLEmail(to, subject, htmlBody, textBody string) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	SSL      bool
}

type Mailer struct {
	config Config
	dialer *gomail.Dialer
}

func NewMailer(cfg Config) *Mailer {
	m := &Mailer{config: cfg}
	if cfg.Host != "" {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
		m.dialer.SSL = cfg.SSL
	}
	return m
}

// Verify opens and closes one SMTP session so misconfiguration shows up at startup.
func (m *Mailer) Verify() error {
	if m.dialer == nil {
		return ErrMailerNotConfigured
	}
	closer, err := m.dialer.Dial()
	if err != nil {
		return fmt.Errorf("smtp dial %s:%d: %w", m.config.Host, m.config.Port, err)
	}
	return closer.Close()
}

func (m *Mailer) SendHTMLEmail(to, subject, htmlBody, textBody string) error {
	if m.dialer == nil {
		return ErrMailerNotConfigured
	}

	msg := gomail.NewMessage()
	if m.config.FromName != "" {
		msg.SetAddressHeader("From", m.config.From, m.config.FromName)
	} else {
		msg.SetHeader("From", m.config.From)
	}
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	if textBody != "" {
		msg.SetBody("text/plain", textBody)
		msg.AddAlternative("text/html", htmlBody)
	} else {
		msg.SetBody("text/html", htmlBody)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		zap.S().Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	zap.S().Infof("Email %q sent to %s", subject, to)
	return nil
}
