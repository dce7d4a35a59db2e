package email

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/bryokn/ClassiConnect/internal/config"
)

type Sender interface {
	SendEmail(to []string, subject, body string) error
}

type gomailSender struct {
	cfg    *config.SMTPConfig
	logger *zap.Logger
}

func NewGomailSender(cfg *config.SMTPConfig, logger *zap.Logger) Sender {
	return &gomailSender{
		cfg:    cfg,
		logger: logger,
	}
}

func (s *gomailSender) SendEmail(to []string, subject, body string) error {
	if s.cfg.Host == "" || s.cfg.Username == "" || s.cfg.Password == "" || s.cfg.SenderEmail == "" {
		s.logger.Error("SMTP configuration is incomplete. Email not sent.",
			zap.String("host", s.cfg.Host),
			zap.String("username", s.cfg.Username),
			zap.Bool("password_set", s.cfg.Password != ""),
			zap.String("sender", s.cfg.SenderEmail))
		return fmt.Errorf("SMTP configuration is incomplete")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.SenderEmail)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		s.logger.Error("Failed to send email", zap.Error(err), zap.Strings("to", to), zap.String("subject", subject))
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("Email sent successfully", zap.Strings("to", to), zap.String("subject", subject))
	return nil
}
