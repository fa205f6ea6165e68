//go:generate mockery --name Mailer --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"eduafri/internal/config"
	"eduafri/internal/middleware"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer は送信せずにログへ書くだけ (mailer.type=log)
type LogMailer struct{}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	middleware.GetLogger(ctx).Info("Mail not sent (log mailer)", "to", to, "subject", subject, "body", body)
	return nil
}

// SmtpMailer は認証なしの SMTP リレー (開発用の mailhog など) に送る
type SmtpMailer struct {
	cfg *config.SMTPConfig
}

// plainMessage は text/plain の RFC 5322 メッセージを組み立てる
func plainMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return []byte(b.String())
}

func (m *SmtpMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)
	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))

	c, err := smtp.Dial(addr)
	if err != nil {
		logger.Error("SMTP dial failed", "error", err, "addr", addr)
		return err
	}
	defer c.Close()

	steps := []struct {
		name string
		run  func() error
	}{
		{"MAIL FROM", func() error { return c.Mail(m.cfg.From) }},
		{"RCPT TO", func() error { return c.Rcpt(to) }},
		{"DATA", func() error {
			wc, err := c.Data()
			if err != nil {
				return err
			}
			if _, err := wc.Write(plainMessage(m.cfg.From, to, subject, body)); err != nil {
				wc.Close()
				return err
			}
			return wc.Close()
		}},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			logger.Error("SMTP command failed", "step", step.name, "error", err, "to", to)
			return fmt.Errorf("smtp %s: %w", step.name, err)
		}
	}

	logger.Info("Welcome mail sent via SMTP", "to", to, "addr", addr)
	return c.Quit()
}

// NewMailer は mailer.type に応じた実装を返す。不明な値は LogMailer。
func NewMailer(cfg *config.Config) (Mailer, error) {
	logger := slog.Default()
	switch cfg.Mailer.Type {
	case "smtp":
		logger.Info("Initializing SMTP mailer...")
		smtpCfg := cfg.SMTP
		if smtpCfg.From == "" {
			smtpCfg.From = cfg.Mailer.From
		}
		return &SmtpMailer{cfg: &smtpCfg}, nil
	case "ses":
		logger.Info("Initializing SES mailer...")
		return NewSESMailer(cfg)
	case "sendgrid":
		logger.Info("Initializing SendGrid mailer...")
		return NewSendGridMailer(cfg)
	case "log":
		logger.Info("Initializing Log mailer...")
		return &LogMailer{}, nil
	default:
		logger.Warn("Unknown mailer type, defaulting to LogMailer", "type", cfg.Mailer.Type)
		return &LogMailer{}, nil
	}
}
