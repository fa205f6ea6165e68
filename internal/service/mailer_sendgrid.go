package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"eduafri/internal/config"
	"eduafri/internal/middleware"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendGridHost     = "https://api.sendgrid.com"
	sendGridEndpoint = "/v3/mail/send"
)

// SendGridMailer は SendGrid v3 API でメールを送信する
type SendGridMailer struct {
	key  string
	from *sgmail.Email
}

func NewSendGridMailer(cfg *config.Config) (Mailer, error) {
	if cfg.SendGrid.APIKey == "" {
		return nil, errors.New("sendgrid: api_key is required")
	}
	from := cfg.SendGrid.From
	if from == "" {
		from = cfg.Mailer.From
	}
	return &SendGridMailer{
		key:  cfg.SendGrid.APIKey,
		from: sgmail.NewEmail(cfg.App.Name, from),
	}, nil
}

func (m *SendGridMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)

	p := sgmail.NewPersonalization()
	p.Subject = subject
	p.AddTos(sgmail.NewEmail("", to))

	msg := sgmail.NewV3Mail()
	msg.SetFrom(m.from)
	msg.AddPersonalizations(p)
	msg.AddContent(sgmail.NewContent("text/plain", body))

	req := sendgrid.GetRequest(m.key, sendGridEndpoint, sendGridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(msg)

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		logger.Error("Failed to send email via SendGrid", "error", err, "to", to)
		return err
	}
	if res.StatusCode >= http.StatusBadRequest {
		logger.Error("SendGrid rejected the email", "status", res.StatusCode, "to", to)
		return fmt.Errorf("sendgrid: unexpected status %d", res.StatusCode)
	}

	logger.Info("Email sent successfully via SendGrid", "to", to, "subject", subject)
	return nil
}
