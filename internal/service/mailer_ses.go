package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"eduafri/internal/config"
	"eduafri/internal/middleware"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SESMailer は AWS SES v2 API で送る
type SESMailer struct {
	client *sesv2.Client
	from   string
}

// sesLoadOptions は ses.auth_type から認証情報の取り方を決める。
// static_credentials 以外は SDK のデフォルトチェーン (IAM ロール等) に任せる。
func sesLoadOptions(ses config.SESConfig) ([]func(*awsconfig.LoadOptions) error, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(ses.Region)}
	if ses.AuthType != "static_credentials" {
		if ses.AuthType != "iam_role" {
			slog.Warn("Unknown SES auth_type, using default credential chain", "type", ses.AuthType)
		}
		return opts, nil
	}
	if ses.AccessKeyID == "" || ses.SecretAccessKey == "" {
		return nil, errors.New("ses: static_credentials requires access_key_id and secret_access_key")
	}
	provider := credentials.NewStaticCredentialsProvider(ses.AccessKeyID, ses.SecretAccessKey, "")
	return append(opts, awsconfig.WithCredentialsProvider(provider)), nil
}

func NewSESMailer(cfg *config.Config) (Mailer, error) {
	opts, err := sesLoadOptions(cfg.SES)
	if err != nil {
		return nil, err
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("ses: load aws config: %w", err)
	}

	m := &SESMailer{client: sesv2.NewFromConfig(awsCfg), from: cfg.SES.From}
	if m.from == "" {
		m.from = cfg.Mailer.From
	}
	slog.Info("SES mailer ready", "region", cfg.SES.Region, "auth_type", cfg.SES.AuthType)
	return m, nil
}

// sesInput は本文をテキストのみの Simple メッセージとして組み立てる
func sesInput(from, to, subject, body string) *sesv2.SendEmailInput {
	utf8 := func(v string) *types.Content {
		return &types.Content{Data: aws.String(v), Charset: aws.String("UTF-8")}
	}
	return &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination:      &types.Destination{ToAddresses: []string{to}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: utf8(subject),
				Body:    &types.Body{Text: utf8(body)},
			},
		},
	}
}

func (m *SESMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)
	out, err := m.client.SendEmail(ctx, sesInput(m.from, to, subject, body))
	if err != nil {
		logger.Error("SES send failed", "error", err, "to", to)
		return err
	}
	logger.Info("Welcome mail sent via SES", "to", to, "message_id", aws.ToString(out.MessageId))
	return nil
}
