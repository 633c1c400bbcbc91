// Package mail delivers account e-mails over SMTP.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-contacts/internal/config"
	"github.com/MKhiriev/go-contacts/internal/logger"
	"gopkg.in/gomail.v2"
)

//go:generate mockgen -source=mail.go -destination=../mock/mail_mock.go -package=mock

// Sender sends account e-mails.
type Sender interface {
	// SendConfirmation mails a link that confirms the address to. host is the
	// public base URL of the service and token the signed e-mail token.
	SendConfirmation(ctx context.Context, to, username, host, token string) error
}

// dialer is the part of *gomail.Dialer used by the sender.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type smtpSender struct {
	dialer   dialer
	from     string
	fromName string
	logger   *logger.Logger
}

// NewSender returns an SMTP [Sender]. With no host configured it returns a
// sender that only logs.
func NewSender(cfg config.Mail, logger *logger.Logger) Sender {
	if cfg.Host == "" {
		logger.Warn().Msg("mail server is not configured, confirmation e-mails are disabled")
		return noopSender{logger: logger}
	}

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.Port == config.DefaultMailPort

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	return &smtpSender{
		dialer:   d,
		from:     from,
		fromName: cfg.FromName,
		logger:   logger,
	}
}

func (s *smtpSender) SendConfirmation(ctx context.Context, to, username, host, token string) error {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(to) == "" {
		return ErrEmptyRecipient
	}

	body, err := confirmationBody(username, host, token)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", confirmationSubject)
	m.SetBody("text/html", body)

	if err = s.dialer.DialAndSend(m); err != nil {
		log.Err(err).Str("func", "smtpSender.SendConfirmation").Str("to", to).Msg("failed to send confirmation e-mail")
		return fmt.Errorf("%w: %w", ErrSendingMail, err)
	}

	log.Info().Str("to", to).Msg("confirmation e-mail sent")
	return nil
}

type noopSender struct {
	logger *logger.Logger
}

func (n noopSender) SendConfirmation(ctx context.Context, to, _, _, _ string) error {
	logger.FromContext(ctx).Warn().Str("to", to).Msg("mail server is not configured, skip confirmation e-mail")
	return nil
}

const confirmationSubject = "Confirm your email"

var confirmationTemplate = template.Must(template.New("confirm").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>Hi {{.Username}}!</h2>
    <p>Thank you for signing up. Please confirm your e-mail address:</p>
    <p><a href="{{.Link}}">Confirm email</a></p>
  </div>
</body>
</html>`))

// confirmationLink is "<host>/auth/confirmed_email/<token>".
func confirmationLink(host, token string) string {
	return strings.TrimRight(host, "/") + "/auth/confirmed_email/" + url.PathEscape(token)
}

func confirmationBody(username, host, token string) (string, error) {
	var buf bytes.Buffer
	err := confirmationTemplate.Execute(&buf, struct {
		Username string
		Link     string
	}{
		Username: username,
		Link:     confirmationLink(host, token),
	})
	if err != nil {
		return "", fmt.Errorf("render confirmation e-mail: %w", err)
	}

	return buf.String(), nil
}
