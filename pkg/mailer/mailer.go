package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"

	"github.com/docspace/docspace/pkg/logger"
)

//go:generate mockgen -destination=../mocks/mock_mailer.go -package=mocks github.com/docspace/docspace/pkg/mailer Mailer

// SendResult describes an accepted message
type SendResult struct {
	MessageID string
}

// Mailer delivers a single message with an HTML body and a plain text alternative
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) (*SendResult, error)
}

// Config holds the configuration for the mailer
type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
	Timeout      time.Duration
}

// SMTPMailer delivers through an SMTP relay
type SMTPMailer struct {
	config   *Config
	logger   logger.Logger
	testMode bool
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(config *Config, log logger.Logger) *SMTPMailer {
	return &SMTPMailer{config: config, logger: log}
}

// NewTestSMTPMailer builds messages but never dials the relay
func NewTestSMTPMailer(config *Config, log logger.Logger) *SMTPMailer {
	return &SMTPMailer{config: config, logger: log, testMode: true}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, html, text string) (*SendResult, error) {
	msg, err := m.buildMessage(to, subject, html, text)
	if err != nil {
		return nil, err
	}
	result := &SendResult{MessageID: msg.GetMessageID()}

	if m.testMode {
		m.logger.WithField("to", to).WithField("subject", subject).Info("Test mode, email not sent")
		return result, nil
	}

	client, err := m.createSMTPClient()
	if err != nil {
		return nil, err
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return result, nil
}

func (m *SMTPMailer) buildMessage(to, subject, html, text string) (*mail.Msg, error) {
	msg := mail.NewMsg(mail.WithNoDefaultUserAgent())
	if err := msg.FromFormat(m.config.FromName, m.config.FromEmail); err != nil {
		return nil, fmt.Errorf("failed to set email from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("failed to set email recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetMessageID()
	msg.SetDate()
	msg.SetBodyString(mail.TypeTextHTML, html)
	if text != "" {
		msg.AddAlternativeString(mail.TypeTextPlain, text)
	}
	return msg, nil
}

func (m *SMTPMailer) createSMTPClient() (*mail.Client, error) {
	timeout := m.config.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	clientOptions := []mail.Option{
		mail.WithPort(m.config.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(timeout),
	}

	// unauthenticated relays are allowed (local MTA on port 25)
	if m.config.SMTPUsername != "" && m.config.SMTPPassword != "" {
		clientOptions = append(clientOptions,
			mail.WithUsername(m.config.SMTPUsername),
			mail.WithPassword(m.config.SMTPPassword),
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
		)
	}

	client, err := mail.NewClient(m.config.SMTPHost, clientOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	return client, nil
}

// ConsoleMailer writes messages to the logger, used in development
type ConsoleMailer struct {
	logger logger.Logger
}

// NewConsoleMailer creates a new console mailer for development
func NewConsoleMailer(log logger.Logger) *ConsoleMailer {
	return &ConsoleMailer{logger: log}
}

func (m *ConsoleMailer) Send(_ context.Context, to, subject, _ string, text string) (*SendResult, error) {
	id := uuid.NewString()
	m.logger.WithFields(map[string]interface{}{
		"to":         to,
		"subject":    subject,
		"message_id": id,
	}).Info("Email (console):\n" + text)
	return &SendResult{MessageID: id}, nil
}
