package email

import (
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendService implements Service using Resend.
type ResendService struct {
	client *resend.Client
	config *Config
}

func NewResendService(config *Config) (*ResendService, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}
	if config.FromEmail == "" {
		return nil, fmt.Errorf("from email is required")
	}

	return &ResendService{
		client: resend.NewClient(config.APIKey),
		config: config,
	}, nil
}

func (s *ResendService) SendPasswordResetEmail(to, name, resetURL string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail),
		To:      []string{to},
		Subject: "Reset Your CollegeVaani Password",
		Html:    PasswordResetEmailTemplate(name, resetURL),
	}

	if _, err := s.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	return nil
}

func (s *ResendService) SendPasswordChangedEmail(to, name string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail),
		To:      []string{to},
		Subject: "Your CollegeVaani Password Was Changed",
		Html:    PasswordChangedEmailTemplate(name),
	}

	if _, err := s.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send password changed email: %w", err)
	}

	return nil
}
