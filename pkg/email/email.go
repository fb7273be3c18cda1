package email

// Service defines the outbound mail operations the auth flows need.
type Service interface {
	// SendPasswordResetEmail sends a reset link to the user.
	SendPasswordResetEmail(to, name, resetURL string) error

	// SendPasswordChangedEmail notifies the user their password changed.
	SendPasswordChangedEmail(to, name string) error
}

// Config holds email service configuration.
type Config struct {
	APIKey    string
	FromEmail string
	FromName  string
}
