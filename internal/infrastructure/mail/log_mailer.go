package mail

import (
	"context"

	"github.com/rs/zerolog"
)

// LogMailer writes outgoing account mail to the log instead of an SMTP
// relay. Deployments with a real relay replace it behind the Mailer port.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendPasswordReset(_ context.Context, email, resetToken string) error {
	m.log.Info().
		Str("email", email).
		Str("reset_token", resetToken).
		Msg("password reset mail")
	return nil
}
