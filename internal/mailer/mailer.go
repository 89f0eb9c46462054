package mailer

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"fieldtrack-backend/config"
)

// Mailer sends account emails over SMTP. Without SMTP settings in the
// environment it stays disabled and sends are skipped.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func New() *Mailer {
	return &Mailer{
		host:     config.GetEnv("SMTP_HOST", ""),
		port:     config.GetEnvAsInt("SMTP_PORT", 587),
		username: config.GetEnv("SMTP_USERNAME", ""),
		password: config.GetEnv("SMTP_PASSWORD", ""),
		from:     config.GetEnv("SMTP_FROM", config.GetEnv("SMTP_USERNAME", "")),
	}
}

func (m *Mailer) Enabled() bool {
	return m.host != "" && m.username != ""
}

// SendWelcome mails initial credentials to a freshly created account.
func (m *Mailer) SendWelcome(to, name, password string) error {
	if !m.Enabled() {
		log.Debug().Str("to", to).Msg("mailer disabled, skipping welcome email")
		return nil
	}

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your field-tracking account is ready.</p>"+
			"<p>Email: %s<br>Password: %s</p>"+
			"<p>Please change your password after the first login.</p>",
		name, to, password,
	)

	message := gomail.NewMessage()
	message.SetHeader("From", m.from)
	message.SetHeader("To", to)
	message.SetHeader("Subject", "Your field-tracking account")
	message.SetBody("text/html", body)

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := dialer.DialAndSend(message); err != nil {
		log.Error().Err(err).Str("to", to).Msg("welcome email failed")
		return err
	}

	log.Info().Str("to", to).Msg("welcome email sent")
	return nil
}
