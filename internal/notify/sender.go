package notify

import (
	"time"

	"github.com/rs/zerolog/log"
	gomail "gopkg.in/mail.v2"
)

// EmailConfig holds SMTP settings for the digest mail.
type EmailConfig struct {
	SMTPHost string
	SMTPPort int
	Username string
	Password string
	From     string
	To       string
	Enabled  bool
}

// EmailSender delivers rendered digests via SMTP.
type EmailSender struct {
	cfg EmailConfig
}

func NewEmailSender(cfg EmailConfig) *EmailSender {
	return &EmailSender{cfg: cfg}
}

// Send delivers one message with HTML body and plain-text fallback. A
// disabled sender is a no-op; failures are logged and returned, never fatal
// to the run.
func (s *EmailSender) Send(msg *RenderedMessage) error {
	if !s.cfg.Enabled {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", s.cfg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}

	dialer := gomail.NewDialer(s.cfg.SMTPHost, s.cfg.SMTPPort, s.cfg.Username, s.cfg.Password)
	dialer.Timeout = 10 * time.Second

	if err := dialer.DialAndSend(m); err != nil {
		log.Error().Err(err).Str("to", s.cfg.To).Str("subject", msg.Subject).Msg("email send failed")
		return err
	}

	log.Info().Str("subject", msg.Subject).Msg("email sent")
	return nil
}
