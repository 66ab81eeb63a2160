package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/medtrack/consult-api/config"
)

// Service sends transactional mail. Sending is always best-effort; callers
// must not fail their operation on a mail error.
type Service interface {
	SendWelcome(to, username string) error
}

// New returns an SMTP-backed service, or a no-op service when no SMTP host
// is configured.
func New(cfg config.SMTPConfig) Service {
	if cfg.Host == "" {
		return &noopService{}
	}
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func (s *smtpService) SendWelcome(to, username string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Welcome to the consultation tracker")
	m.SetBody("text/plain", fmt.Sprintf("Hello %s,\n\nYour account has been created.\n", username))

	return s.dialer.DialAndSend(m)
}

type noopService struct{}

func (s *noopService) SendWelcome(to, username string) error {
	return nil
}
