package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

// Sender dispatches verification mail. Implementations are best-effort: a
// failed send is reported to the caller but must never undo the signup that
// triggered it.
type Sender interface {
	SendVerification(ctx context.Context, email, username string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string

	// BaseURL is the externally reachable address used in the
	// verification link.
	BaseURL string
}

type SMTPSender struct {
	cfg SMTPConfig
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// message builds the verification mail with a confirmation link rooted at the
// configured base URL.
func (s *SMTPSender) message(email, username string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return nil, fmt.Errorf("mail: invalid from address: %w", err)
	}
	if err := msg.To(email); err != nil {
		return nil, fmt.Errorf("mail: invalid recipient: %w", err)
	}
	msg.Subject("Verify your email")
	msg.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf(
		"Thank you for signing up. Please verify your email address:\n\n%s/verify/%s\n",
		s.cfg.BaseURL, username,
	))
	return msg, nil
}

func (s *SMTPSender) SendVerification(ctx context.Context, email, username string) error {
	msg, err := s.message(email, username)
	if err != nil {
		return err
	}

	client, err := gomail.NewClient(s.cfg.Host,
		gomail.WithPort(s.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.Username),
		gomail.WithPassword(s.cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("mail: client setup: %w", err)
	}

	// honors ctx, so the caller's timeout bounds the whole dial+send
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("mail: send: %w", err)
	}

	return nil
}

// NoopSender is used when no SMTP host is configured and in tests.
type NoopSender struct{}

func (NoopSender) SendVerification(context.Context, string, string) error { return nil }
