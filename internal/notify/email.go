package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/reporthub/reporthub/internal/config"
	"github.com/reporthub/reporthub/internal/logging"
)

// DefaultEmailSubject is used when no subject is configured.
const DefaultEmailSubject = "Report generated"

// sendMailHook allows tests to override SMTP sending behavior. The default
// transport never dials; it logs the envelope and accepts the message.
var sendMailHook = simulatedSendMail

func simulatedSendMail(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
	logging.Get().Debug().Str("addr", addr).Str("from", from).Strs("to", to).Int("bytes", len(msg)).Msg("smtp transport accepted message")
	return nil
}

// Email sends notifications via SMTP.
type Email struct {
	host, user, pass string
	port             int
	subject          string
}

// EmailOption configures an Email service.
type EmailOption func(*Email)

// WithSubject sets the subject line of outgoing emails.
func WithSubject(subject string) EmailOption {
	return func(e *Email) {
		if subject != "" {
			e.subject = subject
		}
	}
}

// NewEmail returns an email service for the given SMTP settings.
func NewEmail(cfg config.EmailConfig, opts ...EmailOption) *Email {
	e := &Email{host: cfg.Host, port: cfg.Port, user: cfg.User, pass: cfg.Pass, subject: DefaultEmailSubject}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the notifier backend name.
func (e *Email) Name() string {
	_ = e
	return "Email"
}

// Available always reports true; SMTP has no connection to pre-flight.
func (e *Email) Available(context.Context) bool { return true }

// Subject returns the subject line used for outgoing emails.
func (e *Email) Subject() string { return e.subject }

// Send emails message to recipient. The recipient must contain "@".
func (e *Email) Send(ctx context.Context, recipient, message string, attachment *Attachment) error {
	_ = ctx
	log := logging.Get()
	log.Info().Str("recipient", recipient).Msg("sending email")

	if !strings.Contains(recipient, "@") {
		log.Warn().Str("recipient", recipient).Msg("invalid email address")
		return observe(e.Name(), fmt.Errorf("%w: %q is not an email address", ErrInvalidRecipient, recipient))
	}

	addr := fmt.Sprintf("%s:%d", e.host, e.port)
	log.Debug().Str("addr", addr).Msg("smtp configured")
	auth := smtp.PlainAuth("", e.user, e.pass, e.host)
	if err := sendMailHook(addr, auth, e.user, []string{recipient}, e.compose(recipient, message, attachment)); err != nil {
		log.Error().Err(err).Str("recipient", recipient).Msg("email send failed")
		return observe(e.Name(), fmt.Errorf("%w: %v", ErrDeliveryFailed, err))
	}
	log.Info().Str("recipient", recipient).Str("attachment", attachment.String()).Msg("email sent")
	return observe(e.Name(), nil)
}

func (e *Email) compose(to, body string, attachment *Attachment) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\nTo: %s\r\nSubject: %s\r\n", e.user, to, e.subject)
	if attachment != nil {
		fmt.Fprintf(&b, "X-Attachment: %s\r\n", attachment.Name)
	}
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
