// Package notify delivers report notifications over email, WhatsApp and
// Telegram. The chat channels are adapters over third party client APIs that
// expose their own method sets; every channel is reached through Service.
package notify

import (
	"context"
	"errors"

	"github.com/reporthub/reporthub/internal/metrics"
)

var (
	// ErrInvalidRecipient is returned when a recipient does not match the
	// address format of the channel.
	ErrInvalidRecipient = errors.New("invalid recipient")
	// ErrDeliveryFailed is returned when the underlying client reports a
	// failed send.
	ErrDeliveryFailed = errors.New("delivery failed")
	// ErrUnsupportedChannel is returned by Factory.Get for unknown names.
	ErrUnsupportedChannel = errors.New("unsupported notification channel")
)

// Service is the interface all channels implement. Send returns nil when the
// notification (and the attachment, if any) was delivered.
type Service interface {
	Send(ctx context.Context, recipient, message string, attachment *Attachment) error
	Available(ctx context.Context) bool
	Name() string
}

// Attachment references a file sent along with a notification.
type Attachment struct {
	Name string
}

// NewAttachment returns an attachment reference for name.
func NewAttachment(name string) *Attachment {
	return &Attachment{Name: name}
}

func (a *Attachment) String() string {
	if a == nil {
		return ""
	}
	return a.Name
}

// observe records the outcome of a send for channel and passes err through.
func observe(channel string, err error) error {
	switch {
	case err == nil:
		metrics.IncNotification(channel, metrics.StatusSent)
	case errors.Is(err, ErrInvalidRecipient):
		metrics.IncNotification(channel, metrics.StatusInvalidRecipient)
	default:
		metrics.IncNotification(channel, metrics.StatusFailed)
	}
	return err
}
