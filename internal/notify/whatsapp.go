package notify

import (
	"context"
	"fmt"
	"regexp"

	"github.com/reporthub/reporthub/internal/config"
	"github.com/reporthub/reporthub/internal/logging"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// WhatsAppAPI is the method set of the WhatsApp client library. It does not
// match Service, so WhatsApp adapts it.
type WhatsAppAPI interface {
	SendMessage(phone, message string) bool
	SendFile(phone string, file *Attachment) bool
	Status() string
}

// StatusConnected is the connection status reported by a healthy client.
const StatusConnected = "Connected"

// simulatedWhatsApp stands in for the vendor client.
type simulatedWhatsApp struct {
	apiKey string
}

func (c *simulatedWhatsApp) SendMessage(phone, message string) bool {
	logging.Get().Info().Str("phone", phone).Str("message", message).Msg("whatsapp api: message sent")
	return true
}

func (c *simulatedWhatsApp) SendFile(phone string, file *Attachment) bool {
	logging.Get().Info().Str("phone", phone).Str("file", file.String()).Msg("whatsapp api: file sent")
	return true
}

func (c *simulatedWhatsApp) Status() string { return StatusConnected }

// WhatsApp adapts a WhatsAppAPI client to Service.
type WhatsApp struct {
	api   WhatsAppAPI
	phone string
}

// WhatsAppOption configures a WhatsApp adapter.
type WhatsAppOption func(*WhatsApp)

// WithWhatsAppAPI replaces the client used by the adapter.
func WithWhatsAppAPI(api WhatsAppAPI) WhatsAppOption {
	return func(w *WhatsApp) {
		if api != nil {
			w.api = api
		}
	}
}

// NewWhatsApp returns a WhatsApp adapter. Without WithWhatsAppAPI a simulated
// client authenticated with cfg.APIKey is used.
func NewWhatsApp(cfg config.WhatsAppConfig, opts ...WhatsAppOption) *WhatsApp {
	w := &WhatsApp{api: &simulatedWhatsApp{apiKey: cfg.APIKey}, phone: cfg.Phone}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Name returns the notifier backend name.
func (w *WhatsApp) Name() string { return "WhatsApp" }

// Available reports whether the client is connected.
func (w *WhatsApp) Available(context.Context) bool {
	return w.api.Status() == StatusConnected
}

// Send delivers message and, when present, the attachment to a phone number
// of 10 to 15 digits with an optional leading "+".
func (w *WhatsApp) Send(ctx context.Context, recipient, message string, attachment *Attachment) error {
	_ = ctx
	log := logging.Get()
	log.Info().Str("recipient", recipient).Str("sender", w.phone).Msg("adapting message for whatsapp")

	if !phonePattern.MatchString(recipient) {
		log.Warn().Str("recipient", recipient).Msg("invalid phone number")
		return observe(w.Name(), fmt.Errorf("%w: %q is not a phone number", ErrInvalidRecipient, recipient))
	}

	msgOK := w.api.SendMessage(recipient, message)
	fileOK := true
	if attachment != nil {
		fileOK = w.api.SendFile(recipient, attachment)
	}
	if !msgOK || !fileOK {
		log.Error().Bool("message", msgOK).Bool("file", fileOK).Str("recipient", recipient).Msg("whatsapp send failed")
		return observe(w.Name(), fmt.Errorf("%w: whatsapp message=%t file=%t", ErrDeliveryFailed, msgOK, fileOK))
	}
	return observe(w.Name(), nil)
}
