package notify

import (
	"fmt"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/reporthub/reporthub/internal/config"
	"github.com/reporthub/reporthub/internal/logging"
	"github.com/reporthub/reporthub/internal/metrics"
)

// Channel names registered by NewFactory.
const (
	ChannelEmail    = "email"
	ChannelWhatsApp = "whatsapp"
	ChannelTelegram = "telegram"
)

// Factory selects a notification Service by channel name. Services are built
// once from configuration and shared across sends.
type Factory struct {
	services map[string]Service
}

type factoryOptions struct {
	emailOpts    []EmailOption
	whatsAppOpts []WhatsAppOption
	telegramOpts []TelegramOption
}

// FactoryOption configures the services built by NewFactory.
type FactoryOption func(*factoryOptions)

// WithEmailSubject sets the subject of the email channel.
func WithEmailSubject(subject string) FactoryOption {
	return func(o *factoryOptions) { o.emailOpts = append(o.emailOpts, WithSubject(subject)) }
}

// WithWhatsAppClient sets the client of the whatsapp channel.
func WithWhatsAppClient(api WhatsAppAPI) FactoryOption {
	return func(o *factoryOptions) { o.whatsAppOpts = append(o.whatsAppOpts, WithWhatsAppAPI(api)) }
}

// WithTelegramClient sets the client of the telegram channel.
func WithTelegramClient(api TelegramAPI) FactoryOption {
	return func(o *factoryOptions) { o.telegramOpts = append(o.telegramOpts, WithTelegramAPI(api)) }
}

// NewFactory builds the email, whatsapp and telegram channels from cfg.
func NewFactory(cfg config.Channels, opts ...FactoryOption) *Factory {
	var o factoryOptions
	for _, opt := range opts {
		opt(&o)
	}
	f := &Factory{services: make(map[string]Service)}
	f.Register(ChannelEmail, NewEmail(cfg.Email, o.emailOpts...))
	f.Register(ChannelWhatsApp, NewWhatsApp(cfg.WhatsApp, o.whatsAppOpts...))
	f.Register(ChannelTelegram, NewTelegram(cfg.Telegram, o.telegramOpts...))
	return f
}

// Get returns the service registered for name, ignoring case.
func (f *Factory) Get(name string) (Service, error) {
	s, ok := f.services[channelKey(name)]
	if !ok {
		metrics.IncUnsupported(metrics.LookupChannel)
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedChannel, name)
	}
	return s, nil
}

// Register adds or replaces the service for name. A nil service removes the
// channel.
func (f *Factory) Register(name string, s Service) {
	key := channelKey(name)
	if s == nil {
		delete(f.services, key)
		logging.Get().Warn().Str("channel", key).Msg("notification channel removed")
		return
	}
	f.services[key] = s
}

// Names returns the registered channel names in sorted order.
func (f *Factory) Names() []string {
	out := make([]string, 0, len(f.services))
	for k := range f.services {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func channelKey(name string) string {
	return cases.Lower(language.Und).String(name)
}
