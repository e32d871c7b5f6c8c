package notify

import (
	"context"
	"fmt"
	"regexp"

	"github.com/reporthub/reporthub/internal/config"
	"github.com/reporthub/reporthub/internal/logging"
)

var chatIDPattern = regexp.MustCompile(`^-?[0-9]+$`)

// BotInfo is the bot metadata returned by the Telegram API.
type BotInfo struct {
	Name    string
	Version string
}

// TelegramAPI is the method set of the Telegram bot client.
type TelegramAPI interface {
	SendMessage(chatID, text string) bool
	SendDocument(chatID string, document *Attachment) bool
	BotInfo() *BotInfo
}

type simulatedTelegram struct {
	token string
}

func (c *simulatedTelegram) SendMessage(chatID, text string) bool {
	logging.Get().Info().Str("chat_id", chatID).Str("text", text).Msg("telegram api: message sent")
	return true
}

func (c *simulatedTelegram) SendDocument(chatID string, document *Attachment) bool {
	logging.Get().Info().Str("chat_id", chatID).Str("document", document.String()).Msg("telegram api: document sent")
	return true
}

func (c *simulatedTelegram) BotInfo() *BotInfo {
	return &BotInfo{Name: "ReportBot", Version: "1.0"}
}

// Telegram adapts a TelegramAPI client to Service.
type Telegram struct {
	api    TelegramAPI
	chatID string
}

// TelegramOption configures a Telegram adapter.
type TelegramOption func(*Telegram)

// WithTelegramAPI replaces the client used by the adapter.
func WithTelegramAPI(api TelegramAPI) TelegramOption {
	return func(t *Telegram) {
		if api != nil {
			t.api = api
		}
	}
}

// NewTelegram returns a Telegram adapter backed by a simulated bot client
// unless WithTelegramAPI is given.
func NewTelegram(cfg config.TelegramConfig, opts ...TelegramOption) *Telegram {
	t := &Telegram{api: &simulatedTelegram{token: cfg.BotToken}, chatID: cfg.ChatID}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the notifier backend name.
func (t *Telegram) Name() string { return "Telegram" }

// Available reports whether bot metadata can be retrieved.
func (t *Telegram) Available(context.Context) bool {
	return t.api.BotInfo() != nil
}

// Send posts message and the optional document to an integer chat id.
func (t *Telegram) Send(ctx context.Context, recipient, message string, attachment *Attachment) error {
	_ = ctx
	log := logging.Get()
	log.Info().Str("recipient", recipient).Str("default_chat", t.chatID).Msg("adapting message for telegram")

	if !chatIDPattern.MatchString(recipient) {
		log.Warn().Str("recipient", recipient).Msg("invalid telegram chat id")
		return observe(t.Name(), fmt.Errorf("%w: %q is not a chat id", ErrInvalidRecipient, recipient))
	}

	msgOK := t.api.SendMessage(recipient, message)
	docOK := true
	if attachment != nil {
		docOK = t.api.SendDocument(recipient, attachment)
	}
	if !msgOK || !docOK {
		log.Error().Bool("message", msgOK).Bool("document", docOK).Str("recipient", recipient).Msg("telegram send failed")
		return observe(t.Name(), fmt.Errorf("%w: telegram message=%t document=%t", ErrDeliveryFailed, msgOK, docOK))
	}
	return observe(t.Name(), nil)
}
