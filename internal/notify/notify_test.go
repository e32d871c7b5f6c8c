package notify

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reporthub/reporthub/internal/config"
)

type fakeWhatsApp struct {
	msgOK, fileOK bool
	status        string
	files         []string
}

func (f *fakeWhatsApp) SendMessage(string, string) bool { return f.msgOK }
func (f *fakeWhatsApp) SendFile(_ string, a *Attachment) bool {
	f.files = append(f.files, a.Name)
	return f.fileOK
}
func (f *fakeWhatsApp) Status() string { return f.status }

type fakeTelegram struct {
	msgOK, docOK bool
	info         *BotInfo
	docs         int
}

func (f *fakeTelegram) SendMessage(string, string) bool { return f.msgOK }
func (f *fakeTelegram) SendDocument(string, *Attachment) bool {
	f.docs++
	return f.docOK
}
func (f *fakeTelegram) BotInfo() *BotInfo { return f.info }

func defaultChannels() config.Channels {
	return config.DefaultConfig().Channels
}

func TestEmailSend(t *testing.T) {
	var gotAddr string
	var gotTo []string
	var gotMsg []byte
	old := sendMailHook
	sendMailHook = func(addr string, _ smtp.Auth, _ string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, msg
		return nil
	}
	defer func() { sendMailHook = old }()

	e := NewEmail(defaultChannels().Email, WithSubject("Reporte Generado"))
	err := e.Send(context.Background(), "user@x.com", "Your report PDF is ready", NewAttachment("report.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "smtp.gmail.com:587", gotAddr)
	assert.Equal(t, []string{"user@x.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Reporte Generado")
	assert.Contains(t, string(gotMsg), "X-Attachment: report.pdf")
	assert.True(t, strings.HasSuffix(string(gotMsg), "Your report PDF is ready"))
}

func TestEmailInvalidRecipient(t *testing.T) {
	called := false
	old := sendMailHook
	sendMailHook = func(string, smtp.Auth, string, []string, []byte) error {
		called = true
		return nil
	}
	defer func() { sendMailHook = old }()

	err := NewEmail(defaultChannels().Email).Send(context.Background(), "not-an-address", "m", nil)
	require.ErrorIs(t, err, ErrInvalidRecipient)
	assert.False(t, called, "transport must not be used for invalid recipients")
}

func TestEmailTransportFailure(t *testing.T) {
	old := sendMailHook
	sendMailHook = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("connection refused") }
	defer func() { sendMailHook = old }()

	err := NewEmail(defaultChannels().Email).Send(context.Background(), "a@b.c", "m", nil)
	require.ErrorIs(t, err, ErrDeliveryFailed)
}

func TestEmailDefaults(t *testing.T) {
	e := NewEmail(config.EmailConfig{}, WithSubject(""))
	assert.Equal(t, DefaultEmailSubject, e.Subject())
	assert.Equal(t, "Email", e.Name())
	assert.True(t, e.Available(context.Background()))
	assert.NoError(t, e.Send(context.Background(), "@", "", nil))
}

func TestWhatsAppRecipientValidation(t *testing.T) {
	w := NewWhatsApp(defaultChannels().WhatsApp)
	tests := []struct {
		recipient string
		valid     bool
	}{
		{"+1234567890", true},
		{"1234567890", true},
		{"+123456789012345", true},
		{"123456789", false},
		{"1234567890123456", false},
		{"notanumber", false},
		{"+12 34567890", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.recipient, func(t *testing.T) {
			err := w.Send(context.Background(), tt.recipient, "hi", nil)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidRecipient)
			}
		})
	}
}

func TestWhatsAppAttachmentAnd(t *testing.T) {
	tests := []struct {
		name          string
		msgOK, fileOK bool
		attachment    *Attachment
		wantErr       bool
		wantFiles     int
	}{
		{"message only", true, false, nil, false, 0},
		{"message and file", true, true, NewAttachment("report.xlsx"), false, 1},
		{"file fails", true, false, NewAttachment("report.xlsx"), true, 1},
		{"message fails", false, true, NewAttachment("report.xlsx"), true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeWhatsApp{msgOK: tt.msgOK, fileOK: tt.fileOK, status: StatusConnected}
			w := NewWhatsApp(defaultChannels().WhatsApp, WithWhatsAppAPI(api))
			err := w.Send(context.Background(), "+1234567890", "hi", tt.attachment)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrDeliveryFailed)
			} else {
				assert.NoError(t, err)
			}
			assert.Len(t, api.files, tt.wantFiles)
		})
	}
}

func TestWhatsAppAvailable(t *testing.T) {
	ctx := context.Background()
	assert.True(t, NewWhatsApp(defaultChannels().WhatsApp).Available(ctx))
	down := NewWhatsApp(defaultChannels().WhatsApp, WithWhatsAppAPI(&fakeWhatsApp{status: "Disconnected"}))
	assert.False(t, down.Available(ctx))
	assert.Equal(t, "WhatsApp", down.Name())
}

func TestTelegramSend(t *testing.T) {
	ctx := context.Background()
	tg := NewTelegram(defaultChannels().Telegram)
	assert.NoError(t, tg.Send(ctx, "123456789", "hi", nil))
	assert.NoError(t, tg.Send(ctx, "-100200", "hi", NewAttachment("report.word")))
	for _, bad := range []string{"abc", "12a", "--1", "+123", ""} {
		assert.ErrorIs(t, tg.Send(ctx, bad, "hi", nil), ErrInvalidRecipient, bad)
	}

	api := &fakeTelegram{msgOK: true, docOK: false}
	failing := NewTelegram(defaultChannels().Telegram, WithTelegramAPI(api))
	assert.NoError(t, failing.Send(ctx, "1", "hi", nil))
	assert.ErrorIs(t, failing.Send(ctx, "1", "hi", NewAttachment("report.pdf")), ErrDeliveryFailed)
	assert.Equal(t, 1, api.docs)
}

func TestTelegramAvailable(t *testing.T) {
	ctx := context.Background()
	tg := NewTelegram(defaultChannels().Telegram)
	assert.True(t, tg.Available(ctx))
	assert.Equal(t, "Telegram", tg.Name())
	assert.False(t, NewTelegram(config.TelegramConfig{}, WithTelegramAPI(&fakeTelegram{})).Available(ctx))

	info := (&simulatedTelegram{}).BotInfo()
	assert.Equal(t, &BotInfo{Name: "ReportBot", Version: "1.0"}, info)
}

func TestFactory(t *testing.T) {
	f := NewFactory(defaultChannels(), WithEmailSubject("Subject"))
	assert.Equal(t, []string{"email", "telegram", "whatsapp"}, f.Names())

	for _, name := range []string{"email", "EMAIL", "WhatsApp", "telegram"} {
		s, err := f.Get(name)
		require.NoError(t, err, name)
		require.NotNil(t, s)
	}
	s, err := f.Get("Email")
	require.NoError(t, err)
	assert.Equal(t, "Subject", s.(*Email).Subject())

	_, err = f.Get("sms")
	assert.ErrorIs(t, err, ErrUnsupportedChannel)
}

func TestFactoryClientsAndRegister(t *testing.T) {
	wa := &fakeWhatsApp{status: "Offline"}
	tg := &fakeTelegram{}
	f := NewFactory(defaultChannels(), WithWhatsAppClient(wa), WithTelegramClient(tg))

	s, err := f.Get("whatsapp")
	require.NoError(t, err)
	assert.False(t, s.Available(context.Background()))
	s, err = f.Get("telegram")
	require.NoError(t, err)
	assert.False(t, s.Available(context.Background()))

	f.Register("TELEGRAM", nil)
	_, err = f.Get("telegram")
	assert.ErrorIs(t, err, ErrUnsupportedChannel)
	assert.Equal(t, []string{"email", "whatsapp"}, f.Names())

	f.Register("Backup", NewEmail(config.EmailConfig{Host: "backup", Port: 25}))
	s, err = f.Get("backup")
	require.NoError(t, err)
	assert.Equal(t, "Email", s.Name())
}

func TestFactoryKeysAreLowercasedNotFolded(t *testing.T) {
	f := NewFactory(defaultChannels())
	f.Register("Straße", NewEmail(config.EmailConfig{}))

	_, err := f.Get("STRAßE")
	require.NoError(t, err)
	_, err = f.Get("STRASSE")
	assert.ErrorIs(t, err, ErrUnsupportedChannel)
}

func TestAttachmentString(t *testing.T) {
	var a *Attachment
	assert.Equal(t, "", a.String())
	assert.Equal(t, "report.pdf", NewAttachment("report.pdf").String())
}
