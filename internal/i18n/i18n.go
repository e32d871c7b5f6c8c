// Package i18n holds the user facing texts sent with report notifications.
package i18n

import (
	"embed"
	"path"
	"sort"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/reporthub/reporthub/internal/logging"
)

// Message IDs.
const (
	MsgReportReady  = "ReportReady"
	MsgEmailSubject = "EmailSubject"
)

// DefaultLanguage is used when a requested language has no message file.
const DefaultLanguage = "en"

//go:embed locales/*.yaml
var localeFS embed.FS

// Translator resolves message IDs for a language.
type Translator struct {
	bundle     *i18n.Bundle
	localizers map[string]*i18n.Localizer
}

// New loads the embedded message files.
func New() (*Translator, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, err
	}
	t := &Translator{bundle: bundle, localizers: make(map[string]*i18n.Localizer)}
	for _, e := range entries {
		mf, err := bundle.LoadMessageFileFS(localeFS, path.Join("locales", e.Name()))
		if err != nil {
			return nil, err
		}
		lang := mf.Tag.String()
		t.localizers[lang] = i18n.NewLocalizer(bundle, lang)
	}
	return t, nil
}

// MustNew is like New but panics when the embedded files cannot be parsed.
func MustNew() *Translator {
	t, err := New()
	if err != nil {
		panic(err)
	}
	return t
}

// Languages returns the languages with a message file, sorted.
func (t *Translator) Languages() []string {
	out := make([]string, 0, len(t.localizers))
	for lang := range t.localizers {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// Supported reports whether lang, or its base language, has a message file.
func (t *Translator) Supported(lang string) bool {
	_, ok := t.localizer(lang)
	return ok
}

// localizer finds the localizer for lang. Regional tags such as "es-ES" or
// "es_MX" resolve to their base language.
func (t *Translator) localizer(lang string) (*i18n.Localizer, bool) {
	if l, ok := t.localizers[strings.ToLower(lang)]; ok {
		return l, true
	}
	tag, err := language.Parse(strings.ReplaceAll(lang, "_", "-"))
	if err != nil {
		return nil, false
	}
	base, _ := tag.Base()
	l, ok := t.localizers[base.String()]
	return l, ok
}

// Translate renders messageID in lang with data as template input. Unknown
// languages fall back to DefaultLanguage; unknown IDs return the ID itself.
func (t *Translator) Translate(lang, messageID string, data map[string]any) string {
	localizer, ok := t.localizer(lang)
	if !ok {
		localizer = t.localizers[DefaultLanguage]
	}
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		logging.Get().Warn().Err(err).Str("lang", lang).Str("message_id", messageID).Msg("translation missing")
		return messageID
	}
	return msg
}
