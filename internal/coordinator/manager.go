// Package coordinator ties report generation, notification delivery and
// content decoration together for a demonstration run.
package coordinator

import (
	"context"
	"time"

	"github.com/reporthub/reporthub/internal/config"
	"github.com/reporthub/reporthub/internal/decorate"
	"github.com/reporthub/reporthub/internal/i18n"
	"github.com/reporthub/reporthub/internal/logging"
	"github.com/reporthub/reporthub/internal/metrics"
	"github.com/reporthub/reporthub/internal/notify"
	"github.com/reporthub/reporthub/internal/report"
)

// Manager owns the generator registry and the notification channels.
type Manager struct {
	cfg        *config.Config
	registry   *report.Registry
	channels   *notify.Factory
	translator *i18n.Translator
	lang       string
	Now        func() time.Time // injectable clock for testing
}

// Option configures a Manager.
type Option func(*Manager)

// WithRegistry replaces the generator registry.
func WithRegistry(r *report.Registry) Option {
	return func(m *Manager) { m.registry = r }
}

// WithChannels replaces the notification channel factory.
func WithChannels(f *notify.Factory) Option {
	return func(m *Manager) { m.channels = f }
}

// New creates a manager whose channels are built from cfg.Channels.
func New(cfg *config.Config, opts ...Option) *Manager {
	m := &Manager{
		cfg:        cfg,
		registry:   report.NewRegistry(),
		translator: i18n.MustNew(),
		lang:       cfg.Language,
		Now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.channels == nil {
		subject := m.translator.Translate(m.lang, i18n.MsgEmailSubject, nil)
		m.channels = notify.NewFactory(cfg.Channels, notify.WithEmailSubject(subject))
	}

	for _, w := range cfg.Validate() {
		logging.Get().Warn().Str("warning", w).Msg("config validation")
	}
	return m
}

// Registry returns the generator registry.
func (m *Manager) Registry() *report.Registry { return m.registry }

// Channels returns the notification channel factory.
func (m *Manager) Channels() *notify.Factory { return m.channels }

// GenerateReport creates a report in the requested format. An unknown format
// is returned as an error wrapping report.ErrUnsupportedFormat.
func (m *Manager) GenerateReport(data any, format string, styling *report.StylingOptions) (*report.Report, error) {
	g, err := m.registry.Create(format)
	if err != nil {
		logging.Get().Error().Err(err).Str("format", format).Msg("cannot generate report")
		return nil, err
	}
	rep := g.Generate(data, styling)
	logging.Get().Info().Object("report", rep).Msg("report generated")
	return rep, nil
}

// SendReport notifies recipient over channel that rep is ready. Unknown
// channels and failed sends are logged and reported as false.
func (m *Manager) SendReport(ctx context.Context, rep *report.Report, recipient, channel string) bool {
	svc, err := m.channels.Get(channel)
	if err != nil {
		logging.Get().Error().Err(err).Str("channel", channel).Msg("cannot send report")
		return false
	}
	message := m.translator.Translate(m.lang, i18n.MsgReportReady, map[string]any{"Format": string(rep.Format())})
	attachment := notify.NewAttachment("report." + rep.Format().Extension())

	if err := svc.Send(ctx, recipient, message, attachment); err != nil {
		logging.Get().Warn().Err(err).Str("channel", svc.Name()).Str("recipient", recipient).Msg("report not delivered")
		return false
	}
	logging.Get().Info().Str("channel", svc.Name()).Str("recipient", recipient).Str("report_id", rep.ID().String()).Msg("report delivered")
	return true
}

// DemonstrateDecorator renders every layer of the configured
// Basic -> Color -> Font -> Border chain.
func (m *Manager) DemonstrateDecorator() []string {
	d := m.cfg.Demo.Decoration
	styling := d.Styling
	layers := decorate.Chain(decorate.NewBasic(d.Content, &styling),
		decorate.WithColor(d.Color, d.Background),
		decorate.WithFont(d.FontFamily, d.FontSize, d.FontWeight),
		decorate.WithBorder(d.BorderStyle, d.BorderWidth, d.BorderColor),
	)
	out := decorate.RenderAll(layers)
	for i, s := range out {
		logging.Get().Info().Int("layer", i).Str("rendered", s).Msg("decorated report")
	}
	return out
}

// CheckChannels reports the availability of every registered channel.
func (m *Manager) CheckChannels(ctx context.Context) map[string]bool {
	out := make(map[string]bool)
	for _, name := range m.channels.Names() {
		svc, err := m.channels.Get(name)
		if err != nil {
			continue
		}
		out[name] = svc.Available(ctx)
	}
	return out
}

// DeliveryResult is the outcome of one configured delivery.
type DeliveryResult struct {
	config.Delivery
	ReportID string `json:"report_id,omitempty"`
	Sent     bool   `json:"sent"`
	Error    string `json:"error,omitempty"`
}

// Summary describes a completed demonstration run.
type Summary struct {
	Reports    []*report.Report `json:"-"`
	Deliveries []DeliveryResult `json:"deliveries"`
	Decoration []string         `json:"decoration"`
	Duration   time.Duration    `json:"duration"`
}

// Sent returns the number of deliveries that succeeded.
func (s Summary) Sent() int {
	n := 0
	for _, d := range s.Deliveries {
		if d.Sent {
			n++
		}
	}
	return n
}

// Run generates and sends every configured delivery, then demonstrates the
// decorator chain. A delivery with an unsupported format is recorded as
// failed and the run continues. Run stops early when ctx is cancelled.
func (m *Manager) Run(ctx context.Context) (Summary, error) {
	start := m.Now()
	var sum Summary
	log := logging.Get()

	log.Info().Int("deliveries", len(m.cfg.Demo.Deliveries)).Msg("generating and sending reports")
	for _, d := range m.cfg.Demo.Deliveries {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		res := DeliveryResult{Delivery: d}
		styling := m.cfg.Demo.Styling
		rep, err := m.GenerateReport(m.cfg.Demo.Data, d.Format, &styling)
		if err != nil {
			res.Error = err.Error()
			sum.Deliveries = append(sum.Deliveries, res)
			continue
		}
		sum.Reports = append(sum.Reports, rep)
		res.ReportID = rep.ID().String()
		res.Sent = m.SendReport(ctx, rep, d.Recipient, d.Channel)
		if !res.Sent {
			res.Error = "not delivered"
		}
		sum.Deliveries = append(sum.Deliveries, res)
	}

	if err := ctx.Err(); err != nil {
		return sum, err
	}
	log.Info().Msg("demonstrating decorator chain")
	sum.Decoration = m.DemonstrateDecorator()

	end := m.Now()
	sum.Duration = end.Sub(start)
	metrics.ObserveRunDuration(sum.Duration.Seconds())
	metrics.SetLastRun(end)
	log.Info().Int("sent", sum.Sent()).Int("total", len(sum.Deliveries)).Dur("duration", sum.Duration).Msg("demonstration complete")
	return sum, nil
}
