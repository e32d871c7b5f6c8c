// Package decorate adds presentation layers around report content. Every
// layer is a Component wrapping exactly one inner Component.
//
// A decorator derives its marker from the raw content of the chain, not from
// the text rendered by the layer below it, so only one marker is visible in
// any rendered string.
package decorate

import (
	"fmt"

	"github.com/reporthub/reporthub/internal/logging"
	"github.com/reporthub/reporthub/internal/metrics"
	"github.com/reporthub/reporthub/internal/report"
)

// Layer names used in logs and metrics.
const (
	LayerBasic  = "basic"
	LayerColor  = "color"
	LayerFont   = "font"
	LayerBorder = "border"
)

// Component is a renderable piece of report content.
type Component interface {
	Render() string
	Content() any
	Styling() *report.StylingOptions
}

// Basic is the undecorated leaf of a chain.
type Basic struct {
	content any
	styling *report.StylingOptions
}

// NewBasic returns a leaf component. A nil styling becomes the defaults.
func NewBasic(content any, styling *report.StylingOptions) *Basic {
	if styling == nil {
		styling = report.DefaultStylingOptions()
	}
	return &Basic{content: content, styling: styling}
}

func (b *Basic) Render() string {
	rendered(LayerBasic)
	return "Contenido básico del reporte: " + fmt.Sprint(b.content)
}

func (b *Basic) Content() any                    { return b.content }
func (b *Basic) Styling() *report.StylingOptions { return b.styling }

// wrapper holds the inner component and delegates Content and Styling.
type wrapper struct {
	inner Component
}

func (w wrapper) Content() any                    { return w.inner.Content() }
func (w wrapper) Styling() *report.StylingOptions { return w.inner.Styling() }

// Wrapper builds a decorator around inner.
type Wrapper func(inner Component) Component

// Chain wraps base with each wrapper in order and returns every layer,
// base first.
func Chain(base Component, wrappers ...Wrapper) []Component {
	layers := make([]Component, 0, len(wrappers)+1)
	layers = append(layers, base)
	cur := base
	for _, w := range wrappers {
		cur = w(cur)
		layers = append(layers, cur)
	}
	return layers
}

// RenderAll renders every layer in order.
func RenderAll(layers []Component) []string {
	out := make([]string, 0, len(layers))
	for _, c := range layers {
		out = append(out, c.Render())
	}
	return out
}

func rendered(layer string) {
	metrics.IncDecorationRendered(layer)
	logging.Get().Debug().Str("layer", layer).Msg("rendering report component")
}
