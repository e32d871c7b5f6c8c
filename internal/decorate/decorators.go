package decorate

import "fmt"

// Color marks content with a text color.
type Color struct {
	wrapper
	color, background string
}

// NewColor wraps inner with a color layer.
func NewColor(inner Component, color, background string) *Color {
	return &Color{wrapper: wrapper{inner: inner}, color: color, background: background}
}

// WithColor returns a Wrapper for Chain.
func WithColor(color, background string) Wrapper {
	return func(inner Component) Component { return NewColor(inner, color, background) }
}

func (c *Color) Render() string {
	rendered(LayerColor)
	return fmt.Sprintf("Contenido con color %s y fondo %s: %s", c.color, c.background, c.Decorate(c.Content()))
}

// Decorate returns content wrapped in the color marker. The background is
// not part of the marker.
func (c *Color) Decorate(content any) string {
	return fmt.Sprintf("[%s]%v[/%s]", c.color, content, c.color)
}

// backgroundMarker is computed for the background color but Render keeps it
// out of the output.
func (c *Color) backgroundMarker(content any) string {
	return fmt.Sprintf("[%s background]%v[/%s background]", c.background, content, c.background)
}

// Font marks content with a font family, size and weight.
type Font struct {
	wrapper
	family string
	size   int
	weight string
}

// NewFont wraps inner with a font layer.
func NewFont(inner Component, family string, size int, weight string) *Font {
	return &Font{wrapper: wrapper{inner: inner}, family: family, size: size, weight: weight}
}

// WithFont returns a Wrapper for Chain.
func WithFont(family string, size int, weight string) Wrapper {
	return func(inner Component) Component { return NewFont(inner, family, size, weight) }
}

func (f *Font) Render() string {
	rendered(LayerFont)
	return fmt.Sprintf("Contenido con fuente %s tamaño %d: %s", f.family, f.size, f.Decorate(f.Content()))
}

func (f *Font) Decorate(content any) string {
	return fmt.Sprintf("[%s:%d:%s]%v[/font]", f.family, f.size, f.weight, content)
}

// Border marks content with a border.
type Border struct {
	wrapper
	style string
	width int
	color string
}

// NewBorder wraps inner with a border layer.
func NewBorder(inner Component, style string, width int, color string) *Border {
	return &Border{wrapper: wrapper{inner: inner}, style: style, width: width, color: color}
}

// WithBorder returns a Wrapper for Chain.
func WithBorder(style string, width int, color string) Wrapper {
	return func(inner Component) Component { return NewBorder(inner, style, width, color) }
}

func (b *Border) Render() string {
	rendered(LayerBorder)
	return fmt.Sprintf("Contenido con borde %s %dpx %s: %s", b.style, b.width, b.color, b.Decorate(b.Content()))
}

func (b *Border) Decorate(content any) string {
	return fmt.Sprintf("[%s:%d:%s]%v[/border]", b.style, b.width, b.color, content)
}
