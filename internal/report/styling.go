package report

import (
	"fmt"

	"github.com/mcuadros/go-defaults"
	"github.com/rs/zerolog"
)

// StylingOptions describes how a report is presented. It is a plain value
// record: callers may change any field after construction.
type StylingOptions struct {
	FontFamily      string `yaml:"font_family" default:"Arial"`
	FontSize        int    `yaml:"font_size" default:"12"`
	Color           string `yaml:"color" default:"black"`
	BackgroundColor string `yaml:"background_color" default:"white"`
	BorderStyle     string `yaml:"border_style" default:"none"`
	BorderWidth     int    `yaml:"border_width" default:"0"`
	BorderColor     string `yaml:"border_color" default:"black"`
}

// DefaultStylingOptions returns styling with every field at its default.
func DefaultStylingOptions() *StylingOptions {
	s := &StylingOptions{}
	defaults.SetDefaults(s)
	return s
}

// NewStylingOptions returns default styling with the font and text color
// overridden.
func NewStylingOptions(fontFamily string, fontSize int, color string) *StylingOptions {
	s := DefaultStylingOptions()
	s.FontFamily = fontFamily
	s.FontSize = fontSize
	s.Color = color
	return s
}

func (s *StylingOptions) String() string {
	if s == nil {
		return "StylingOptions{}"
	}
	return fmt.Sprintf("StylingOptions{fontFamily=%s, fontSize=%d, color=%s}", s.FontFamily, s.FontSize, s.Color)
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (s *StylingOptions) MarshalZerologObject(e *zerolog.Event) {
	if s == nil {
		return
	}
	e.Str("font_family", s.FontFamily).
		Int("font_size", s.FontSize).
		Str("color", s.Color).
		Str("background_color", s.BackgroundColor).
		Str("border_style", s.BorderStyle).
		Int("border_width", s.BorderWidth).
		Str("border_color", s.BorderColor)
}
