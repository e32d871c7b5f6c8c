// Package report generates placeholder reports in several document formats.
// Generators are looked up by format identifier through a Registry.
package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrUnsupportedFormat is returned when no generator is registered for a
// format identifier.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// Format tags the document type a report was generated as.
type Format string

const (
	FormatPDF   Format = "PDF"
	FormatExcel Format = "Excel"
	FormatWord  Format = "Word"
)

// Extension returns the lower-case file extension used for attachments.
func (f Format) Extension() string {
	return strings.ToLower(string(f))
}

// Report is the output of a Generator. It cannot be modified once built.
type Report struct {
	id        uuid.UUID
	content   any
	format    Format
	styling   *StylingOptions
	createdAt time.Time
}

// NewReport builds a report with a fresh ID.
func NewReport(content any, format Format, styling *StylingOptions) *Report {
	return &Report{
		id:        uuid.New(),
		content:   content,
		format:    format,
		styling:   styling,
		createdAt: time.Now(),
	}
}

func (r *Report) ID() uuid.UUID            { return r.id }
func (r *Report) Content() any             { return r.content }
func (r *Report) Format() Format           { return r.format }
func (r *Report) Styling() *StylingOptions { return r.styling }
func (r *Report) CreatedAt() time.Time     { return r.createdAt }

func (r *Report) String() string {
	return fmt.Sprintf("Report{format=%s, content=%v, styling=%s}", r.format, r.content, r.styling)
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (r *Report) MarshalZerologObject(e *zerolog.Event) {
	e.Str("id", r.id.String()).
		Str("format", string(r.format)).
		Interface("content", r.content).
		Object("styling", r.styling)
}
