package report

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStylingOptions(t *testing.T) {
	s := DefaultStylingOptions()
	assert.Equal(t, &StylingOptions{
		FontFamily:      "Arial",
		FontSize:        12,
		Color:           "black",
		BackgroundColor: "white",
		BorderStyle:     "none",
		BorderWidth:     0,
		BorderColor:     "black",
	}, s)
}

func TestNewStylingOptionsKeepsRemainingDefaults(t *testing.T) {
	s := NewStylingOptions("Times New Roman", 14, "blue")
	assert.Equal(t, "Times New Roman", s.FontFamily)
	assert.Equal(t, 14, s.FontSize)
	assert.Equal(t, "blue", s.Color)
	assert.Equal(t, "white", s.BackgroundColor)
	assert.Equal(t, "none", s.BorderStyle)
	assert.Equal(t, "black", s.BorderColor)
	assert.Equal(t, "StylingOptions{fontFamily=Times New Roman, fontSize=14, color=blue}", s.String())
}

func TestRegistryCreate(t *testing.T) {
	r := NewRegistry()
	tests := []struct {
		id   string
		want Format
	}{
		{"pdf", FormatPDF},
		{"PDF", FormatPDF},
		{"Excel", FormatExcel},
		{"EXCEL", FormatExcel},
		{"word", FormatWord},
		{"wOrD", FormatWord},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			g, err := r.Create(tt.id)
			require.NoError(t, err)
			require.NotNil(t, g)
			assert.Equal(t, tt.want, g.Format())
		})
	}
}

func TestRegistryCreateUnsupported(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"csv", "", "pdfx", "powerpoint"} {
		g, err := r.Create(id)
		assert.Nil(t, g)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnsupportedFormat), "expected ErrUnsupportedFormat for %q", id)
		assert.Contains(t, err.Error(), id)
	}
}

type csvGenerator struct{ pipeline }

func (csvGenerator) Format() Format { return Format("CSV") }

func (g csvGenerator) Generate(data any, styling *StylingOptions) *Report {
	return g.run(Format("CSV"), data, styling, func(*StylingOptions) {})
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	r.Register("CsV", csvGenerator{})

	g, err := r.Create("csv")
	require.NoError(t, err)
	assert.Equal(t, Format("CSV"), g.Format())
	assert.Equal(t, []string{"csv", "excel", "pdf", "word"}, r.Formats())

	// replace an existing entry
	r.Register("PDF", csvGenerator{})
	g, err = r.Create("pdf")
	require.NoError(t, err)
	assert.Equal(t, Format("CSV"), g.Format())

	// nil unregisters the format
	r.Register("WORD", nil)
	_, err = r.Create("word")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Equal(t, []string{"csv", "excel", "pdf"}, r.Formats())
}

func TestRegistryKeysAreLowercasedNotFolded(t *testing.T) {
	r := NewRegistry()
	r.Register("Straße", csvGenerator{})

	_, err := r.Create("STRAßE")
	require.NoError(t, err)
	_, err = r.Create("STRASSE")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestGenerate(t *testing.T) {
	styling := NewStylingOptions("Arial", 12, "blue")
	generators := []Generator{PDFGenerator{}, ExcelGenerator{}, WordGenerator{}}
	for _, g := range generators {
		t.Run(string(g.Format()), func(t *testing.T) {
			rep := g.Generate("Informe del Proyecto XYZ - Q4 2024", styling)
			require.NotNil(t, rep)
			assert.Equal(t, g.Format(), rep.Format())
			assert.Same(t, styling, rep.Styling())
			assert.Equal(t, "Informe del Proyecto XYZ - Q4 2024", rep.Content())
			assert.NotEqual(t, uuid.Nil, rep.ID())
			assert.False(t, rep.CreatedAt().IsZero())
		})
	}
}

func TestGenerateNilStylingUsesDefaults(t *testing.T) {
	rep := PDFGenerator{}.Generate(42, nil)
	require.NotNil(t, rep.Styling())
	assert.Equal(t, DefaultStylingOptions(), rep.Styling())
	assert.Equal(t, 42, rep.Content())
}

func TestReportString(t *testing.T) {
	rep := NewReport("data", FormatExcel, NewStylingOptions("Arial", 12, "blue"))
	assert.Equal(t, "Report{format=Excel, content=data, styling=StylingOptions{fontFamily=Arial, fontSize=12, color=blue}}", rep.String())
}

func TestFormatExtension(t *testing.T) {
	assert.Equal(t, "pdf", FormatPDF.Extension())
	assert.Equal(t, "excel", FormatExcel.Extension())
	assert.Equal(t, "word", FormatWord.Extension())
}
