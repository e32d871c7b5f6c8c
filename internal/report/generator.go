package report

import (
	"github.com/reporthub/reporthub/internal/logging"
	"github.com/reporthub/reporthub/internal/metrics"
)

// Generator produces a Report from raw data and styling. Implementations are
// stateless and a single instance may be shared.
type Generator interface {
	Format() Format
	Generate(data any, styling *StylingOptions) *Report
}

// pipeline holds the steps every generator runs in the same order:
// process data, apply styling, build the document, wrap it in a Report.
type pipeline struct{}

func (pipeline) processData(data any) any {
	logging.Get().Debug().Msg("processing report data")
	return data
}

func (pipeline) applyStyling(content any, styling *StylingOptions) any {
	logging.Get().Debug().Str("color", styling.Color).Str("font_family", styling.FontFamily).Msg("applying styling")
	return content
}

func (p pipeline) run(format Format, data any, styling *StylingOptions, build func(*StylingOptions)) *Report {
	if styling == nil {
		styling = DefaultStylingOptions()
	}
	logging.Get().Info().Str("format", string(format)).Msg("generating report")

	processed := p.processData(data)
	styled := p.applyStyling(processed, styling)
	build(styling)

	metrics.IncReportGenerated(string(format))
	return NewReport(styled, format, styling)
}

// PDFGenerator builds PDF reports.
type PDFGenerator struct{ pipeline }

func (PDFGenerator) Format() Format { return FormatPDF }

func (g PDFGenerator) Generate(data any, styling *StylingOptions) *Report {
	return g.run(FormatPDF, data, styling, func(s *StylingOptions) {
		logging.Get().Debug().Msg("creating PDF document")
		logging.Get().Debug().Object("styling", s).Msg("applying PDF specific styling")
	})
}

// ExcelGenerator builds Excel workbooks.
type ExcelGenerator struct{ pipeline }

func (ExcelGenerator) Format() Format { return FormatExcel }

func (g ExcelGenerator) Generate(data any, styling *StylingOptions) *Report {
	return g.run(FormatExcel, data, styling, func(s *StylingOptions) {
		logging.Get().Debug().Msg("creating Excel workbook")
		logging.Get().Debug().Object("styling", s).Msg("applying Excel specific styling")
	})
}

// WordGenerator builds Word documents.
type WordGenerator struct{ pipeline }

func (WordGenerator) Format() Format { return FormatWord }

func (g WordGenerator) Generate(data any, styling *StylingOptions) *Report {
	return g.run(FormatWord, data, styling, func(s *StylingOptions) {
		logging.Get().Debug().Msg("creating Word document")
		logging.Get().Debug().Object("styling", s).Msg("applying Word specific styling")
	})
}

var (
	_ Generator = PDFGenerator{}
	_ Generator = ExcelGenerator{}
	_ Generator = WordGenerator{}
)
