// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/oakla/question-maker/pkg/types"
)

// WritePDF renders the text report as an A4 PDF. Text is translated to
// the cp1252 encoding of the core Helvetica font.
func WritePDF(w io.Writer, doc *types.Document) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(reportTitle, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, line := range reportLines(doc) {
		switch {
		case i == 0:
			pdf.SetFont("Helvetica", "B", 14)
			pdf.CellFormat(0, 8, tr(line), "", 1, "L", false, 0, "")
		case line == "":
			pdf.Ln(3)
		case strings.Trim(line, "=-") == "":
			pdf.SetDrawColor(160, 160, 160)
			x, y := pdf.GetXY()
			pdf.Line(x, y, 200, y)
			pdf.Ln(2)
		case strings.HasPrefix(line, "   "):
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetX(18)
			pdf.MultiCell(0, 5, tr(strings.TrimSpace(line)), "", "L", false)
		default:
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(0, 6, tr(line), "", "L", false)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering PDF: %w", err)
	}
	return nil
}
