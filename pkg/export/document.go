package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/de-tools/data-brief/pkg/models/domain"
	"github.com/go-pdf/fpdf"
)

// DocumentFileName is the fixed name the rendered briefing is saved
// under.
const DocumentFileName = "DataBrief-Executive-Report.pdf"

// Fixed page layout, in mm on an A4 portrait page.
const (
	marginX        = 20.0
	brandY         = 25.0
	subtitleY      = 32.0
	dividerY       = 40.0
	reportTitleY   = 65.0
	firstSectionY  = 85.0
	lineAdvance    = 7.0
	itemGap        = 4.0
	sectionGap     = 10.0
	headerAdvance  = 10.0
	brandSize      = 26.0
	subtitleSize   = 12.0
	titleSize      = 18.0
	sectionSize    = 12.0
	bodySize       = 11.0
)

// Document renders the executive briefing as a PDF. It is a pure
// function of the report and the given date; rendering the same inputs
// twice yields identical bytes.
func Document(report domain.SessionReport, now time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageWidth, _ := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "B", brandSize)
	pdf.SetTextColor(79, 70, 229)
	pdf.Text(marginX, brandY, "DataBrief AI")

	pdf.SetFont("Helvetica", "", subtitleSize)
	pdf.SetTextColor(150, 150, 150)
	pdf.Text(marginX, subtitleY, "Automated Executive Briefing")

	date := now.Format("1/2/2006")
	pdf.Text(pageWidth-marginX-pdf.GetStringWidth(date), brandY, date)

	pdf.SetDrawColor(230, 230, 230)
	pdf.Line(marginX, dividerY, pageWidth-marginX, dividerY)

	pdf.SetFont("Helvetica", "", titleSize)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(marginX, reportTitleY, tr(report.Title))

	y := firstSectionY

	pdf.SetFont("Helvetica", "", sectionSize)
	pdf.SetTextColor(79, 70, 229)
	pdf.Text(marginX, y, "KEY INSIGHTS")
	y += headerAdvance

	pdf.SetFont("Helvetica", "", bodySize)
	pdf.SetTextColor(60, 60, 60)
	y = writeBullets(pdf, tr, report.KeyFindings, "•", pageWidth, y)

	y += sectionGap

	pdf.SetFont("Helvetica", "", sectionSize)
	pdf.SetTextColor(16, 185, 129)
	pdf.Text(marginX, y, "STRATEGIC MOVES")
	y += headerAdvance

	pdf.SetFont("Helvetica", "", bodySize)
	pdf.SetTextColor(60, 60, 60)
	writeBullets(pdf, tr, report.Suggestions, "➜", pageWidth, y)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render briefing document: %w", err)
	}
	return buf.Bytes(), nil
}

// writeBullets word-wraps each item to the content width and advances
// the cursor by lines*7 + 4 per item.
func writeBullets(pdf *fpdf.Fpdf, tr func(string) string, items []string, glyph string, pageWidth, y float64) float64 {
	for _, item := range items {
		lines := pdf.SplitText(tr(glyph+"  "+item), pageWidth-2*marginX)
		for i, line := range lines {
			pdf.Text(marginX, y+float64(i)*lineAdvance, line)
		}
		y += float64(len(lines))*lineAdvance + itemGap
	}
	return y
}
