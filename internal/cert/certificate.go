// Package cert renders the course completion certificate. Rendering
// is isolated here so the HTTP handler only checks the completion
// gate and streams the result.
package cert

import (
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

// Generate writes a landscape A4 completion certificate PDF.
func Generate(w io.Writer, email, courseName string, issued time.Time) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Certificate of Completion", true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, pageH := pdf.GetPageSize()

	// Double border
	pdf.SetLineWidth(1.2)
	pdf.SetDrawColor(0, 217, 255)
	pdf.Rect(10, 10, pageW-20, pageH-20, "D")
	pdf.SetLineWidth(0.4)
	pdf.SetDrawColor(168, 85, 247)
	pdf.Rect(14, 14, pageW-28, pageH-28, "D")

	pdf.SetFont("Helvetica", "B", 34)
	pdf.SetTextColor(0, 217, 255)
	pdf.SetXY(0, 34)
	pdf.CellFormat(pageW, 14, "CERTIFICATE OF COMPLETION", "", 1, "C", false, 0, "")

	pdf.SetLineWidth(0.8)
	pdf.SetDrawColor(168, 85, 247)
	pdf.Line(70, 56, pageW-70, 56)

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(102, 102, 102)
	pdf.SetXY(0, 70)
	pdf.CellFormat(pageW, 8, "This is to certify that", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 26)
	pdf.SetTextColor(0, 217, 255)
	pdf.SetXY(0, 84)
	pdf.CellFormat(pageW, 12, tr(email), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(102, 102, 102)
	pdf.SetXY(0, 102)
	pdf.CellFormat(pageW, 8, "has successfully completed the", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(168, 85, 247)
	pdf.SetXY(0, 114)
	pdf.CellFormat(pageW, 12, tr(courseName), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(102, 102, 102)
	pdf.SetXY(0, 130)
	pdf.CellFormat(pageW, 8, "training program", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetXY(0, 150)
	pdf.CellFormat(pageW, 6, "Date of Completion: "+issued.Format("2 January 2006"), "", 1, "C", false, 0, "")

	// Signature block
	pdf.SetLineWidth(0.3)
	pdf.SetDrawColor(51, 51, 51)
	pdf.Line(50, 172, 120, 172)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(136, 136, 136)
	pdf.SetXY(50, 174)
	pdf.CellFormat(70, 5, "Vibenen Academy", "", 0, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(170, 170, 170)
	pdf.SetXY(0, pageH-24)
	pdf.CellFormat(pageW, 5, tr("© Vibenen Academy - Certification authentique"), "", 0, "C", false, 0, "")

	return pdf.Output(w)
}
