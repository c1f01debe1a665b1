package services

import (
	"fmt"
	"os"
	"path/filepath"

	"lead-relay/config"
	"lead-relay/models"

	"github.com/jung-kurt/gofpdf"
)

// GenerateEnquiryReceipt renders a one-page PDF summary of a captured lead
// and returns the file path, for attaching to the sales notification email.
func GenerateEnquiryReceipt(rec *models.LeadRecord) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, config.AppConfig.ProjectName)
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 10, "Enquiry Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	rows := [][2]string{
		{"Lead ID", rec.UniqueID},
		{"Form", rec.FormTag},
		{"Name", rec.Input.Name},
		{"Email", rec.Input.Email},
		{"Phone", rec.Normalized.Combined},
		{"City", rec.Input.City},
		{"Location", rec.Input.Location},
		{"Message", rec.Input.Message},
		{"Date", rec.Date},
		{"Time", rec.Time},
		{"Source Page", rec.CleanURL},
	}
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(40, 8, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 8, row[1], "", "L", false)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 8, "Generated automatically by the lead relay.")

	path := filepath.Join(os.TempDir(), fmt.Sprintf("receipt_%s.pdf", rec.UniqueID))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("error writing enquiry receipt: %w", err)
	}
	return path, nil
}
