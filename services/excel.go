package services

import (
	"fmt"

	"lead-relay/models"

	"github.com/xuri/excelize/v2"
)

// leadExportHeaders mirrors the column layout of the spreadsheet backend's
// tabs, plus the relay-side outcome columns.
var leadExportHeaders = []interface{}{
	"UniqueId", "Form", "Name", "Email", "Phone", "CountryCode", "City",
	"Location", "Message", "Page", "UTM Source", "UTM Campaign", "UTM Medium",
	"UTM Keyword", "Outcome", "Date", "Time",
}

// ExportLeads writes captured leads into an xlsx workbook, the local mirror
// of the spreadsheet backend.
func ExportLeads(leads []models.Lead) (*excelize.File, error) {
	f := excelize.NewFile()

	const sheet = "Leads"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("error naming export sheet: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &leadExportHeaders); err != nil {
		return nil, fmt.Errorf("error writing export header: %w", err)
	}

	for i, lead := range leads {
		row := []interface{}{
			lead.UniqueID, lead.FormTag, lead.Name, lead.Email, lead.Phone,
			lead.DialCode, lead.City, lead.Location, lead.Message,
			lead.PageURL, lead.UTMSource, lead.UTMCampaign, lead.UTMMedium,
			lead.UTMKeyword, lead.Outcome, lead.CapturedDate, lead.CapturedTime,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("error computing export cell: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("error writing export row %d: %w", i+2, err)
		}
	}

	return f, nil
}
