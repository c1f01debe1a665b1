package services

import (
	"fmt"

	"lead-relay/config"
	"lead-relay/logger"
	"lead-relay/models"
)

// NotifyLeadRelayed queues a notification email to the sales inbox for a lead
// that cleared the CRM path, with a PDF enquiry receipt attached. Best-effort:
// skipped when no sales inbox is configured, and failures are logged by the
// caller, never surfaced.
func NotifyLeadRelayed(rec *models.LeadRecord, formTag string) error {
	salesEmail := config.AppConfig.SalesEmail
	if salesEmail == "" {
		logger.Debug("No sales inbox configured, skipping lead notification")
		return nil
	}

	subject := fmt.Sprintf("New %s lead: %s", formTag, rec.Input.Name)
	body := buildLeadNotificationBody(rec, formTag)

	receiptPath, err := GenerateEnquiryReceipt(rec)
	if err != nil {
		logger.Warn("Could not generate enquiry receipt for %s, sending without attachment: %v", rec.UniqueID, err)
		return SendEmail(salesEmail, subject, body)
	}

	return SendEmail(salesEmail, subject, body, receiptPath)
}

func buildLeadNotificationBody(rec *models.LeadRecord, formTag string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #1a365d; color: white; padding: 20px; text-align: center; border-radius: 5px; }
        .content { background-color: #f9f9f9; padding: 20px; margin-top: 20px; border-radius: 5px; }
        .lead-info { background-color: #ebf4ff; padding: 15px; margin: 15px 0; border-left: 4px solid #1a365d; }
        .footer { margin-top: 20px; font-size: 12px; color: #777; text-align: center; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h2>New Enquiry: %s</h2>
        </div>
        <div class="content">
            <p>A new lead was captured from the <strong>%s</strong> form.</p>
            <div class="lead-info">
                <p><strong>Name:</strong> %s</p>
                <p><strong>Email:</strong> %s</p>
                <p><strong>Phone:</strong> %s</p>
                <p><strong>City:</strong> %s</p>
                <p><strong>Message:</strong> %s</p>
                <p><strong>Captured:</strong> %s %s (IST)</p>
                <p><strong>Lead ID:</strong> %s</p>
            </div>
            <p>The lead has been relayed to the CRM. The enquiry receipt is attached.</p>
        </div>
        <div class="footer">
            <p>Sent automatically by the lead relay. Source page: %s</p>
        </div>
    </div>
</body>
</html>`,
		config.AppConfig.ProjectName, formTag,
		rec.Input.Name, rec.Input.Email, rec.Normalized.Combined,
		rec.Input.City, rec.Input.Message,
		rec.Date, rec.Time, rec.UniqueID, rec.CleanURL)
}
