package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lead-relay/config"
	"lead-relay/errors"
	"lead-relay/logger"
	"lead-relay/models"
)

// SheetsClient delivers leads to the Google Apps Script spreadsheet endpoint.
// This path is best-effort only: its errors are returned for logging but must
// never reach the visitor or revert a committed CRM success.
type SheetsClient struct {
	ScriptURL  string
	HTTPClient *http.Client
}

// NewSheetsClient builds a client from the loaded configuration.
func NewSheetsClient() *SheetsClient {
	return &SheetsClient{
		ScriptURL: config.AppConfig.GoogleScriptURL,
		HTTPClient: &http.Client{
			Timeout: time.Duration(config.AppConfig.HTTPTimeoutSeconds) * time.Second,
		},
	}
}

type sheetsResult struct {
	Result string `json:"result"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// BuildBody projects a lead record onto the spreadsheet's form field names.
// Empty fields are omitted, except Date, Time and sheetName which are always
// sent, even when empty.
func (c *SheetsClient) BuildBody(rec *models.LeadRecord, sheetTag string) url.Values {
	fields := map[string]string{
		"Name":        rec.Input.Name,
		"Email":       rec.Input.Email,
		"Phone":       rec.Normalized.Combined,
		"CountryCode": rec.Input.DialCode,
		"City":        rec.Input.City,
		"Location":    rec.Input.Location,
		"Message":     rec.Input.Message,
	}

	body := url.Values{}
	for key, value := range fields {
		if value != "" {
			body.Set(key, value)
		}
	}
	body.Set("Date", rec.Date)
	body.Set("Time", rec.Time)
	body.Set("sheetName", sheetTag)
	return body
}

// Deliver posts the record to the spreadsheet endpoint. The first attempt
// reads and interprets the JSON response; if that attempt fails for any
// reason, one opaque retry follows, which counts as delivered whenever no
// network-level error occurs. The returned error is informational and the
// caller is free to drop it.
func (c *SheetsClient) Deliver(ctx context.Context, rec *models.LeadRecord, sheetTag string) error {
	if c.ScriptURL == "" {
		return errors.E(errors.SheetDelivery, "spreadsheet script URL not configured")
	}

	body := c.BuildBody(rec, sheetTag).Encode()

	if err := c.post(ctx, body, false); err != nil {
		logger.Warn("Spreadsheet delivery could not read response for %s, retrying in opaque mode: %v", rec.UniqueID, err)
		return c.post(ctx, body, true)
	}
	return nil
}

func (c *SheetsClient) post(ctx context.Context, body string, opaque bool) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ScriptURL, strings.NewReader(body))
	if err != nil {
		return errors.E(errors.SheetDelivery, "error building spreadsheet request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return errors.E(errors.SheetDelivery, fmt.Sprintf("error reaching spreadsheet endpoint: %v", err), err)
	}
	defer resp.Body.Close()

	if opaque {
		// The response cannot be inspected in opaque mode; absence of a
		// network error counts as delivered.
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if resp.StatusCode != http.StatusOK {
		return errors.E(errors.SheetDelivery, fmt.Sprintf("HTTP error! status: %d", resp.StatusCode))
	}

	var result sheetsResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return errors.E(errors.SheetDelivery, "error decoding spreadsheet response", err)
	}
	if result.Result != "success" {
		message := "Submission failed"
		if result.Error != nil && result.Error.Message != "" {
			message = result.Error.Message
		}
		return errors.E(errors.SheetDelivery, message)
	}
	return nil
}
