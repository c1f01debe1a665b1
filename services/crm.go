package services

import (
	"context"
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
	"lead-relay/utils"
)

// CRMClient submits leads to the authoritative CRM endpoint. Its verdict is
// the single source of truth for the outcome shown to the visitor.
type CRMClient struct {
	BaseURL    string
	UID        string
	PWD        string
	Project    string
	HTTPClient *http.Client
}

// NewCRMClient builds a client from the loaded configuration, with the
// bounded timeout applied to every request.
func NewCRMClient() *CRMClient {
	return &CRMClient{
		BaseURL: config.AppConfig.CRMBaseURL,
		UID:     config.AppConfig.CRMUID,
		PWD:     config.AppConfig.CRMPWD,
		Project: config.AppConfig.ProjectName,
		HTTPClient: &http.Client{
			Timeout: time.Duration(config.AppConfig.HTTPTimeoutSeconds) * time.Second,
		},
	}
}

// BuildQuery maps a lead record onto the CRM's query parameter names. The
// names are fixed and case-sensitive.
func (c *CRMClient) BuildQuery(rec *models.LeadRecord) url.Values {
	q := url.Values{}
	q.Set("UID", c.UID)
	q.Set("PWD", c.PWD)
	q.Set("Channel", utils.CRMChannel)
	q.Set("Src", utils.CRMSource)
	q.Set("ISD", rec.Input.DialCode)
	q.Set("Mob", rec.Normalized.SubscriberOnly)
	q.Set("Email", rec.Input.Email)
	q.Set("name", strings.TrimSpace(rec.Input.Name))
	q.Set("City", rec.Input.City)
	q.Set("Location", rec.Input.Location)
	q.Set("Project", c.Project)
	q.Set("Remark", rec.Input.Message)
	q.Set("url", rec.CleanURL)
	// The CRM contract pins UniqueId to the literal 0. The generated lead id
	// stays local, in the relay log and the spreadsheet mirror.
	q.Set("UniqueId", "0")
	q.Set("fld1", rec.UTM.Source)
	q.Set("fld2", rec.UTM.Campaign)
	q.Set("fld3", rec.UTM.Medium)
	q.Set("fld4", rec.UTM.Keyword)
	return q
}

// Submit sends the lead to the CRM and interprets the response. HTTP 200 is
// success; everything else fails the attempt.
func (c *CRMClient) Submit(ctx context.Context, rec *models.LeadRecord) error {
	crmURL := c.BaseURL + "?" + c.BuildQuery(rec).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, crmURL, nil)
	if err != nil {
		return errors.E(errors.CrmTransport, "error building CRM request", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return errors.E(errors.CrmTransport, fmt.Sprintf("error reaching CRM: %v", err), err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	// The endpoint's documented success statuses are 200 and 0. A zero status
	// never occurs with this client; the comparison mirrors the contract.
	if resp.StatusCode == http.StatusOK || resp.StatusCode == 0 {
		logger.Info("CRM accepted lead %s (status %d)", rec.UniqueID, resp.StatusCode)
		return nil
	}

	return errors.E(errors.CrmStatus, fmt.Sprintf("CRM submission failed with status: %d", resp.StatusCode))
}
