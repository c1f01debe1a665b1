package models

import (
	"time"
)

// LeadFormInput holds the raw values a landing-page form posted. It is
// constructed fresh at submit time and discarded once the pipeline completes.
type LeadFormInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`     // raw digits as typed by the visitor
	DialCode string `json:"dial_code"` // selected country code, digits only
	City     string `json:"city"`
	Location string `json:"location"`
	Message  string `json:"message"`
	PageURL  string `json:"page_url"` // full page URL at submit time, query string included
}

// NormalizedPhone carries the two derived phone representations. Both are
// functions of (DialCode, raw phone digits) only.
type NormalizedPhone struct {
	Combined       string `json:"combined"`        // "<dialCode>-<subscriber>", spreadsheet form
	SubscriberOnly string `json:"subscriber_only"` // digits only, CRM mobile field
}

// UTMParams are the campaign-tracking parameters read from the page URL.
// Missing parameters default to the empty string.
type UTMParams struct {
	Source   string `json:"source"`
	Campaign string `json:"campaign"`
	Medium   string `json:"medium"`
	Keyword  string `json:"keyword"`
}

// LeadRecord is the submission payload, built once per submit attempt. A new
// UniqueID is minted on every attempt; records are never reused or retried.
type LeadRecord struct {
	UniqueID   string          `json:"unique_id"` // "LEAD-<unixMillis>-<random 0..9999>"
	FormTag    string          `json:"form_tag"`
	Input      LeadFormInput   `json:"input"`
	Normalized NormalizedPhone `json:"normalized"`
	UTM        UTMParams       `json:"utm"`
	CleanURL   string          `json:"clean_url"` // page URL, scheme and query stripped
	Date       string          `json:"date"`      // DD/MM/YYYY, fixed UTC+5:30
	Time       string          `json:"time"`      // HH:MM:SS, 24h, same offset
	CapturedAt time.Time       `json:"captured_at"`
}

// OutcomeKind classifies how a submission attempt ended.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeCrmFailure
	OutcomeValidationSkip
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "SUCCESS"
	case OutcomeCrmFailure:
		return "CRM_FAILED"
	case OutcomeValidationSkip:
		return "SKIPPED"
	default:
		return "UNKNOWN"
	}
}

func (k OutcomeKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// SubmissionOutcome is the CRM-path verdict for one attempt. The spreadsheet
// path never contributes to it.
type SubmissionOutcome struct {
	Kind   OutcomeKind `json:"kind"`
	Reason string      `json:"reason,omitempty"`
}

// Lead is a captured lead row as persisted in the relay database.
type Lead struct {
	ID            int       `json:"id"`
	UniqueID      string    `json:"unique_id"`
	FormTag       string    `json:"form_tag"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"` // combined form
	DialCode      string    `json:"dial_code"`
	City          string    `json:"city"`
	Location      string    `json:"location"`
	Message       string    `json:"message"`
	PageURL       string    `json:"page_url"`
	UTMSource     string    `json:"utm_source"`
	UTMCampaign   string    `json:"utm_campaign"`
	UTMMedium     string    `json:"utm_medium"`
	UTMKeyword    string    `json:"utm_keyword"`
	Outcome       string    `json:"outcome"`
	FailureReason string    `json:"failure_reason,omitempty"`
	CapturedDate  string    `json:"captured_date"`
	CapturedTime  string    `json:"captured_time"`
	CreatedAt     time.Time `json:"created_at"`
}

// LeadResponse is the structured response for API responses
type LeadResponse struct {
	ID           int    `json:"id"`
	UniqueID     string `json:"unique_id"`
	FormTag      string `json:"form_tag"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	Location     string `json:"location"`
	Message      string `json:"message"`
	Outcome      string `json:"outcome"`
	CapturedDate string `json:"captured_date"`
	CapturedTime string `json:"captured_time"`
	CreatedAt    string `json:"created_at"`
}

// ToResponse converts Lead to LeadResponse with formatted timestamps
func (l *Lead) ToResponse() LeadResponse {
	return LeadResponse{
		ID:           l.ID,
		UniqueID:     l.UniqueID,
		FormTag:      l.FormTag,
		Name:         l.Name,
		Email:        l.Email,
		Phone:        l.Phone,
		City:         l.City,
		Location:     l.Location,
		Message:      l.Message,
		Outcome:      l.Outcome,
		CapturedDate: l.CapturedDate,
		CapturedTime: l.CapturedTime,
		CreatedAt:    l.CreatedAt.Format(time.RFC3339),
	}
}
