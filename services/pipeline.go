package services

import (
	"context"
	"net/url"
	"strings"
	"time"

	"lead-relay/config"
	"lead-relay/errors"
	"lead-relay/logger"
	"lead-relay/models"
	"lead-relay/utils"
)

// FormConfig describes one lead-capture form on the landing page. The three
// page forms are three values of this struct, not three pipelines.
type FormConfig struct {
	Tag        string
	SheetTag   string            // destination spreadsheet tab
	IsPopup    bool              // popup forms get the longer redirect delay
	CRMEnabled bool              // footer subscriptions bypass the CRM
	FieldMap   map[string]string // canonical field -> posted form key
}

var defaultFieldMap = map[string]string{
	"Name":        "Name",
	"Email":       "Email",
	"Phone":       "Phone",
	"CountryCode": "CountryCode",
	"City":        "City",
	"Location":    "Location",
	"Message":     "Message",
	"PageURL":     "PageURL",
}

var (
	// EnquiryForm is the auto-opening popup form.
	EnquiryForm = FormConfig{
		Tag:        utils.FormEnquiry,
		SheetTag:   utils.SheetEnquiry,
		IsPopup:    true,
		CRMEnabled: true,
		FieldMap:   defaultFieldMap,
	}

	// CallbackForm is the inline request-a-callback form.
	CallbackForm = FormConfig{
		Tag:        utils.FormCallback,
		SheetTag:   utils.SheetCallback,
		CRMEnabled: true,
		FieldMap:   defaultFieldMap,
	}

	// FooterForm is the footer email subscription. It only feeds the
	// spreadsheet mirror; the CRM never sees it.
	FooterForm = FormConfig{
		Tag:      utils.FormFooter,
		SheetTag: utils.SheetFooter,
		FieldMap: defaultFieldMap,
	}
)

func (cfg FormConfig) field(form url.Values, canonical string) string {
	key := canonical
	if cfg.FieldMap != nil {
		if mapped, ok := cfg.FieldMap[canonical]; ok {
			key = mapped
		}
	}
	return strings.TrimSpace(form.Get(key))
}

// SubmissionResult is what the page needs to drive its own UI after one
// submit attempt.
type SubmissionResult struct {
	State           SubmissionState          `json:"state"`
	Outcome         models.SubmissionOutcome `json:"outcome"`
	UniqueID        string                   `json:"unique_id,omitempty"`
	RedirectURL     string                   `json:"redirect_url,omitempty"`
	RedirectDelayMs int                      `json:"redirect_delay_ms,omitempty"`
	ClosePopup      bool                     `json:"close_popup,omitempty"`
	ErrorMessage    string                   `json:"error_message,omitempty"`
}

// Pipeline relays one submitted lead: build record, validate, CRM first
// (authoritative, drives the result), then the best-effort side channels.
type Pipeline struct {
	CRM    *CRMClient
	Sheets *SheetsClient
	Store  *utils.LeadStore

	// Detach runs the best-effort stage off the request path. Tests replace
	// it to run inline.
	Detach func(func())

	// Now supplies capture timestamps.
	Now func() time.Time
}

// NewPipeline wires a pipeline from the loaded configuration.
func NewPipeline(store *utils.LeadStore) *Pipeline {
	return &Pipeline{
		CRM:    NewCRMClient(),
		Sheets: NewSheetsClient(),
		Store:  store,
	}
}

// Submit runs one attempt end to end. Field values are read from form at
// call time; a fresh unique id is minted for every attempt. Re-entrant
// submits are not coalesced here; the page's disabled submit button owns
// that.
func (p *Pipeline) Submit(ctx context.Context, cfg FormConfig, form url.Values) SubmissionResult {
	tracker := NewSubmissionTracker()
	tracker.Begin()

	rec := p.buildRecord(cfg, form)

	if cfg.CRMEnabled {
		if reason, ok := p.validateForCRM(rec); !ok {
			// Incomplete submission, not attempted: log only, no CRM call,
			// no spreadsheet call, no side channels.
			logger.Warn("CRM submission skipped for form %s: %s", cfg.Tag, reason)
			outcome := models.SubmissionOutcome{Kind: models.OutcomeValidationSkip, Reason: reason}
			p.record(ctx, rec, outcome)
			tracker.Reset()
			return SubmissionResult{State: tracker.State(), Outcome: outcome, UniqueID: rec.UniqueID}
		}

		if err := p.CRM.Submit(ctx, rec); err != nil {
			tracker.Fail()
			message := errors.MessageOf(err, utils.GenericSubmitError)
			logger.Error("CRM submission failed for lead %s: %v", rec.UniqueID, err)
			outcome := models.SubmissionOutcome{Kind: models.OutcomeCrmFailure, Reason: message}
			p.record(ctx, rec, outcome)
			return SubmissionResult{
				State:        tracker.State(),
				Outcome:      outcome,
				UniqueID:     rec.UniqueID,
				ErrorMessage: message,
			}
		}
	}

	tracker.Succeed()
	outcome := models.SubmissionOutcome{Kind: models.OutcomeSuccess}
	p.record(ctx, rec, outcome)

	result := SubmissionResult{
		State:      tracker.State(),
		Outcome:    outcome,
		UniqueID:   rec.UniqueID,
		ClosePopup: cfg.IsPopup,
	}
	if cfg.CRMEnabled {
		result.RedirectURL = ThankYouPage
		result.RedirectDelayMs = RedirectDelay(cfg.IsPopup)
	}

	// Best-effort stage, strictly after the CRM verdict and never gating it.
	p.dispatchBestEffort(rec, cfg)

	return result
}

func (p *Pipeline) buildRecord(cfg FormConfig, form url.Values) *models.LeadRecord {
	now := time.Now()
	if p.Now != nil {
		now = p.Now()
	}

	input := models.LeadFormInput{
		Name:     cfg.field(form, "Name"),
		Email:    cfg.field(form, "Email"),
		Phone:    cfg.field(form, "Phone"),
		DialCode: cfg.field(form, "CountryCode"),
		City:     cfg.field(form, "City"),
		Location: cfg.field(form, "Location"),
		Message:  cfg.field(form, "Message"),
		PageURL:  cfg.field(form, "PageURL"),
	}
	if input.DialCode == "" {
		input.DialCode = utils.DefaultDialCode
	}

	return &models.LeadRecord{
		UniqueID: utils.GenerateLeadID(),
		FormTag:  cfg.Tag,
		Input:    input,
		Normalized: models.NormalizedPhone{
			Combined:       utils.CombinedForm(input.DialCode, input.Phone),
			SubscriberOnly: utils.SubscriberOnlyForm(input.Phone, input.DialCode),
		},
		UTM:        utils.ExtractUTMParams(input.PageURL),
		CleanURL:   utils.CleanPageURL(input.PageURL),
		Date:       utils.CaptureDate(now),
		Time:       utils.CaptureTime(now),
		CapturedAt: now,
	}
}

// validateForCRM checks the CRM's mandatory fields. A miss is a deliberate
// "incomplete submission, not attempted" outcome, distinct from a network
// failure.
func (p *Pipeline) validateForCRM(rec *models.LeadRecord) (string, bool) {
	if rec.Input.DialCode == "" {
		return "missing dial code", false
	}
	if rec.Normalized.SubscriberOnly == "" {
		return "mobile number is empty after processing", false
	}
	if p.CRM.Project == "" {
		return "missing project name", false
	}
	if rec.UniqueID == "" {
		return "missing unique id", false
	}
	return "", true
}

// record persists the attempt when a store is wired. Persistence is itself
// best-effort and never alters the outcome.
func (p *Pipeline) record(ctx context.Context, rec *models.LeadRecord, outcome models.SubmissionOutcome) {
	if p.Store == nil {
		return
	}
	if _, err := p.Store.Insert(ctx, rec, outcome); err != nil {
		logger.Error("Error persisting lead %s: %v", rec.UniqueID, err)
	}
}

// dispatchBestEffort delivers the record to the spreadsheet backend and the
// local side channels. Every error ends here: logged, dropped, and invisible
// to the outcome already committed.
func (p *Pipeline) dispatchBestEffort(rec *models.LeadRecord, cfg FormConfig) {
	detach := p.Detach
	if detach == nil {
		detach = func(fn func()) { go fn() }
	}

	detach(func() {
		// Covers both delivery attempts plus the local side channels.
		timeout := time.Duration(config.AppConfig.HTTPTimeoutSeconds) * time.Second
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*timeout)
		defer cancel()

		if err := p.Sheets.Deliver(ctx, rec, cfg.SheetTag); err != nil {
			logger.Error("Silent spreadsheet delivery error for lead %s: %v", rec.UniqueID, err)
			p.logRelay(ctx, rec, "sheets", "FAILED", err.Error())
		} else {
			p.logRelay(ctx, rec, "sheets", "DELIVERED", "")
		}

		PublishLeadRelayedEvent(rec, cfg.Tag)

		if err := NotifyLeadRelayed(rec, cfg.Tag); err != nil {
			logger.Error("Silent notification error for lead %s: %v", rec.UniqueID, err)
		}
	})
}

func (p *Pipeline) logRelay(ctx context.Context, rec *models.LeadRecord, backend, status, detail string) {
	if p.Store == nil {
		return
	}
	if err := p.Store.LogRelayAttempt(ctx, rec.UniqueID, backend, status, detail); err != nil {
		logger.Error("Error writing relay log for lead %s: %v", rec.UniqueID, err)
	}
}
