package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lead-relay/http/response"
	"lead-relay/logger"
	"lead-relay/services"
	"lead-relay/utils"
)

// LeadService handles lead submission and retrieval endpoints.
type LeadService struct {
	pipeline *services.Pipeline
	store    *utils.LeadStore
}

func NewLeadService(pipeline *services.Pipeline, store *utils.LeadStore) *LeadService {
	return &LeadService{pipeline: pipeline, store: store}
}

// SubmitEnquiry handles POST /api/lead/enquiry (the popup form).
func (s *LeadService) SubmitEnquiry(w http.ResponseWriter, r *http.Request) {
	s.submit(w, r, services.EnquiryForm)
}

// SubmitCallback handles POST /api/lead/callback (the main-page form).
func (s *LeadService) SubmitCallback(w http.ResponseWriter, r *http.Request) {
	s.submit(w, r, services.CallbackForm)
}

func (s *LeadService) submit(w http.ResponseWriter, r *http.Request, cfg services.FormConfig) {
	if r.Method != http.MethodPost {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if err := r.ParseForm(); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	form := r.PostForm
	if form.Get("PageURL") == "" && r.Referer() != "" {
		form.Set("PageURL", r.Referer())
	}

	// A visitor closing the tab must not cancel the in-flight CRM call; the
	// attempt runs to its own bounded timeout regardless.
	result := s.pipeline.Submit(context.WithoutCancel(r.Context()), cfg, form)
	if result.State == services.StateError {
		response.ErrorResponseWithData(w, http.StatusBadGateway, result.ErrorMessage, result)
		return
	}

	response.SuccessResponse(w, http.StatusOK, "Lead submitted", result)
}

// SubmitFooter handles POST /api/lead/footer, the email-only subscription
// form. It never reaches the CRM; the lead is relayed to the spreadsheet only.
func (s *LeadService) SubmitFooter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if err := r.ParseForm(); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	email := strings.TrimSpace(r.PostForm.Get("email"))
	if email == "" {
		response.ErrorResponse(w, http.StatusBadRequest, "Please enter your email address.")
		return
	}
	if err := utils.ValidateEmail(email); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Please enter a valid email address.")
		return
	}

	name := "Footer Subscriber"
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}

	form := url.Values{}
	form.Set("Name", name)
	form.Set("Email", email)
	form.Set("Phone", "N/A")
	form.Set("Message", "Footer Enquiry")
	if r.Referer() != "" {
		form.Set("PageURL", r.Referer())
	}

	result := s.pipeline.Submit(context.WithoutCancel(r.Context()), services.FooterForm, form)
	response.SuccessResponse(w, http.StatusOK, "Subscribed", result)
}

// GetLeads handles GET /api/leads with optional captured_after,
// captured_before, outcome and form filters.
func (s *LeadService) GetLeads(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	filters, err := utils.ParseLeadFilters(r)
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	leads, err := s.store.List(r.Context(), filters)
	if err != nil {
		logger.Error("Failed to fetch leads: %v", err)
		response.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch leads")
		return
	}

	response.SuccessResponse(w, http.StatusOK, "Leads fetched", utils.ConvertLeadsToResponse(leads))
}

// ExportLeads handles GET /api/leads/export and streams an xlsx workbook.
func (s *LeadService) ExportLeads(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	filters, err := utils.ParseLeadFilters(r)
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	leads, err := s.store.List(r.Context(), filters)
	if err != nil {
		logger.Error("Failed to fetch leads for export: %v", err)
		response.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch leads")
		return
	}

	file, err := services.ExportLeads(leads)
	if err != nil {
		logger.Error("Failed to build lead export: %v", err)
		response.ErrorResponse(w, http.StatusInternalServerError, "Failed to build export")
		return
	}

	filename := fmt.Sprintf("leads_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := file.Write(w); err != nil {
		logger.Error("Failed to stream lead export: %v", err)
	}
}
