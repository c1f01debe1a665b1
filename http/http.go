package http

import (
	"net/http"

	"lead-relay/http/handlers"
	"lead-relay/http/middleware"
	"lead-relay/http/response"
	"lead-relay/services"
	"lead-relay/utils"
)

// SetupRoutes configures all HTTP routes and middleware
func SetupRoutes(pipeline *services.Pipeline, store *utils.LeadStore) {
	leadService := handlers.NewLeadService(pipeline, store)

	// Lead Submission APIs
	http.HandleFunc("/api/lead/enquiry", middleware.EnableCORS(leadService.SubmitEnquiry))
	http.HandleFunc("/api/lead/callback", middleware.EnableCORS(leadService.SubmitCallback))
	http.HandleFunc("/api/lead/footer", middleware.EnableCORS(leadService.SubmitFooter))

	// Lead Retrieval APIs
	http.HandleFunc("/api/leads", middleware.EnableCORS(leadService.GetLeads))
	http.HandleFunc("/api/leads/export", middleware.EnableCORS(leadService.ExportLeads))

	// Page Support APIs
	http.HandleFunc("/api/countries", middleware.EnableCORS(handlers.GetCountries))
	http.HandleFunc("/api/popup-state", middleware.EnableCORS(popupStateHandler))

	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		response.SendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

func popupStateHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		handlers.GetPopupState(w, r)
	case http.MethodPost:
		handlers.MarkPopupShown(w, r)
	default:
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
