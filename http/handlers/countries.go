package handlers

import (
	"net/http"

	"lead-relay/http/response"
	"lead-relay/models"
	"lead-relay/services"
)

type countryPayload struct {
	Countries []models.CountryCodeEntry `json:"countries"`
	Default   models.CountryCodeEntry   `json:"default"`
}

// GetCountries handles GET /api/countries and returns the dial-code dropdown
// data, sorted by country name, along with the preselected default.
func GetCountries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	payload := countryPayload{
		Countries: services.LoadCountries(),
		Default:   services.DefaultCountry(),
	}

	response.SuccessResponse(w, http.StatusOK, "", payload)
}
