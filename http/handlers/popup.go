package handlers

import (
	"net/http"

	"lead-relay/http/response"
)

// popupCookieName tracks whether the enquiry popup has already auto-opened in
// this browser session. The cookie carries no MaxAge so it dies with the
// session, matching the auto-open-once-per-visit behavior.
const popupCookieName = "enquiry_popup_auto_opened"

type popupState struct {
	AutoOpened bool `json:"autoOpened"`
}

// GetPopupState handles GET /api/popup-state and reports whether the popup
// should auto-open for this session.
func GetPopupState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	opened := false
	if c, err := r.Cookie(popupCookieName); err == nil && c.Value == "1" {
		opened = true
	}

	response.SuccessResponse(w, http.StatusOK, "", popupState{AutoOpened: opened})
}

// MarkPopupShown handles POST /api/popup-state and records that the popup has
// auto-opened, so a reload within the same session does not open it again.
func MarkPopupShown(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     popupCookieName,
		Value:    "1",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	response.SuccessResponse(w, http.StatusOK, "", popupState{AutoOpened: true})
}
