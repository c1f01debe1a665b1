package utils

import (
	"fmt"
	"net/http"
	"time"
)

// LeadFilterParams narrows lead listings and exports. Time bounds apply to
// the relay's capture timestamp.
type LeadFilterParams struct {
	CapturedAfter  *time.Time
	CapturedBefore *time.Time
	Outcome        string
	FormTag        string
}

// ParseLeadFilters reads the filter query parameters from a leads request.
func ParseLeadFilters(r *http.Request) (*LeadFilterParams, error) {
	params := &LeadFilterParams{}
	q := r.URL.Query()

	if str := q.Get("captured_after"); str != "" {
		parsed, err := time.Parse(time.RFC3339, str)
		if err != nil {
			return nil, fmt.Errorf("invalid captured_after %q, expected RFC3339", str)
		}
		params.CapturedAfter = &parsed
	}

	if str := q.Get("captured_before"); str != "" {
		parsed, err := time.Parse(time.RFC3339, str)
		if err != nil {
			return nil, fmt.Errorf("invalid captured_before %q, expected RFC3339", str)
		}
		params.CapturedBefore = &parsed
	}

	if v := q.Get("outcome"); v != "" {
		switch v {
		case "SUCCESS", "CRM_FAILED", "SKIPPED":
			params.Outcome = v
		default:
			return nil, fmt.Errorf("invalid outcome %q, expected SUCCESS, CRM_FAILED or SKIPPED", v)
		}
	}

	if v := q.Get("form"); v != "" {
		switch v {
		case FormEnquiry, FormCallback, FormFooter:
			params.FormTag = v
		default:
			return nil, fmt.Errorf("invalid form %q, expected %s, %s or %s", v, FormEnquiry, FormCallback, FormFooter)
		}
	}

	return params, nil
}
