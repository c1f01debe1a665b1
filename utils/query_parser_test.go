package utils

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLeadFilters(t *testing.T) {
	req := httptest.NewRequest("GET",
		"/api/leads?captured_after=2025-03-01T00:00:00Z&captured_before=2025-03-02T00:00:00Z&outcome=SUCCESS&form=enquiry", nil)

	filters, err := ParseLeadFilters(req)
	require.NoError(t, err)

	require.NotNil(t, filters.CapturedAfter)
	require.NotNil(t, filters.CapturedBefore)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), filters.CapturedAfter.UTC())
	assert.Equal(t, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), filters.CapturedBefore.UTC())
	assert.Equal(t, "SUCCESS", filters.Outcome)
	assert.Equal(t, FormEnquiry, filters.FormTag)
}

func TestParseLeadFiltersEmpty(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/leads", nil)
	filters, err := ParseLeadFilters(req)
	require.NoError(t, err)
	assert.Nil(t, filters.CapturedAfter)
	assert.Nil(t, filters.CapturedBefore)
	assert.Empty(t, filters.Outcome)
	assert.Empty(t, filters.FormTag)
}

func TestParseLeadFiltersInvalid(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"bad captured_after", "captured_after=01/03/2025"},
		{"bad captured_before", "captured_before=yesterday"},
		{"unknown outcome", "outcome=PENDING"},
		{"unknown form", "form=sidebar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/leads?"+tt.query, nil)
			_, err := ParseLeadFilters(req)
			assert.Error(t, err)
		})
	}
}
