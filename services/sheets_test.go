package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead-relay/errors"
	"lead-relay/models"
)

func testSheetsClient(scriptURL string) *SheetsClient {
	return &SheetsClient{
		ScriptURL:  scriptURL,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestBuildBody(t *testing.T) {
	client := testSheetsClient("https://script.example.com/exec")
	rec := testLeadRecord()
	body := client.BuildBody(rec, "Enquiry")

	assert.Equal(t, " A Kumar ", body.Get("Name"))
	assert.Equal(t, "a.kumar@example.com", body.Get("Email"))
	assert.Equal(t, "91-9876543210", body.Get("Phone"))
	assert.Equal(t, "91", body.Get("CountryCode"))
	assert.Equal(t, "01/03/2025", body.Get("Date"))
	assert.Equal(t, "12:30:00", body.Get("Time"))
	assert.Equal(t, "Enquiry", body.Get("sheetName"))
}

func TestBuildBodyOmitsEmptyFields(t *testing.T) {
	client := testSheetsClient("https://script.example.com/exec")
	rec := &models.LeadRecord{
		Input: models.LeadFormInput{Email: "sub@example.com"},
	}
	body := client.BuildBody(rec, "Footer")

	_, hasName := body["Name"]
	_, hasPhone := body["Phone"]
	_, hasCity := body["City"]
	assert.False(t, hasName)
	assert.False(t, hasPhone)
	assert.False(t, hasCity)

	// Date, Time and sheetName are always present, even when empty.
	_, hasDate := body["Date"]
	_, hasTime := body["Time"]
	assert.True(t, hasDate)
	assert.True(t, hasTime)
	assert.Equal(t, "Footer", body.Get("sheetName"))
}

func TestDeliverFirstAttemptSucceeds(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"result":"success"}`))
	}))
	defer server.Close()

	client := testSheetsClient(server.URL)
	err := client.Deliver(context.Background(), testLeadRecord(), "Enquiry")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

// A failed first attempt triggers exactly one opaque retry, and the retry
// counts as delivered when the request itself goes through.
func TestDeliverOpaqueRetry(t *testing.T) {
	calls := 0
	var bodies []url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.NoError(t, r.ParseForm())
		bodies = append(bodies, r.PostForm)
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := testSheetsClient(server.URL)
	err := client.Deliver(context.Background(), testLeadRecord(), "Enquiry")
	require.NoError(t, err)
	require.Equal(t, 2, calls)
	assert.Equal(t, bodies[0], bodies[1], "retry must resend the identical body")
}

func TestDeliverScriptReportsFailure(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Write([]byte(`{"result":"error","error":{"message":"sheet is full"}}`))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	// A script-level failure on the readable attempt still falls back to the
	// opaque retry, which succeeds here.
	client := testSheetsClient(server.URL)
	err := client.Deliver(context.Background(), testLeadRecord(), "Enquiry")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDeliverNetworkErrorBothAttempts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := testSheetsClient(server.URL)
	err := client.Deliver(context.Background(), testLeadRecord(), "Enquiry")
	require.Error(t, err)
	assert.Equal(t, errors.SheetDelivery, errors.KindOf(err))
}

func TestDeliverUnconfigured(t *testing.T) {
	client := testSheetsClient("")
	err := client.Deliver(context.Background(), testLeadRecord(), "Enquiry")
	require.Error(t, err)
	assert.Equal(t, errors.SheetDelivery, errors.KindOf(err))
}
