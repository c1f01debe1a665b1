package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead-relay/models"
)

// inlineDetach runs the best-effort stage synchronously so tests can observe
// it deterministically.
func inlineDetach(fn func()) { fn() }

type backendCounters struct {
	crm    atomic.Int32
	sheets atomic.Int32
}

// newTestPipeline wires a pipeline against two fake backends and returns the
// call counters alongside. Persistence and side channels stay unwired.
func newTestPipeline(t *testing.T, crmStatus, sheetsStatus int, onSheets func(r *http.Request)) (*Pipeline, *backendCounters) {
	t.Helper()
	counters := &backendCounters{}

	crmServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		counters.crm.Add(1)
		w.WriteHeader(crmStatus)
	}))
	t.Cleanup(crmServer.Close)

	sheetsServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		counters.sheets.Add(1)
		if onSheets != nil {
			onSheets(r)
		}
		w.WriteHeader(sheetsStatus)
		if sheetsStatus == http.StatusOK {
			w.Write([]byte(`{"result":"success"}`))
		}
	}))
	t.Cleanup(sheetsServer.Close)

	return &Pipeline{
		CRM:    testCRMClient(crmServer.URL),
		Sheets: testSheetsClient(sheetsServer.URL),
		Detach: inlineDetach,
		Now: func() time.Time {
			return time.Date(2025, 3, 1, 7, 0, 0, 0, time.UTC)
		},
	}, counters
}

func enquiryFormValues() url.Values {
	return url.Values{
		"Name":        {"A Kumar"},
		"Email":       {"a.kumar@example.com"},
		"Phone":       {"98765 43210"},
		"CountryCode": {"91"},
		"City":        {"Mumbai"},
		"Message":     {"Interested in a 2BHK"},
		"PageURL":     {"https://example.com/fab?utm_source=google"},
	}
}

func TestSubmitSuccessEndToEnd(t *testing.T) {
	var crmQuery url.Values
	pipeline, counters := newTestPipeline(t, http.StatusOK, http.StatusOK, nil)
	pipeline.CRM.HTTPClient.Transport = roundTripFunc(func(r *http.Request) (*http.Response, error) {
		crmQuery = r.URL.Query()
		return http.DefaultTransport.RoundTrip(r)
	})

	result := pipeline.Submit(context.Background(), CallbackForm, enquiryFormValues())

	assert.Equal(t, StateSuccess, result.State)
	assert.Equal(t, models.OutcomeSuccess, result.Outcome.Kind)
	assert.NotEmpty(t, result.UniqueID)
	assert.Equal(t, ThankYouPage, result.RedirectURL)
	assert.Equal(t, 300, result.RedirectDelayMs)
	assert.False(t, result.ClosePopup)
	assert.Empty(t, result.ErrorMessage)

	assert.Equal(t, int32(1), counters.crm.Load())
	assert.Equal(t, int32(1), counters.sheets.Load())

	assert.Equal(t, "91", crmQuery.Get("ISD"))
	assert.Equal(t, "9876543210", crmQuery.Get("Mob"))
	assert.Equal(t, "A Kumar", crmQuery.Get("name"))
	assert.Equal(t, "example.com/fab", crmQuery.Get("url"))
	assert.Equal(t, "google", crmQuery.Get("fld1"))
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestSubmitPopupResult(t *testing.T) {
	pipeline, _ := newTestPipeline(t, http.StatusOK, http.StatusOK, nil)

	result := pipeline.Submit(context.Background(), EnquiryForm, enquiryFormValues())

	assert.Equal(t, StateSuccess, result.State)
	assert.True(t, result.ClosePopup)
	assert.Equal(t, 400, result.RedirectDelayMs)
}

func TestSubmitValidationSkipMakesNoNetworkCalls(t *testing.T) {
	pipeline, counters := newTestPipeline(t, http.StatusOK, http.StatusOK, nil)

	form := enquiryFormValues()
	form.Set("Phone", "+91") // nothing left after stripping the dial code

	result := pipeline.Submit(context.Background(), CallbackForm, form)

	assert.Equal(t, StateIdle, result.State)
	assert.Equal(t, models.OutcomeValidationSkip, result.Outcome.Kind)
	assert.Equal(t, "mobile number is empty after processing", result.Outcome.Reason)
	assert.Empty(t, result.ErrorMessage)
	assert.Empty(t, result.RedirectURL)

	assert.Equal(t, int32(0), counters.crm.Load())
	assert.Equal(t, int32(0), counters.sheets.Load())
}

func TestSubmitCRMFailureSkipsSheets(t *testing.T) {
	pipeline, counters := newTestPipeline(t, http.StatusInternalServerError, http.StatusOK, nil)

	result := pipeline.Submit(context.Background(), CallbackForm, enquiryFormValues())

	assert.Equal(t, StateError, result.State)
	assert.Equal(t, models.OutcomeCrmFailure, result.Outcome.Kind)
	assert.NotEmpty(t, result.ErrorMessage)
	assert.Empty(t, result.RedirectURL)

	assert.Equal(t, int32(1), counters.crm.Load())
	assert.Equal(t, int32(0), counters.sheets.Load(), "a failed CRM attempt must never reach the spreadsheet")
}

// A spreadsheet outage is invisible: the committed CRM success stands.
func TestSubmitSheetsFailureNeverSurfaces(t *testing.T) {
	crmServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(crmServer.Close)

	sheetsServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	sheetsServer.Close() // dead endpoint, both attempts fail

	pipeline := &Pipeline{
		CRM:    testCRMClient(crmServer.URL),
		Sheets: testSheetsClient(sheetsServer.URL),
		Detach: inlineDetach,
	}

	result := pipeline.Submit(context.Background(), CallbackForm, enquiryFormValues())

	assert.Equal(t, StateSuccess, result.State)
	assert.Equal(t, models.OutcomeSuccess, result.Outcome.Kind)
	assert.Empty(t, result.ErrorMessage)
}

// The spreadsheet stage runs strictly after the CRM verdict.
func TestSheetsRunsAfterCRM(t *testing.T) {
	var order []string
	crmServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "crm")
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(crmServer.Close)

	sheetsServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "sheets")
		w.Write([]byte(`{"result":"success"}`))
	}))
	t.Cleanup(sheetsServer.Close)

	pipeline := &Pipeline{
		CRM:    testCRMClient(crmServer.URL),
		Sheets: testSheetsClient(sheetsServer.URL),
		Detach: inlineDetach,
	}

	pipeline.Submit(context.Background(), CallbackForm, enquiryFormValues())
	require.Equal(t, []string{"crm", "sheets"}, order)
}

func TestSubmitFooterSkipsCRM(t *testing.T) {
	var sheetName string
	pipeline, counters := newTestPipeline(t, http.StatusOK, http.StatusOK, func(r *http.Request) {
		r.ParseForm()
		sheetName = r.PostForm.Get("sheetName")
	})

	form := url.Values{
		"Name":    {"subscriber"},
		"Email":   {"subscriber@example.com"},
		"Phone":   {"N/A"},
		"Message": {"Footer Enquiry"},
	}
	result := pipeline.Submit(context.Background(), FooterForm, form)

	assert.Equal(t, StateSuccess, result.State)
	assert.Equal(t, models.OutcomeSuccess, result.Outcome.Kind)
	assert.Empty(t, result.RedirectURL, "footer subscriptions do not navigate away")
	assert.Zero(t, result.RedirectDelayMs)

	assert.Equal(t, int32(0), counters.crm.Load(), "footer leads never reach the CRM")
	assert.Equal(t, int32(1), counters.sheets.Load())
	assert.Equal(t, "Footer", sheetName)
}

func TestSubmitDefaultsDialCode(t *testing.T) {
	var crmQuery url.Values
	pipeline, _ := newTestPipeline(t, http.StatusOK, http.StatusOK, nil)
	pipeline.CRM.HTTPClient.Transport = roundTripFunc(func(r *http.Request) (*http.Response, error) {
		crmQuery = r.URL.Query()
		return http.DefaultTransport.RoundTrip(r)
	})

	form := enquiryFormValues()
	form.Del("CountryCode")
	pipeline.Submit(context.Background(), CallbackForm, form)

	assert.Equal(t, "91", crmQuery.Get("ISD"))
}

func TestSubmitMintsFreshUniqueIDs(t *testing.T) {
	pipeline, _ := newTestPipeline(t, http.StatusOK, http.StatusOK, nil)

	first := pipeline.Submit(context.Background(), CallbackForm, enquiryFormValues())
	second := pipeline.Submit(context.Background(), CallbackForm, enquiryFormValues())

	assert.NotEmpty(t, first.UniqueID)
	assert.NotEmpty(t, second.UniqueID)
	assert.NotEqual(t, first.UniqueID, second.UniqueID)
}
