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

func testCRMClient(baseURL string) *CRMClient {
	return &CRMClient{
		BaseURL:    baseURL,
		UID:        "fourqt",
		PWD:        "wn9mxO76f34=",
		Project:    "Fab Luxe Residences",
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func testLeadRecord() *models.LeadRecord {
	return &models.LeadRecord{
		UniqueID: "LEAD-1740000000000-42",
		FormTag:  "enquiry",
		Input: models.LeadFormInput{
			Name:     " A Kumar ",
			Email:    "a.kumar@example.com",
			Phone:    "98765 43210",
			DialCode: "91",
			City:     "Mumbai",
			Location: "Andheri",
			Message:  "Interested in a 2BHK",
			PageURL:  "https://example.com/fab?utm_source=google&utm_campaign=spring",
		},
		Normalized: models.NormalizedPhone{
			Combined:       "91-9876543210",
			SubscriberOnly: "9876543210",
		},
		UTM: models.UTMParams{
			Source:   "google",
			Campaign: "spring",
		},
		CleanURL: "example.com/fab",
		Date:     "01/03/2025",
		Time:     "12:30:00",
	}
}

func TestBuildQuery(t *testing.T) {
	client := testCRMClient("https://crm.example.com/WebCreate.aspx")
	q := client.BuildQuery(testLeadRecord())

	assert.Equal(t, "fourqt", q.Get("UID"))
	assert.Equal(t, "wn9mxO76f34=", q.Get("PWD"))
	assert.Equal(t, "MS", q.Get("Channel"))
	assert.Equal(t, "Website", q.Get("Src"))
	assert.Equal(t, "91", q.Get("ISD"))
	assert.Equal(t, "9876543210", q.Get("Mob"))
	assert.Equal(t, "a.kumar@example.com", q.Get("Email"))
	assert.Equal(t, "A Kumar", q.Get("name"))
	assert.Equal(t, "Mumbai", q.Get("City"))
	assert.Equal(t, "Andheri", q.Get("Location"))
	assert.Equal(t, "Fab Luxe Residences", q.Get("Project"))
	assert.Equal(t, "Interested in a 2BHK", q.Get("Remark"))
	assert.Equal(t, "example.com/fab", q.Get("url"))
	assert.Equal(t, "0", q.Get("UniqueId"))
	assert.Equal(t, "google", q.Get("fld1"))
	assert.Equal(t, "spring", q.Get("fld2"))
	assert.Equal(t, "", q.Get("fld3"))
	assert.Equal(t, "", q.Get("fld4"))
}

func TestSubmitSuccess(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		gotQuery = r.URL.Query()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := testCRMClient(server.URL)
	err := client.Submit(context.Background(), testLeadRecord())
	require.NoError(t, err)
	assert.Equal(t, "9876543210", gotQuery.Get("Mob"))
	assert.Equal(t, "0", gotQuery.Get("UniqueId"))
}

func TestSubmitNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := testCRMClient(server.URL)
	err := client.Submit(context.Background(), testLeadRecord())
	require.Error(t, err)
	assert.Equal(t, errors.CrmStatus, errors.KindOf(err))
	assert.Contains(t, errors.MessageOf(err, ""), "500")
}

func TestSubmitNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := testCRMClient(server.URL)
	err := client.Submit(context.Background(), testLeadRecord())
	require.Error(t, err)
	assert.Equal(t, errors.CrmTransport, errors.KindOf(err))
}
