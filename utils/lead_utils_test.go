package utils

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead-relay/models"
)

var leadColumns = []string{
	"id", "unique_id", "form_tag", "name", "email", "phone", "dial_code",
	"city", "location", "message", "page_url", "utm_source", "utm_campaign",
	"utm_medium", "utm_keyword", "outcome", "failure_reason", "captured_date",
	"captured_time", "created_at",
}

func TestLeadStoreInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rec := &models.LeadRecord{
		UniqueID: "LEAD-1740000000000-42",
		FormTag:  "enquiry",
		Input: models.LeadFormInput{
			Name: "A Kumar", Email: "a.kumar@example.com", DialCode: "91",
		},
		Normalized: models.NormalizedPhone{Combined: "91-9876543210"},
		CleanURL:   "example.com/fab",
		Date:       "01/03/2025",
		Time:       "12:30:00",
	}

	mock.ExpectQuery("INSERT INTO leads").
		WithArgs(
			rec.UniqueID, rec.FormTag, "A Kumar", "a.kumar@example.com",
			"91-9876543210", "91", "", "", "", "example.com/fab",
			"", "", "", "", "SUCCESS", "", "01/03/2025", "12:30:00",
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	store := NewLeadStore(db)
	id, err := store.Insert(context.Background(), rec, models.SubmissionOutcome{Kind: models.OutcomeSuccess})
	require.NoError(t, err)
	assert.Equal(t, 7, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadStoreListUnfiltered(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows(leadColumns).AddRow(
		1, "LEAD-1740000000000-42", "enquiry", "A Kumar", "a.kumar@example.com",
		"91-9876543210", "91", "Mumbai", "Andheri", "Interested in a 2BHK",
		"example.com/fab", "google", "spring", "", "", "SUCCESS", nil,
		"01/03/2025", "12:30:00", created,
	)
	mock.ExpectQuery(`(?s)SELECT .+ FROM leads ORDER BY created_at DESC`).WillReturnRows(rows)

	store := NewLeadStore(db)
	leads, err := store.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "LEAD-1740000000000-42", leads[0].UniqueID)
	assert.Equal(t, "SUCCESS", leads[0].Outcome)
	assert.Empty(t, leads[0].FailureReason)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadStoreListFiltered(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	after := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`(?s)SELECT .+ FROM leads WHERE 1=1 AND created_at >= \$1 AND outcome = \$2 AND form_tag = \$3 ORDER BY created_at DESC`).
		WithArgs(after, "CRM_FAILED", "callback").
		WillReturnRows(sqlmock.NewRows(leadColumns))

	store := NewLeadStore(db)
	leads, err := store.List(context.Background(), &LeadFilterParams{
		CapturedAfter: &after,
		Outcome:       "CRM_FAILED",
		FormTag:       "callback",
	})
	require.NoError(t, err)
	assert.Empty(t, leads)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadStoreLogRelayAttempt(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO relay_log").
		WithArgs("LEAD-1740000000000-42", "sheets", "DELIVERED", "").
		WillReturnResult(sqlmock.NewResult(1, 1))

	store := NewLeadStore(db)
	err = store.LogRelayAttempt(context.Background(), "LEAD-1740000000000-42", "sheets", "DELIVERED", "")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
