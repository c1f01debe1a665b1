package utils

import (
	"context"
	"database/sql"
	"fmt"

	"lead-relay/logger"
	"lead-relay/models"
)

// LeadStore handles all lead-related database operations
type LeadStore struct {
	db *sql.DB
}

// NewLeadStore creates a new lead store instance
func NewLeadStore(db *sql.DB) *LeadStore {
	return &LeadStore{db: db}
}

// Insert records one submission attempt with its outcome. Every attempt gets
// its own row; duplicates across attempts are distinguishable by unique_id.
func (s *LeadStore) Insert(ctx context.Context, rec *models.LeadRecord, outcome models.SubmissionOutcome) (int, error) {
	query := `
	INSERT INTO leads (
		unique_id, form_tag, name, email, phone, dial_code, city, location,
		message, page_url, utm_source, utm_campaign, utm_medium, utm_keyword,
		outcome, failure_reason, captured_date, captured_time
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	RETURNING id`

	var id int
	err := s.db.QueryRowContext(ctx, query,
		rec.UniqueID, rec.FormTag, rec.Input.Name, rec.Input.Email,
		rec.Normalized.Combined, rec.Input.DialCode, rec.Input.City,
		rec.Input.Location, rec.Input.Message, rec.CleanURL,
		rec.UTM.Source, rec.UTM.Campaign, rec.UTM.Medium, rec.UTM.Keyword,
		outcome.Kind.String(), outcome.Reason, rec.Date, rec.Time,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting lead %s: %w", rec.UniqueID, err)
	}
	return id, nil
}

// LogRelayAttempt appends a row to the relay log for one backend delivery.
func (s *LeadStore) LogRelayAttempt(ctx context.Context, uniqueID, backend, status, detail string) error {
	query := `INSERT INTO relay_log (lead_unique_id, backend, status, detail) VALUES ($1, $2, $3, $4)`
	if _, err := s.db.ExecContext(ctx, query, uniqueID, backend, status, detail); err != nil {
		return fmt.Errorf("error logging relay attempt for %s: %w", uniqueID, err)
	}
	return nil
}

// List returns captured leads, newest first, optionally narrowed by capture
// time, outcome and form.
func (s *LeadStore) List(ctx context.Context, filters *LeadFilterParams) ([]models.Lead, error) {
	query := `
	SELECT id, unique_id, form_tag, name, email, phone, dial_code, city,
		location, message, page_url, utm_source, utm_campaign, utm_medium,
		utm_keyword, outcome, failure_reason, captured_date, captured_time,
		created_at
	FROM leads`

	args := []interface{}{}
	where := ""
	if filters != nil {
		if filters.CapturedAfter != nil {
			args = append(args, *filters.CapturedAfter)
			where += fmt.Sprintf(" AND created_at >= $%d", len(args))
		}
		if filters.CapturedBefore != nil {
			args = append(args, *filters.CapturedBefore)
			where += fmt.Sprintf(" AND created_at <= $%d", len(args))
		}
		if filters.Outcome != "" {
			args = append(args, filters.Outcome)
			where += fmt.Sprintf(" AND outcome = $%d", len(args))
		}
		if filters.FormTag != "" {
			args = append(args, filters.FormTag)
			where += fmt.Sprintf(" AND form_tag = $%d", len(args))
		}
	}
	if where != "" {
		query += " WHERE 1=1" + where
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying leads: %w", err)
	}
	defer rows.Close()

	var leads []models.Lead
	for rows.Next() {
		lead, err := ScanLead(rows)
		if err != nil {
			logger.Error("Error scanning lead row: %v", err)
			continue
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

// ScanLead reads a single lead row from database query results
func ScanLead(rows *sql.Rows) (models.Lead, error) {
	var lead models.Lead
	var failureReason sql.NullString

	err := rows.Scan(
		&lead.ID, &lead.UniqueID, &lead.FormTag, &lead.Name, &lead.Email,
		&lead.Phone, &lead.DialCode, &lead.City, &lead.Location, &lead.Message,
		&lead.PageURL, &lead.UTMSource, &lead.UTMCampaign, &lead.UTMMedium,
		&lead.UTMKeyword, &lead.Outcome, &failureReason, &lead.CapturedDate,
		&lead.CapturedTime, &lead.CreatedAt,
	)
	if err != nil {
		return lead, err
	}

	if failureReason.Valid {
		lead.FailureReason = failureReason.String
	}

	return lead, nil
}

// ConvertLeadsToResponse converts slice of Lead to LeadResponse for API response
func ConvertLeadsToResponse(leads []models.Lead) []models.LeadResponse {
	responses := make([]models.LeadResponse, len(leads))
	for i := range leads {
		responses[i] = leads[i].ToResponse()
	}
	return responses
}
