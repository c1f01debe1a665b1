package services

import (
	"time"

	"lead-relay/config"
	"lead-relay/logger"
	"lead-relay/models"
)

// LeadRelayedEvent announces a lead that cleared the CRM path. Downstream
// consumers (reporting, remarketing) subscribe to the lead events topic.
type LeadRelayedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"` // "lead.relayed"
	UniqueID  string    `json:"unique_id"`
	FormTag   string    `json:"form_tag"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"` // combined form
	City      string    `json:"city"`
	PageURL   string    `json:"page_url"`
	UTMSource string    `json:"utm_source"`
	Timestamp time.Time `json:"timestamp"`
}

// PublishLeadRelayedEvent publishes a lead.relayed event to Kafka.
// This is non-blocking and uses best-effort delivery; a publish failure
// never affects the submission outcome already committed.
func PublishLeadRelayedEvent(rec *models.LeadRecord, formTag string) {
	event := LeadRelayedEvent{
		EventID:   rec.UniqueID,
		EventType: "lead.relayed",
		UniqueID:  rec.UniqueID,
		FormTag:   formTag,
		Name:      rec.Input.Name,
		Email:     rec.Input.Email,
		Phone:     rec.Normalized.Combined,
		City:      rec.Input.City,
		PageURL:   rec.CleanURL,
		UTMSource: rec.UTM.Source,
		Timestamp: time.Now().UTC(),
	}

	if err := Publish(config.AppConfig.KafkaLeadEventsTopic, rec.UniqueID, event); err != nil {
		logger.Warn("Failed to publish lead.relayed event for %s: %v", rec.UniqueID, err)
	}
}
