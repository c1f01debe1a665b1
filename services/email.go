package services

import (
	"fmt"
	"time"

	"lead-relay/config"
	"lead-relay/logger"
)

// SendEmail queues an email event to Kafka for async processing. The email
// is not sent directly; the consumer handles the actual SMTP delivery.
func SendEmail(to, subject, body string, attachment ...string) error {
	emailPayload := map[string]interface{}{
		"event":     "email.send",
		"recipient": to,
		"subject":   subject,
		"body":      body,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if len(attachment) > 0 {
		emailPayload["attachment"] = attachment[0]
	}

	if err := Publish(config.AppConfig.KafkaEmailTopic, fmt.Sprintf("email-%s", to), emailPayload); err != nil {
		logger.Error("Failed to publish email event to Kafka: %v", err)
		return fmt.Errorf("failed to queue email: %w", err)
	}

	logger.Info("Email event queued for %s", to)
	return nil
}
