package services

import (
	"fmt"
	"strconv"

	"lead-relay/config"
	"lead-relay/logger"

	"gopkg.in/gomail.v2"
)

// SendEmailDirect sends email directly via SMTP.
// Called by the Kafka consumer after receiving an email.send event.
func SendEmailDirect(to, subject, body string, attachment ...string) error {
	from := config.AppConfig.EmailFrom
	if from == "" {
		from = config.AppConfig.SMTPUser
	}
	if from == "" {
		return fmt.Errorf("email sender not configured (set EMAIL_FROM or SMTP_USER)")
	}

	if config.AppConfig.SMTPUser == "" || config.AppConfig.SMTPPass == "" {
		return fmt.Errorf("smtp credentials not configured (set SMTP_USER and SMTP_PASS)")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if len(attachment) > 0 {
		m.Attach(attachment[0])
	}

	port := 587
	if v, err := strconv.Atoi(config.AppConfig.SMTPPort); err == nil {
		port = v
	}

	d := gomail.NewDialer(config.AppConfig.SMTPHost, port, config.AppConfig.SMTPUser, config.AppConfig.SMTPPass)

	if err := d.DialAndSend(m); err != nil {
		logger.Error("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("error sending email: %w", err)
	}

	logger.Info("Email sent to %s", to)
	return nil
}
