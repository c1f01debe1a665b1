package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddr string

	// CRM endpoint (authoritative lead intake)
	CRMBaseURL  string
	CRMUID      string
	CRMPWD      string
	ProjectName string

	// Google Apps Script endpoint (best-effort spreadsheet mirror)
	GoogleScriptURL string

	// Outbound HTTP timeout in seconds, applied to both backends
	HTTPTimeoutSeconds int

	// Origin of the landing page, for CORS
	AllowedOrigin string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	SMTPHost   string
	SMTPPort   string
	SMTPUser   string
	SMTPPass   string
	EmailFrom  string
	SalesEmail string

	// Kafka settings (comma-separated brokers; empty disables Kafka)
	KafkaBrokers         string
	KafkaLeadEventsTopic string
	KafkaEmailTopic      string
}

var AppConfig Config

func LoadConfig() {
	// Try loading .env from different locations
	envLocations := []string{
		".env",              // project root
		"config/.env",       // config subdirectory
		"../config/.env",    // one level up
		"../../config/.env", // two levels up
	}

	envLoaded := false
	for _, location := range envLocations {
		if err := godotenv.Load(location); err == nil {
			envLoaded = true
			break
		}
	}

	if !envLoaded {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = Config{
		ServerAddr: getEnvWithDefault("SERVER_ADDR", ":8080"),

		CRMBaseURL:  getEnvWithDefault("CRM_BASE_URL", "https://crm.fgpindia.in/WebCreate.aspx"),
		CRMUID:      getEnvWithDefault("CRM_UID", "fourqt"),
		CRMPWD:      getEnvWithDefault("CRM_PWD", "wn9mxO76f34="),
		ProjectName: getEnvWithDefault("PROJECT_NAME", "Fab Luxe Residences"),

		GoogleScriptURL: os.Getenv("GOOGLE_SCRIPT_URL"),

		HTTPTimeoutSeconds: getEnvIntWithDefault("HTTP_TIMEOUT_SECONDS", 15),

		AllowedOrigin: os.Getenv("ALLOWED_ORIGIN"),

		DBHost:     getEnvWithDefault("DB_HOST", "localhost"),
		DBPort:     getEnvWithDefault("DB_PORT", "5432"),
		DBUser:     getEnvWithDefault("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnvWithDefault("DB_NAME", "postgres"),

		SMTPHost:   getEnvWithDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:   getEnvWithDefault("SMTP_PORT", "587"),
		SMTPUser:   os.Getenv("SMTP_USER"),
		SMTPPass:   os.Getenv("SMTP_PASS"),
		EmailFrom:  os.Getenv("EMAIL_FROM"),
		SalesEmail: os.Getenv("SALES_EMAIL"),

		KafkaBrokers:         os.Getenv("KAFKA_BROKERS"),
		KafkaLeadEventsTopic: getEnvWithDefault("KAFKA_LEAD_EVENTS_TOPIC", "leads.relayed"),
		KafkaEmailTopic:      getEnvWithDefault("KAFKA_EMAIL_TOPIC", "emails"),
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return defaultValue
}

func GetDBConnString() string {
	return "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=disable"
}
