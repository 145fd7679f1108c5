package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port        string
	LogMode     string
	CORSOrigins []string

	// Spreadsheet store configuration
	CentralSpreadsheetID string
	DriveFolderID        string
	OperatorEmail        string

	// Audit database configuration
	AuditDBType            string // mysql, postgres, sqlite, sqlserver
	AuditDBHost            string
	AuditDBPort            string
	AuditDBDatabase        string
	AuditDBUser            string
	AuditDBPassword        string
	AuditDBConnectionLimit int

	// Authorizer configuration (optional, admin routes are open when unset)
	AuthzURL      string
	AuthzClientID string
}

// Load loads configuration from environment variables.
// An optional .env file is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                   getEnv("PORT", "8080"),
		LogMode:                getEnv("LOG_MODE", "dev"),
		CORSOrigins:            splitList(getEnv("CORS_ORIGINS", "")),
		CentralSpreadsheetID:   getEnv("CENTRAL_SPREADSHEET_ID", ""),
		DriveFolderID:          getEnv("DRIVE_FOLDER_ID", ""),
		OperatorEmail:          getEnv("OPERATOR_EMAIL", ""),
		AuditDBType:            getEnv("AUDIT_DB_TYPE", "sqlite"),
		AuditDBHost:            getEnv("AUDIT_DB_HOST", "localhost"),
		AuditDBPort:            getEnv("AUDIT_DB_PORT", "3306"),
		AuditDBDatabase:        getEnv("AUDIT_DB_DATABASE", "intake_audit.db"),
		AuditDBUser:            getEnv("AUDIT_DB_USER", ""),
		AuditDBPassword:        getEnv("AUDIT_DB_PASSWORD", ""),
		AuditDBConnectionLimit: getEnvAsInt("AUDIT_DB_CONNECTION_LIMIT", 5),
		AuthzURL:               getEnv("AUTHZ_URL", ""),
		AuthzClientID:          getEnv("AUTHZ_CLIENT_ID", ""),
	}

	// Validate required fields
	if cfg.CentralSpreadsheetID == "" {
		return nil, fmt.Errorf("CENTRAL_SPREADSHEET_ID is required")
	}
	if cfg.DriveFolderID == "" {
		return nil, fmt.Errorf("DRIVE_FOLDER_ID is required")
	}
	if cfg.AuthzURL != "" && cfg.AuthzClientID == "" {
		return nil, fmt.Errorf("AUTHZ_CLIENT_ID is required when AUTHZ_URL is set")
	}

	return cfg, nil
}

// AdminAuthEnabled reports whether admin routes require an authorizer session
func (c *Config) AdminAuthEnabled() bool {
	return c.AuthzURL != ""
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// splitList splits a comma-separated environment value into trimmed entries
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
