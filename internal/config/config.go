package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Spreadsheets
	SourceSpreadsheetID string
	TargetSpreadsheetID string
	SettingsSheetName   string

	// Work window (local hours, end exclusive)
	WorkStartHour int
	WorkEndHour   int
	TimeZone      string

	// Single-instance lock
	LockFile string

	// Credentials: inline service-account JSON wins over the file path.
	ServiceAccountJSON string
	CredentialsFile    string

	// Optional run journal (SQLite); empty path disables it.
	JournalDBPath string

	// Optional sync notifications; empty URL disables them.
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

func Load() *Config {
	return &Config{
		SourceSpreadsheetID: getEnv("SOURCE_SPREADSHEET_ID", ""),
		TargetSpreadsheetID: getEnv("TARGET_SPREADSHEET_ID", ""),
		SettingsSheetName:   getEnv("SETTINGS_SHEET_NAME", "Settings"),

		WorkStartHour: getEnvInt("WORK_START_HOUR", 10),
		WorkEndHour:   getEnvInt("WORK_END_HOUR", 22),
		TimeZone:      getEnv("TZ", "Asia/Almaty"),

		LockFile: getEnv("LOCK_FILE", "/tmp/gs_sync.lock"),

		ServiceAccountJSON: getEnv("GCP_SA_JSON", ""),
		CredentialsFile:    getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),

		JournalDBPath: getEnv("JOURNAL_DB_PATH", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "gs_sync"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "sheet_synced"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.SourceSpreadsheetID == "" {
		errors = append(errors, "SOURCE_SPREADSHEET_ID is required")
	}
	if c.TargetSpreadsheetID == "" {
		errors = append(errors, "TARGET_SPREADSHEET_ID is required")
	}
	if c.SettingsSheetName == "" {
		errors = append(errors, "settings sheet name cannot be empty")
	}

	if c.ServiceAccountJSON == "" && c.CredentialsFile == "" {
		errors = append(errors, "either GCP_SA_JSON or GOOGLE_APPLICATION_CREDENTIALS must be provided")
	}
	if c.ServiceAccountJSON == "" && c.CredentialsFile != "" {
		if _, err := os.Stat(c.CredentialsFile); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("credentials file does not exist: %s", c.CredentialsFile))
		}
	}

	if c.WorkStartHour < 0 || c.WorkStartHour > 23 {
		errors = append(errors, fmt.Sprintf("invalid work start hour %d: must be between 0 and 23", c.WorkStartHour))
	}
	if c.WorkEndHour < 1 || c.WorkEndHour > 24 {
		errors = append(errors, fmt.Sprintf("invalid work end hour %d: must be between 1 and 24", c.WorkEndHour))
	}
	if c.WorkStartHour >= c.WorkEndHour {
		errors = append(errors, fmt.Sprintf("work window is empty: start %d >= end %d", c.WorkStartHour, c.WorkEndHour))
	}

	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		errors = append(errors, fmt.Sprintf("invalid time zone '%s': %v", c.TimeZone, err))
	}

	if c.LockFile == "" {
		errors = append(errors, "lock file path cannot be empty")
	}

	if c.AMQPURL != "" {
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// CredentialsJSON resolves the service-account payload, reading the
// credentials file when no inline JSON is set.
func (c *Config) CredentialsJSON() ([]byte, error) {
	if c.ServiceAccountJSON != "" {
		return []byte(c.ServiceAccountJSON), nil
	}
	data, err := os.ReadFile(c.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}
	return data, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
