package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		SourceSpreadsheetID: "src-id",
		TargetSpreadsheetID: "tgt-id",
		SettingsSheetName:   "Settings",
		WorkStartHour:       10,
		WorkEndHour:         22,
		TimeZone:            "Asia/Almaty",
		LockFile:            "/tmp/gs_sync.lock",
		ServiceAccountJSON:  `{"type":"service_account"}`,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:        "missing source spreadsheet",
			mutate:      func(c *Config) { c.SourceSpreadsheetID = "" },
			wantErr:     true,
			errorString: "SOURCE_SPREADSHEET_ID is required",
		},
		{
			name:        "missing target spreadsheet",
			mutate:      func(c *Config) { c.TargetSpreadsheetID = "" },
			wantErr:     true,
			errorString: "TARGET_SPREADSHEET_ID is required",
		},
		{
			name: "missing credentials",
			mutate: func(c *Config) {
				c.ServiceAccountJSON = ""
				c.CredentialsFile = ""
			},
			wantErr:     true,
			errorString: "either GCP_SA_JSON or GOOGLE_APPLICATION_CREDENTIALS",
		},
		{
			name: "credentials file does not exist",
			mutate: func(c *Config) {
				c.ServiceAccountJSON = ""
				c.CredentialsFile = "/nonexistent/sa.json"
			},
			wantErr:     true,
			errorString: "credentials file does not exist",
		},
		{
			name:        "start hour out of range",
			mutate:      func(c *Config) { c.WorkStartHour = -1 },
			wantErr:     true,
			errorString: "invalid work start hour",
		},
		{
			name:        "empty work window",
			mutate:      func(c *Config) { c.WorkStartHour = 22; c.WorkEndHour = 22 },
			wantErr:     true,
			errorString: "work window is empty",
		},
		{
			name:        "bad time zone",
			mutate:      func(c *Config) { c.TimeZone = "Mars/Olympus" },
			wantErr:     true,
			errorString: "invalid time zone",
		},
		{
			name:        "empty lock file",
			mutate:      func(c *Config) { c.LockFile = "" },
			wantErr:     true,
			errorString: "lock file path cannot be empty",
		},
		{
			name:        "amqp url without exchange",
			mutate:      func(c *Config) { c.AMQPURL = "amqp://localhost"; c.AMQPQueue = "q" },
			wantErr:     true,
			errorString: "AMQP exchange name cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SOURCE_SPREADSHEET_ID", "TARGET_SPREADSHEET_ID", "SETTINGS_SHEET_NAME",
		"WORK_START_HOUR", "WORK_END_HOUR", "TZ", "LOCK_FILE",
		"GCP_SA_JSON", "GOOGLE_APPLICATION_CREDENTIALS", "JOURNAL_DB_PATH",
		"AMQP_URL", "AMQP_EXCHANGE", "AMQP_QUEUE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	cfg := Load()
	if cfg.SettingsSheetName != "Settings" {
		t.Errorf("SettingsSheetName = %q", cfg.SettingsSheetName)
	}
	if cfg.WorkStartHour != 10 || cfg.WorkEndHour != 22 {
		t.Errorf("work window = %d..%d", cfg.WorkStartHour, cfg.WorkEndHour)
	}
	if cfg.TimeZone != "Asia/Almaty" {
		t.Errorf("TimeZone = %q", cfg.TimeZone)
	}
	if cfg.LockFile != "/tmp/gs_sync.lock" {
		t.Errorf("LockFile = %q", cfg.LockFile)
	}
	if cfg.AMQPExchange != "gs_sync" || cfg.AMQPQueue != "sheet_synced" {
		t.Errorf("amqp defaults = %q %q", cfg.AMQPExchange, cfg.AMQPQueue)
	}
}

func TestCredentialsJSON(t *testing.T) {
	cfg := validConfig()
	data, err := cfg.CredentialsJSON()
	if err != nil || string(data) != `{"type":"service_account"}` {
		t.Fatalf("inline credentials: data=%q err=%v", data, err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "sa.json")
	if err := os.WriteFile(path, []byte(`{"from":"file"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg.ServiceAccountJSON = ""
	cfg.CredentialsFile = path
	data, err = cfg.CredentialsJSON()
	if err != nil || string(data) != `{"from":"file"}` {
		t.Fatalf("file credentials: data=%q err=%v", data, err)
	}
}
