package config

import (
	"os"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// Initialize with empty config
	err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if AppConfig == nil {
		t.Fatal("AppConfig is nil")
	}

	// Check defaults
	if AppConfig.Server.Port != 8115 {
		t.Errorf("Expected default port 8115, got %d", AppConfig.Server.Port)
	}
	if AppConfig.Server.Mode != "release" {
		t.Errorf("Expected default mode 'release', got %s", AppConfig.Server.Mode)
	}
	if AppConfig.Database.Path != "data/lixian.db" {
		t.Errorf("Expected default db path 'data/lixian.db', got %s", AppConfig.Database.Path)
	}
	if AppConfig.Cloud115.PollIntervalMinutes != 5 {
		t.Errorf("Expected default poll interval 5, got %d", AppConfig.Cloud115.PollIntervalMinutes)
	}
	if AppConfig.Cloud115.TaskCount != 60 {
		t.Errorf("Expected default task count 60, got %d", AppConfig.Cloud115.TaskCount)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	// Set environment variable
	os.Setenv("LIXIAN_SERVER_PORT", "9999")
	defer os.Unsetenv("LIXIAN_SERVER_PORT")

	err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if AppConfig.Server.Port != 9999 {
		t.Errorf("Expected port 9999 from env, got %d", AppConfig.Server.Port)
	}
}

func TestLoadConfig_PollIntervalEnv(t *testing.T) {
	os.Setenv("LIXIAN_CLOUD115_POLL_INTERVAL_MINUTES", "30")
	defer os.Unsetenv("LIXIAN_CLOUD115_POLL_INTERVAL_MINUTES")

	err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if AppConfig.Cloud115.PollIntervalMinutes != 30 {
		t.Errorf("Expected poll interval 30 from env, got %d", AppConfig.Cloud115.PollIntervalMinutes)
	}
}
