// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

var validConfigJSON = `{
    "token_name": "SOL",
    "trading_fees": 0.001,
    "debug_logging": true,
    "log_file": "logs/test.log",
    "log_max_size_mb": 5,
    "log_max_backups": 1,
    "export_dir": "out",
    "bus_buffer": 32
}`

var invalidConfigJSON = `{
    "token_name": "",
    "trading_fees": -1
}`

func setupTestConfig(t *testing.T, name, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return configPath
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr bool
		check   func(*Config) bool
	}{
		{
			name:    "Valid config",
			file:    "config.json",
			content: validConfigJSON,
			check: func(cfg *Config) bool {
				return cfg.TokenName == "SOL" &&
					cfg.TradingFees == 0.001 &&
					cfg.DebugLogging &&
					cfg.ExportDir == "out" &&
					cfg.BusBuffer == 32
			},
		},
		{
			name:    "Partial YAML config keeps defaults",
			file:    "config.yaml",
			content: "token_name: ETH\n",
			check: func(cfg *Config) bool {
				return cfg.TokenName == "ETH" &&
					cfg.TradingFees == DefaultTradingFees &&
					cfg.LogMaxSizeMB == DefaultLogMaxSizeMB &&
					cfg.ExportDir == DefaultExportDir
			},
		},
		{
			name:    "Invalid config - empty required fields",
			file:    "config.json",
			content: invalidConfigJSON,
			wantErr: true,
		},
		{
			name:    "Invalid JSON syntax",
			file:    "config.json",
			content: "{invalid json",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := setupTestConfig(t, tt.file, tt.content)

			cfg, err := LoadConfig(configPath)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadConfig() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr && cfg != nil {
				t.Errorf("LoadConfig() returned config %+v together with error", cfg)
			}

			if !tt.wantErr && tt.check != nil && !tt.check(cfg) {
				t.Errorf("LoadConfig() returned invalid configuration: %+v", cfg)
			}
		})
	}
}

func TestLoadConfigWithoutFile(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("LoadConfig(\"\") = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadConfigEnvironmentVariables(t *testing.T) {
	t.Setenv("TOKEN_CALC_TOKEN_NAME", "DOGE")
	t.Setenv("TOKEN_CALC_EXPORT_DIR", "/tmp/exports")

	configPath := setupTestConfig(t, "config.json", validConfigJSON)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.TokenName != "DOGE" {
		t.Errorf("TokenName = %q, want value from environment", cfg.TokenName)
	}
	if cfg.ExportDir != "/tmp/exports" {
		t.Errorf("ExportDir = %q, want value from environment", cfg.ExportDir)
	}
	if cfg.TradingFees != 0.001 {
		t.Errorf("TradingFees = %v, want value from file", cfg.TradingFees)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "Valid configuration", mutate: func(*Config) {}},
		{name: "Zero fees are allowed", mutate: func(c *Config) { c.TradingFees = 0 }},
		{name: "Blank token name", mutate: func(c *Config) { c.TokenName = "  " }, wantErr: true},
		{name: "Negative fees", mutate: func(c *Config) { c.TradingFees = -0.1 }, wantErr: true},
		{name: "Zero log size", mutate: func(c *Config) { c.LogMaxSizeMB = 0 }, wantErr: true},
		{name: "Negative backups", mutate: func(c *Config) { c.LogMaxBackups = -1 }, wantErr: true},
		{name: "Missing export dir", mutate: func(c *Config) { c.ExportDir = "" }, wantErr: true},
		{name: "Zero bus buffer", mutate: func(c *Config) { c.BusBuffer = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
