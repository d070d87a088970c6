// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	TokenName     string  `mapstructure:"token_name"`
	TradingFees   float64 `mapstructure:"trading_fees"`
	DebugLogging  bool    `mapstructure:"debug_logging"`
	LogFile       string  `mapstructure:"log_file"`
	LogMaxSizeMB  int     `mapstructure:"log_max_size_mb"`
	LogMaxBackups int     `mapstructure:"log_max_backups"`
	ExportDir     string  `mapstructure:"export_dir"`
	BusBuffer     int     `mapstructure:"bus_buffer"`
}

const (
	DefaultTokenName     = "BTC"
	DefaultTradingFees   = 0.00000006
	DefaultLogFile       = "logs/token-calc.log"
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 3
	DefaultExportDir     = "exports"
	DefaultBusBuffer     = 256

	EnvPrefix = "TOKEN_CALC"
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		TokenName:     DefaultTokenName,
		TradingFees:   DefaultTradingFees,
		LogFile:       DefaultLogFile,
		LogMaxSizeMB:  DefaultLogMaxSizeMB,
		LogMaxBackups: DefaultLogMaxBackups,
		ExportDir:     DefaultExportDir,
		BusBuffer:     DefaultBusBuffer,
	}
}

// LoadConfig reads the configuration from path. An empty path skips the file
// and uses defaults; environment variables prefixed with TOKEN_CALC_ override
// both.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	defaults := map[string]interface{}{
		"token_name":      DefaultTokenName,
		"trading_fees":    DefaultTradingFees,
		"debug_logging":   false,
		"log_file":        DefaultLogFile,
		"log_max_size_mb": DefaultLogMaxSizeMB,
		"log_max_backups": DefaultLogMaxBackups,
		"export_dir":      DefaultExportDir,
		"bus_buffer":      DefaultBusBuffer,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.TokenName) == "" {
		return errors.New("token_name must not be empty")
	}
	if math.IsNaN(cfg.TradingFees) || math.IsInf(cfg.TradingFees, 0) || cfg.TradingFees < 0 {
		return errors.New("invalid trading_fees")
	}
	if cfg.LogMaxSizeMB <= 0 {
		return errors.New("invalid log_max_size_mb")
	}
	if cfg.LogMaxBackups < 0 {
		return errors.New("invalid log_max_backups")
	}
	if cfg.ExportDir == "" {
		return errors.New("export_dir must not be empty")
	}
	if cfg.BusBuffer <= 0 {
		return errors.New("invalid bus_buffer")
	}
	return nil
}
