// internal/logger/file.go
package logger

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileOptions configures the rotating log file.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	Compress   bool
}

// CreateTUILogger creates a logger for when the terminal belongs to the TUI:
// JSON lines go to a rotating file and, when ring is non-nil, entries are
// also kept in memory for display. The returned closer releases the file.
func CreateTUILogger(debug bool, file FileOptions, ring *Ring) (*zap.Logger, io.Closer) {
	rotator := &lumberjack.Logger{
		Filename:   file.Path,
		MaxSize:    file.MaxSizeMB,
		MaxBackups: file.MaxBackups,
		Compress:   file.Compress,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	level := Level(debug)
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(rotator), level),
	}
	if ring != nil {
		cores = append(cores, ring.Core(level))
	}

	return zap.New(zapcore.NewTee(cores...)), rotator
}
