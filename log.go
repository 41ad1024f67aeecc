package inject

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logMu     sync.RWMutex
	pkgLogger = zap.NewNop()
)

// Logger returns the logger that receives binding and registration events.
// The default logger discards everything until SetLogger or the echo option
// replaces it.
func Logger() *zap.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return pkgLogger
}

// SetLogger replaces the package logger for the whole process.
// Passing nil restores the discarding default.
func SetLogger(l *zap.Logger) {
	logMu.Lock()
	defer logMu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	pkgLogger = l
}

// echoLogger creates the verbose diagnostic sink installed by WithEcho:
// console output on stdout with everything down to debug level enabled.
func echoLogger() *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		zap.NewAtomicLevelAt(zapcore.DebugLevel),
	)

	return zap.New(core).Named("inject")
}
