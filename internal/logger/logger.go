package logger

import (
	"fmt"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// global is read from the storage and cart watcher goroutines while main may
// still be swapping it.
var global atomic.Pointer[zap.Logger]

type settings struct {
	level string
	file  string
}

type Option func(*settings)

// WithLevel overrides the environment's default level: debug, info, warn or
// error. Unknown names are ignored.
func WithLevel(level string) Option {
	return func(s *settings) { s.level = level }
}

// WithFile also writes logs to path, appending.
func WithFile(path string) Option {
	return func(s *settings) { s.file = path }
}

// Init builds the global logger for env. Logs always go to stderr; stdout is
// the command's output.
//
//	production   JSON, info and up
//	test         discarded
//	anything else console, warn and up
func Init(env string, opts ...Option) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	if env == "test" && s.file == "" {
		global.Store(zap.NewNop())
		return
	}

	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.MessageKey = "message"
		cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	if s.level != "" {
		if lvl, err := zapcore.ParseLevel(s.level); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(lvl)
		}
	}

	cfg.OutputPaths = []string{"stderr"}
	if s.file != "" {
		cfg.OutputPaths = append(cfg.OutputPaths, s.file)
		if env == "test" {
			cfg.OutputPaths = []string{s.file}
		}
	}

	l, err := cfg.Build(zap.AddCaller())
	if err != nil {
		// A bad LOG_FILE must not stop the command.
		fmt.Fprintf(os.Stderr, "logger: %v; logging to stderr only\n", err)
		cfg.OutputPaths = []string{"stderr"}
		if l, err = cfg.Build(zap.AddCaller()); err != nil {
			panic(err)
		}
	}
	global.Store(l)
}

// L returns the global logger, building one from APP_ENV on first use.
func L() *zap.Logger {
	if l := global.Load(); l != nil {
		return l
	}
	Init(os.Getenv("APP_ENV"))
	return global.Load()
}

// Replace swaps the global logger and returns a func restoring the previous one.
func Replace(l *zap.Logger) func() {
	prev := global.Swap(l)
	return func() { global.Store(prev) }
}

func Sync() {
	if l := global.Load(); l != nil {
		_ = l.Sync()
	}
}
