package log

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
	"moul.io/zapfilter"
)

type (
	Level  = zapcore.Level
	Field  = zap.Field
	Option = zap.Option

	// Logger is a thin wrapper around zap.Logger so callers never import zap
	// directly.
	Logger struct {
		l     *zap.Logger
		level Level
	}

	// Config describes the logging setup. Filters use the zapfilter rule
	// syntax, e.g. "debug:corner* info:*".
	Config struct {
		DefaultLevel string `yaml:"defaultLevel"`
		Filters      string `yaml:"filters"`
	}
)

// field constructors re-exported for convenience
var (
	Skip       = zap.Skip
	Bool       = zap.Bool
	Int        = zap.Int
	Int32      = zap.Int32
	Uint32     = zap.Uint32
	Float32    = zap.Float32
	Float64    = zap.Float64
	String     = zap.String
	Stringer   = zap.Stringer
	Time       = zap.Time
	Duration   = zap.Duration
	Any        = zap.Any
	ErrorField = zap.Error
)

var defaultLogger = DevLogger(os.Stderr, zapcore.InfoLevel)

func Default() *Logger { return defaultLogger }

func ResetDefault(l *Logger) { defaultLogger = l }

// NewLogger creates a production style logger (JSON encoding).
func NewLogger(ws zapcore.WriteSyncer, lvl Level, opts ...Option) *Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(cfg), ws, lvl)
	return &Logger{l: zap.New(core, opts...), level: lvl}
}

// DevLogger creates a development style logger (console encoding).
func DevLogger(ws zapcore.WriteSyncer, lvl Level, opts ...Option) *Logger {
	cfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), ws, lvl)
	return &Logger{l: zap.New(core, opts...), level: lvl}
}

// NewWithConfig wraps the given logger with zapfilter rules from cfg. Named
// sub-loggers can be raised or lowered individually without touching the
// overall level.
func NewWithConfig(base *Logger, cfg *Config) (*Logger, error) {
	lvl := base.level
	if cfg.DefaultLevel != "" {
		var err error
		if lvl, err = ParseLevel(cfg.DefaultLevel); err != nil {
			return nil, err
		}
	}
	if cfg.Filters == "" {
		return &Logger{l: base.l, level: lvl}, nil
	}
	rules, err := zapfilter.ParseRules(cfg.Filters)
	if err != nil {
		return nil, fmt.Errorf("invalid log filter rules: %w", err)
	}
	filtered := zap.New(zapfilter.NewFilteringCore(base.l.Core(), rules))
	return &Logger{l: filtered, level: lvl}, nil
}

// LoadConfig reads a logger Config from a YAML file.
func LoadConfig(fileName string) (*Config, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}
	ret := &Config{}
	if err := yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("could not parse log config: %w", err)
	}
	return ret, nil
}

func ParseLevel(text string) (Level, error) {
	return zapcore.ParseLevel(text)
}

func (l *Logger) Named(name string) *Logger {
	return &Logger{l: l.l.Named(name), level: l.level}
}

func (l *Logger) WithOptions(opts ...Option) *Logger {
	return &Logger{l: l.l.WithOptions(opts...), level: l.level}
}

func (l *Logger) Level() Level { return l.level }

func (l *Logger) Debug(msg string, fields ...Field) { l.l.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...Field)  { l.l.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.l.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...Field) { l.l.Error(msg, fields...) }
func (l *Logger) Fatal(msg string, fields ...Field) { l.l.Fatal(msg, fields...) }

func (l *Logger) Sync() error { return l.l.Sync() }

type ctxKey struct{}

// AddToContext stores the logger in the context.
func AddToContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// GetFromContext returns the logger stored in the context or the default
// logger if none is present.
func GetFromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return Default()
}
