package logger

import (
    "context"
    "fmt"
    "os"
    "path/filepath"
    "time"

    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
    "gopkg.in/natefinch/lumberjack.v2"
)

// Field type
type Field = zapcore.Field

// Logger interface
type Logger interface {
    Debug(msg string, fields ...Field)
    Info(msg string, fields ...Field)
    Warn(msg string, fields ...Field)
    Error(msg string, fields ...Field)
    Fatal(msg string, fields ...Field)
    With(fields ...Field) Logger
    Named(name string) Logger
    Sync() error
}

// Config defines logger configuration
type Config struct {
    Level       string   `json:"level" yaml:"level"`
    Encoding    string   `json:"encoding" yaml:"encoding"`
    OutputPaths []string `json:"outputPaths" yaml:"outputPaths"`
    MaxSize     int      `json:"maxSize" yaml:"maxSize"` // MB
    MaxBackups  int      `json:"maxBackups" yaml:"maxBackups"`
    MaxAge      int      `json:"maxAge" yaml:"maxAge"` // days
    Compress    bool     `json:"compress" yaml:"compress"`
    Development bool     `json:"development" yaml:"development"`
    Service     string   `json:"service" yaml:"service"`
}

type logger struct {
    zap *zap.Logger
}

// Option defines logger option function
type Option func(*Config)

// WithLevel sets logger level
func WithLevel(level string) Option {
    return func(c *Config) {
        c.Level = level
    }
}

// WithEncoding sets logger encoding ("json" or "console")
func WithEncoding(encoding string) Option {
    return func(c *Config) {
        c.Encoding = encoding
    }
}

// WithOutputPaths sets logger output paths. "stdout" and "stderr" are
// recognised; anything else is a file rotated by lumberjack.
func WithOutputPaths(paths []string) Option {
    return func(c *Config) {
        c.OutputPaths = paths
    }
}

// WithDevelopment toggles zap development mode (DPanic panics, stack on warn).
func WithDevelopment(dev bool) Option {
    return func(c *Config) {
        c.Development = dev
    }
}

// WithService adds a constant "service" field to every entry.
func WithService(name string) Option {
    return func(c *Config) {
        c.Service = name
    }
}

// NewLogger creates a new logger instance
func NewLogger(opts ...Option) (Logger, error) {
    cfg := &Config{
        Level:       "info",
        Encoding:    "json",
        OutputPaths: []string{"stdout"},
        MaxSize:     100,
        MaxBackups:  3,
        MaxAge:      7,
        Compress:    true,
    }

    for _, opt := range opts {
        opt(cfg)
    }

    level := zap.NewAtomicLevel()
    if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
        return nil, fmt.Errorf("can't parse log level: %w", err)
    }

    encoderConfig := zapcore.EncoderConfig{
        TimeKey:        "timestamp",
        LevelKey:       "level",
        NameKey:        "logger",
        CallerKey:      "caller",
        FunctionKey:    zapcore.OmitKey,
        MessageKey:     "message",
        StacktraceKey:  "stacktrace",
        LineEnding:     zapcore.DefaultLineEnding,
        EncodeLevel:    zapcore.LowercaseLevelEncoder,
        EncodeTime:     zapcore.ISO8601TimeEncoder,
        EncodeDuration: zapcore.MillisDurationEncoder,
        EncodeCaller:   zapcore.ShortCallerEncoder,
    }

    var cores []zapcore.Core
    for _, path := range cfg.OutputPaths {
        writer, err := newWriter(path, cfg)
        if err != nil {
            return nil, err
        }

        var encoder zapcore.Encoder
        if cfg.Encoding == "json" {
            encoder = zapcore.NewJSONEncoder(encoderConfig)
        } else {
            encoder = zapcore.NewConsoleEncoder(encoderConfig)
        }

        cores = append(cores, zapcore.NewCore(encoder, writer, level))
    }

    options := []zap.Option{
        zap.AddCaller(),
        zap.AddCallerSkip(1),
    }
    if cfg.Development {
        options = append(options, zap.Development())
    }
    if cfg.Service != "" {
        options = append(options, zap.Fields(zap.String("service", cfg.Service)))
    }

    return &logger{zap: zap.New(zapcore.NewTee(cores...), options...)}, nil
}

func newWriter(path string, cfg *Config) (zapcore.WriteSyncer, error) {
    switch path {
    case "stdout":
        return zapcore.AddSync(os.Stdout), nil
    case "stderr":
        return zapcore.AddSync(os.Stderr), nil
    }

    if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
        return nil, fmt.Errorf("can't create log directory: %w", err)
    }
    return zapcore.AddSync(&lumberjack.Logger{
        Filename:   path,
        MaxSize:    cfg.MaxSize,
        MaxBackups: cfg.MaxBackups,
        MaxAge:     cfg.MaxAge,
        Compress:   cfg.Compress,
    }), nil
}

// Nop returns a logger that discards everything.
func Nop() Logger {
    return &logger{zap: zap.NewNop()}
}

// Various field constructors
func String(key string, val string) Field          { return zap.String(key, val) }
func Int(key string, val int) Field                { return zap.Int(key, val) }
func Int64(key string, val int64) Field            { return zap.Int64(key, val) }
func Bool(key string, val bool) Field              { return zap.Bool(key, val) }
func Any(key string, val interface{}) Field        { return zap.Any(key, val) }
func Error(err error) Field                        { return zap.Error(err) }
func Time(key string, val time.Time) Field         { return zap.Time(key, val) }
func Duration(key string, val time.Duration) Field { return zap.Duration(key, val) }

func (l *logger) Debug(msg string, fields ...Field) {
    l.zap.Debug(msg, fields...)
}

func (l *logger) Info(msg string, fields ...Field) {
    l.zap.Info(msg, fields...)
}

func (l *logger) Warn(msg string, fields ...Field) {
    l.zap.Warn(msg, fields...)
}

func (l *logger) Error(msg string, fields ...Field) {
    l.zap.Error(msg, fields...)
}

func (l *logger) Fatal(msg string, fields ...Field) {
    l.zap.Fatal(msg, fields...)
}

func (l *logger) With(fields ...Field) Logger {
    return &logger{zap: l.zap.With(fields...)}
}

func (l *logger) Named(name string) Logger {
    return &logger{zap: l.zap.Named(name)}
}

func (l *logger) Sync() error {
    return l.zap.Sync()
}

type ctxKey struct{}

// requestIDKey is the context key under which the request id is stored.
var requestIDKey = ctxKey{}

// ContextWithRequestID returns a copy of ctx carrying the request id.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
    return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request id stored in ctx, if any.
func RequestIDFromContext(ctx context.Context) (string, bool) {
    id, ok := ctx.Value(requestIDKey).(string)
    return id, ok && id != ""
}

// FromContext returns l annotated with the request id carried by ctx.
func FromContext(ctx context.Context, l Logger) Logger {
    if id, ok := RequestIDFromContext(ctx); ok {
        return l.With(String("request_id", id))
    }
    return l
}
