package logger

import (
	"context"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogManager is the logging surface used across the client. Every component
// accepts one and defaults to NewNop so a library user sees nothing unless
// they opt in.
type LogManager interface {
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)

	DebugF(format string, args ...any)
	InfoF(format string, args ...any)
	WarnF(format string, args ...any)
	ErrorF(format string, args ...any)

	DebugFCtx(ctx context.Context, format string, args ...any)
	InfoFCtx(ctx context.Context, format string, args ...any)
	WarnFCtx(ctx context.Context, format string, args ...any)
	ErrorFCtx(ctx context.Context, format string, args ...any)

	With(keyValues ...any) LogManager
	Named(name string) LogManager

	Sync() error
	SetLogLevel(level string) error
}

// LoggerOptions configures NewLogger.
type LoggerOptions struct {
	Level        string
	Encoding     string // "json" or "console"
	OutputPaths  []string
	ErrorPaths   []string
	EnableCaller bool
	EnableStack  bool
	TimeFormat   string
}

// NewLogger builds a zap-backed logger.
func NewLogger(opts LoggerOptions) (LogManager, error) {
	atomicLevel := zap.NewAtomicLevel()
	if err := atomicLevel.UnmarshalText([]byte(opts.Level)); err != nil {
		atomicLevel.SetLevel(zap.InfoLevel)
	}

	timeFormat := opts.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}
	if opts.Encoding == "" {
		opts.Encoding = "console"
	}
	if len(opts.OutputPaths) == 0 {
		opts.OutputPaths = []string{"stderr"}
	}
	if len(opts.ErrorPaths) == 0 {
		opts.ErrorPaths = []string{"stderr"}
	}

	levelEncoder := zapcore.CapitalLevelEncoder
	if opts.Encoding == "console" {
		levelEncoder = zapcore.CapitalColorLevelEncoder
	}

	cfg := zap.Config{
		Level:       atomicLevel,
		Development: opts.Level == "debug",
		Encoding:    opts.Encoding,
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "level",
			NameKey:        "logger",
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    levelEncoder,
			EncodeTime:     zapcore.TimeEncoderOfLayout(timeFormat),
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      opts.OutputPaths,
		ErrorOutputPaths: opts.ErrorPaths,
	}
	if opts.EnableCaller {
		cfg.EncoderConfig.CallerKey = "caller"
	}

	stackLevel := zap.ErrorLevel
	if opts.EnableStack {
		stackLevel = zap.WarnLevel
	}
	zapLogger, err := cfg.Build(zap.AddStacktrace(stackLevel), zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}

	return &logger{Log: zapLogger.Sugar(), atomicLevel: atomicLevel}, nil
}

// NewFromZap wraps an existing zap logger. The level is fixed by the core.
func NewFromZap(z *zap.Logger) LogManager {
	return &logger{Log: z.Sugar(), atomicLevel: zap.NewAtomicLevelAt(zap.DebugLevel)}
}

// NewNop returns a logger that discards everything.
func NewNop() LogManager {
	return NewFromZap(zap.NewNop())
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l LogManager) LogManager {
	if l == nil {
		return NewNop()
	}
	return l
}
