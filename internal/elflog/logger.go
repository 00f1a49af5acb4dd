// Package elflog provides structured logging for eldr using zap.
package elflog

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger with loader-specific helpers. Every logger
// returned by New/Init carries a "run" field: a uuid minted once per
// eldr invocation so that parallel invocations' log lines can be told
// apart.
type Logger struct {
	*zap.Logger
	runID string
}

var (
	// L is the global logger instance.
	L    *Logger
	once sync.Once
)

// Init initializes the global logger with the given configuration.
// Safe to call multiple times; only the first call takes effect.
func Init(debug bool) {
	once.Do(func() {
		L = New(debug)
	})
}

// New creates a new Logger instance, tagged with a fresh run ID.
func New(debug bool) *Logger {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		logger = zap.NewNop()
	}

	run := uuid.New().String()
	return &Logger{Logger: logger.With(zap.String("run", run)), runID: run}
}

// NewNop creates a no-op logger for testing.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// RunID returns this logger's run correlation ID.
func (l *Logger) RunID() string { return l.runID }

// Segment logs a mapped PT_LOAD segment.
func (l *Logger) Segment(addr uintptr) {
	l.Debug("mapped segment", zap.String("addr", Hex(uint64(addr))))
}

// Relocation logs one applied relocation.
func (l *Logger) Relocation(name string, off, resolved uint64) {
	l.Debug("relocated",
		zap.String("sym", name),
		zap.String("off", Hex(off)),
		zap.String("resolved", Hex(resolved)),
	)
}

// Resolve logs a symbol resolution, noting whether it hit the local
// table or fell back to the host dynamic linker.
func (l *Logger) Resolve(name string, local bool) {
	l.Debug("resolve",
		zap.String("sym", name),
		zap.Bool("local", local),
	)
}

// Entry logs the transfer of control to the guest's entry point.
func (l *Logger) Entry(addr uintptr) {
	l.Info("entry", zap.String("addr", Hex(uint64(addr))))
}

// Hex formats a uint64 as a 0x-prefixed hex string for logging.
func Hex(v uint64) string {
	return "0x" + hexString(v)
}

func hexString(v uint64) string {
	const digits = "0123456789abcdef"
	if v == 0 {
		return "0"
	}
	buf := make([]byte, 16)
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = digits[v&0xf]
		v >>= 4
	}
	return string(buf[i:])
}
