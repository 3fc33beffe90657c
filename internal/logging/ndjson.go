package logging

import (
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger writes one JSON object per event. The console side only shows
// warnings and errors unless verbose; the log file always gets everything.
type Logger struct {
	z     *zap.Logger
	runID string
}

type Event struct {
	Level      string
	Event      string
	Input      string
	OutputFile string
	Category   string
	Title      string
	TitleLen   int
	Dropped    []string
	Unknown    []string
	Error      string
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		MessageKey:     "event",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
	}
}

func New(w io.Writer, logFile string, verbose bool) (*Logger, io.Closer, error) {
	if w == nil {
		w = os.Stderr
	}
	consoleLevel := zapcore.WarnLevel
	if verbose {
		consoleLevel = zapcore.InfoLevel
	}
	enc := zapcore.NewJSONEncoder(encoderConfig())
	cores := []zapcore.Core{
		zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), consoleLevel),
	}

	var f *os.File
	if logFile != "" {
		var err error
		f, err = os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		cores = append(cores, zapcore.NewCore(enc.Clone(), zapcore.Lock(f), zapcore.InfoLevel))
	}

	runID := uuid.NewString()
	l := &Logger{
		z:     zap.New(zapcore.NewTee(cores...)).With(zap.String("run_id", runID)),
		runID: runID,
	}
	return l, &closer{l: l, f: f}, nil
}

// Nop discards every event.
func Nop() *Logger {
	return &Logger{z: zap.NewNop()}
}

func (l *Logger) RunID() string {
	if l == nil {
		return ""
	}
	return l.runID
}

func (l *Logger) Emit(ev Event) {
	if l == nil || l.z == nil {
		return
	}
	ce := l.z.Check(parseLevel(ev.Level), ev.Event)
	if ce == nil {
		return
	}
	ce.Write(fields(ev)...)
}

func (l *Logger) Sync() {
	if l == nil || l.z == nil {
		return
	}
	// stderr on some platforms refuses fsync
	_ = l.z.Sync()
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func fields(ev Event) []zap.Field {
	out := make([]zap.Field, 0, 8)
	if ev.Input != "" {
		out = append(out, zap.String("input", ev.Input))
	}
	if ev.OutputFile != "" {
		out = append(out, zap.String("output_file", ev.OutputFile))
	}
	if ev.Category != "" {
		out = append(out, zap.String("category_id", ev.Category))
	}
	if ev.Title != "" {
		out = append(out, zap.String("title", ev.Title))
	}
	if ev.TitleLen > 0 {
		out = append(out, zap.Int("title_len", ev.TitleLen))
	}
	if len(ev.Dropped) > 0 {
		out = append(out, zap.Strings("dropped", ev.Dropped))
	}
	if len(ev.Unknown) > 0 {
		out = append(out, zap.Strings("unknown", ev.Unknown))
	}
	if ev.Error != "" {
		out = append(out, zap.String("error", ev.Error))
	}
	return out
}

type closer struct {
	l *Logger
	f *os.File
}

func (c *closer) Close() error {
	c.l.Sync()
	if c.f == nil {
		return nil
	}
	return c.f.Close()
}
