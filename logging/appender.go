package logging

import (
	"io"
	"sync"

	"go.uber.org/zap/zapcore"
)

// Appender is an output for log entries.
type Appender interface {
	Write(zapcore.Entry, []zapcore.Field) error
	Sync() error
}

type writerAppender struct {
	mu      sync.Mutex
	w       io.Writer
	encoder zapcore.Encoder
}

// NewWriterAppender returns an appender that writes tab separated console lines to w:
//
//	2023-10-30T09:12:09.459Z	INFO	cli	cli/app.go:87	read trajectory	{"poses":12}
func NewWriterAppender(w io.Writer) Appender {
	return &writerAppender{w: w, encoder: zapcore.NewConsoleEncoder(NewZapLoggerConfig().EncoderConfig)}
}

func (wa *writerAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	buf, err := wa.encoder.EncodeEntry(entry, fields)
	if err != nil {
		return err
	}
	defer buf.Free()

	wa.mu.Lock()
	defer wa.mu.Unlock()
	_, err = wa.w.Write(buf.Bytes())
	return err
}

func (wa *writerAppender) Sync() error {
	if syncer, ok := wa.w.(zapcore.WriteSyncer); ok {
		// syncing a terminal fails on some platforms; there is nothing to flush there anyway
		//nolint:errcheck
		syncer.Sync()
	}
	return nil
}

// appenderCore exposes an Appender as a zapcore.Core so zap loggers can write to it.
type appenderCore struct {
	appender Appender
	level    AtomicLevel
	fields   []zapcore.Field
}

func (c *appenderCore) Enabled(l zapcore.Level) bool {
	return l >= c.level.Get().AsZap()
}

func (c *appenderCore) With(fields []zapcore.Field) zapcore.Core {
	return &appenderCore{
		appender: c.appender,
		level:    c.level,
		fields:   append(append([]zapcore.Field{}, c.fields...), fields...),
	}
}

func (c *appenderCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return ce.AddCore(entry, c)
	}
	return ce
}

func (c *appenderCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	return c.appender.Write(entry, append(append([]zapcore.Field{}, c.fields...), fields...))
}

func (c *appenderCore) Sync() error {
	return c.appender.Sync()
}

func callerToString(caller *zapcore.EntryCaller) string {
	return caller.TrimmedPath()
}
