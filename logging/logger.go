package logging

import (
	"fmt"
	"io"
	"sync"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// Logger is the minimal logging interface used throughout the harness. Debug
// output from the framework and from test implementations goes through this,
// so an embedder can capture it, redirect it, or discard it.
type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Printf(message string, args ...interface{}) {}

func NullLogger() Logger { return nullLogger{} }

type writerLogger struct {
	dest io.Writer
	lock sync.Mutex
}

// NewWriterLogger creates a Logger that writes timestamped lines to dest.
func NewWriterLogger(dest io.Writer) Logger {
	return &writerLogger{dest: dest}
}

func (l *writerLogger) Printf(message string, args ...interface{}) {
	l.lock.Lock()
	fmt.Fprintf(l.dest, "[%s] %s\n", time.Now().Format(timestampFormat), fmt.Sprintf(message, args...))
	l.lock.Unlock()
}

type prefixedLogger struct {
	wrapped Logger
	prefix  string
}

// Prefixed returns a Logger that prepends the given prefix to every message
// before delegating to the wrapped Logger.
func Prefixed(wrapped Logger, prefix string) Logger {
	return prefixedLogger{wrapped: wrapped, prefix: prefix}
}

func (l prefixedLogger) Printf(message string, args ...interface{}) {
	l.wrapped.Printf("%s%s", l.prefix, fmt.Sprintf(message, args...))
}

type CapturedMessage struct {
	Time    time.Time
	Message string
}

type CapturedOutput []CapturedMessage

// CapturingLogger accumulates messages in memory so they can be replayed
// later, such as when dumping the debug output of a failed test.
type CapturingLogger struct {
	output []CapturedMessage
	lock   sync.Mutex
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	l.lock.Lock()
	l.output = append(l.output, CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(message, args...)})
	l.lock.Unlock()
}

func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	ret := append(CapturedOutput(nil), l.output...)
	l.lock.Unlock()
	return ret
}

func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		fmt.Fprintf(dest, "%s[%s] %s\n",
			prefix,
			m.Time.Format(timestampFormat),
			m.Message,
		)
	}
}
