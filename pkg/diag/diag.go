// Package diag is the diagnostic sink used to report recoverable
// problems, such as a segment that is not valid UTF-8 or a JSON tree
// that cannot be parsed, without failing the caller.
package diag

import (
	"github.com/sirupsen/logrus"
)

// Field is a structured key/value pair attached to a diagnostic.
type Field struct {
	Key   string
	Value any
}

// F is shorthand for constructing a Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Sink receives diagnostics. Implementations must not block and must not
// panic; the caller never learns whether a diagnostic was delivered.
type Sink interface {
	Emit(msg string, fields ...Field)
}

// Func adapts an ordinary function to a Sink.
type Func func(msg string, fields ...Field)

func (f Func) Emit(msg string, fields ...Field) {
	f(msg, fields...)
}

type discard struct{}

func (discard) Emit(string, ...Field) {}

// Discard drops every diagnostic.
var Discard Sink = discard{}

type logrusSink struct {
	logger logrus.FieldLogger
}

// Logrus returns a Sink that writes each diagnostic as a warning on the
// given logger. A nil logger uses the logrus standard logger.
func Logrus(logger logrus.FieldLogger) Sink {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &logrusSink{logger: logger}
}

func (s *logrusSink) Emit(msg string, fields ...Field) {
	entry := s.logger
	if len(fields) > 0 {
		lf := make(logrus.Fields, len(fields))
		for _, f := range fields {
			lf[f.Key] = f.Value
		}
		entry = s.logger.WithFields(lf)
	}
	entry.Warn(msg)
}

// Default is the sink used when none is configured.
func Default() Sink {
	return Logrus(logrus.StandardLogger())
}
