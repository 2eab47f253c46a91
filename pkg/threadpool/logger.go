package threadpool

import (
	"fmt"
	"log"
	"os"
)

// Logger is the minimal logging surface the pool needs to report task
// panics. The asynclog package satisfies it; so does anything with an
// Errorf method.
type Logger interface {
	Errorf(format string, args ...interface{})
}

// defaultLogger reports to stderr via the standard log package.
type defaultLogger struct {
	logger *log.Logger
}

func newDefaultLogger() Logger {
	return &defaultLogger{
		logger: log.New(os.Stderr, "[ERROR] ", log.LstdFlags),
	}
}

func (l *defaultLogger) Errorf(format string, args ...interface{}) {
	l.logger.Output(2, fmt.Sprintf(format, args...))
}
