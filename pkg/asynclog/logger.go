// Package asynclog provides an asynchronous, level-filtered file logger.
//
// Producers format a record and hand it to a bounded blocking queue; a
// single writer goroutine drains the queue and appends to the log file.
// Callers therefore never block on file I/O, only (briefly) on a full
// queue, which bounds memory under log storms. A logger whose file could
// not be opened stays alive and silently drops records.
package asynclog

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/whichxjy/acht/pkg/syncqueue"
)

const (
	// DefaultQueueSize bounds the record queue when none is given.
	DefaultQueueSize = 100
	// DefaultFilePath is used when no log file path is given.
	DefaultFilePath = "out.log"

	timestampLayout = "2006-01-02 15:04:05"
)

// Recorder observes logger activity, typically to feed metrics.
// Implementations must be safe for concurrent use.
type Recorder interface {
	// RecordWrite is called when a record is accepted into the queue.
	RecordWrite(level Level)
	// RecordDrop is called when a record is lost: the queue was stopped
	// or the file stream is unset.
	RecordDrop()
}

// Config configures a Logger.
type Config struct {
	// Level is the severity threshold; messages above it are ignored.
	Level Level
	// FilePath is the append-only log file. Empty means DefaultFilePath.
	FilePath string
	// QueueSize bounds the record queue. Non-positive means
	// DefaultQueueSize.
	QueueSize int
	// Recorder optionally observes writes and drops. May be nil.
	Recorder Recorder
}

// Logger appends formatted records to a file from a dedicated writer
// goroutine.
//
// The file handle and path are guarded by their own mutex, distinct from
// the queue's lock, so re-pointing the log file never stalls producers.
// Each record is an immutable line "<timestamp> [<LEVEL>] <message>".
type Logger struct {
	queue   *syncqueue.Queue[string]
	level   atomic.Int32
	stopped atomic.Bool
	wg      sync.WaitGroup

	fileMu sync.Mutex
	path   string
	file   *os.File

	recorder Recorder
}

// New creates a running Logger. A file-open failure is reported once to
// stderr and the logger degrades to a drop sink; it does not fail the
// caller.
func New(cfg Config) *Logger {
	if cfg.FilePath == "" {
		cfg.FilePath = DefaultFilePath
	}
	if cfg.QueueSize < 1 {
		cfg.QueueSize = DefaultQueueSize
	}

	l := &Logger{
		queue:    syncqueue.New[string](cfg.QueueSize),
		recorder: cfg.Recorder,
	}
	l.level.Store(int32(cfg.Level))
	l.path = cfg.FilePath
	if err := l.openFile(cfg.FilePath); err != nil {
		fmt.Fprintf(os.Stderr, "asynclog: %v\n", err)
	}

	l.wg.Add(1)
	go l.runWriter()
	return l
}

// Write enqueues a record for msg when level is at or below the
// threshold. The record is formatted here, once, and never mutated. Write
// blocks only while the record queue is full.
func (l *Logger) Write(level Level, msg string) {
	if level > l.Level() {
		return
	}

	record := time.Now().Format(timestampLayout) + " [" + level.String() + "] " + msg
	if !l.queue.Put(record) {
		l.recordDrop()
		return
	}
	l.recordWrite(level)
}

// SetLevel changes the severity threshold.
func (l *Logger) SetLevel(level Level) {
	l.level.Store(int32(level))
}

// Level returns the severity threshold.
func (l *Logger) Level() Level {
	return Level(l.level.Load())
}

// Stop stops the record queue and joins the writer goroutine, which
// drains every record accepted so far. Idempotent.
func (l *Logger) Stop() {
	if !l.stopped.CompareAndSwap(false, true) {
		return
	}
	l.queue.Stop()
	l.wg.Wait()
}

// Start reverses Stop, reopening the queue and recreating the writer
// goroutine. Idempotent on a running logger.
func (l *Logger) Start() {
	if !l.stopped.CompareAndSwap(true, false) {
		return
	}
	l.queue.Start()
	l.wg.Add(1)
	go l.runWriter()
}

// Close stops the logger and closes the log file. The logger must not be
// used afterwards.
func (l *Logger) Close() {
	l.Stop()

	l.fileMu.Lock()
	defer l.fileMu.Unlock()
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
}

// SetLogFilePath re-points the log file. It is a no-op when the path is
// unchanged; otherwise the previous stream is closed first. On open
// failure the stream stays unset, subsequent records are dropped, and the
// error is returned.
func (l *Logger) SetLogFilePath(path string) error {
	l.fileMu.Lock()
	defer l.fileMu.Unlock()
	if l.path == path {
		return nil
	}
	l.path = path
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
	return l.openFileLocked(path)
}

// LogFilePath returns the current log file path.
func (l *Logger) LogFilePath() string {
	l.fileMu.Lock()
	defer l.fileMu.Unlock()
	return l.path
}

func (l *Logger) openFile(path string) error {
	l.fileMu.Lock()
	defer l.fileMu.Unlock()
	return l.openFileLocked(path)
}

func (l *Logger) openFileLocked(path string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", path, err)
	}
	l.file = f
	return nil
}

// runWriter is the writer loop. It exits once the queue is stopped and
// drained, so Stop flushes everything already accepted.
func (l *Logger) runWriter() {
	defer l.wg.Done()
	for {
		record, ok := l.queue.Take()
		if !ok {
			return
		}
		l.append(record)
	}
}

func (l *Logger) append(record string) {
	l.fileMu.Lock()
	defer l.fileMu.Unlock()
	if l.file == nil {
		l.recordDrop()
		return
	}
	l.file.WriteString(record + "\n")
}

func (l *Logger) recordWrite(level Level) {
	if l.recorder != nil {
		l.recorder.RecordWrite(level)
	}
}

func (l *Logger) recordDrop() {
	if l.recorder != nil {
		l.recorder.RecordDrop()
	}
}

// Fatal logs a message at FATAL level.
func (l *Logger) Fatal(msg string) { l.Write(LevelFatal, msg) }

// Fatalf logs a formatted message at FATAL level.
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.Write(LevelFatal, fmt.Sprintf(format, args...))
}

// Error logs a message at ERROR level.
func (l *Logger) Error(msg string) { l.Write(LevelError, msg) }

// Errorf logs a formatted message at ERROR level.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Write(LevelError, fmt.Sprintf(format, args...))
}

// Warn logs a message at WARN level.
func (l *Logger) Warn(msg string) { l.Write(LevelWarn, msg) }

// Warnf logs a formatted message at WARN level.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.Write(LevelWarn, fmt.Sprintf(format, args...))
}

// Info logs a message at INFO level.
func (l *Logger) Info(msg string) { l.Write(LevelInfo, msg) }

// Infof logs a formatted message at INFO level.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Write(LevelInfo, fmt.Sprintf(format, args...))
}

// Debug logs a message at DEBUG level.
func (l *Logger) Debug(msg string) { l.Write(LevelDebug, msg) }

// Debugf logs a formatted message at DEBUG level.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Write(LevelDebug, fmt.Sprintf(format, args...))
}
