// Package logging provides logger creation.
package logging

import (
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"sync"

	"github.com/dekarrin/bandbook"
	"github.com/dekarrin/jellog"
)

// New creates a new logger of the given provider. If filename is blank, it will
// not log to disk, only stderr, and the stderr logger will be configured at
// trace level instead of info level.
func New(p bandbook.LogProvider, filename string) (bandbook.Logger, error) {
	switch p {
	case bandbook.NoLog:
		return nil, errors.New("log provider cannot be NoLog")
	case bandbook.Jellog:
		j := jellog.New(jellog.Defaults[string]().WithComponent("bandbook"))

		var fh *fileHandler
		if filename != "" {
			var err error
			fh, err = openFileHandler(filename)
			if err != nil {
				return nil, fmt.Errorf("open logfile: %q: %w", filename, err)
			}
			j.AddHandler(jellog.LvTrace, fh)
			j.AddHandler(jellog.LvInfo, jellog.NewStderrHandler(nil))
		} else {
			j.AddHandler(jellog.LvTrace, jellog.NewStderrHandler(nil))
		}

		return jellogLogger{j: j, file: fh}, nil
	case bandbook.StdLog:
		if filename == "" {
			return NewStd(os.Stderr), nil
		}
		f, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("open logfile: %q: %w", filename, err)
		}
		l := NewStd(io.MultiWriter(os.Stderr, f)).(stdLogger)
		l.file = f
		return l, nil
	default:
		return nil, fmt.Errorf("unknown provider: %q", p.String())
	}
}

// NewStd creates a logger that writes lines prefixed with a UTC timestamp and
// the level name to w, using the standard library log package.
func NewStd(w io.Writer) bandbook.Logger {
	return stdLogger{std: stdlog.New(w, "", stdlog.Ldate|stdlog.Ltime|stdlog.LUTC)}
}

// Close closes the log file that log writes to, if any. Loggers that write
// only to stderr have nothing to close.
func Close(log bandbook.Logger) error {
	if c, ok := log.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// OrNoOp returns log, or a NoOpLogger if log is nil.
func OrNoOp(log bandbook.Logger) bandbook.Logger {
	if log == nil {
		return NoOpLogger{}
	}
	return log
}

// NoOpLogger is a logger that performs no operations.
type NoOpLogger struct{}

func (log NoOpLogger) Debug(msg string)                    {}
func (log NoOpLogger) Warn(msg string)                     {}
func (log NoOpLogger) Trace(msg string)                    {}
func (log NoOpLogger) Info(msg string)                     {}
func (log NoOpLogger) Error(msg string)                    {}
func (log NoOpLogger) Debugf(msg string, a ...interface{}) {}
func (log NoOpLogger) Warnf(msg string, a ...interface{})  {}
func (log NoOpLogger) Tracef(msg string, a ...interface{}) {}
func (log NoOpLogger) Infof(msg string, a ...interface{})  {}
func (log NoOpLogger) Errorf(msg string, a ...interface{}) {}
func (log NoOpLogger) ErrorBreak()                         {}
func (log NoOpLogger) InfoBreak()                          {}
func (log NoOpLogger) WarnBreak()                          {}
func (log NoOpLogger) TraceBreak()                         {}
func (log NoOpLogger) DebugBreak()                         {}
func (log NoOpLogger) Close() error                        { return nil }

// stdLogger pads every level name to the same width so messages line up.
type stdLogger struct {
	std  *stdlog.Logger
	file *os.File
}

func (log stdLogger) Close() error {
	if log.file == nil {
		return nil
	}
	return log.file.Close()
}

func (log stdLogger) print(level, msg string) {
	log.std.Printf("%-5s %s", level, msg)
}

func (log stdLogger) brk() {
	log.std.Writer().Write([]byte("\n"))
}

func (log stdLogger) Trace(msg string)                    { log.print("TRACE", msg) }
func (log stdLogger) Tracef(msg string, a ...interface{}) { log.print("TRACE", fmt.Sprintf(msg, a...)) }
func (log stdLogger) Debug(msg string)                    { log.print("DEBUG", msg) }
func (log stdLogger) Debugf(msg string, a ...interface{}) { log.print("DEBUG", fmt.Sprintf(msg, a...)) }
func (log stdLogger) Info(msg string)                     { log.print("INFO", msg) }
func (log stdLogger) Infof(msg string, a ...interface{})  { log.print("INFO", fmt.Sprintf(msg, a...)) }
func (log stdLogger) Warn(msg string)                     { log.print("WARN", msg) }
func (log stdLogger) Warnf(msg string, a ...interface{})  { log.print("WARN", fmt.Sprintf(msg, a...)) }
func (log stdLogger) Error(msg string)                    { log.print("ERROR", msg) }
func (log stdLogger) Errorf(msg string, a ...interface{}) { log.print("ERROR", fmt.Sprintf(msg, a...)) }
func (log stdLogger) TraceBreak()                         { log.brk() }
func (log stdLogger) DebugBreak()                         { log.brk() }
func (log stdLogger) InfoBreak()                          { log.brk() }
func (log stdLogger) WarnBreak()                          { log.brk() }
func (log stdLogger) ErrorBreak()                         { log.brk() }

type jellogLogger struct {
	j    jellog.Logger[string]
	file *fileHandler
}

func (log jellogLogger) Close() error {
	if log.file == nil {
		return nil
	}
	return log.file.Close()
}

func (log jellogLogger) Trace(msg string)                    { log.j.Trace(msg) }
func (log jellogLogger) Tracef(msg string, a ...interface{}) { log.j.Tracef(msg, a...) }
func (log jellogLogger) Debug(msg string)                    { log.j.Debug(msg) }
func (log jellogLogger) Debugf(msg string, a ...interface{}) { log.j.Debugf(msg, a...) }
func (log jellogLogger) Info(msg string)                     { log.j.Info(msg) }
func (log jellogLogger) Infof(msg string, a ...interface{})  { log.j.Infof(msg, a...) }
func (log jellogLogger) Warn(msg string)                     { log.j.Warn(msg) }
func (log jellogLogger) Warnf(msg string, a ...interface{})  { log.j.Warnf(msg, a...) }
func (log jellogLogger) Error(msg string)                    { log.j.Error(msg) }
func (log jellogLogger) Errorf(msg string, a ...interface{}) { log.j.Errorf(msg, a...) }
func (log jellogLogger) TraceBreak()                         { log.j.InsertBreak(jellog.LvTrace) }
func (log jellogLogger) DebugBreak()                         { log.j.InsertBreak(jellog.LvDebug) }
func (log jellogLogger) InfoBreak()                          { log.j.InsertBreak(jellog.LvInfo) }
func (log jellogLogger) WarnBreak()                          { log.j.InsertBreak(jellog.LvWarn) }
func (log jellogLogger) ErrorBreak()                         { log.j.InsertBreak(jellog.LvError) }

// fileHandler is a jellog handler on a file that it owns. Unlike
// jellog.FileHandler it can be closed.
type fileHandler struct {
	mtx    sync.Mutex
	f      *os.File
	format jellog.LineFormat
}

func openFileHandler(filename string) (*fileHandler, error) {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0664)
	if err != nil {
		return nil, err
	}
	return &fileHandler{f: f}, nil
}

func (fh *fileHandler) HandlerOptions() jellog.HandlerOptions[string] {
	return jellog.HandlerOptions[string]{Formatter: fh.format}
}

func (fh *fileHandler) Output(calldepth int, evt jellog.Event[string]) error {
	return fh.write(fh.format.Format(evt))
}

func (fh *fileHandler) InsertBreak() error {
	return fh.write(fh.format.Break())
}

func (fh *fileHandler) write(buf []byte) error {
	fh.mtx.Lock()
	defer fh.mtx.Unlock()
	if fh.f == nil {
		return os.ErrClosed
	}
	_, err := fh.f.Write(buf)
	return err
}

// Close closes the file. Later output is dropped with os.ErrClosed.
func (fh *fileHandler) Close() error {
	fh.mtx.Lock()
	defer fh.mtx.Unlock()
	if fh.f == nil {
		return nil
	}
	err := fh.f.Close()
	fh.f = nil
	return err
}
