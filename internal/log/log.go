// Package log writes the command journal and the error journal of an
// interactive session.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02 15:04:05"

type Logger struct {
	commands *logrus.Logger
	errors   *logrus.Logger
	closers  []io.Closer
	mu       sync.Mutex
}

// NewLogger opens (or creates) the two journal files inside logFolder. level
// is a logrus level name and applies to both journals.
func NewLogger(logFolder, commandLogName, errorLogName, level string) (*Logger, error) {
	if err := os.MkdirAll(logFolder, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	commandFile, err := os.OpenFile(filepath.Join(logFolder, commandLogName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open command log file: %w", err)
	}

	errorFile, err := os.OpenFile(filepath.Join(logFolder, errorLogName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		commandFile.Close()
		return nil, fmt.Errorf("failed to open error log file: %w", err)
	}

	l, err := NewWriterLogger(commandFile, errorFile, level)
	if err != nil {
		commandFile.Close()
		errorFile.Close()
		return nil, err
	}
	l.closers = []io.Closer{commandFile, errorFile}
	return l, nil
}

// NewWriterLogger journals to arbitrary writers. Nothing is closed by Close.
func NewWriterLogger(commands, errors io.Writer, level string) (*Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return &Logger{
		commands: newJournal(commands, lvl),
		errors:   newJournal(errors, lvl),
	}, nil
}

func newJournal(w io.Writer, lvl logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: timestampFormat,
	})
	return l
}

// LogCommand records one executed command line.
func (l *Logger) LogCommand(command string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.commands.WithField("command", command).Info("executed")
}

// LogError records a failed command together with its error.
func (l *Logger) LogError(command string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.errors.WithError(err).WithField("command", command).Error("command failed")
}

// LogDebug records diagnostic details in the command journal.
func (l *Logger) LogDebug(msg string, fields map[string]any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.commands.WithFields(logrus.Fields(fields)).Debug(msg)
}

func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, c := range l.closers {
		if err := c.Close(); err != nil {
			return fmt.Errorf("failed to close log file: %w", err)
		}
	}
	l.closers = nil
	return nil
}
