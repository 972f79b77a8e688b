// Package logging builds the process logger: one slog.Logger fanning out to
// a log file that is overwritten on every run and to the console.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	gmerrors "github.com/NicabarNimble/git-minus/internal/errors"
)

// DirName is the log directory created beside the executable.
const DirName = "logs"

// Options configures Setup. Zero values select the defaults.
type Options struct {
	Dir          string       // defaults to DefaultDir()
	File         string       // defaults to "git--.log"
	Console      io.Writer    // defaults to os.Stderr
	FileLevel    slog.Leveler // defaults to INFO
	ConsoleLevel slog.Leveler // defaults to DEBUG
	RunID        string       // defaults to a random UUID
}

// Logger is the run logger. The embedded slog.Logger is what gets handed to
// the clone and ignore-file steps.
type Logger struct {
	*slog.Logger
	Path  string
	RunID string

	file *os.File
}

// Setup opens the log file and returns the run logger.
func Setup(opts Options) (*Logger, error) {
	if opts.Dir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		opts.Dir = dir
	}
	if opts.File == "" {
		opts.File = "git--.log"
	}
	if opts.Console == nil {
		opts.Console = os.Stderr
	}
	if opts.FileLevel == nil {
		opts.FileLevel = slog.LevelInfo
	}
	if opts.ConsoleLevel == nil {
		opts.ConsoleLevel = slog.LevelDebug
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}

	f, err := openLogFile(opts.Dir, opts.File)
	if err != nil {
		return nil, err
	}

	fileHandler := slog.NewTextHandler(f, &slog.HandlerOptions{
		Level:       opts.FileLevel,
		ReplaceAttr: shortTime,
	})
	consoleHandler := slog.NewTextHandler(opts.Console, &slog.HandlerOptions{
		Level: opts.ConsoleLevel,
	})

	l := slog.New(NewFanout(fileHandler, consoleHandler)).With(slog.String("run_id", opts.RunID))

	return &Logger{
		Logger: l,
		Path:   f.Name(),
		RunID:  opts.RunID,
		file:   f,
	}, nil
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// DefaultDir returns the logs directory beside the running executable.
func DefaultDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", gmerrors.New(gmerrors.OpLogging, fmt.Errorf("failed to locate executable: %w", err))
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), DirName), nil
}

// openLogFile truncates dir/name. When dir is missing it is created and the
// open is retried exactly once.
func openLogFile(dir, name string) (*os.File, error) {
	path := filepath.Join(dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, gmerrors.New(gmerrors.OpLogging, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, gmerrors.New(gmerrors.OpLogging, fmt.Errorf("failed to create log directory: %w", err))
	}

	f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, gmerrors.New(gmerrors.OpLogging, err)
	}
	return f, nil
}

// shortTime renders the record time as HH:MM:SS in the log file.
func shortTime(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
		return slog.String(slog.TimeKey, a.Value.Time().Format("15:04:05"))
	}
	return a
}

// Nop returns a logger that discards everything.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OrNop returns l, or a discarding logger when l is nil.
func OrNop(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Nop()
	}
	return l
}

var _ slog.Handler = (*Fanout)(nil)

// Fanout dispatches each record to every handler enabled for its level.
type Fanout struct {
	handlers []slog.Handler
}

// NewFanout returns a handler writing to all of hs.
func NewFanout(hs ...slog.Handler) *Fanout {
	return &Fanout{handlers: hs}
}

func (f *Fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f *Fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *Fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	hs := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		hs[i] = h.WithAttrs(attrs)
	}
	return &Fanout{handlers: hs}
}

func (f *Fanout) WithGroup(name string) slog.Handler {
	hs := make([]slog.Handler, len(f.handlers))
	for i, h := range f.handlers {
		hs[i] = h.WithGroup(name)
	}
	return &Fanout{handlers: hs}
}
