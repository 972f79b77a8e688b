package git

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cli/safeexec"

	"github.com/NicabarNimble/git-minus/internal/errors"
	"github.com/NicabarNimble/git-minus/internal/logging"
	"github.com/NicabarNimble/git-minus/internal/progress"
	"github.com/NicabarNimble/git-minus/internal/urlutils"
)

// Backend selects how the clone is performed
type Backend string

const (
	// BackendExec runs the git binary found on PATH
	BackendExec Backend = "exec"
	// BackendGoGit clones in-process with go-git
	BackendGoGit Backend = "go-git"
)

// CloneOptions contains configuration for repository cloning
type CloneOptions struct {
	URL        string
	WorkingDir string          // Parent directory of the clone, defaults to the process cwd
	Backend    Backend         // Defaults to BackendExec
	Context    context.Context // Only used for interruption, no timeout is applied
	Logger     *slog.Logger
	Progress   progress.Tracker
	Stdout     io.Writer // git child output, defaults to os.Stdout
	Stderr     io.Writer // git child diagnostics, defaults to os.Stderr
}

// CloneResult is the outcome of a clone. Callers inspect it instead of
// relying on an error alone.
type CloneResult struct {
	URL      string
	Dir      string // <WorkingDir>/<repo-name>
	ExitCode int    // 0 on success, -1 when no exit code was produced
	Output   string // captured diagnostics
	Err      error
}

// OK reports whether the clone succeeded
func (r CloneResult) OK() bool {
	return r.Err == nil
}

// InvalidRepository reports whether git rejected the repository reference
func (r CloneResult) InvalidRepository() bool {
	return r.ExitCode == ExitInvalidRepository
}

// Clone clones opts.URL into the working directory. Failures are reported
// through the result and the logger; Clone never exits the process.
func Clone(opts CloneOptions) CloneResult {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Backend == "" {
		opts.Backend = BackendExec
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	logger := logging.OrNop(opts.Logger)
	res := CloneResult{URL: opts.URL, ExitCode: -1}

	fail := func(err error) CloneResult {
		res.Err = errors.New(errors.OpClone, err)
		logger.Error("clone failed",
			slog.String("url", urlutils.Redact(opts.URL)),
			slog.Int("exit_code", res.ExitCode),
			slog.String("output", res.Output),
			slog.Any("error", err))
		if opts.Progress != nil {
			opts.Progress.Error(res.Err)
		}
		return res
	}

	if opts.Progress != nil {
		opts.Progress.Start("Clone Repository")
		defer opts.Progress.Complete()
	}

	name, err := urlutils.RepoName(opts.URL)
	if err != nil {
		return fail(err)
	}

	if opts.WorkingDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fail(fmt.Errorf("failed to get working directory: %w", err))
		}
		opts.WorkingDir = wd
	}
	res.Dir = filepath.Join(opts.WorkingDir, name)

	logger.Debug("cloning repository",
		slog.String("url", urlutils.Redact(opts.URL)),
		slog.String("into", opts.WorkingDir),
		slog.String("backend", string(opts.Backend)))

	switch opts.Backend {
	case BackendExec:
		res.Output, err = runGitCommand(opts.Context, opts.WorkingDir, opts.Stdout, opts.Stderr, "clone", opts.URL)
		res.ExitCode = ExitCode(err)
	case BackendGoGit:
		res.ExitCode, err = cloneGoGit(opts.Context, opts.URL, res.Dir, opts.Stderr)
		if err != nil {
			res.Output = err.Error()
		}
	default:
		return fail(fmt.Errorf("unknown clone backend %q", opts.Backend))
	}

	if err != nil {
		return fail(fmt.Errorf("git clone exited with code %d: %w", res.ExitCode, err))
	}

	// git exited 0, make sure the clone is where the ignore file will go
	if _, err := Locate(res.Dir); err != nil {
		res.ExitCode = -1
		return fail(err)
	}

	logger.Info("repository cloned", slog.String("dir", res.Dir))
	return res
}

// runGitCommand is a variable so it can be mocked in tests. Child stderr
// is streamed to stderr and also returned.
var runGitCommand = func(ctx context.Context, dir string, stdout, stderr io.Writer, args ...string) (string, error) {
	gitPath, err := safeexec.LookPath("git")
	if err != nil {
		return "", fmt.Errorf("git executable not found: %w", err)
	}

	var captured bytes.Buffer
	cmd := exec.CommandContext(ctx, gitPath, args...)
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = &captured
	if stderr != nil {
		cmd.Stderr = io.MultiWriter(stderr, &captured)
	}

	err = cmd.Run()
	return strings.TrimSpace(captured.String()), err
}
