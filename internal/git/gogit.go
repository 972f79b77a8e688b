package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// plainClone is a variable so it can be mocked in tests
var plainClone = func(ctx context.Context, dir string, opts *gogit.CloneOptions) error {
	_, err := gogit.PlainCloneContext(ctx, dir, false, opts)
	return err
}

// cloneGoGit clones url into dir and returns the exit code git itself would
// have produced for the same failure.
func cloneGoGit(ctx context.Context, url, dir string, progress io.Writer) (int, error) {
	opts := &gogit.CloneOptions{URL: url}
	if progress != nil {
		sw := newSidebandWriter("  ", progress)
		defer sw.Flush()
		opts.Progress = sw
	}

	fmt.Fprintf(progressOrDiscard(progress), "Cloning into '%s'...\n", filepath.Base(dir))
	err := plainClone(ctx, dir, opts)
	if err != nil {
		return goGitExitCode(err), err
	}
	return 0, nil
}

func progressOrDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

// goGitExitCode maps go-git errors onto git's exit statuses: reference and
// destination problems are fatal (128), anything else is a generic 1.
func goGitExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, transport.ErrRepositoryNotFound),
		errors.Is(err, transport.ErrEmptyRemoteRepository),
		errors.Is(err, transport.ErrAuthenticationRequired),
		errors.Is(err, transport.ErrAuthorizationFailed),
		errors.Is(err, transport.ErrInvalidAuthMethod),
		errors.Is(err, gogit.ErrRepositoryAlreadyExists),
		errors.Is(err, gogit.ErrRepositoryNotExists):
		return ExitInvalidRepository
	default:
		return 1
	}
}

// Locate opens dir as a repository and returns its worktree root.
func Locate(dir string) (string, error) {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return "", fmt.Errorf("%s is not a git repository: %w", dir, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("%s has no worktree: %w", dir, err)
	}

	return wt.Filesystem.Root(), nil
}
