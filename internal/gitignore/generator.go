// Package gitignore builds a .gitignore from the toptal template service.
package gitignore

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/NicabarNimble/git-minus/internal/errors"
	"github.com/NicabarNimble/git-minus/internal/logging"
	"github.com/NicabarNimble/git-minus/internal/progress"
)

// Generator fetches, renders and writes the ignore file
type Generator struct {
	Client       *Client
	StripLines   int    // banner lines the service prepends
	GeneratorURL string // credited in the header
	ServiceURL   string // defaults to ServiceURLFor(Client.BaseURL)
	Section      string // defaults to the base name of the current directory
	Logger       *slog.Logger
	Progress     progress.Tracker
}

// Generate writes dir/.gitignore for tags and returns its path.
func (g *Generator) Generate(ctx context.Context, dir string, tags []string) (string, error) {
	logger := logging.OrNop(g.Logger)

	if g.Progress != nil {
		g.Progress.Start("Generate .gitignore")
		defer g.Progress.Complete()
	}

	path, err := g.generate(ctx, logger, dir, tags)
	if err != nil {
		logger.Error("gitignore generation failed", slog.Any("error", err))
		if g.Progress != nil {
			g.Progress.Error(err)
		}
		return "", err
	}

	logger.Info("gitignore written", slog.String("path", path), slog.Any("tags", tags))
	return path, nil
}

func (g *Generator) generate(ctx context.Context, logger *slog.Logger, dir string, tags []string) (string, error) {
	if g.Client == nil {
		return "", errors.New(errors.OpGitignore, fmt.Errorf("no template client configured"))
	}

	section := g.Section
	if section == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.New(errors.OpGitignore, fmt.Errorf("failed to get working directory: %w", err))
		}
		section = filepath.Base(wd)
	}

	serviceURL := g.ServiceURL
	if serviceURL == "" {
		serviceURL = ServiceURLFor(g.Client.BaseURL)
	}

	body, err := g.Client.Fetch(ctx, tags)
	if err != nil {
		return "", err
	}

	header := Header{
		GeneratorURL: g.GeneratorURL,
		ServiceURL:   serviceURL,
		Tags:         tags,
		Section:      section,
	}

	logger.Debug("writing gitignore", slog.String("path", filepath.Join(dir, FileName)))
	return Write(dir, Render(header, body, g.StripLines))
}
