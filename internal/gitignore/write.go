package gitignore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/NicabarNimble/git-minus/internal/errors"
)

// FileName is the file written at the repository root
const FileName = ".gitignore"

// Write truncates dir/.gitignore and writes content. There is no
// temp-file-and-rename step; an interrupted write leaves a partial file.
func Write(dir, content string) (string, error) {
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", errors.New(errors.OpGitignore, fmt.Errorf("failed to write %s: %w", path, err))
	}
	return path, nil
}
