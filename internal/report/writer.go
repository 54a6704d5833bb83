package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	apperrors "wilayah-analytics/internal/errors"
)

// Artifact is one output file: where it goes and how to render its bytes.
type Artifact struct {
	Path   string
	Render func(io.Writer) error
}

// CommitAll writes every artifact to a temporary file in its target
// directory, then renames them into place only after all renders succeed.
// If any step fails, no target file is touched and the staged files are
// removed, so a run either publishes the full output set or nothing.
func CommitAll(artifacts []Artifact) error {
	staged := make([]string, 0, len(artifacts))
	cleanup := func() {
		for _, path := range staged {
			os.Remove(path)
		}
	}

	for _, artifact := range artifacts {
		tmp, err := stage(artifact)
		if err != nil {
			cleanup()
			return err
		}
		staged = append(staged, tmp)
	}

	for i, artifact := range artifacts {
		if err := os.Rename(staged[i], artifact.Path); err != nil {
			cleanup()
			return apperrors.OutputWrap(err, fmt.Sprintf("failed to publish %s", artifact.Path))
		}
	}
	return nil
}

func stage(artifact Artifact) (string, error) {
	dir := filepath.Dir(artifact.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperrors.OutputWrap(err, fmt.Sprintf("failed to create output directory %s", dir))
	}

	f, err := os.CreateTemp(dir, filepath.Base(artifact.Path)+".tmp-*")
	if err != nil {
		return "", apperrors.OutputWrap(err, fmt.Sprintf("failed to stage %s", artifact.Path))
	}
	tmp := f.Name()

	if err := artifact.Render(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", apperrors.OutputWrap(err, fmt.Sprintf("failed to render %s", artifact.Path))
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", apperrors.OutputWrap(err, fmt.Sprintf("failed to flush %s", artifact.Path))
	}
	return tmp, nil
}
