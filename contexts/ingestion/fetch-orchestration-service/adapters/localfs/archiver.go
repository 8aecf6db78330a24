package localfs

import (
	"context"
	"os"
	"path/filepath"
)

// Archiver performs the best-effort atomic move of a staged source file
// into the ok or fail directory, per spec.md §4.2 step 9. The moved file
// keeps the source's base name; externalFileID does not affect the target
// path.
type Archiver struct {
	OkDir   string
	FailDir string
}

func NewArchiver(okDir, failDir string) Archiver {
	return Archiver{OkDir: okDir, FailDir: failDir}
}

func (a Archiver) Archive(ctx context.Context, sourcePath, externalFileID string, ok bool) error {
	if sourcePath == "" {
		return nil
	}
	targetDir := a.FailDir
	if ok {
		targetDir = a.OkDir
	}
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return err
	}
	target := filepath.Join(targetDir, filepath.Base(sourcePath))
	return os.Rename(sourcePath, target)
}
