package localfs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/fetch-orchestration-service/adapters/localfs"
)

func TestArchiveMovesToOkDirOnSuccess(t *testing.T) {
	root := t.TempDir()
	okDir := filepath.Join(root, "ok")
	failDir := filepath.Join(root, "fail")

	src := filepath.Join(root, "claim.xml")
	if err := os.WriteFile(src, []byte("<x/>"), 0o644); err != nil {
		t.Fatalf("writing fixture file: %v", err)
	}

	archiver := localfs.NewArchiver(okDir, failDir)
	if err := archiver.Archive(context.Background(), src, "file-1", true); err != nil {
		t.Fatalf("archiving: %v", err)
	}

	if _, err := os.Stat(filepath.Join(okDir, "claim.xml")); err != nil {
		t.Fatalf("expected file in ok dir: %v", err)
	}
}

func TestArchiveMovesToFailDirOnFailure(t *testing.T) {
	root := t.TempDir()
	okDir := filepath.Join(root, "ok")
	failDir := filepath.Join(root, "fail")

	src := filepath.Join(root, "claim.xml")
	if err := os.WriteFile(src, []byte("<x/>"), 0o644); err != nil {
		t.Fatalf("writing fixture file: %v", err)
	}

	archiver := localfs.NewArchiver(okDir, failDir)
	if err := archiver.Archive(context.Background(), src, "file-1", false); err != nil {
		t.Fatalf("archiving: %v", err)
	}

	if _, err := os.Stat(filepath.Join(failDir, "claim.xml")); err != nil {
		t.Fatalf("expected file in fail dir: %v", err)
	}
}

func TestArchiveIsNoopWithoutSourcePath(t *testing.T) {
	archiver := localfs.NewArchiver(t.TempDir(), t.TempDir())
	if err := archiver.Archive(context.Background(), "", "file-2", true); err != nil {
		t.Fatalf("expected nil for empty source path, got %v", err)
	}
}
