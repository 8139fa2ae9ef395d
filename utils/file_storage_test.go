package utils

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestUploadBytesRoundTripsThroughStorageName(t *testing.T) {
	storage := NewLocalFileStorage(t.TempDir())
	content := []byte("image bytes")

	stored, err := storage.UploadBytes(content, "invoice.jpg")
	if err != nil {
		t.Fatalf("failed to upload: %v", err)
	}
	if stored != "invoice.jpg" {
		t.Fatalf("expected the storage-relative name back, got %q", stored)
	}

	exists, err := storage.FileExists(stored)
	if err != nil || !exists {
		t.Errorf("uploaded file must resolve by its returned name, exists=%v err=%v", exists, err)
	}

	raw, err := os.ReadFile(storage.FullPath(stored))
	if err != nil {
		t.Fatalf("FullPath must resolve the returned name: %v", err)
	}
	if !bytes.Equal(raw, content) {
		t.Error("stored content does not match upload")
	}

	removed, err := storage.DeleteFile(stored)
	if err != nil || !removed {
		t.Errorf("expected delete by returned name to remove the file, removed=%v err=%v", removed, err)
	}
	removed, err = storage.DeleteFile(stored)
	if err != nil || removed {
		t.Errorf("expected second delete to report nothing removed, removed=%v err=%v", removed, err)
	}
}

func TestUploadFileRoundTripsThroughStorageName(t *testing.T) {
	storage := NewLocalFileStorage(t.TempDir())

	src := filepath.Join(t.TempDir(), "src.jpg")
	if err := os.WriteFile(src, []byte("multipart bytes"), 0644); err != nil {
		t.Fatalf("failed to write source file: %v", err)
	}
	file, err := os.Open(src)
	if err != nil {
		t.Fatalf("failed to open source file: %v", err)
	}
	defer file.Close()

	stored, err := storage.UploadFile(file, "upload.jpg")
	if err != nil {
		t.Fatalf("failed to upload: %v", err)
	}
	if stored != "upload.jpg" {
		t.Fatalf("expected the storage-relative name back, got %q", stored)
	}

	rc, err := storage.DownloadFile(stored)
	if err != nil {
		t.Fatalf("download by returned name failed: %v", err)
	}
	defer rc.Close()
	raw, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("failed to read download: %v", err)
	}
	if string(raw) != "multipart bytes" {
		t.Error("downloaded content does not match upload")
	}
}
