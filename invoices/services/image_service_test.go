package services

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"strings"
	"testing"

	"invoicing-backend/config"
	"invoicing-backend/internal/apperr"
	"invoicing-backend/utils"

	"go.uber.org/zap"
)

func newTestImageService(t *testing.T) (*ImageService, *utils.LocalFileStorage) {
	t.Helper()
	config.Logger = zap.NewNop()
	storage := utils.NewLocalFileStorage(t.TempDir())
	return NewImageService(storage), storage
}

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestSaveRejectsUnsupportedExtension(t *testing.T) {
	service, _ := newTestImageService(t)

	_, err := service.Save("notes.txt", []byte("plain text"))
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Errorf("expected invalid argument for .txt upload, got %v", err)
	}
}

func TestSaveRejectsOversizedUpload(t *testing.T) {
	service, _ := newTestImageService(t)

	_, err := service.Save("huge.jpg", make([]byte, 6<<20))
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Errorf("expected invalid argument for 6 MiB upload, got %v", err)
	}
}

func TestSaveStoresDistinctFiles(t *testing.T) {
	service, storage := newTestImageService(t)
	content := encodePNG(t, 100, 60)

	first, err := service.Save("floor.png", content)
	if err != nil {
		t.Fatalf("failed to save image: %v", err)
	}
	second, err := service.Save("floor.png", content)
	if err != nil {
		t.Fatalf("failed to save image again: %v", err)
	}

	if first.Path == second.Path {
		t.Errorf("repeated uploads must get distinct names, both got %s", first.Path)
	}
	if !strings.HasPrefix(first.URL, "/uploads/") {
		t.Errorf("unexpected public URL: %s", first.URL)
	}
	for _, stored := range []*StoredImage{first, second} {
		if exists, err := storage.FileExists(stored.Path); err != nil || !exists {
			t.Errorf("expected %s to exist on disk (err=%v)", stored.Path, err)
		}
	}
}

func TestSaveNormalizesWideImages(t *testing.T) {
	service, storage := newTestImageService(t)

	stored, err := service.Save("panorama.png", encodePNG(t, 1600, 400))
	if err != nil {
		t.Fatalf("failed to save image: %v", err)
	}

	raw, err := os.ReadFile(storage.FullPath(stored.Path))
	if err != nil {
		t.Fatalf("failed to read stored image: %v", err)
	}
	decoded, err := jpeg.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("stored image is not a valid JPEG: %v", err)
	}

	if width := decoded.Bounds().Dx(); width != maxImageWidth {
		t.Errorf("expected width %d after normalization, got %d", maxImageWidth, width)
	}
	if height := decoded.Bounds().Dy(); height != 200 {
		t.Errorf("expected proportional height 200, got %d", height)
	}
}

func TestSaveKeepsUndecodableUploads(t *testing.T) {
	service, storage := newTestImageService(t)
	content := []byte("not really a jpeg")

	stored, err := service.Save("broken.jpg", content)
	if err != nil {
		t.Fatalf("normalization failure must not reject the upload: %v", err)
	}

	raw, err := os.ReadFile(storage.FullPath(stored.Path))
	if err != nil {
		t.Fatalf("failed to read stored image: %v", err)
	}
	if !bytes.Equal(raw, content) {
		t.Error("undecodable uploads must be stored unchanged")
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	service, _ := newTestImageService(t)

	stored, err := service.Save("floor.png", encodePNG(t, 50, 50))
	if err != nil {
		t.Fatalf("failed to save image: %v", err)
	}

	if !service.Delete(stored.Path) {
		t.Error("expected first delete to report removal")
	}
	if service.Delete(stored.Path) {
		t.Error("expected second delete to report nothing removed")
	}
	if service.Delete("") {
		t.Error("expected empty path delete to report nothing removed")
	}
}
