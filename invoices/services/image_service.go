package services

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"invoicing-backend/config"
	"invoicing-backend/internal/apperr"
	"invoicing-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

const (
	maxImageBytes = 5 << 20
	maxImageWidth = 800
	jpegQuality   = 85
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ImageService stores invoice photos on a FileStorage backend, normalizing
// each upload to a bounded JPEG so the uploads directory stays small.
type ImageService struct {
	storage utils.FileStorage
}

func NewImageService(storage utils.FileStorage) *ImageService {
	return &ImageService{storage: storage}
}

// Save validates, normalizes and stores an uploaded image. The returned path
// is the storage-relative name to persist on the invoice.
func (s *ImageService) Save(filename string, content []byte) (*StoredImage, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExtensions[ext] {
		return nil, apperr.Invalid(fmt.Sprintf("unsupported image type %q", ext))
	}
	if len(content) > maxImageBytes {
		return nil, apperr.Invalid("image exceeds the 5 MiB limit")
	}

	storedName := uuid.New().String() + ext

	if normalized, ok := normalizeImage(content); ok {
		content = normalized
	} else {
		config.Logger.Warn("Image normalization failed; storing original upload",
			zap.String("filename", filename))
	}

	path, err := s.storage.UploadBytes(content, storedName)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	return &StoredImage{Path: path, URL: s.PublicURL(path)}, nil
}

// Delete removes a stored image. Missing files report false without error so
// repeated deletes stay idempotent.
func (s *ImageService) Delete(path string) bool {
	if path == "" {
		return false
	}
	removed, err := s.storage.DeleteFile(path)
	if err != nil {
		config.Logger.Warn("Failed to delete stored image",
			zap.String("path", path), zap.Error(err))
		return false
	}
	return removed
}

// PublicURL maps a stored path to the URL the static file handler serves.
func (s *ImageService) PublicURL(path string) string {
	return "/uploads/" + filepath.Base(path)
}

// normalizeImage decodes the upload, scales it down to maxImageWidth when
// wider, and re-encodes as JPEG. A false return means the original bytes
// should be kept as-is.
func normalizeImage(content []byte) ([]byte, bool) {
	src, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, false
	}

	bounds := src.Bounds()
	if bounds.Dx() > maxImageWidth {
		scale := float64(maxImageWidth) / float64(bounds.Dx())
		height := int(float64(bounds.Dy()) * scale)
		if height < 1 {
			height = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}
