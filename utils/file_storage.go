package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// FileStorage persists files under storage-relative names. Upload methods
// return the name they stored under; every other method resolves that same
// name, so callers never handle absolute paths.
type FileStorage interface {
	UploadFile(file multipart.File, fileName string) (string, error)
	UploadBytes(content []byte, fileName string) (string, error)
	DownloadFile(fileName string) (io.ReadCloser, error)
	DeleteFile(fileName string) (bool, error)
	FileExists(fileName string) (bool, error)
	FullPath(fileName string) string
}

type LocalFileStorage struct {
	uploadPath string
}

func NewLocalFileStorage(uploadPath string) *LocalFileStorage {
	return &LocalFileStorage{uploadPath: uploadPath}
}

// FullPath resolves a stored file name to its path on disk.
func (s *LocalFileStorage) FullPath(fileName string) string {
	return filepath.Join(s.uploadPath, fileName)
}

// UploadFile handles multipart file uploads.
func (s *LocalFileStorage) UploadFile(file multipart.File, fileName string) (string, error) {
	filePath := filepath.Join(s.uploadPath, fileName)

	if err := s.ensureDir(); err != nil {
		return "", err
	}

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		// Clean up on error
		os.Remove(filePath)
		return "", fmt.Errorf("failed to copy file content: %w", err)
	}

	return fileName, nil
}

// UploadBytes writes raw content to a new file in storage.
func (s *LocalFileStorage) UploadBytes(content []byte, fileName string) (string, error) {
	filePath := filepath.Join(s.uploadPath, fileName)

	if err := s.ensureDir(); err != nil {
		return "", err
	}

	if err := os.WriteFile(filePath, content, 0644); err != nil {
		// Clean up any partial write on error
		os.Remove(filePath)
		return "", fmt.Errorf("failed to write file content: %w", err)
	}

	return fileName, nil
}

// DownloadFile retrieves a file for reading.
func (s *LocalFileStorage) DownloadFile(fileName string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(s.uploadPath, fileName))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// DeleteFile removes a file from storage. Deleting a file that does not
// exist reports false without an error.
func (s *LocalFileStorage) DeleteFile(fileName string) (bool, error) {
	fullPath := filepath.Join(s.uploadPath, fileName)

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return false, nil
	}

	if err := os.Remove(fullPath); err != nil {
		return false, fmt.Errorf("failed to delete file: %w", err)
	}

	return true, nil
}

// FileExists checks if a file exists in storage.
func (s *LocalFileStorage) FileExists(fileName string) (bool, error) {
	_, err := os.Stat(filepath.Join(s.uploadPath, fileName))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check file existence: %w", err)
	}
	return true, nil
}

func (s *LocalFileStorage) ensureDir() error {
	if _, err := os.Stat(s.uploadPath); os.IsNotExist(err) {
		if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
			return fmt.Errorf("failed to create upload directory: %w", err)
		}
	}
	return nil
}
