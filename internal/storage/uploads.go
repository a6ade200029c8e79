package storage

import (
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"
)

// SaveUpload writes an uploaded file into dir under a unique timestamped
// name and returns the stored path. Callers remove the file once the
// buffer has been processed.
func SaveUpload(file *multipart.FileHeader, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(file.Filename))
	dst := filepath.Join(dir, name)

	if err := saveMultipartFile(file, dst); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return dst, nil
}

// Remove deletes a stored upload, logging instead of failing the request
func Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("[Storage] Failed to remove upload %s: %v", path, err)
	}
}

/* helper */
func saveMultipartFile(file *multipart.FileHeader, dst string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = out.ReadFrom(src)
	return err
}
