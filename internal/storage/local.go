package storage

import (
	"context"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
)

// LocalStore writes images under root/uploads/products and returns the
// relative path the router serves from /public.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) Save(_ context.Context, filename string, file *multipart.FileHeader) (string, error) {
	dir := filepath.Join(s.root, "uploads", "products")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("[UPLOAD] failed to create directory %s: %v", dir, err)
		return "", err
	}

	fullPath := filepath.Join(dir, filename)

	out, err := os.Create(fullPath)
	if err != nil {
		log.Printf("[UPLOAD] failed to create file %s: %v", fullPath, err)
		return "", err
	}
	defer out.Close()

	in, err := file.Open()
	if err != nil {
		log.Printf("[UPLOAD] failed to open upload %s: %v", file.Filename, err)
		return "", err
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		log.Printf("[UPLOAD] failed to save file %s: %v", fullPath, err)
		return "", err
	}

	return filepath.ToSlash(filepath.Join("uploads", "products", filename)), nil
}
