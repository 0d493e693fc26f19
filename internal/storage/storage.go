// Package storage saves product images. The S3 store targets any
// S3-compatible bucket; the local store writes under the public directory
// served by the router.
package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

const maxImageSize = 5 << 20

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// ImageStore persists an uploaded image and returns the URL (or relative
// path) to store on the product.
type ImageStore interface {
	Save(ctx context.Context, filename string, file *multipart.FileHeader) (string, error)
}

// ValidateImage checks extension and size, returning the lowercase
// extension.
func ValidateImage(file *multipart.FileHeader) (string, error) {
	extension := strings.ToLower(filepath.Ext(file.Filename))
	if extension == "" {
		return "", fmt.Errorf("image file extension is required")
	}
	if _, ok := allowedExtensions[extension]; !ok {
		return "", fmt.Errorf("unsupported image type: %s", extension)
	}
	if file.Size > maxImageSize {
		return "", fmt.Errorf("image file too large (max 5MB)")
	}
	return extension, nil
}
