package storage

import (
	"mime/multipart"
	"testing"
)

func header(name string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: size}
}

func TestValidateImageAcceptsSupportedTypes(t *testing.T) {
	for _, name := range []string{"a.jpg", "b.JPEG", "c.png", "d.webp"} {
		if _, err := ValidateImage(header(name, 1024)); err != nil {
			t.Fatalf("expected %s to be accepted, got %v", name, err)
		}
	}
}

func TestValidateImageRejectsBadUploads(t *testing.T) {
	tests := []struct {
		name string
		file *multipart.FileHeader
	}{
		{"no extension", header("image", 1024)},
		{"unsupported type", header("script.svg", 1024)},
		{"oversized", header("big.png", maxImageSize+1)},
	}
	for _, tt := range tests {
		if _, err := ValidateImage(tt.file); err == nil {
			t.Fatalf("%s: expected an error", tt.name)
		}
	}
}

func TestValidateImageReturnsLowercaseExtension(t *testing.T) {
	ext, err := ValidateImage(header("photo.PNG", 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ext != ".png" {
		t.Fatalf("expected .png, got %s", ext)
	}
}
