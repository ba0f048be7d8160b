package storage

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func multipartFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("failed to parse multipart form: %v", err)
	}
	return req.MultipartForm.File["image"][0]
}

func TestImageStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewImageStore(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	file := multipartFile(t, "cat.PNG", []byte("png-bytes"))
	url, err := store.Save(file)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/") || !strings.HasSuffix(url, ".png") {
		t.Errorf("unexpected url: %s", url)
	}

	// Original filename never leaks into the stored name.
	if strings.Contains(url, "cat") {
		t.Errorf("original filename leaked: %s", url)
	}

	saved, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	if err != nil {
		t.Fatalf("failed to read saved file: %v", err)
	}
	if string(saved) != "png-bytes" {
		t.Errorf("unexpected file content: %s", saved)
	}
}

func TestImageStore_UnsupportedExtension(t *testing.T) {
	store, err := NewImageStore(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	file := multipartFile(t, "payload.exe", []byte("nope"))
	_, err = store.Save(file)
	if !errors.Is(err, ErrUnsupportedImageType) {
		t.Fatalf("expected ErrUnsupportedImageType, got %v", err)
	}
}
