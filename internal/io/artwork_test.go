package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/azagthoth/metallum/internal/cache"
	mhttp "github.com/azagthoth/metallum/internal/http"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Sunn O)))", "Sunn O)))"},
		{"Master/Slave", "Master_Slave"},
		{"Who: What?", "Who_ What_"},
		{"Trailing...", "Trailing"},
		{"Name   with  spaces", "Name with spaces"},
	}
	for _, tt := range tests {
		if got := SanitizeFileName(tt.in); got != tt.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func TestImageService_ResizeImage(t *testing.T) {
	svc := NewImageService()

	out, err := svc.ResizeImage(context.Background(), testPNG(t, 300, 200), 150, 150)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	img, format, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("output format = %q, want jpeg", format)
	}
	if img.Bounds().Dx() != 150 || img.Bounds().Dy() != 100 {
		t.Errorf("output size = %dx%d, want 150x100", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestArtworkStore_SaveCover(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(testPNG(t, 400, 400))
	}))
	defer srv.Close()

	fetcher := mhttp.NewClient(mhttp.Config{
		BaseURL: srv.URL,
		Store:   cache.NewMemory(cache.DefaultTTL),
	})

	dir := t.TempDir()
	store := NewArtworkStore(fetcher, ArtworkOptions{
		Dir:     dir,
		Resize:  true,
		MaxSize: 100,
	})

	path, err := store.SaveCover(context.Background(), "Testband", "First/Second", srv.URL+"/images/1/1/11.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved artwork: %v", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding saved artwork: %v", err)
	}
	if img.Bounds().Dx() != 100 {
		t.Errorf("saved width = %d, want 100", img.Bounds().Dx())
	}

	if _, err := store.SaveCover(context.Background(), "Testband", "First", ""); err == nil {
		t.Error("expected error for empty artwork URL")
	}
}
