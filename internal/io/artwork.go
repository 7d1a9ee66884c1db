package ioutils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	mhttp "github.com/azagthoth/metallum/internal/http"
)

// ArtworkOptions controls where and how artwork is saved.
type ArtworkOptions struct {
	// Dir is the directory artwork files are written to.
	Dir string

	// Resize scales images down to MaxSize on their longest side.
	Resize  bool
	MaxSize int

	// ConvertToJPEG re-encodes non-JPEG images. Resizing implies JPEG
	// output regardless.
	ConvertToJPEG bool
}

// ArtworkStore downloads artwork through the shared fetch layer, normalizes
// it and writes it to disk. Artwork URLs are absolute and off the main site;
// they still share the cache and throttle with page fetches.
type ArtworkStore struct {
	fetcher *mhttp.Client
	images  *ImageService
	opts    ArtworkOptions
}

// NewArtworkStore creates an ArtworkStore writing into opts.Dir.
func NewArtworkStore(fetcher *mhttp.Client, opts ArtworkOptions) *ArtworkStore {
	return &ArtworkStore{
		fetcher: fetcher,
		images:  NewImageService(),
		opts:    opts,
	}
}

// SaveCover downloads an album cover and writes it as
// "<band> - <album>.jpg" under the store directory, returning the written
// path. An empty URL is an error: the caller should check for missing
// artwork first.
func (s *ArtworkStore) SaveCover(ctx context.Context, bandName, albumTitle, coverURL string) (string, error) {
	name := fmt.Sprintf("%s - %s", bandName, albumTitle)
	return s.save(ctx, name, coverURL)
}

// SaveLogo downloads a band logo and writes it as "<band> logo.jpg" under
// the store directory, returning the written path.
func (s *ArtworkStore) SaveLogo(ctx context.Context, bandName, logoURL string) (string, error) {
	return s.save(ctx, bandName+" logo", logoURL)
}

func (s *ArtworkStore) save(ctx context.Context, name, url string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("no artwork for %s", name)
	}

	data, err := s.fetcher.FetchURL(ctx, url)
	if err != nil {
		return "", err
	}

	if s.opts.Resize {
		data, err = s.images.ResizeImage(ctx, data, s.opts.MaxSize, s.opts.MaxSize)
	} else if s.opts.ConvertToJPEG {
		data, err = s.images.ConvertToJPEG(ctx, data)
	}
	if err != nil {
		return "", fmt.Errorf("processing artwork for %s: %w", name, err)
	}

	if err := EnsureDir(s.opts.Dir); err != nil {
		return "", err
	}

	path := filepath.Join(s.opts.Dir, SanitizeFileName(name)+".jpg")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
