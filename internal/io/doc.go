// Package ioutils provides file system and image processing utilities for
// saving artwork.
//
// This package contains functions for:
//   - Filename sanitization for cross-platform compatibility
//   - Directory creation
//   - Image resizing and format conversion
//   - Downloading and saving band logos and album covers
//
// # Filename Sanitization
//
// Use SanitizeFileName to remove invalid characters from filenames:
//
//	safe := ioutils.SanitizeFileName("Band: Part 1/2") // Returns "Band_ Part 1_2"
//
// # Image Processing
//
// The ImageService handles artwork manipulation:
//
//	svc := ioutils.NewImageService()
//
//	// Resize image to fit within 500x500
//	resized, _ := svc.ResizeImage(ctx, imageData, 500, 500)
//
//	// Convert to JPEG
//	jpeg, _ := svc.ConvertToJPEG(ctx, pngData)
//
// # Saving Artwork
//
// The ArtworkStore ties fetching, processing and writing together:
//
//	store := ioutils.NewArtworkStore(fetcher, ioutils.ArtworkOptions{
//	    Dir:     "/music/artwork",
//	    Resize:  true,
//	    MaxSize: 1000,
//	})
//	path, err := store.SaveCover(ctx, "Testband", "First", coverURL)
package ioutils
