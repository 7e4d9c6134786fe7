package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"venue-scraper/api/places"
)

// ImageRequest identifies one photo to fetch. Sequence is the photo's index
// within its venue.
type ImageRequest struct {
	PhotoReference string
	VenueID        string
	BaseName       string
	Sequence       int
}

// ImageDownloader stores place photos under a local directory.
type ImageDownloader struct {
	placesAPI places.PlacesAPI
	dir       string
	maxWidth  int
}

// NewImageDownloader creates a downloader writing into dir.
func NewImageDownloader(placesAPI places.PlacesAPI, dir string, maxWidth int) *ImageDownloader {
	return &ImageDownloader{
		placesAPI: placesAPI,
		dir:       dir,
		maxWidth:  maxWidth,
	}
}

// ImageFilename is "<base>_<venueID>.jpg" for a venue's first photo and
// "<base>_<venueID>_<n>.jpg" for the ones after it.
func ImageFilename(baseName, venueID string, sequence int) string {
	if sequence == 0 {
		return fmt.Sprintf("%s_%s.jpg", baseName, venueID)
	}
	return fmt.Sprintf("%s_%s_%d.jpg", baseName, venueID, sequence)
}

// Download fetches the photo and returns the path it was written to. The
// directory is created on demand; an existing file of the same name is replaced.
func (d *ImageDownloader) Download(ctx context.Context, req ImageRequest) (string, error) {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", fmt.Errorf("create image dir %q: %w", d.dir, err)
	}

	name := ImageFilename(req.BaseName, req.VenueID, req.Sequence)
	path := filepath.Join(d.dir, name)

	tmp, err := os.CreateTemp(d.dir, name+".*.part")
	if err != nil {
		return "", fmt.Errorf("create temp file for %q: %w", name, err)
	}
	tmpName := tmp.Name()

	_, err = d.placesAPI.DownloadPhoto(ctx, req.PhotoReference, d.maxWidth, tmp)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpName)
		return "", err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("store image %q: %w", path, err)
	}
	return path, nil
}
