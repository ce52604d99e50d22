package file

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("file not found")
	ErrNotAnImage    = errors.New("only image uploads are accepted")
	ErrTooLarge      = errors.New("file exceeds the upload size limit")
	ErrNoThumbnail   = errors.New("thumbnail not available for this file")
	ErrStillAttached = errors.New("file is still attached to a facility")
)

// File is an uploaded facility photo. Two variants are stored: the
// display image and a small thumbnail for listings.
type File struct {
	ID            string
	UserID        string
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// FileURL returns the public URL for the display variant.
func FileURL(id string) string {
	return "/v1/files/" + id
}

// ThumbnailURL returns the public URL for the thumbnail variant.
func ThumbnailURL(id string) string {
	return "/v1/files/" + id + "/thumbnail"
}
