// Package media validates uploaded cover images and moves them into blob
// storage under a unique public path.
package media

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
)

// MaxImageBytes caps uploads at 2048 KB.
const MaxImageBytes = 2048 << 10

var (
	ErrTooLarge          = errors.New("image exceeds maximum size")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// extByType maps the accepted sniffed MIME types to a fallback extension
// for uploads whose filename carries none.
var extByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// ValidateImage checks an uploaded file against the cover image rules:
// size at most MaxImageBytes and content sniffing to jpeg, png or gif. The
// client-declared Content-Type is ignored; only the payload bytes count.
func ValidateImage(fh *multipart.FileHeader) error {
	if fh.Size > MaxImageBytes {
		return ErrTooLarge
	}

	mimeType, err := sniffType(fh)
	if err != nil {
		return err
	}
	if _, ok := extByType[mimeType]; !ok {
		return ErrUnsupportedFormat
	}
	return nil
}

func sniffType(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	// DetectContentType never reads more than 512 bytes.
	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}
