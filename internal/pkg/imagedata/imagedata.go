// Package imagedata holds the image-bearing capability shared by courses
// and writer profiles: an uploaded image is stored as raw bytes plus a
// MIME type and rendered back to clients as a self-contained data URI.
package imagedata

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// MaxUploadBytes caps accepted image uploads.
const MaxUploadBytes = 5 << 20 // 5 MiB

// Image is a binary image payload with its MIME type.
type Image struct {
	Data     []byte
	MimeType string
}

// Load builds an Image from raw bytes, sniffing the MIME type when the
// caller does not supply one.
func Load(data []byte, mimeType string) *Image {
	if len(data) == 0 {
		return nil
	}
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}
	return &Image{Data: data, MimeType: mimeType}
}

// FromMultipart reads an uploaded file into an Image.
func FromMultipart(fh *multipart.FileHeader) (*Image, error) {
	if fh.Size > MaxUploadBytes {
		return nil, fmt.Errorf("image exceeds maximum size of %d bytes", MaxUploadBytes)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded image: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded image: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return nil, fmt.Errorf("image exceeds maximum size of %d bytes", MaxUploadBytes)
	}

	img := Load(data, fh.Header.Get("Content-Type"))
	if img != nil && !strings.HasPrefix(img.MimeType, "image/") {
		return nil, fmt.Errorf("uploaded file is not an image (detected %s)", img.MimeType)
	}
	return img, nil
}

// ToDataURI renders the image as data:<mime>;base64,<payload>.
func (i *Image) ToDataURI() string {
	if i == nil || len(i.Data) == 0 {
		return ""
	}
	return "data:" + i.MimeType + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}
