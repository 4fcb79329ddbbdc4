package raster

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp" // register decoder
)

// ErrNotDataURI is returned for strings without a data: prefix.
var ErrNotDataURI = errors.New("not a data URI")

// EncodeDataURI builds a base64 data URI.
func EncodeDataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURI splits a data URI into its media type and payload.
func ParseDataURI(uri string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(uri), "data:")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing payload", ErrNotDataURI)
	}
	mime, isBase64 := strings.CutSuffix(meta, ";base64")
	if isBase64 {
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return "", nil, fmt.Errorf("decode data URI: %w", err)
		}
	} else {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return "", nil, fmt.Errorf("decode data URI: %w", err)
		}
		data = []byte(s)
	}
	if mime == "" {
		mime = "text/plain"
	}
	return mime, data, nil
}

// DecodeDataURI decodes an image data URI. PNG, JPEG, GIF and WebP are
// supported.
func DecodeDataURI(uri string) (image.Image, error) {
	_, data, err := ParseDataURI(uri)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// ImageFile is an image read from disk for upload.
type ImageFile struct {
	Name    string
	Type    string
	Size    int64
	DataURI string
	Image   image.Image
}

// ReadImageFile reads and decodes path. The file must be a supported image.
func ReadImageFile(path string) (ImageFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImageFile{}, fmt.Errorf("read image: %w", err)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return ImageFile{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		mime = "image/" + format
	}
	return ImageFile{
		Name:    filepath.Base(path),
		Type:    mime,
		Size:    int64(len(data)),
		DataURI: EncodeDataURI(mime, data),
		Image:   img,
	}, nil
}
