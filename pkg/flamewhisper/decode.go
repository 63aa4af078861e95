package flamewhisper

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var (
	ErrInvalidDataURI = errors.New("invalid data URI")
	ErrEmptyImage     = errors.New("image has no pixels")
)

// DecodeDataURI extracts the payload and media type from a data URI such
// as the one FileReader.readAsDataURL produces.
func DecodeDataURI(uri string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, "", fmt.Errorf("%w: missing data: prefix", ErrInvalidDataURI)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", fmt.Errorf("%w: missing payload separator", ErrInvalidDataURI)
	}

	isBase64 := false
	mediaType := meta
	if m, found := strings.CutSuffix(meta, ";base64"); found {
		mediaType = m
		isBase64 = true
	}
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}

	if isBase64 {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
		}
		return data, mediaType, nil
	}

	data, err := url.PathUnescape(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return []byte(data), mediaType, nil
}

// EncodeDataURI is the inverse of DecodeDataURI for base64 payloads.
func EncodeDataURI(data []byte, mediaType string) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeImage decodes an encoded image in any registered format.
func DecodeImage(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decoding image: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, "", ErrEmptyImage
	}
	return img, format, nil
}

// ImageBytes accepts either raw encoded image bytes or a data URI.
func ImageBytes(src []byte) ([]byte, error) {
	if bytes.HasPrefix(src, []byte("data:")) {
		data, _, err := DecodeDataURI(string(src))
		return data, err
	}
	return src, nil
}
