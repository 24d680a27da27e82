package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// allowedMagicBytes defines magic bytes for accepted image types.
var allowedMagicBytes = map[string][]byte{
	"image/jpeg": {0xFF, 0xD8, 0xFF},
	"image/png":  {0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A},
}

// DetectType detects the actual image type from magic bytes, ignoring
// whatever extension or content type the upload claimed.
func DetectType(data []byte) (string, error) {
	if len(data) < 8 {
		return "", fmt.Errorf("data too short to detect type")
	}
	if bytes.HasPrefix(data, allowedMagicBytes["image/jpeg"]) {
		return "image/jpeg", nil
	}
	if bytes.HasPrefix(data, allowedMagicBytes["image/png"]) {
		return "image/png", nil
	}
	return "", fmt.Errorf("unsupported image type")
}

// Decode decodes raw bytes using the detected mime type.
func Decode(data []byte, mimeType string) (image.Image, error) {
	r := bytes.NewReader(data)
	switch mimeType {
	case "image/jpeg":
		return jpeg.Decode(r)
	case "image/png":
		return png.Decode(r)
	default:
		return nil, fmt.Errorf("unsupported image type: %s", mimeType)
	}
}

// Resize scales the image to exactly w x h.
func Resize(img image.Image, w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// Encode writes the image back in its original format.
func Encode(img image.Image, mimeType string) ([]byte, error) {
	var buf bytes.Buffer
	switch mimeType {
	case "image/jpeg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
			return nil, err
		}
	case "image/png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported image type: %s", mimeType)
	}
	return buf.Bytes(), nil
}
