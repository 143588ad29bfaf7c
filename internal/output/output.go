// Package output writes rendered codes to disk or a stream and checks that
// they still scan.
package output

import (
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// ErrUnreadable is returned by Verify when no QR code can be decoded.
var ErrUnreadable = errors.New("rendered code does not scan")

const jpegQuality = 95

// Save writes img to path, choosing the format from the file extension. A
// positive size rescales the image to size×size first.
func Save(img image.Image, path string, size int) error {
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("unsupported output file %q: %w", path, err)
	}
	if err := imaging.Save(scale(img, size), path, imaging.JPEGQuality(jpegQuality)); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// Encode writes img to w in the named format (png, jpg, jpeg, gif, bmp, tiff).
func Encode(w io.Writer, img image.Image, format string, size int) error {
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}
	if err := imaging.Encode(w, scale(img, size), f, imaging.JPEGQuality(jpegQuality)); err != nil {
		return fmt.Errorf("failed to encode %s: %w", f, err)
	}
	return nil
}

// ParseFormat maps a format name to an imaging format. Empty means PNG.
func ParseFormat(name string) (imaging.Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return imaging.PNG, nil
	}
	f, err := imaging.FormatFromExtension(name)
	if err != nil {
		return 0, fmt.Errorf("unsupported image format %q: %w", name, err)
	}
	return f, nil
}

// ContentType returns the MIME type for a format name.
func ContentType(name string) string {
	f, err := ParseFormat(name)
	if err != nil {
		return "application/octet-stream"
	}
	switch f {
	case imaging.JPEG:
		return "image/jpeg"
	case imaging.GIF:
		return "image/gif"
	case imaging.BMP:
		return "image/bmp"
	case imaging.TIFF:
		return "image/tiff"
	}
	return "image/png"
}

// scale resizes without smoothing so module edges stay crisp.
func scale(img image.Image, size int) image.Image {
	if size <= 0 || img.Bounds().Dx() == size && img.Bounds().Dy() == size {
		return img
	}
	return imaging.Resize(img, size, size, imaging.NearestNeighbor)
}

// Verify decodes img and returns the payload it carries.
func Verify(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("creating bitmap: %w", err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	result, err := qrcode.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return result.GetText(), nil
}
