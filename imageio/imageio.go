// Package imageio loads image files into pixmaps for the compositor.
// PNG, JPEG, GIF, BMP, TIFF and WebP are supported. Loaded images can
// be resized to the output resolution with either cover (fill and crop)
// or fit (letterbox) framing.
package imageio

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	// Image format decoders, registered for image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/anthonynsimon/bild/transform"

	"github.com/slidefx/slidefx"
)

// ResizeMode controls how a loaded image is framed into the target
// dimensions.
type ResizeMode uint8

const (
	// ResizeCover scales the image to fill the target completely and
	// crops the overflow, centered. No letterboxing, some of the image
	// may be cut off.
	ResizeCover ResizeMode = iota

	// ResizeFit scales the image to fit entirely inside the target and
	// centers it, leaving transparent borders on the short axis.
	ResizeFit

	// ResizeStretch ignores the aspect ratio.
	ResizeStretch
)

// Load reads and decodes an image file. The format is detected from the
// file contents, not the extension.
func Load(path string) (*slidefx.Pixmap, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from user configuration
	if err != nil {
		return nil, fmt.Errorf("imageio: opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("imageio: decoding %s: %w", path, err)
	}
	return slidefx.FromImage(img), nil
}

// LoadSized reads an image and resizes it to width×height with the
// given framing mode.
func LoadSized(path string, width, height int, mode ResizeMode) (*slidefx.Pixmap, error) {
	if width <= 0 || height <= 0 {
		return nil, slidefx.ErrInvalidDimensions
	}

	f, err := os.Open(path) //nolint:gosec // path comes from user configuration
	if err != nil {
		return nil, fmt.Errorf("imageio: opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("imageio: decoding %s: %w", path, err)
	}
	return slidefx.FromImage(Resize(img, width, height, mode)), nil
}

// Resize frames an image into width×height using the given mode.
func Resize(img image.Image, width, height int, mode ResizeMode) image.Image {
	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW == width && srcH == height {
		return img
	}

	switch mode {
	case ResizeFit:
		scale := min(float64(width)/float64(srcW), float64(height)/float64(srcH))
		newW := max(int(float64(srcW)*scale), 1)
		newH := max(int(float64(srcH)*scale), 1)

		resized := transform.Resize(img, newW, newH, transform.Linear)
		out := image.NewNRGBA(image.Rect(0, 0, width, height))
		offset := image.Pt((width-newW)/2, (height-newH)/2)
		draw.Draw(out, resized.Bounds().Add(offset), resized, resized.Bounds().Min, draw.Src)
		return out

	case ResizeStretch:
		return transform.Resize(img, width, height, transform.Linear)

	default: // ResizeCover
		scale := max(float64(width)/float64(srcW), float64(height)/float64(srcH))
		newW := max(int(float64(srcW)*scale), width)
		newH := max(int(float64(srcH)*scale), height)

		resized := transform.Resize(img, newW, newH, transform.Linear)
		out := image.NewNRGBA(image.Rect(0, 0, width, height))
		src := image.Pt((newW-width)/2, (newH-height)/2)
		draw.Draw(out, out.Bounds(), resized, src, draw.Src)
		return out
	}
}
