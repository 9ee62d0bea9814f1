package slidefx

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
)

// Common errors for pixmap and canvas operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("slidefx: invalid dimensions")

	// ErrBufferSize is returned when a destination buffer is too small.
	ErrBufferSize = errors.New("slidefx: buffer too small")

	// ErrDimensionMismatch is returned when two buffers that must share
	// dimensions do not.
	ErrDimensionMismatch = errors.New("slidefx: dimension mismatch")
)

// Pixmap represents a rectangular pixel buffer.
//
// Pixels are stored as interleaved RGBA float32 values, each channel in
// [0, 1], in row-major order. The float representation keeps the per-pixel
// blend math of the compositor free of 8-bit quantization until a frame is
// handed to the encoder.
//
// Thread safety: concurrent reads are safe; writes require external
// synchronization (the Stage serializes its own writes per render call).
type Pixmap struct {
	width  int
	height int
	data   []float32 // RGBA, 4 floats per pixel
}

// NewPixmap creates a new pixmap with the given dimensions.
// All pixels are initialized to transparent black.
func NewPixmap(width, height int) (*Pixmap, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]float32, width*height*4),
	}, nil
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (interleaved RGBA float32).
func (p *Pixmap) Data() []float32 {
	return p.data
}

// SetPixel sets the color of a single pixel.
// Coordinates outside the pixmap bounds are ignored.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = c.R
	p.data[i+1] = c.G
	p.data[i+2] = c.B
	p.data[i+3] = c.A
}

// GetPixel returns the color of a single pixel.
// Returns Transparent for coordinates outside the pixmap bounds.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := (y*p.width + x) * 4
	return RGBA{
		R: p.data[i+0],
		G: p.data[i+1],
		B: p.data[i+2],
		A: p.data[i+3],
	}
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGBA) {
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = c.R
		p.data[i+1] = c.G
		p.data[i+2] = c.B
		p.data[i+3] = c.A
	}
}

// Clone creates a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	data := make([]float32, len(p.data))
	copy(data, p.data)
	return &Pixmap{width: p.width, height: p.height, data: data}
}

// CopyFrom copies pixel data from src.
// Returns ErrDimensionMismatch if dimensions differ.
func (p *Pixmap) CopyFrom(src *Pixmap) error {
	if p.width != src.width || p.height != src.height {
		return ErrDimensionMismatch
	}
	copy(p.data, src.data)
	return nil
}

// WriteBGR24 writes the pixmap as 8-bit interleaved BGR into dst, the raw
// frame format consumed by the encoder. dst must hold at least
// width*height*3 bytes. Alpha is dropped: frames handed to the encoder are
// always fully opaque.
func (p *Pixmap) WriteBGR24(dst []byte) error {
	need := p.width * p.height * 3
	if len(dst) < need {
		return ErrBufferSize
	}
	si, di := 0, 0
	for range p.width * p.height {
		// +0.5 rounds to nearest rather than truncating
		dst[di+0] = uint8(clamp255(p.data[si+2]*255) + 0.5)
		dst[di+1] = uint8(clamp255(p.data[si+1]*255) + 0.5)
		dst[di+2] = uint8(clamp255(p.data[si+0]*255) + 0.5)
		si += 4
		di += 3
	}
	return nil
}

// ToImage converts the pixmap to an image.NRGBA.
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	for i := 0; i < len(p.data); i += 4 {
		img.Pix[i+0] = uint8(clamp255(p.data[i+0]*255) + 0.5)
		img.Pix[i+1] = uint8(clamp255(p.data[i+1]*255) + 0.5)
		img.Pix[i+2] = uint8(clamp255(p.data[i+2]*255) + 0.5)
		img.Pix[i+3] = uint8(clamp255(p.data[i+3]*255) + 0.5)
	}
	return img
}

// FromImage creates a pixmap from an image. Sources without an alpha
// channel get an implicit alpha of 1.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pm := &Pixmap{
		width:  width,
		height: height,
		data:   make([]float32, width*height*4),
	}

	// Fast path for NRGBA: avoids the color.Color interface per pixel.
	if src, ok := img.(*image.NRGBA); ok {
		i := 0
		for y := 0; y < height; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+width*4]
			for x := 0; x < width*4; x++ {
				pm.data[i] = float32(row[x]) / 255
				i++
			}
		}
		return pm
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			pm.SetPixel(x, y, FromColor(c))
		}
	}
	return pm
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, p.ToImage())
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.GetPixel(x, y).Color()
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
