package slidefx

import (
	"fmt"
	"image"
	"sync"

	"github.com/go-fonts/latin-modern/lmroman10bold"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var (
	maskFont     *opentype.Font
	maskFontOnce sync.Once
	maskFontErr  error
)

func loadMaskFont() (*opentype.Font, error) {
	maskFontOnce.Do(func() {
		maskFont, maskFontErr = opentype.Parse(lmroman10bold.TTF)
	})
	return maskFont, maskFontErr
}

// rasterTextStencil renders text centered on a w×h canvas and returns
// the coverage as a row-major [0,1] field. sizeRatio is the font size
// as a fraction of the smaller canvas dimension.
func rasterTextStencil(text string, sizeRatio float32, w, h int) ([]float32, error) {
	if text == "" {
		text = "Text"
	}

	f, err := loadMaskFont()
	if err != nil {
		return nil, fmt.Errorf("slidefx: parsing mask font: %w", err)
	}

	minDim := w
	if h < minDim {
		minDim = h
	}
	size := float64(sizeRatio) * float64(minDim)
	if size < 1 {
		size = 1
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("slidefx: creating mask font face: %w", err)
	}
	defer func() { _ = face.Close() }()

	img := image.NewGray(image.Rect(0, 0, w, h))
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
	}

	adv := drawer.MeasureString(text)
	metrics := face.Metrics()
	textH := (metrics.Ascent + metrics.Descent).Round()

	x := (w - adv.Round()) / 2
	y := (h-textH)/2 + metrics.Ascent.Round()
	drawer.Dot = fixed.P(x, y)
	drawer.DrawString(text)

	stencil := make([]float32, w*h)
	for i, v := range img.Pix {
		stencil[i] = float32(v) / 255
	}
	return stencil, nil
}
