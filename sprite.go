package slidefx

import "github.com/chewxy/math32"

// Sprite is a positioned, transformed instance of a texture on the canvas.
// The texture is anchored at its center: X and Y give the canvas position
// of the texture's center point, Scale and Angle transform around it.
//
// A zero-value Sprite is not usable; create one with NewSprite. Sprites
// are cheap to reposition between frames since they only reference the
// texture.
type Sprite struct {
	// Texture is the source pixmap this sprite draws from.
	Texture *Pixmap

	// X, Y is the canvas position of the texture center, in pixels.
	// Fractional positions are valid and produce sub-pixel placement.
	X, Y float32

	// Scale is the uniform scale factor. 1 draws the texture at its
	// native size. Must be positive to be drawable.
	Scale float32

	// Angle is the rotation around the texture center, in radians.
	// Positive angles rotate counterclockwise in the y-down canvas
	// coordinate system.
	Angle float32

	// Opacity multiplies the texture's alpha channel. Clamped to [0, 1]
	// at draw time.
	Opacity float32

	// Mask optionally modulates the sprite's alpha per texture pixel.
	// The mask must match the texture's dimensions. Not owned by the
	// sprite; the effect that created it controls its lifetime.
	Mask *Mask
}

// NewSprite creates a sprite for the given texture, centered at the
// texture's own center with identity transform and full opacity.
func NewSprite(texture *Pixmap) *Sprite {
	s := &Sprite{Texture: texture}
	s.Reset()
	return s
}

// Reset restores the sprite to its identity state: centered on its own
// texture, unscaled, unrotated, fully opaque. Effects mutate sprite
// fields in place, so a sprite pulled from a cache must be Reset before
// reuse.
func (s *Sprite) Reset() {
	s.Scale = 1
	s.Angle = 0
	s.Opacity = 1
	s.Mask = nil
	if s.Texture != nil {
		s.X = float32(s.Texture.Width()) / 2
		s.Y = float32(s.Texture.Height()) / 2
	} else {
		s.X = 0
		s.Y = 0
	}
}

// Transform returns the matrix mapping texture coordinates to canvas
// coordinates for this sprite: translate the texture center to the
// origin, scale, rotate, then translate to the canvas position.
func (s *Sprite) Transform() Matrix {
	cx := float32(s.Texture.Width()) / 2
	cy := float32(s.Texture.Height()) / 2
	m := Translate(-cx, -cy)
	m = Scale(s.Scale).Multiply(m)
	m = Rotate(s.Angle).Multiply(m)
	return Translate(s.X, s.Y).Multiply(m)
}

// Rect is an integer pixel rectangle with inclusive bounds on both ends.
// A Rect produced by Sprite.BoundingBox is already clipped to the canvas.
type Rect struct {
	X0, Y0, X1, Y1 int
}

// Width returns the rectangle width in pixels.
func (r Rect) Width() int { return r.X1 - r.X0 + 1 }

// Height returns the rectangle height in pixels.
func (r Rect) Height() int { return r.Y1 - r.Y0 + 1 }

// BoundingBox computes the canvas-space bounding box of the transformed
// sprite, clipped to a canvas of the given size. The box is conservative:
// it is the floor/ceil envelope of the four transformed texture corners,
// so every canvas pixel the sprite can touch lies inside it.
//
// Returns ok=false when the sprite does not intersect the canvas or its
// transform is degenerate (non-positive scale, empty texture). Callers
// skip drawing in that case.
func (s *Sprite) BoundingBox(canvasW, canvasH int) (Rect, bool) {
	if s.Texture == nil || s.Scale <= 0 || canvasW <= 0 || canvasH <= 0 {
		return Rect{}, false
	}
	tw := float32(s.Texture.Width())
	th := float32(s.Texture.Height())
	if tw == 0 || th == 0 {
		return Rect{}, false
	}

	m := s.Transform()
	corners := [4]Point{
		m.Apply(Pt(0, 0)),
		m.Apply(Pt(tw, 0)),
		m.Apply(Pt(0, th)),
		m.Apply(Pt(tw, th)),
	}

	minX, minY := corners[0].X, corners[0].Y
	maxX, maxY := minX, minY
	for _, c := range corners[1:] {
		minX = math32.Min(minX, c.X)
		minY = math32.Min(minY, c.Y)
		maxX = math32.Max(maxX, c.X)
		maxY = math32.Max(maxY, c.Y)
	}

	r := Rect{
		X0: clampInt(int(math32.Floor(minX)), 0, canvasW-1),
		Y0: clampInt(int(math32.Floor(minY)), 0, canvasH-1),
		X1: clampInt(int(math32.Ceil(maxX)), 0, canvasW-1),
		Y1: clampInt(int(math32.Ceil(maxY)), 0, canvasH-1),
	}
	if int(math32.Ceil(maxX)) < 0 || int(math32.Floor(minX)) > canvasW-1 ||
		int(math32.Ceil(maxY)) < 0 || int(math32.Floor(minY)) > canvasH-1 {
		return Rect{}, false
	}
	return r, true
}
