package slidefx

import (
	"errors"
	"testing"
)

func newTestMask(t *testing.T, shape Shape, w, h int, opts ...MaskOption) *Mask {
	t.Helper()
	opts = append([]MaskOption{WithCenter(0.5, 0.5)}, opts...)
	m, err := NewMask(shape, w, h, opts...)
	if err != nil {
		t.Fatalf("NewMask() error = %v", err)
	}
	return m
}

func countCovered(m *Mask) int {
	n := 0
	for _, v := range m.Field() {
		if v > 0 {
			n++
		}
	}
	return n
}

func TestNewMask_InvalidDimensions(t *testing.T) {
	if _, err := NewMask(ShapeCircle, 0, 100); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("width=0 error = %v, want ErrInvalidDimensions", err)
	}
	if _, err := NewMask(ShapeCircle, 100, -1); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("height=-1 error = %v, want ErrInvalidDimensions", err)
	}
}

func TestMask_RenderWithoutCenter(t *testing.T) {
	m, err := NewMask(ShapeCircle, 16, 16)
	if err != nil {
		t.Fatalf("NewMask() error = %v", err)
	}
	if err := m.Render(0.5); !errors.Is(err, ErrMaskCenterUnset) {
		t.Errorf("Render() error = %v, want ErrMaskCenterUnset", err)
	}
}

func TestMask_CircleProgression(t *testing.T) {
	m := newTestMask(t, ShapeCircle, 100, 100)

	if err := m.Render(0); err != nil {
		t.Fatalf("Render(0) error = %v", err)
	}
	if got := countCovered(m); got != 0 {
		t.Errorf("covered at t=0 = %d, want 0", got)
	}

	// Distances are normalized so the farthest corner sits at 1.0; at
	// t=0.71 the circle reaches past the edge midpoints but not the
	// corners.
	if err := m.Render(0.71); err != nil {
		t.Fatalf("Render(0.71) error = %v", err)
	}
	if got := m.At(50, 50); got != 1 {
		t.Errorf("center at t=0.71 = %v, want 1", got)
	}
	if got := m.At(0, 50); got != 1 {
		t.Errorf("left edge midpoint at t=0.71 = %v, want 1", got)
	}
	if got := m.At(0, 0); got != 0 {
		t.Errorf("corner at t=0.71 = %v, want 0", got)
	}

	if err := m.Render(1); err != nil {
		t.Fatalf("Render(1) error = %v", err)
	}
	if got := countCovered(m); got != 100*100 {
		t.Errorf("covered at t=1 = %d, want %d", got, 100*100)
	}
}

func TestMask_FullCoverageAtOne(t *testing.T) {
	// Every closed-form shape except the heart must cover the whole
	// canvas at t=1.
	shapes := []Shape{ShapeCircle, ShapeDiamond, ShapeRect, ShapeTriangle, ShapeStar}
	for _, shape := range shapes {
		t.Run(shape.String(), func(t *testing.T) {
			m := newTestMask(t, shape, 64, 48)
			if err := m.Render(1); err != nil {
				t.Fatalf("Render(1) error = %v", err)
			}
			if got := countCovered(m); got != 64*48 {
				t.Errorf("covered = %d, want %d", got, 64*48)
			}
		})
	}
}

func TestMask_CrossBars(t *testing.T) {
	m := newTestMask(t, ShapeCross, 100, 100)
	if err := m.Render(1); err != nil {
		t.Fatalf("Render(1) error = %v", err)
	}
	if got := m.At(50, 50); got != 1 {
		t.Errorf("center = %v, want 1", got)
	}
	if got := m.At(90, 50); got != 1 {
		t.Errorf("horizontal bar = %v, want 1", got)
	}
	if got := m.At(50, 10); got != 1 {
		t.Errorf("vertical bar = %v, want 1", got)
	}
	// The quadrant interiors stay outside both bars.
	if got := m.At(90, 10); got != 0 {
		t.Errorf("corner = %v, want 0", got)
	}
}

func TestMask_HeartNeverFull(t *testing.T) {
	m := newTestMask(t, ShapeHeart, 64, 64)
	if err := m.Render(1); err != nil {
		t.Fatalf("Render(1) error = %v", err)
	}
	covered := countCovered(m)
	if covered == 0 {
		t.Error("heart at t=1 covered nothing")
	}
	if covered == 64*64 {
		t.Error("heart at t=1 covered the whole canvas")
	}
	// The heart lobes sit above the center.
	if got := m.At(32, 24); got != 1 {
		t.Errorf("lobe interior = %v, want 1", got)
	}
}

func TestMask_Monotonic(t *testing.T) {
	// Growing t never uncovers a pixel for radial shapes.
	for _, shape := range []Shape{ShapeCircle, ShapeDiamond, ShapeRect, ShapeStar} {
		t.Run(shape.String(), func(t *testing.T) {
			m := newTestMask(t, shape, 40, 40)
			prev := 0
			for _, tv := range []float32{0.1, 0.3, 0.5, 0.7, 0.9, 1.0} {
				if err := m.Render(tv); err != nil {
					t.Fatalf("Render(%v) error = %v", tv, err)
				}
				cur := countCovered(m)
				if cur < prev {
					t.Errorf("coverage shrank at t=%v: %d -> %d", tv, prev, cur)
				}
				prev = cur
			}
		})
	}
}

func TestMask_OffCenter(t *testing.T) {
	// Center in the top-left corner: the farthest corner is bottom-right
	// and normalization still puts it at 1.0.
	m := newTestMask(t, ShapeCircle, 50, 50, WithCenter(0, 0))
	if err := m.Render(0.99); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := m.At(0, 0); got != 1 {
		t.Errorf("center pixel = %v, want 1", got)
	}
	if got := m.At(49, 49); got != 0 {
		t.Errorf("far corner at t=0.99 = %v, want 0", got)
	}
	if err := m.Render(1); err != nil {
		t.Fatalf("Render(1) error = %v", err)
	}
	if got := m.At(49, 49); got != 1 {
		t.Errorf("far corner at t=1 = %v, want 1", got)
	}
}

func TestMask_DirectionalWipe(t *testing.T) {
	m := newTestMask(t, ShapeRect, 100, 100, WithDirection(DirectionTop))
	if err := m.Render(0.5); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := m.At(50, 10); got != 1 {
		t.Errorf("top half = %v, want 1", got)
	}
	if got := m.At(50, 90); got != 0 {
		t.Errorf("bottom half = %v, want 0", got)
	}

	m = newTestMask(t, ShapeRect, 100, 100, WithDirection(DirectionLeft))
	if err := m.Render(0.5); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := m.At(10, 50); got != 1 {
		t.Errorf("left half = %v, want 1", got)
	}
	if got := m.At(90, 50); got != 0 {
		t.Errorf("right half = %v, want 0", got)
	}
}

func TestMask_Blinds(t *testing.T) {
	m := newTestMask(t, ShapeBlinds, 100, 100, WithBlindsCount(10))

	if err := m.Render(1); err != nil {
		t.Fatalf("Render(1) error = %v", err)
	}
	if got := countCovered(m); got != 100*100 {
		t.Errorf("covered at t=1 = %d, want full", got)
	}

	// At mid progress later strips lead earlier ones.
	if err := m.Render(0.5); err != nil {
		t.Fatalf("Render(0.5) error = %v", err)
	}
	first := m.At(50, 0)  // strip 0
	last := m.At(50, 95)  // strip 9
	if first != 0.5 {
		t.Errorf("strip 0 alpha = %v, want 0.5", first)
	}
	if last <= first {
		t.Errorf("strip 9 alpha = %v, want > strip 0 (%v)", last, first)
	}
}

func TestMask_BlindsVertical(t *testing.T) {
	m := newTestMask(t, ShapeBlinds, 100, 100, WithBlindsCount(10), WithDirection(DirectionLeft))
	if err := m.Render(0.5); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	// Vertical strips: alpha varies along x, constant along y.
	if m.At(5, 10) != m.At(5, 90) {
		t.Error("vertical strip alpha varies along y")
	}
	if m.At(5, 50) >= m.At(95, 50) {
		t.Errorf("strip alphas not increasing: %v vs %v", m.At(5, 50), m.At(95, 50))
	}
}

func TestMask_Text(t *testing.T) {
	m := newTestMask(t, ShapeText, 200, 100, WithText("Hi", 0.4))
	if err := m.Render(0); err != nil {
		t.Fatalf("Render(0) error = %v", err)
	}
	if got := countCovered(m); got != 0 {
		t.Errorf("covered at t=0 = %d, want 0", got)
	}

	if err := m.Render(1); err != nil {
		t.Fatalf("Render(1) error = %v", err)
	}
	covered := countCovered(m)
	if covered == 0 {
		t.Error("text mask covered nothing at t=1")
	}
	if covered == 200*100 {
		t.Error("text mask covered the whole canvas")
	}
}

func TestMask_AtOutOfBounds(t *testing.T) {
	m := newTestMask(t, ShapeCircle, 10, 10)
	if err := m.Render(1); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, pt := range [][2]int{{-1, 0}, {0, -1}, {10, 0}, {0, 10}} {
		if got := m.At(pt[0], pt[1]); got != 0 {
			t.Errorf("At(%d, %d) = %v, want 0", pt[0], pt[1], got)
		}
	}
}
