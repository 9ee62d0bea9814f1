// Package slidefx renders timed visual effects onto image sprites and
// composites them frame by frame into a video sequence.
//
// # Overview
//
// slidefx is a pure Go frame compositor for slideshow-style videos. It
// provides a sprite transform model with bounding-box-limited per-pixel
// sampling and alpha blending, a procedural shape-mask generator with
// distance-field feathering, and a deterministic frame scheduler that
// converts millisecond effect durations into an exact, drift-free integer
// frame sequence.
//
// # Quick Start
//
//	import "github.com/slidefx/slidefx"
//
//	// Create a stage (the canvas that frames are rendered into)
//	stage, _ := slidefx.NewStage(1280, 720)
//	defer stage.Close()
//
//	// Composite a sprite onto the canvas
//	sprite := slidefx.NewSprite(source)
//	stage.Clear(slidefx.Black)
//	if err := stage.Draw(sprite); err != nil {
//		// ...
//	}
//
// The effects, slideshow and encode packages build the full pipeline on
// top of this core: named effect factories mutate sprite transforms and
// mask growth once per frame, the slideshow driver schedules frames per
// slide phase, and the encoder streams raw frames to an ffmpeg process.
//
// # Architecture
//
// The library is organized into:
//   - Core: Pixmap, Sprite, Stage, Mask, shape kernels, frame scheduler
//   - internal/parallel: worker pool for row-parallel pixel kernels
//   - easing, effects: progress curves and the effect catalog
//   - slideshow, encode, imageio: driver, ffmpeg writer, image loading
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians
//
// # Concurrency
//
// Per-pixel work within one sprite draw is row-parallel; successive
// Draw calls are strictly ordered, so paint order is call order. A
// Stage must not be drawn to concurrently.
package slidefx

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
