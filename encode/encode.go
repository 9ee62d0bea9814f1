// Package encode writes rendered frames to a video file by piping raw
// BGR24 frames into an external ffmpeg process. The encoder is an
// opaque sink: the renderer hands it one canvas-sized frame at a time,
// in order, and ffmpeg handles codec, container and muxing.
package encode

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/slidefx/slidefx"
)

// FFmpegPath is the ffmpeg binary invoked by writers. Override to pin a
// specific build.
var FFmpegPath = "ffmpeg"

// ErrWriterClosed is returned by WriteFrame after Close or Abort.
var ErrWriterClosed = errors.New("encode: writer closed")

// ErrFrameSize is returned by WriteFrame when a frame's dimensions do
// not match the writer's configured size. Frame dimensions must not
// drift across a run.
var ErrFrameSize = errors.New("encode: frame size mismatch")

// Options configures the encoder. The zero value selects software H.264
// at visually lossless quality.
type Options struct {
	// Codec is the ffmpeg video encoder. Default "libx264". Codecs
	// ending in "nvenc" switch to the NVIDIA hardware parameter set.
	Codec string

	// PixelFormat is the output pixel format. Default "yuv420p".
	PixelFormat string

	// CRF is the constant rate factor, 0-51, lower is better.
	// Default 18.
	CRF int

	// Preset is the encoder speed/size tradeoff. Default "medium".
	Preset string

	// AudioPath optionally muxes an audio file into the output,
	// encoded as AAC.
	AudioPath string

	// ExtraArgs are appended verbatim before the output path.
	ExtraArgs []string
}

func (o *Options) withDefaults() Options {
	out := *o
	if out.Codec == "" {
		out.Codec = "libx264"
	}
	if out.PixelFormat == "" {
		out.PixelFormat = "yuv420p"
	}
	if out.CRF == 0 {
		out.CRF = 18
	}
	if out.Preset == "" {
		out.Preset = "medium"
	}
	return out
}

// Writer streams frames into a running ffmpeg process. Create with
// NewWriter, feed with WriteFrame, finish with Close. Not safe for
// concurrent use; the render loop is the single writer.
type Writer struct {
	width  int
	height int
	fps    float64

	cmd   *exec.Cmd
	stdin io.WriteCloser

	buf    []byte
	frames int
	closed bool
}

// NewWriter starts an ffmpeg process encoding to outputPath. The output
// directory is created if missing. Fails fast if ffmpeg cannot be
// started or the dimensions are invalid.
func NewWriter(outputPath string, width, height int, fps float64, opts Options) (*Writer, error) {
	if width <= 0 || height <= 0 {
		return nil, slidefx.ErrInvalidDimensions
	}
	if fps <= 0 {
		return nil, slidefx.ErrInvalidFPS
	}
	opts = opts.withDefaults()

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("encode: creating output directory: %w", err)
		}
	}

	args := buildArgs(outputPath, width, height, fps, opts)
	cmd := exec.Command(FFmpegPath, args...) //nolint:gosec // args are built from validated options
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("encode: opening ffmpeg stdin: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("encode: starting %s: %w", FFmpegPath, err)
	}

	slidefx.Logger().Debug("ffmpeg started",
		"path", FFmpegPath,
		"output", outputPath,
		"size", fmt.Sprintf("%dx%d", width, height),
		"fps", fps,
		"codec", opts.Codec)

	return &Writer{
		width:  width,
		height: height,
		fps:    fps,
		cmd:    cmd,
		stdin:  stdin,
		buf:    make([]byte, width*height*3),
	}, nil
}

func buildArgs(outputPath string, width, height int, fps float64, opts Options) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-vcodec", "rawvideo",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-pix_fmt", "bgr24",
		"-r", strconv.FormatFloat(fps, 'f', -1, 64),
		"-i", "-",
	}

	if opts.AudioPath != "" {
		args = append(args, "-i", opts.AudioPath, "-c:a", "aac", "-shortest")
	} else {
		args = append(args, "-an")
	}

	args = append(args,
		"-vcodec", opts.Codec,
		"-pix_fmt", opts.PixelFormat,
		"-crf", strconv.Itoa(opts.CRF),
		"-preset", opts.Preset,
	)

	if strings.HasSuffix(opts.Codec, "nvenc") {
		args = append(args,
			"-gpu", "0",
			"-rc", "vbr_hq",
			"-profile:v", "high",
		)
	} else {
		// Slideshows are mostly static content.
		args = append(args, "-tune", "stillimage")
	}

	args = append(args, opts.ExtraArgs...)
	return append(args, outputPath)
}

// WriteFrame encodes one frame. The pixmap must match the writer's
// configured dimensions exactly.
func (w *Writer) WriteFrame(frame *slidefx.Pixmap) error {
	if w.closed {
		return ErrWriterClosed
	}
	if frame.Width() != w.width || frame.Height() != w.height {
		return fmt.Errorf("%w: want %dx%d, got %dx%d",
			ErrFrameSize, w.width, w.height, frame.Width(), frame.Height())
	}

	if err := frame.WriteBGR24(w.buf); err != nil {
		return err
	}
	if _, err := w.stdin.Write(w.buf); err != nil {
		return fmt.Errorf("encode: writing frame %d: %w", w.frames, err)
	}
	w.frames++
	return nil
}

// FrameCount returns the number of frames written so far.
func (w *Writer) FrameCount() int { return w.frames }

// Duration returns the video duration of the frames written so far.
func (w *Writer) Duration() time.Duration {
	return time.Duration(float64(w.frames) / w.fps * float64(time.Second))
}

// Close ends the stream and waits for ffmpeg to finish encoding and
// muxing. Safe to call once; subsequent WriteFrame calls fail with
// ErrWriterClosed.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.stdin.Close(); err != nil {
		return fmt.Errorf("encode: closing ffmpeg stdin: %w", err)
	}
	if err := w.cmd.Wait(); err != nil {
		return fmt.Errorf("encode: ffmpeg exited: %w", err)
	}
	slidefx.Logger().Debug("ffmpeg finished", "frames", w.frames)
	return nil
}

// Abort tears the encoder down after a render failure. ffmpeg gets two
// seconds to exit on its own after stdin closes, then is killed. The
// partial output file is left on disk.
func (w *Writer) Abort() {
	if w.closed {
		return
	}
	w.closed = true
	_ = w.stdin.Close()

	done := make(chan error, 1)
	go func() { done <- w.cmd.Wait() }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		slidefx.Logger().Warn("ffmpeg did not exit, killing")
		_ = w.cmd.Process.Kill()
		<-done
	}
}

// Installed reports whether the configured ffmpeg binary can be run.
func Installed() bool {
	_, err := Version()
	return err == nil
}

// Version returns the first line of `ffmpeg -version` output.
func Version() (string, error) {
	out, err := exec.Command(FFmpegPath, "-version").Output() //nolint:gosec // FFmpegPath is operator-controlled
	if err != nil {
		return "", fmt.Errorf("encode: running %s: %w", FFmpegPath, err)
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line), nil
}
