package slidefx

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidFPS is returned when a frame rate is zero or negative.
var ErrInvalidFPS = errors.New("slidefx: fps must be positive")

// ErrNegativeDuration is returned when a phase duration is negative.
var ErrNegativeDuration = errors.New("slidefx: negative duration")

// DistributeFrames converts per-phase durations in milliseconds into
// integer frame counts at the given frame rate. The counts sum exactly
// to round(totalMs/1000*fps), so a long sequence of phases never drifts
// against wall-clock time no matter how the individual durations round.
//
// Each phase is first allocated ceil(ms/1000*fps) frames, then the
// surplus over the total is taken back one frame at a time cycling
// through the phases, never reducing a phase below one frame. Rounding
// correction is therefore spread evenly instead of landing on the first
// or last phase.
func DistributeFrames(fps float64, durationsMs []int) ([]int, error) {
	totalMs := 0
	for _, d := range durationsMs {
		if d < 0 {
			return nil, fmt.Errorf("%w: %dms", ErrNegativeDuration, d)
		}
		totalMs += d
	}
	target := int(math.Round(float64(totalMs) / 1000.0 * fps))
	return DistributeFramesTo(fps, durationsMs, target)
}

// DistributeFramesTo is DistributeFrames with an explicit total frame
// target instead of the rounded sum of durations. Used when the frame
// total is dictated externally, such as matching an audio track length.
//
// When the target is smaller than the number of phases the result
// cannot sum to it, since every phase keeps at least one frame; the
// scheduler then returns all ones rather than dropping phases.
func DistributeFramesTo(fps float64, durationsMs []int, target int) ([]int, error) {
	if fps <= 0 {
		return nil, ErrInvalidFPS
	}
	if len(durationsMs) == 0 {
		return []int{}, nil
	}

	counts := make([]int, len(durationsMs))
	total := 0
	for i, d := range durationsMs {
		if d < 0 {
			return nil, fmt.Errorf("%w: %dms", ErrNegativeDuration, d)
		}
		counts[i] = int(math.Ceil(float64(d) / 1000.0 * fps))
		if counts[i] < 1 {
			counts[i] = 1
		}
		total += counts[i]
	}

	delta := total - target
	for delta != 0 {
		progressed := false
		for i := range counts {
			if delta == 0 {
				break
			}
			if delta > 0 {
				if counts[i] > 1 {
					counts[i]--
					delta--
					progressed = true
				}
			} else {
				counts[i]++
				delta++
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	return counts, nil
}
