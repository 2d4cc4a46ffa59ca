// Package shots finds the frames where the ball is hit, from the ball's vertical trajectory
package shots

import (
	"math"

	"github.com/chenBenjamin97/tennis-analyzer/pkg/detection"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/geometry"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/utils"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/stat"
)

//Options tunes shot detection
type Options struct {
	FPS             float64 //video frame rate
	MinShotSeconds  float64 //shortest plausible time between two shots
	SmoothingWindow int     //rolling mean window over the trajectory, 1 or less disables smoothing
}

//DefaultOptions returns 24 fps, 1 second between shots and a 5 frames rolling mean
func DefaultOptions() Options {
	return Options{
		FPS:             utils.DefaultFPS,
		MinShotSeconds:  utils.DefaultMinShotSeconds,
		SmoothingWindow: utils.DefaultSmoothingWindow,
	}
}

//MinGapFrames returns the minimum number of frames between two shots, at least 1
func (o Options) MinGapFrames() int {
	gap := int(math.Round(o.FPS * o.MinShotSeconds))
	if gap < 1 {
		return 1
	}

	return gap
}

//BallBox returns the ball's box in one frame: the conventional ball track ID, or the only box of the frame
func BallBox(frame detection.Frame) (geometry.BoundingBox, bool) {
	if bbox, ok := frame[utils.BallTrackID]; ok && bbox.Valid() {
		return bbox, true
	}

	if len(frame) == 1 {
		for _, bbox := range frame {
			if bbox.Valid() {
				return bbox, true
			}
		}
	}

	return geometry.BoundingBox{}, false
}

//BallSeries returns the ball center's y for every frame. Frames without a detection are linearly interpolated between
//their neighbours (held at the first/last detection outside of them), then the series is smoothed by a centered
//rolling mean of given window (see smooth).
func BallSeries(ball []detection.Frame, window int) ([]float64, error) {
	xs := make([]float64, 0, len(ball))
	ys := make([]float64, 0, len(ball))
	for i, frame := range ball {
		if bbox, ok := BallBox(frame); ok {
			xs = append(xs, float64(i))
			ys = append(ys, geometry.Center(bbox).Y)
		}
	}

	if len(xs) < 2 {
		return nil, errors.Wrapf(utils.ErrInsufficientBallData, "%d ball detections over %d frames", len(xs), len(ball))
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return nil, errors.Wrap(err, "BallSeries: interpolation")
	}

	series := make([]float64, len(ball))
	for i := range series {
		series[i] = pl.Predict(float64(i))
	}

	return smooth(series, window), nil
}

//smooth returns the centered rolling mean of series. Past either end the series is point reflected around its edge
//sample, so a straight run stays straight and an extremum close to the edge survives.
func smooth(series []float64, window int) []float64 {
	if window <= 1 || len(series) < 2 {
		return series
	}

	half := window / 2
	smoothed := make([]float64, len(series))
	buf := make([]float64, window)
	for i := range series {
		for j := range buf {
			buf[j] = reflectAt(series, i-half+j)
		}
		smoothed[i] = stat.Mean(buf, nil)
	}

	return smoothed
}

//reflectAt returns series[i], or its point reflection around the first/last sample when i is out of range
func reflectAt(series []float64, i int) float64 {
	last := len(series) - 1
	switch {
	case i < 0:
		k := -i
		if k > last {
			k = last
		}
		return 2*series[0] - series[k]
	case i > last:
		k := 2*last - i
		if k < 0 {
			k = 0
		}
		return 2*series[last] - series[k]
	default:
		return series[i]
	}
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

//turningPoints returns every frame where the trajectory changes direction. When the turn goes through a flat run,
//the first frame of the run is the turning point.
func turningPoints(series []float64) []int {
	points := make([]int, 0)
	prevSign, flatStart := 0, -1

	for i := 1; i < len(series); i++ {
		s := sign(series[i] - series[i-1])
		if s == 0 {
			if flatStart < 0 {
				flatStart = i - 1
			}
			continue
		}

		if prevSign != 0 && s != prevSign {
			turn := i - 1
			if flatStart >= 0 {
				turn = flatStart
			}
			points = append(points, turn)
		}

		prevSign, flatStart = s, -1
	}

	return points
}

//merge drops every candidate closer than minGap frames to the last kept one, so the first of close candidates wins
func merge(candidates []int, minGap int) []int {
	events := make([]int, 0, len(candidates))
	for _, c := range candidates {
		if len(events) == 0 || c-events[len(events)-1] >= minGap {
			events = append(events, c)
		}
	}

	return events
}

//Segment returns the strictly increasing frame numbers of ball shots. With fewer than 2 ball detections it returns an
//empty slice and ErrInsufficientBallData, callers should treat it as "no shot data".
func Segment(ball []detection.Frame, opts Options) ([]int, error) {
	if opts.FPS <= 0 || opts.MinShotSeconds < 0 {
		return []int{}, errors.Wrapf(utils.ErrInvalidFrameInterval, "fps %v, min shot seconds %v", opts.FPS, opts.MinShotSeconds)
	}

	series, err := BallSeries(ball, opts.SmoothingWindow)
	if err != nil {
		return []int{}, err
	}

	return merge(turningPoints(series), opts.MinGapFrames()), nil
}

//Bounded adds the first and last frames of the video around events, so consumers can form closed intervals
//[b[i], b[i+1]] covering the whole video.
func Bounded(events []int, frameCount int) []int {
	if frameCount <= 0 {
		return []int{}
	}

	last := frameCount - 1
	bounded := []int{0}
	for _, e := range events {
		if e > bounded[len(bounded)-1] && e < last {
			bounded = append(bounded, e)
		}
	}

	if last > bounded[len(bounded)-1] {
		bounded = append(bounded, last)
	}

	return bounded
}
