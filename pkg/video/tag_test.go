package video

import (
	"errors"
	"testing"

	"github.com/chenBenjamin97/tennis-analyzer/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

type recordingWriter struct {
	calls   []string
	failAt  int
	written int
}

func (w *recordingWriter) Write(img gocv.Mat) error {
	w.calls = append(w.calls, "write")
	w.written++
	if w.failAt > 0 && w.written == w.failAt {
		return errors.New("disk full")
	}
	return nil
}

func (w *recordingWriter) Close() error {
	w.calls = append(w.calls, "close")
	return nil
}

//framesReader returns a read func yielding count blank frames
func framesReader(t *testing.T, count int) func(*gocv.Mat) bool {
	t.Helper()

	blank := gocv.NewMatWithSize(72, 128, gocv.MatTypeCV8UC3)
	t.Cleanup(func() { blank.Close() })

	read := 0
	return func(m *gocv.Mat) bool {
		if read == count {
			return false
		}
		read++
		blank.CopyTo(m)
		return true
	}
}

func TestRenderVideoClosesWriterBeforeReturning(t *testing.T) {
	w := &recordingWriter{}
	plotted := make([]int, 0)

	err := renderVideo(framesReader(t, 3), w, func(frame *gocv.Mat, frameNumber int) {
		plotted = append(plotted, frameNumber)
	})

	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, plotted)
	assert.Equal(t, []string{"write", "write", "write", "close"}, w.calls)
}

func TestRenderVideoClosesWriterOnError(t *testing.T) {
	w := &recordingWriter{failAt: 2}

	err := renderVideo(framesReader(t, 5), w, func(*gocv.Mat, int) {})

	assert.Error(t, err)
	assert.Equal(t, []string{"write", "write", "close"}, w.calls)
}

func TestPlotCourtKeypoints(t *testing.T) {
	frame := gocv.NewMatWithSize(200, 300, gocv.MatTypeCV8UC3)
	defer frame.Close()
	frame.SetTo(gocv.NewScalar(0, 0, 0, 0))

	plotCourtKeypoints(&frame, geometry.Keypoints{50, 60, 250, 150})

	for _, p := range [][2]int{{50, 60}, {250, 150}} {
		v := frame.GetVecbAt(p[1], p[0])
		assert.Equal(t, []uint8{keypointColor.B, keypointColor.G, keypointColor.R}, []uint8{v[0], v[1], v[2]})
	}

	untouched := frame.GetVecbAt(190, 10)
	assert.Equal(t, []uint8{0, 0, 0}, []uint8{untouched[0], untouched[1], untouched[2]})
}
