package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/chenBenjamin97/tennis-analyzer/pkg/detection"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/utils"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func bouncingBall() []detection.Frame {
	frames := make([]detection.Frame, 60)
	for i := range frames {
		y := float64(100 + 3*i)
		if i > 30 {
			y = float64(190 - 3*(i-30))
		}
		frames[i] = detection.Frame{utils.BallTrackID: {295, y - 5, 305, y + 5}}
	}
	frames[12] = detection.Frame{}
	return frames
}

func TestSaveTrajectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "trajectory.png")
	require.NoError(t, SaveTrajectory(file, "rally", bouncingBall(), []int{30}, 5))

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))
}

func TestWriteTrajectory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTrajectory(&buf, "rally", bouncingBall(), nil, 1))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestTrajectory(t *testing.T) {
	p, err := Trajectory("rally", bouncingBall(), []int{30, 45}, 5)
	require.NoError(t, err)
	assert.Equal(t, "rally", p.Title.Text)
	assert.Equal(t, 0.0, p.X.Min)
	assert.Equal(t, 59.0, p.X.Max)
}

func TestTrajectoryErrors(t *testing.T) {
	_, err := Trajectory("empty", make([]detection.Frame, 10), nil, 5)
	assert.True(t, errors.Is(err, utils.ErrInsufficientBallData))

	_, err = Trajectory("rally", bouncingBall(), []int{30, 60}, 5)
	assert.Error(t, err)
}
