package analysis

import (
	"testing"

	"github.com/chenBenjamin97/tennis-analyzer/pkg/court"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/detection"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/geometry"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/stats"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/units"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/utils"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frames = 100

//rallyMatch is a 1280x720 video whose detected court keypoints are exactly the mini court ones, so the projection
//leaves positions where they are. Player 3 stands at the far baseline, player 5 near the other one and person 9 is
//in the crowd. The ball goes up until frame 30, down until frame 70, then up again.
func rallyMatch(t *testing.T) *detection.Match {
	t.Helper()

	mc, err := court.NewMiniCourt(1280, 720, court.DefaultOptions())
	require.NoError(t, err)

	m := &detection.Match{
		FrameWidth:     1280,
		FrameHeight:    720,
		CourtKeypoints: mc.Keypoints(),
		Players:        make([]detection.Frame, frames),
		Ball:           make([]detection.Frame, frames),
	}

	for i := 0; i < frames; i++ {
		m.Players[i] = detection.Frame{
			3: {1030, 40, 1070, 100},
			5: {1130, 420, 1170, 500},
			9: {100, 600, 140, 700},
		}

		var y float64
		switch {
		case i <= 30:
			y = float64(200 - 2*i)
		case i <= 70:
			y = float64(140 + 2*(i-30))
		default:
			y = float64(220 - 2*(i-70))
		}
		m.Ball[i] = detection.Frame{utils.BallTrackID: {1095, y - 5, 1105, y + 5}}
	}

	return m
}

func TestAnalyzeRally(t *testing.T) {
	res, err := Analyze(rallyMatch(t), DefaultConfig())
	require.NoError(t, err)

	_, err = uuid.Parse(res.RunID)
	assert.NoError(t, err)

	assert.Equal(t, frames, res.FrameCount)
	assert.Equal(t, utils.DefaultFPS, res.FPS, "detections without fps use the configured one")
	assert.Equal(t, [2]int{3, 5}, res.PlayerIDs)
	assert.Equal(t, []int{30, 70}, res.ShotFrames)

	for _, frame := range res.Players {
		assert.NotContains(t, frame, 9)
	}

	require.Len(t, res.Positions.Players, frames)
	require.Len(t, res.Positions.Ball, frames)
	assert.InDelta(t, 1050, res.Positions.Players[0][stats.Player1].X, 1e-6)
	assert.InDelta(t, 100, res.Positions.Players[0][stats.Player1].Y, 1e-6)
	assert.InDelta(t, 140, res.Positions.Ball[30].Y, 1e-6)

	require.Len(t, res.Shots, 1)
	shot := res.Shots[0]
	assert.Equal(t, stats.Player1, shot.Striker)
	wantSpeed := units.Speed(80*utils.DoubleLineWidth/210, 40.0/24, units.KMPH)
	assert.InDelta(t, wantSpeed, shot.BallSpeed, 1e-6)
	assert.InDelta(t, 0, shot.OpponentSpeed, 1e-6)

	require.Len(t, res.Rows, frames)
	assert.Equal(t, 0, res.Rows[29].Players[stats.Player1].ShotCount)
	assert.Nil(t, res.Rows[29].AverageShotSpeed[stats.Player1])
	assert.Equal(t, 1, res.Rows[30].Players[stats.Player1].ShotCount)
	assert.Equal(t, 1, res.Rows[frames-1].Players[stats.Player1].ShotCount)
	assert.Equal(t, 0, res.Rows[frames-1].Players[stats.Player2].ShotCount)
}

func TestAnalyzeUsesVideoFPS(t *testing.T) {
	m := rallyMatch(t)
	m.FPS = 48

	res, err := Analyze(m, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 48.0, res.FPS)
	assert.Equal(t, []int{30}, res.ShotFrames, "70 is less than a second after 30 at 48 fps")
	assert.Empty(t, res.Shots)
}

func TestAnalyzeWithoutBall(t *testing.T) {
	m := rallyMatch(t)
	for i := range m.Ball {
		m.Ball[i] = detection.Frame{}
	}
	m.Ball[10] = detection.Frame{utils.BallTrackID: {1095, 95, 1105, 105}}

	res, err := Analyze(m, DefaultConfig())
	require.NoError(t, err)

	assert.Empty(t, res.ShotFrames)
	assert.Empty(t, res.Shots)
	require.Len(t, res.Rows, frames)
	for _, row := range res.Rows {
		assert.Equal(t, [2]stats.PlayerStats{}, row.Players)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(m *detection.Match)
		target error
	}{
		{
			name:   "frame smaller than the mini court",
			modify: func(m *detection.Match) { m.FrameWidth, m.FrameHeight = 200, 200 },
			target: utils.ErrInvalidFrameSize,
		},
		{
			name:   "no court keypoints",
			modify: func(m *detection.Match) { m.CourtKeypoints = nil },
			target: utils.ErrMissingReferenceData,
		},
		{
			name:   "partial court keypoints",
			modify: func(m *detection.Match) { m.CourtKeypoints = m.CourtKeypoints[:8] },
			target: utils.ErrMissingReferenceData,
		},
		{
			name:   "single player",
			modify: func(m *detection.Match) { m.Players[0] = detection.Frame{3: {1030, 40, 1070, 100}} },
			target: utils.ErrMissingReferenceData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := rallyMatch(t)
			tt.modify(m)

			_, err := Analyze(m, DefaultConfig())
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
		})
	}
}

func TestAnalyzeRejectsInvalidMatch(t *testing.T) {
	_, err := Analyze(&detection.Match{FrameWidth: 1280, FrameHeight: 720}, DefaultConfig())
	assert.Error(t, err)
}

func TestProjectHoldsLastPosition(t *testing.T) {
	m := rallyMatch(t)
	delete(m.Players[50], 5)
	m.Players[51][5] = geometry.BoundingBox{0, 0, 0, 0}

	res, err := Analyze(m, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, res.Positions.Players[49][stats.Player2], res.Positions.Players[50][stats.Player2])
	assert.Equal(t, res.Positions.Players[49][stats.Player2], res.Positions.Players[51][stats.Player2])
}

func TestConfigFromViper(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults()

	cfg, err := ConfigFromViper()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	viper.Set("analysis.speed_unit", units.MPH)
	viper.Set("analysis.fps", 30)
	viper.Set("minicourt.width", 300)
	cfg, err = ConfigFromViper()
	require.NoError(t, err)
	assert.Equal(t, units.MPH, cfg.SpeedUnit)
	assert.Equal(t, 30.0, cfg.Shots.FPS)
	assert.Equal(t, 300, cfg.MiniCourt.Width)
}

func TestConfigFromViperErrors(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults()

	viper.Set("analysis.speed_unit", "knots")
	_, err := ConfigFromViper()
	assert.Error(t, err)

	viper.Set("analysis.speed_unit", units.KMPH)
	viper.Set("analysis.fps", 0)
	_, err = ConfigFromViper()
	assert.True(t, errors.Is(err, utils.ErrInvalidFrameInterval))
}
