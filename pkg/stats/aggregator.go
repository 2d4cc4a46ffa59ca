// Package stats derives per player shot and movement speeds from the shot frames and the mini court positions.
package stats

import (
	"github.com/chenBenjamin97/tennis-analyzer/pkg/geometry"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/units"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/utils"
	"github.com/pkg/errors"
)

//Player is a player slot
type Player int

const (
	Player1 Player = iota
	Player2
)

//Opponent returns the other slot
func (p Player) Opponent() Player {
	return 1 - p
}

//Number returns the 1-based player number used for display
func (p Player) Number() int {
	return int(p) + 1
}

//PlayerStats is one player's running totals
type PlayerStats struct {
	ShotCount          int     `json:"shot_count"`
	TotalShotSpeed     float64 `json:"total_shot_speed"`
	LastShotSpeed      float64 `json:"last_shot_speed"`
	TotalMovementSpeed float64 `json:"total_movement_speed"` //summed while being the opponent of a shot
	LastMovementSpeed  float64 `json:"last_movement_speed"`
}

//Record is the state of both players from Frame on, until the next record
type Record struct {
	Frame   int            `json:"frame"`
	Players [2]PlayerStats `json:"players"`
}

//Shot is what happened between two consecutive shot frames
type Shot struct {
	StartFrame    int     `json:"start_frame"`
	EndFrame      int     `json:"end_frame"`
	Striker       Player  `json:"striker"`
	BallSpeed     float64 `json:"ball_speed"`
	OpponentSpeed float64 `json:"opponent_speed"`
}

//Positions holds mini court positions indexed by frame number
type Positions struct {
	Ball    []geometry.Point
	Players [][2]geometry.Point
}

//Options holds the conversion parameters for speeds
type Options struct {
	FPS              float64
	CourtWidthPixels float64 //mini court pixel length of the doubles width
	SpeedUnit        string  //units.KMPH when empty
}

func (o Options) unit() string {
	if o.SpeedUnit == "" {
		return units.KMPH
	}

	return o.SpeedUnit
}

//speed converts a mini court pixel distance covered in seconds to the configured unit
func (o Options) speed(pixels, seconds float64) float64 {
	meters := geometry.PixelsToMeters(pixels, utils.DoubleLineWidth, o.CourtWidthPixels)
	return units.Speed(meters, seconds, o.unit())
}

//Interval measures the shot played between start and end frames. The striker is the player closest to the ball on
//start frame (Player1 on a tie).
func Interval(start, end int, pos Positions, opts Options) (Shot, error) {
	if opts.FPS <= 0 || end <= start {
		return Shot{}, errors.Wrapf(utils.ErrInvalidFrameInterval, "frames [%d, %d] at %v fps", start, end, opts.FPS)
	}

	if opts.CourtWidthPixels <= 0 {
		return Shot{}, errors.Wrapf(utils.ErrMissingReferenceData, "court width %v pixels", opts.CourtWidthPixels)
	}

	if start < 0 || end >= len(pos.Ball) || end >= len(pos.Players) {
		return Shot{}, errors.Wrapf(utils.ErrMissingReferenceData, "no positions for frames [%d, %d]", start, end)
	}

	seconds := float64(end-start) / opts.FPS
	ballStart := pos.Ball[start]

	striker := Player1
	if geometry.Distance(pos.Players[start][Player2], ballStart) < geometry.Distance(pos.Players[start][Player1], ballStart) {
		striker = Player2
	}
	opponent := striker.Opponent()

	return Shot{
		StartFrame:    start,
		EndFrame:      end,
		Striker:       striker,
		BallSpeed:     opts.speed(geometry.Distance(ballStart, pos.Ball[end]), seconds),
		OpponentSpeed: opts.speed(geometry.Distance(pos.Players[start][opponent], pos.Players[end][opponent]), seconds),
	}, nil
}

//Shots measures every interval between consecutive shot frames
func Shots(events []int, pos Positions, opts Options) ([]Shot, error) {
	shots := make([]Shot, 0, len(events))
	for i := 0; i+1 < len(events); i++ {
		shot, err := Interval(events[i], events[i+1], pos, opts)
		if err != nil {
			return nil, err
		}
		shots = append(shots, shot)
	}

	return shots, nil
}

//Apply returns the record following r once shot s is played. r is left untouched.
func (r Record) Apply(s Shot) Record {
	next := r //Players is an array, copied by value
	next.Frame = s.StartFrame

	striker := &next.Players[s.Striker]
	striker.ShotCount++
	striker.TotalShotSpeed += s.BallSpeed
	striker.LastShotSpeed = s.BallSpeed

	opponent := &next.Players[s.Striker.Opponent()]
	opponent.TotalMovementSpeed += s.OpponentSpeed
	opponent.LastMovementSpeed = s.OpponentSpeed

	return next
}

//Fold returns the zero record of frame 0 followed by one record per shot
func Fold(shots []Shot) []Record {
	records := make([]Record, 1, len(shots)+1)
	for _, s := range shots {
		records = append(records, records[len(records)-1].Apply(s))
	}

	return records
}

//Aggregate measures the shots between events and folds them into records
func Aggregate(events []int, pos Positions, opts Options) ([]Record, error) {
	shots, err := Shots(events, pos, opts)
	if err != nil {
		return nil, err
	}

	return Fold(shots), nil
}
