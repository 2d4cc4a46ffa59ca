// Package analysis runs the whole tennis analysis over the detections of one video: player selection, mini court
// projection, shot detection and per player stats.
package analysis

import (
	"log"

	"github.com/chenBenjamin97/tennis-analyzer/pkg/court"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/detection"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/geometry"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/players"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/shots"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/stats"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/utils"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

//Result is everything an analysis run produces. Positions, Rows and the filtered detections are indexed by frame.
type Result struct {
	RunID      string           `json:"run_id"`
	FrameCount int              `json:"frame_count"`
	FPS        float64          `json:"fps"`
	SpeedUnit  string           `json:"speed_unit"`
	MiniCourt  *court.MiniCourt `json:"mini_court"`
	PlayerIDs  [2]int           `json:"player_ids"` //track ID of Player1 and Player2
	Positions  stats.Positions  `json:"-"`
	ShotFrames []int            `json:"shot_frames"`
	Shots      []stats.Shot     `json:"shots"`
	Rows       []stats.Row      `json:"rows"`

	Players []detection.Frame `json:"-"` //source frame boxes of the chosen players only
}

//Analyze runs the pipeline over match. A video without usable ball detections is not an error: it gets no shots and
//a stats table of zeros.
func Analyze(match *detection.Match, cfg Config) (*Result, error) {
	if err := match.Validate(); err != nil {
		return nil, err
	}

	fps := match.FPS
	if fps <= 0 {
		fps = cfg.Shots.FPS
	}

	mc, err := court.NewMiniCourt(match.FrameWidth, match.FrameHeight, cfg.MiniCourt)
	if err != nil {
		return nil, err
	}

	ids, playerFrames, err := players.ChooseAndFilter(match.CourtKeypoints, match.Players)
	if err != nil {
		return nil, err
	}

	if len(ids) < players.PlayersNum {
		return nil, errors.Wrapf(utils.ErrMissingReferenceData, "Analyze: found %d players on the first frame", len(ids))
	}

	projector, err := court.NewProjector(match.CourtKeypoints, mc)
	if err != nil {
		return nil, err
	}

	frameCount := match.FrameCount()
	pos, err := project(projector, playerFrames, match.Ball, ids, frameCount)
	if err != nil {
		return nil, err
	}

	shotOpts := cfg.Shots
	shotOpts.FPS = fps
	events, err := shots.Segment(match.Ball, shotOpts)
	if errors.Is(err, utils.ErrInsufficientBallData) {
		log.Printf("Analyze: No shot data, got '%v'", err)
	} else if err != nil {
		return nil, err
	}

	statOpts := stats.Options{FPS: fps, CourtWidthPixels: mc.Width(), SpeedUnit: cfg.SpeedUnit}
	played, err := stats.Shots(events, pos, statOpts)
	if err != nil {
		return nil, err
	}

	res := &Result{
		RunID:      uuid.New().String(),
		FrameCount: frameCount,
		FPS:        fps,
		SpeedUnit:  cfg.SpeedUnit,
		MiniCourt:  mc,
		Positions:  pos,
		ShotFrames: events,
		Shots:      played,
		Rows:       stats.Table(stats.Fold(played), frameCount),
		Players:    playerFrames,
	}

	for id, slot := range players.Slots(ids) {
		res.PlayerIDs[slot] = id
	}

	return res, nil
}

//project returns the mini court position of both players and the ball on every frame. Frames where a player or the
//ball was not detected keep the last known position.
func project(p *court.Projector, playerFrames, ballFrames []detection.Frame, ids []int, frameCount int) (stats.Positions, error) {
	slots := players.Slots(ids)
	known := [2]map[int]geometry.Point{{}, {}}
	for i, frame := range playerFrames {
		for id, point := range p.ProjectFrame(frame, false) {
			known[slots[id]][i] = point
		}
	}

	pos := stats.Positions{Players: make([][2]geometry.Point, frameCount)}
	for slot := range known {
		seq, ok := utils.FillSequence(frameCount, known[slot])
		if !ok {
			return stats.Positions{}, errors.Wrapf(utils.ErrMissingReferenceData, "project: player %d was never detected", slot+1)
		}

		for i := range seq {
			pos.Players[i][slot] = seq[i]
		}
	}

	ball := make(map[int]geometry.Point)
	for i, frame := range ballFrames {
		if bbox, ok := shots.BallBox(frame); ok {
			ball[i] = p.Project(bbox, true)
		}
	}

	if seq, ok := utils.FillSequence(frameCount, ball); ok {
		pos.Ball = seq
	} else {
		pos.Ball = make([]geometry.Point, frameCount) //no ball, no shots to measure
	}

	return pos, nil
}
