// Package detection holds the per-frame detections produced by the external player, ball and court models,
// the detector process reader and the on-disk detections cache.
package detection

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chenBenjamin97/tennis-analyzer/pkg/geometry"
)

//Frame maps a tracker ID to its bounding box for one video frame
type Frame map[int]geometry.BoundingBox

//Match is every detection of one video, index i of Players/Ball is frame number i
type Match struct {
	FrameWidth     int                `json:"frame_width"`
	FrameHeight    int                `json:"frame_height"`
	FPS            float64            `json:"fps,omitempty"`
	CourtKeypoints geometry.Keypoints `json:"court_keypoints"`
	Players        []Frame            `json:"players"`
	Ball           []Frame            `json:"ball"`
}

//FrameCount returns the number of frames covered by the detections
func (m *Match) FrameCount() int {
	if len(m.Ball) > len(m.Players) {
		return len(m.Ball)
	}

	return len(m.Players)
}

//Validate checks the detections are usable before analysis
func (m *Match) Validate() error {
	if m.FrameWidth <= 0 || m.FrameHeight <= 0 {
		return fmt.Errorf("Validate: Bad frame size %dx%d", m.FrameWidth, m.FrameHeight)
	}

	if len(m.Players) == 0 {
		return fmt.Errorf("Validate: No player detections")
	}

	if m.FPS < 0 {
		return fmt.Errorf("Validate: Negative FPS %v", m.FPS)
	}

	return nil
}

//LoadFile reads cached detections written by SaveFile
func LoadFile(path string) (*Match, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("LoadFile: Could not read '%s', got '%w'", path, err)
	}

	m := &Match{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("LoadFile: Could not parse '%s', got '%w'", path, err)
	}

	return m, nil
}

//SaveFile caches detections so the detector does not have to run again for the same video
func SaveFile(path string, m *Match) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("SaveFile: Could not encode detections, got '%w'", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("SaveFile: Could not write '%s', got '%w'", path, err)
	}

	return nil
}
