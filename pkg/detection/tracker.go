package detection

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strings"

	"github.com/chenBenjamin97/tennis-analyzer/pkg/geometry"
)

//Output is one message of the detector: either the detections of one frame, or the court keypoints (read from the
//first frame, sent once)
type Output struct {
	FrameNumber    int                `json:"frame"`
	Players        Frame              `json:"players"`
	Ball           Frame              `json:"ball"`
	CourtKeypoints geometry.Keypoints `json:"court_keypoints"`
}

//IsKeypoints returns true for the court keypoints message
func (o *Output) IsKeypoints() bool {
	return len(o.CourtKeypoints) > 0
}

//RunDetector executes the python detector (YOLO players + fine tuned ball model + court keypoints model) on given
//video and passes each parsed message through outputC. The detector prints one JSON object per line and "EOF" when
//it is done. Because this function is the only one who writes to given chan, it will close it before returning.
func RunDetector(detectorPath, videoPath string, outputC chan<- Output) {
	cmd := exec.Command("python3", detectorPath, "--video", videoPath)

	defer func(outputC chan<- Output) {
		close(outputC)
	}(outputC)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		log.Printf("RunDetector: Error, got '%v'", err)
		return
	}
	defer stdout.Close()

	if err := cmd.Start(); err != nil {
		log.Printf("RunDetector: Error, got '%v'", err)
		return
	}

	if err := ParseOutput(stdout, outputC); err != nil {
		log.Printf("RunDetector: Error reading detector's output, got '%v'", err)
	}

	if err := cmd.Wait(); err != nil {
		log.Printf("RunDetector: Error waiting python's process, Got '%v'", err)
		return
	}
}

//ParseOutput reads detector lines from r until "EOF" (or end of stream) and sends them through outputC.
//Log lines ("FPS: ...") are skipped, lines that fail to parse are logged and skipped.
func ParseOutput(r io.Reader, outputC chan<- Output) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024) //a frame with many persons can be long

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "EOF" { //finished to read all frames
			return nil
		}

		if line == "" || strings.Contains(line, "FPS: ") { //this is a log print, skip it
			continue
		}

		if !strings.HasPrefix(line, "{") {
			continue
		}

		out := Output{}
		if err := json.Unmarshal([]byte(line), &out); err != nil {
			log.Printf("ParseOutput: Error, got '%v'", err)
			continue
		}

		outputC <- out
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("ParseOutput: Error, got '%w'", err)
	}

	return nil
}

//Collect drains outputC into a Match. Frames are placed by their frame number, missing frames stay empty.
func Collect(outputC <-chan Output, frameWidth, frameHeight int, fps float64) *Match {
	m := &Match{
		FrameWidth:  frameWidth,
		FrameHeight: frameHeight,
		FPS:         fps,
		Players:     make([]Frame, 0),
		Ball:        make([]Frame, 0),
	}

	for out := range outputC {
		if out.IsKeypoints() {
			m.CourtKeypoints = out.CourtKeypoints
			continue
		}

		if out.FrameNumber < 0 {
			continue
		}

		for len(m.Players) <= out.FrameNumber {
			m.Players = append(m.Players, Frame{})
			m.Ball = append(m.Ball, Frame{})
		}

		if out.Players != nil {
			m.Players[out.FrameNumber] = out.Players
		}
		if out.Ball != nil {
			m.Ball[out.FrameNumber] = out.Ball
		}
	}

	return m
}
