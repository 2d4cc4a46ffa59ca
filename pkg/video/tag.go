package video

import (
	"fmt"
	"log"
	"os"
	"os/exec"

	"github.com/chenBenjamin97/tennis-analyzer/pkg/analysis"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/detection"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/report"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/shots"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/stats"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/store"
	"github.com/spf13/viper"
	"gocv.io/x/gocv"
)

//Tag reads a video from given source, gets its detections (from cache or by running the detector), analyzes the match
//and uses openCV in order to plot above it's frames the players, the ball, the mini court and the stats board.
//The tagged video (XVID (== MPEG-4 codec) format, '.avi' extension) is converted to the production format and saved in
//'ready' directory from configuration file. When s is not nil the analysis is stored in it.
//srcVideoName should include file's extension ('.mp4', etc.)
func Tag(srcVideoName string, s *store.Store) {
	paths := newVideoPaths(srcVideoName)

	cap, err := gocv.VideoCaptureFile(paths.source)
	if err != nil {
		log.Printf("Tag: Error, Got '%v'", err)
		return
	}
	defer cap.Close()

	width, height := int(cap.Get(gocv.VideoCaptureFrameWidth)), int(cap.Get(gocv.VideoCaptureFrameHeight))
	fps := cap.Get(gocv.VideoCaptureFPS)

	match, err := detections(paths, width, height, fps)
	if err != nil {
		log.Printf("Tag: Error, Got '%v'", err)
		return
	}

	cfg, err := analysis.ConfigFromViper()
	if err != nil {
		log.Printf("Tag: Error, Got '%v'", err)
		return
	}

	res, err := analysis.Analyze(match, cfg)
	if err != nil {
		log.Printf("Tag: Error analyzing '%s', Got '%v'", srcVideoName, err)
		return
	}
	log.Printf("Tag: Analyzed '%s': run %s, %d frames, %d shots", srcVideoName, res.RunID, res.FrameCount, len(res.ShotFrames))

	if s != nil {
		if err := s.SaveRun(srcVideoName, res); err != nil {
			log.Printf("Tag: Error storing run %s, got '%v'", res.RunID, err)
		}
	}

	if err := report.SaveTrajectory(paths.trajectory, srcVideoName, match.Ball, res.ShotFrames, cfg.Shots.SmoothingWindow); err != nil {
		log.Printf("Tag: Could not plot ball trajectory, got '%v'", err)
	}

	videoWriter, err := gocv.VideoWriterFile(paths.temp, "XVID", fps, width, height, true)
	if err != nil {
		log.Printf("Tag: Error, Got '%v'", err)
		return
	}
	defer os.Remove(paths.temp) //remove '.avi' temp file at the end of this function

	err = renderVideo(cap.Read, videoWriter, func(frame *gocv.Mat, frameNumber int) {
		plotFrame(frame, frameNumber, res, match)
	})
	if err != nil {
		log.Printf("Tag: Error writing '%s', got '%v'", srcVideoName, err)
		return
	}

	//Convert to from 'avi' to production format. example: ffmpeg -i match.avi match.mp4
	cmd := exec.Command("ffmpeg", "-y", "-i", paths.temp, paths.ready)
	if err := cmd.Run(); err != nil {
		log.Printf("Tag: Error from ffmpeg, got '%v'", err)
	}
}

//detections returns the cached detections of a video, or runs the detector on it and caches its output
func detections(paths videoPaths, width, height int, fps float64) (*detection.Match, error) {
	if _, err := os.Stat(paths.detections); err == nil {
		log.Printf("detections: Using cached detections '%s'", paths.detections)
		return detection.LoadFile(paths.detections)
	}

	outputC := make(chan detection.Output)
	go detection.RunDetector(viper.GetString("directory.detector"), paths.source, outputC)
	match := detection.Collect(outputC, width, height, fps)

	if err := match.Validate(); err != nil {
		return nil, err
	}

	if err := detection.SaveFile(paths.detections, match); err != nil {
		log.Printf("detections: Could not cache detections, got '%v'", err) //next run will detect again
	}

	return match, nil
}

//frameWriter is where tagged frames go, gocv.VideoWriter in production
type frameWriter interface {
	Write(img gocv.Mat) error
	Close() error
}

//renderVideo reads frames until read returns false, plots over each non empty one and writes it. The writer is
//always closed before returning, so its file is complete once renderVideo returns nil.
func renderVideo(read func(*gocv.Mat) bool, w frameWriter, plot func(frame *gocv.Mat, frameNumber int)) error {
	frameMat := gocv.NewMat()
	defer frameMat.Close()

	for frameNumber := 0; read(&frameMat); frameNumber++ {
		if frameMat.Empty() {
			continue
		}

		plot(&frameMat, frameNumber)

		if err := w.Write(frameMat); err != nil {
			w.Close()
			return fmt.Errorf("frame %d: %w", frameNumber, err)
		}
	}

	return w.Close()
}

//plotFrame plots everything known about one frame
func plotFrame(frame *gocv.Mat, frameNumber int, res *analysis.Result, match *detection.Match) {
	plotCourtKeypoints(frame, match.CourtKeypoints)

	if frameNumber < len(res.Players) {
		for id, box := range res.Players[frameNumber] {
			player := stats.Player1
			if id == res.PlayerIDs[stats.Player2] {
				player = stats.Player2
			}
			plotPlayer(frame, box, player)
		}
	}

	if frameNumber < len(match.Ball) {
		if box, ok := shots.BallBox(match.Ball[frameNumber]); ok {
			plotBall(frame, box)
		}
	}

	plotMiniCourt(frame, res.MiniCourt)
	if frameNumber < len(res.Positions.Players) {
		plotMiniCourtPositions(frame, res.Positions.Players[frameNumber], res.Positions.Ball[frameNumber])
	}

	if len(res.Rows) > 0 {
		row := res.Rows[len(res.Rows)-1]
		if frameNumber < len(res.Rows) {
			row = res.Rows[frameNumber]
		}
		plotStatsBoard(frame, row, res.SpeedUnit)
	}

	plotFrameNumber(frame, frameNumber)
}
