// Package report draws debug charts of an analysis run
package report

import (
	"fmt"
	"image/color"
	"io"

	"github.com/chenBenjamin97/tennis-analyzer/pkg/detection"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/shots"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	_ "gonum.org/v1/plot/vg/vgimg" //png
)

//chart size, wide enough to tell apart shots one second apart on a few minutes video
const (
	chartWidth  = 14 * vg.Inch
	chartHeight = 6 * vg.Inch
)

var (
	trajectoryColor = color.RGBA{R: 30, G: 110, B: 200, A: 255}
	shotColor       = color.RGBA{R: 220, G: 40, B: 40, A: 255}
)

//Trajectory plots the ball's (interpolated, smoothed) vertical position over the frames, with the shot frames marked.
//The y axis is inverted so the chart reads like the video: the top of the frame is up.
func Trajectory(title string, ball []detection.Frame, events []int, window int) (*plot.Plot, error) {
	series, err := shots.BallSeries(ball, window)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Ball center y (px)"
	p.Y.Scale = plot.InvertedScale{Normalizer: p.Y.Scale}

	pts := make(plotter.XYs, len(series))
	for i, y := range series {
		pts[i] = plotter.XY{X: float64(i), Y: y}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = trajectoryColor
	line.Width = vg.Points(1)
	p.Add(line)
	p.Legend.Add("ball", line)

	marks := make(plotter.XYs, 0, len(events))
	for _, frame := range events {
		if frame < 0 || frame >= len(series) {
			return nil, fmt.Errorf("Trajectory: Shot frame %d out of %d frames", frame, len(series))
		}
		marks = append(marks, plotter.XY{X: float64(frame), Y: series[frame]})
	}

	if len(marks) > 0 {
		scatter, err := plotter.NewScatter(marks)
		if err != nil {
			return nil, err
		}
		scatter.GlyphStyle = draw.GlyphStyle{Color: shotColor, Radius: vg.Points(4), Shape: draw.CircleGlyph{}}
		p.Add(scatter)
		p.Legend.Add(fmt.Sprintf("shots (%d)", len(marks)), scatter)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	return p, nil
}

//SaveTrajectory writes the trajectory chart to file, its format is taken from the file's extension (.png, .svg...)
func SaveTrajectory(file, title string, ball []detection.Frame, events []int, window int) error {
	p, err := Trajectory(title, ball, events, window)
	if err != nil {
		return err
	}

	return p.Save(chartWidth, chartHeight, file)
}

//WriteTrajectory writes the trajectory chart as PNG to w
func WriteTrajectory(w io.Writer, title string, ball []detection.Frame, events []int, window int) error {
	p, err := Trajectory(title, ball, events, window)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return err
	}

	_, err = wt.WriteTo(w)
	return err
}
