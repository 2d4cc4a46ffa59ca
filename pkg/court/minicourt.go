// Package court holds the schematic mini court drawn in the corner of the output video and the projection of
// pixel positions from the source frame onto it.
package court

import (
	"encoding/json"
	"math"

	"github.com/chenBenjamin97/tennis-analyzer/pkg/geometry"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/utils"
	"github.com/pkg/errors"
)

//Options sets the mini court canvas size and placement, in output frame pixels
type Options struct {
	Width   int //canvas width
	Height  int //canvas height
	Buffer  int //margin between canvas and the frame's top/right edges
	Padding int //inset of the court lines inside the canvas
}

//DefaultOptions returns the canvas used by the overlay: 250x450, 50px from the top right corner
func DefaultOptions() Options {
	return Options{
		Width:   utils.MiniCourtWidth,
		Height:  utils.MiniCourtHeight,
		Buffer:  utils.MiniCourtBuffer,
		Padding: utils.MiniCourtPadding,
	}
}

//Rect is an axis aligned rectangle in pixels
type Rect struct {
	StartX float64 `json:"start_x"`
	StartY float64 `json:"start_y"`
	EndX   float64 `json:"end_x"`
	EndY   float64 `json:"end_y"`
}

//Line connects two keypoints by index
type Line struct {
	From int `json:"from"`
	To   int `json:"to"`
}

//courtLines is the fixed topology of court lines: baselines, sidelines (doubles and singles), service lines,
//center service line
var courtLines = []Line{
	{0, 2},
	{4, 5},
	{6, 7},
	{1, 3},
	{0, 1},
	{8, 9},
	{10, 11},
	{12, 13},
	{2, 3},
}

//MiniCourt is the layout of the mini court for one video. It never changes after NewMiniCourt.
type MiniCourt struct {
	canvas       Rect
	court        Rect
	drawingWidth float64
	keypoints    geometry.Keypoints
}

//NewMiniCourt places the mini court canvas in the top right corner of a frameWidth x frameHeight frame
//and derives the court keypoints from real court proportions.
func NewMiniCourt(frameWidth, frameHeight int, opts Options) (*MiniCourt, error) {
	if opts.Width <= 0 || opts.Height <= 0 || opts.Buffer < 0 || opts.Padding < 0 ||
		2*opts.Padding >= opts.Width || 2*opts.Padding >= opts.Height {
		return nil, errors.Wrapf(utils.ErrInvalidFrameSize, "bad mini court options %+v", opts)
	}

	endX := frameWidth - opts.Buffer
	endY := opts.Buffer + opts.Height
	startX := endX - opts.Width
	startY := endY - opts.Height

	if startX < 0 || endY > frameHeight {
		return nil, errors.Wrapf(utils.ErrInvalidFrameSize, "%dx%d canvas with %dpx buffer does not fit in a %dx%d frame",
			opts.Width, opts.Height, opts.Buffer, frameWidth, frameHeight)
	}

	mc := &MiniCourt{
		canvas: Rect{StartX: float64(startX), StartY: float64(startY), EndX: float64(endX), EndY: float64(endY)},
		court: Rect{
			StartX: float64(startX + opts.Padding),
			StartY: float64(startY + opts.Padding),
			EndX:   float64(endX - opts.Padding),
			EndY:   float64(endY - opts.Padding),
		},
	}
	mc.drawingWidth = mc.court.EndX - mc.court.StartX
	mc.setKeypoints()

	//the court keeps real proportions, so its baselines may reach below the canvas
	if bottom := mc.bottom(); bottom > float64(frameHeight) {
		return nil, errors.Wrapf(utils.ErrInvalidFrameSize, "mini court reaches y=%.1f, below a %dpx high frame", bottom, frameHeight)
	}

	return mc, nil
}

func (mc *MiniCourt) bottom() float64 {
	bottom := mc.canvas.EndY
	for i := 0; i < mc.keypoints.Len(); i++ {
		bottom = math.Max(bottom, mc.keypoints.At(i).Y)
	}

	return bottom
}

//MetersToPixels converts a real world length to mini court pixels
func (mc *MiniCourt) MetersToPixels(meters float64) float64 {
	return geometry.MetersToPixels(meters, utils.DoubleLineWidth, mc.drawingWidth)
}

func (mc *MiniCourt) setKeypoints() {
	kp := make([]geometry.Point, utils.CourtKeypointsNum)
	sx, sy := mc.court.StartX, mc.court.StartY

	kp[0] = geometry.Point{X: sx, Y: sy}
	kp[1] = geometry.Point{X: mc.court.EndX, Y: sy}
	kp[2] = geometry.Point{X: sx, Y: sy + mc.MetersToPixels(utils.CourtLength)}
	kp[3] = geometry.Point{X: sx + mc.drawingWidth, Y: kp[2].Y}

	//doubles alleys
	alley := mc.MetersToPixels(utils.DoubleAllyDifference)
	kp[4] = geometry.Point{X: kp[0].X + alley, Y: kp[0].Y}
	kp[5] = geometry.Point{X: kp[2].X + alley, Y: kp[2].Y}
	kp[6] = geometry.Point{X: kp[1].X - alley, Y: kp[1].Y}
	kp[7] = geometry.Point{X: kp[3].X - alley, Y: kp[3].Y}

	//service lines
	noMansLand := mc.MetersToPixels(utils.NoMansLandHeight)
	single := mc.MetersToPixels(utils.SingleLineWidth)
	kp[8] = geometry.Point{X: kp[4].X, Y: kp[4].Y + noMansLand}
	kp[9] = geometry.Point{X: kp[8].X + single, Y: kp[8].Y}
	kp[10] = geometry.Point{X: kp[5].X, Y: kp[5].Y - noMansLand}
	kp[11] = geometry.Point{X: kp[10].X + single, Y: kp[10].Y}

	//center service line ends
	kp[12] = geometry.Point{X: (kp[8].X + kp[9].X) / 2, Y: kp[8].Y}
	kp[13] = geometry.Point{X: (kp[10].X + kp[11].X) / 2, Y: kp[10].Y}

	mc.keypoints = make(geometry.Keypoints, 0, len(kp)*2)
	for _, p := range kp {
		mc.keypoints = append(mc.keypoints, p.X, p.Y)
	}
}

//Canvas returns the background rectangle of the mini court
func (mc *MiniCourt) Canvas() Rect { return mc.canvas }

//Court returns the canvas inset by the padding
func (mc *MiniCourt) Court() Rect { return mc.court }

//Width returns the drawing width of the court in pixels, the pixel length of DoubleLineWidth
func (mc *MiniCourt) Width() float64 { return mc.drawingWidth }

//Keypoint returns layout keypoint i
func (mc *MiniCourt) Keypoint(i int) geometry.Point { return mc.keypoints.At(i) }

//Keypoints returns a copy of the flat layout keypoints
func (mc *MiniCourt) Keypoints() geometry.Keypoints {
	return append(geometry.Keypoints(nil), mc.keypoints...)
}

//Lines returns a copy of the line topology
func (mc *MiniCourt) Lines() []Line {
	return append([]Line(nil), courtLines...)
}

//NetLine returns the net's end points, halfway between the two baselines
func (mc *MiniCourt) NetLine() (geometry.Point, geometry.Point) {
	y := (mc.Keypoint(0).Y + mc.Keypoint(2).Y) / 2
	return geometry.Point{X: mc.Keypoint(0).X, Y: y}, geometry.Point{X: mc.Keypoint(1).X, Y: y}
}

type layoutJSON struct {
	Canvas    Rect             `json:"canvas"`
	Court     Rect             `json:"court"`
	Width     float64          `json:"drawing_width"`
	Keypoints []float64        `json:"keypoints"`
	Lines     []Line           `json:"lines"`
	Net       []geometry.Point `json:"net"`
}

//MarshalJSON exposes the layout to external renderers
func (mc *MiniCourt) MarshalJSON() ([]byte, error) {
	netStart, netEnd := mc.NetLine()
	return json.Marshal(layoutJSON{
		Canvas:    mc.canvas,
		Court:     mc.court,
		Width:     mc.drawingWidth,
		Keypoints: mc.Keypoints(),
		Lines:     mc.Lines(),
		Net:       []geometry.Point{netStart, netEnd},
	})
}
