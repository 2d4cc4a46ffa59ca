package court

import (
	"github.com/chenBenjamin97/tennis-analyzer/pkg/geometry"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/utils"
	"github.com/pkg/errors"
)

//Projector maps source frame positions onto the mini court. It anchors every position to the nearest detected court
//keypoint and re-scales the offset from it through meters: detected pixels -> meters -> mini court pixels.
//The nearest keypoint heuristic can pick the "wrong" landmark for points halfway between two of them; projected
//positions are not clamped to the court.
type Projector struct {
	detected     geometry.Keypoints
	miniCourt    *MiniCourt
	widthPixels  float64 //detected length of the far baseline (keypoints 0-1)
	lengthPixels float64 //detected length of the left doubles sideline (keypoints 0-2)
}

//NewProjector validates detected keypoints against the mini court layout
func NewProjector(detected geometry.Keypoints, mc *MiniCourt) (*Projector, error) {
	if mc == nil {
		return nil, errors.Wrap(utils.ErrMissingReferenceData, "no mini court layout")
	}
	if len(detected) == 0 {
		return nil, errors.Wrap(utils.ErrMissingReferenceData, "no court keypoints")
	}
	if len(detected)%2 != 0 || detected.Len() != mc.keypoints.Len() {
		return nil, errors.Wrapf(utils.ErrMissingReferenceData, "got %d court keypoint values, want %d",
			len(detected), len(mc.keypoints))
	}

	p := &Projector{
		detected:     append(geometry.Keypoints(nil), detected...),
		miniCourt:    mc,
		widthPixels:  geometry.Distance(detected.At(0), detected.At(1)),
		lengthPixels: geometry.Distance(detected.At(0), detected.At(2)),
	}

	if p.widthPixels == 0 || p.lengthPixels == 0 {
		return nil, errors.Wrap(utils.ErrMissingReferenceData, "degenerate court keypoints")
	}

	return p, nil
}

//MiniCourt returns the layout positions are projected onto
func (p *Projector) MiniCourt() *MiniCourt { return p.miniCourt }

//Project returns the mini court position of a bounding box. Players are measured at their feet, the ball at its center.
func (p *Projector) Project(bbox geometry.BoundingBox, isBall bool) geometry.Point {
	var position geometry.Point
	if isBall {
		position = geometry.Center(bbox)
	} else {
		position = geometry.FootPosition(bbox)
	}

	idx, _ := geometry.ClosestKeypoint(position, p.detected)
	anchor := p.detected.At(idx)

	dxMeters := geometry.PixelsToMeters(position.X-anchor.X, utils.DoubleLineWidth, p.widthPixels)
	dyMeters := geometry.PixelsToMeters(position.Y-anchor.Y, utils.CourtLength, p.lengthPixels)

	miniAnchor := p.miniCourt.Keypoint(idx)
	return geometry.Point{
		X: miniAnchor.X + p.miniCourt.MetersToPixels(dxMeters),
		Y: miniAnchor.Y + p.miniCourt.MetersToPixels(dyMeters),
	}
}

//ProjectFrame projects every valid box of one frame, keyed by track ID
func (p *Projector) ProjectFrame(frame map[int]geometry.BoundingBox, isBall bool) map[int]geometry.Point {
	res := make(map[int]geometry.Point, len(frame))
	for id, bbox := range frame {
		if !bbox.Valid() {
			continue
		}
		res[id] = p.Project(bbox, isBall)
	}

	return res
}

//Project is the one-shot form of Projector.Project
func Project(bbox geometry.BoundingBox, detected geometry.Keypoints, mc *MiniCourt, isBall bool) (geometry.Point, error) {
	p, err := NewProjector(detected, mc)
	if err != nil {
		return geometry.Point{}, err
	}

	return p.Project(bbox, isBall), nil
}
