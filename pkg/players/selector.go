// Package players picks the two match players among every person the tracker found and drops everyone else
// (umpire, ball kids, crowd).
package players

import (
	"sort"

	"github.com/chenBenjamin97/tennis-analyzer/pkg/detection"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/geometry"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/utils"
	"github.com/pkg/errors"
)

//PlayersNum is the number of players in a singles match
const PlayersNum = 2

//candidate is a person detected on the first frame and its distance to the closest court keypoint
type candidate struct {
	id       int
	distance float64
}

//Choose returns the track IDs of (at most) the two persons of firstFrame whose box center is closest to any court
//keypoint. Ties go to the lower track ID.
func Choose(keypoints geometry.Keypoints, firstFrame detection.Frame) []int {
	candidates := make([]candidate, 0, len(firstFrame))
	for id, bbox := range firstFrame {
		_, d := geometry.ClosestKeypoint(geometry.Center(bbox), keypoints)
		candidates = append(candidates, candidate{id: id, distance: d})
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].id < candidates[j].id })
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].distance < candidates[j].distance })

	chosen := make([]int, 0, PlayersNum)
	for i := 0; i < len(candidates) && i < PlayersNum; i++ {
		chosen = append(chosen, candidates[i].id)
	}

	return chosen
}

//Filter returns a copy of frames holding only the given track IDs. IDs missing from a frame are simply absent.
func Filter(frames []detection.Frame, ids []int) []detection.Frame {
	keep := make(map[int]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}

	filtered := make([]detection.Frame, len(frames))
	for i, frame := range frames {
		filtered[i] = make(detection.Frame, len(ids))
		for id, bbox := range frame {
			if keep[id] {
				filtered[i][id] = bbox
			}
		}
	}

	return filtered
}

//ChooseAndFilter chooses the players on the first frame and filters every frame down to them
func ChooseAndFilter(keypoints geometry.Keypoints, frames []detection.Frame) ([]int, []detection.Frame, error) {
	if keypoints.Len() == 0 {
		return nil, nil, errors.Wrap(utils.ErrMissingReferenceData, "ChooseAndFilter: no court keypoints")
	}

	if len(frames) == 0 {
		return nil, nil, errors.Wrap(utils.ErrMissingReferenceData, "ChooseAndFilter: no player detections")
	}

	ids := Choose(keypoints, frames[0])
	return ids, Filter(frames, ids), nil
}

//Slots maps chosen track IDs to player slots 0 and 1, the lower track ID being the first player
func Slots(ids []int) map[int]int {
	sorted := append([]int(nil), ids...)
	sort.Ints(sorted)

	slots := make(map[int]int, len(sorted))
	for i, id := range sorted {
		if i >= PlayersNum {
			break
		}
		slots[id] = i
	}

	return slots
}
