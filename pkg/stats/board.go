package stats

import (
	"fmt"

	"github.com/chenBenjamin97/tennis-analyzer/pkg/units"
)

//BoardLine is one line of the stats board drawn on the video: a label and one value per player
type BoardLine struct {
	Label  string
	Values [2]string
}

func formatSpeed(v float64, unit string) string {
	return fmt.Sprintf("%.1f %s", v, units.Label(unit))
}

func formatAverage(v *float64, unit string) string {
	if v == nil {
		return "-"
	}

	return formatSpeed(*v, unit)
}

//Board returns the stats board lines of one frame, speeds in given unit
func Board(row Row, unit string) []BoardLine {
	lines := []BoardLine{
		{Label: "Shot Speed"},
		{Label: "Player Speed"},
		{Label: "avg. S. Speed"},
		{Label: "avg. P. Speed"},
	}

	for _, p := range []Player{Player1, Player2} {
		lines[0].Values[p] = formatSpeed(row.Players[p].LastShotSpeed, unit)
		lines[1].Values[p] = formatSpeed(row.Players[p].LastMovementSpeed, unit)
		lines[2].Values[p] = formatAverage(row.AverageShotSpeed[p], unit)
		lines[3].Values[p] = formatAverage(row.AverageMovementSpeed[p], unit)
	}

	return lines
}
