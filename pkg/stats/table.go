package stats

//Row is the stats state of one video frame. Averages are nil until the player has a sample to average over.
type Row struct {
	Frame                int            `json:"frame"`
	Players              [2]PlayerStats `json:"players"`
	AverageShotSpeed     [2]*float64    `json:"average_shot_speed"`
	AverageMovementSpeed [2]*float64    `json:"average_movement_speed"`
}

func ratio(total float64, count int) *float64 {
	if count == 0 {
		return nil
	}

	v := total / float64(count)
	return &v
}

//Table spreads records over frameCount frames, every frame takes the latest record at or before it.
//A player's average movement speed is over the other player's shots, the intervals it moved as opponent.
func Table(records []Record, frameCount int) []Row {
	if len(records) == 0 {
		records = []Record{{}}
	}

	rows := make([]Row, 0, frameCount)
	current, next := records[0], 1
	for frame := 0; frame < frameCount; frame++ {
		for next < len(records) && records[next].Frame <= frame {
			current = records[next]
			next++
		}

		row := Row{Frame: frame, Players: current.Players}
		for _, p := range []Player{Player1, Player2} {
			stats := current.Players[p]
			row.AverageShotSpeed[p] = ratio(stats.TotalShotSpeed, stats.ShotCount)
			row.AverageMovementSpeed[p] = ratio(stats.TotalMovementSpeed, current.Players[p.Opponent()].ShotCount)
		}
		rows = append(rows, row)
	}

	return rows
}
