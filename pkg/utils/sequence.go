package utils

//FillSequence makes sure there is a value for each one of n frames. Frames missing in known get the value of the
//closest known frame before them, frames before the first known frame get the first known value.
//Returns false in case known has no frame inside [0, n) (nothing to fill from).
func FillSequence[T any](n int, known map[int]T) ([]T, bool) {
	seq := make([]T, n)
	present := make([]bool, n)
	first := -1

	for i := 0; i < n; i++ {
		if v, ok := known[i]; ok {
			seq[i] = v
			present[i] = true
			if first == -1 {
				first = i
			}
		}
	}

	if first == -1 {
		return nil, false
	}

	for i := 0; i < first; i++ { //backfill the head
		seq[i] = seq[first]
	}

	for i := first + 1; i < n; i++ {
		if !present[i] {
			seq[i] = seq[i-1]
		}
	}

	return seq, true
}
