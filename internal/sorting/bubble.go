package sorting

func bubbleSort(a *Array, run Run) (Outcome, Stats) {
	var st Stats
	n := a.Len()
	sortedEnd := 0

	yield := func(h Highlight) bool {
		run.Render(h)
		st.Yields++
		return run.Await()
	}

	for i := 0; i < n-1; i++ {
		swapped := false
		for j := 0; j < n-i-1; j++ {
			if !yield(Highlight{Compare: []int{j, j + 1}, SortedSuffix: sortedEnd}) {
				return Aborted, st
			}
			st.Comparisons++
			if a.Values[j] > a.Values[j+1] {
				a.Swap(j, j+1)
				st.Writes++
				swapped = true
				if !yield(Highlight{Active: []int{j, j + 1}, SortedSuffix: sortedEnd}) {
					return Aborted, st
				}
			}
		}
		sortedEnd++
		run.Render(Highlight{SortedSuffix: sortedEnd})
		if !swapped {
			break
		}
	}

	run.Render(Highlight{SortedSuffix: n})
	return Completed, st
}
