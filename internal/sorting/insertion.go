package sorting

func insertionSort(a *Array, run Run) (Outcome, Stats) {
	var st Stats
	n := a.Len()

	yield := func(h Highlight) bool {
		run.Render(h)
		st.Yields++
		return run.Await()
	}

	for i := 1; i < n; i++ {
		key := a.Values[i]
		j := i - 1
		if !yield(Highlight{Active: []int{i}}) {
			return Aborted, st
		}
		for j >= 0 {
			st.Comparisons++
			if a.Values[j] <= key {
				break
			}
			a.Set(j+1, a.Values[j])
			st.Writes++
			j--
			// j may be -1 here; renderers skip out-of-range indices.
			if !yield(Highlight{Compare: []int{j, j + 1}}) {
				return Aborted, st
			}
		}
		a.Set(j+1, key)
		if !yield(Highlight{Active: []int{j + 1}}) {
			return Aborted, st
		}
	}

	run.Render(Highlight{SortedSuffix: n})
	return Completed, st
}
