package analysis

// Inversions counts pairs i < j with values[i] > values[j].
func Inversions(values []int) int {
	if len(values) < 2 {
		return 0
	}
	buf := make([]int, len(values))
	work := make([]int, len(values))
	copy(work, values)
	return mergeCount(work, buf)
}

func mergeCount(a, buf []int) int {
	n := len(a)
	if n < 2 {
		return 0
	}
	mid := n / 2
	count := mergeCount(a[:mid], buf[:mid]) + mergeCount(a[mid:], buf[mid:])

	i, j, k := 0, mid, 0
	for i < mid && j < n {
		if a[i] <= a[j] {
			buf[k] = a[i]
			i++
		} else {
			buf[k] = a[j]
			count += mid - i
			j++
		}
		k++
	}
	k += copy(buf[k:], a[i:mid])
	copy(buf[k:], a[j:])
	copy(a, buf[:n])
	return count
}

// MaxInversions is the inversion count of a strictly decreasing array of
// length n.
func MaxInversions(n int) int {
	return n * (n - 1) / 2
}

// Sortedness is 1 for a sorted array and 0 for a strictly decreasing one.
func Sortedness(values []int) float64 {
	max := MaxInversions(len(values))
	if max == 0 {
		return 1
	}
	return 1 - float64(Inversions(values))/float64(max)
}
