// Package analysis measures how far an array is from sorted.
//
//   - [Inversions]: number of out-of-order pairs, counted by merge sort
//   - [Sortedness]: 1 minus the inversion ratio, in [0, 1]
//   - [Tracker]: engine observer recording sortedness per published frame
//
// # Progress Curves
//
// Bubble sort removes exactly one inversion per swap, so its sortedness curve
// rises in even steps. Insertion sort removes one per shift:
//
//	tr := analysis.NewTracker(600)
//	ctrl.AddObserver(tr)
//	graph := asciigraph.Plot(tr.History())
package analysis
