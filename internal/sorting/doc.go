// Package sorting provides the step-wise sorting procedures animated by sortviz.
//
// A procedure is a plain description of a sorting algorithm. It mutates an
// [Array] in place and, at every visually meaningful point, hands a
// [Highlight] to the [Run] it was given and then yields through [Run.Await]:
//
//   - [Bubble]: adjacent-pair passes with an early exit on a clean pass
//   - [Insertion]: shift-left insertion of each element into the sorted prefix
//
// Procedures know nothing about pausing, pacing or cancellation. A false
// result from Await is the only signal they observe; they return at once
// with [Aborted] and leave the array as it stands.
//
// # Example
//
//	arr := sorting.NewArray([]int{5, 3, 8, 1})
//	outcome, stats := sorting.Bubble.Sort(arr, run)
package sorting
