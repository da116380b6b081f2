package sorting

import (
	"fmt"
	"strings"
)

// Algorithm selects one of the built-in procedures.
type Algorithm int

const (
	Bubble Algorithm = iota
	Insertion
)

var algorithmNames = map[Algorithm]string{
	Bubble:    "bubble",
	Insertion: "insertion",
}

func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return fmt.Sprintf("algorithm(%d)", int(a))
}

// Sort runs the procedure for a on arr, yielding to run between steps.
func (a Algorithm) Sort(arr *Array, run Run) (Outcome, Stats) {
	switch a {
	case Insertion:
		return insertionSort(arr, run)
	default:
		return bubbleSort(arr, run)
	}
}

// Next cycles through the built-in algorithms.
func (a Algorithm) Next() Algorithm {
	all := Algorithms()
	return all[(int(a)+1)%len(all)]
}

func Algorithms() []Algorithm {
	return []Algorithm{Bubble, Insertion}
}

func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bubble", "bubblesort", "bubble_sort":
		return Bubble, nil
	case "insertion", "insertionsort", "insertion_sort":
		return Insertion, nil
	}
	return Bubble, fmt.Errorf("unknown algorithm: %s", name)
}

func (a Algorithm) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
