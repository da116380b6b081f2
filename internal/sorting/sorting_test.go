package sorting

import (
	"math/rand"
	"testing"
)

// scriptedRun records every rendered step and aborts after abortAfter awaits
// when abortAfter > 0.
type scriptedRun struct {
	arr        *Array
	frames     []Frame
	awaits     int
	abortAfter int
	atAbort    []int
}

func (r *scriptedRun) Render(h Highlight) {
	r.frames = append(r.frames, Frame{Step: len(r.frames), Values: r.arr.Snapshot(), Highlight: h})
}

func (r *scriptedRun) Await() bool {
	r.awaits++
	if r.abortAfter > 0 && r.awaits >= r.abortAfter {
		r.atAbort = r.arr.Snapshot()
		return false
	}
	return true
}

func TestSortCorrectness(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, alg := range Algorithms() {
		for size := 0; size <= 40; size += 5 {
			arr := Generate(rng, size)
			orig := arr.Snapshot()
			run := &scriptedRun{arr: arr}

			outcome, _ := alg.Sort(arr, run)
			if outcome != Completed {
				t.Fatalf("%s size %d: expected completed, got %s", alg, size, outcome)
			}
			if !IsSorted(arr.Values) {
				t.Errorf("%s size %d: result not sorted: %v", alg, size, arr.Values)
			}
			if !IsPermutation(orig, arr.Values) {
				t.Errorf("%s size %d: result is not a permutation of %v", alg, size, orig)
			}
			last := run.frames[len(run.frames)-1]
			if last.Highlight.SortedSuffix != size {
				t.Errorf("%s size %d: expected completion frame, got %+v", alg, size, last.Highlight)
			}
		}
	}
}

func TestBubbleScenario(t *testing.T) {
	arr := NewArray([]int{5, 3, 8, 1})
	run := &scriptedRun{arr: arr}

	outcome, st := Bubble.Sort(arr, run)
	if outcome != Completed {
		t.Fatalf("expected completed, got %s", outcome)
	}

	want := []int{1, 3, 5, 8}
	for i := range want {
		if arr.Values[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, arr.Values)
		}
	}

	for i, f := range run.frames[:len(run.frames)-1] {
		if f.Highlight.SortedSuffix >= 4 {
			t.Errorf("frame %d reached sorted suffix %d before completion", i, f.Highlight.SortedSuffix)
		}
	}
	if got := run.frames[len(run.frames)-1].Highlight.SortedSuffix; got != 4 {
		t.Errorf("expected final sorted suffix 4, got %d", got)
	}

	if st.Comparisons != 6 {
		t.Errorf("expected 6 comparisons, got %d", st.Comparisons)
	}
	if st.Writes != 4 {
		t.Errorf("expected 4 swaps, got %d", st.Writes)
	}
	// one yield per comparison plus one per swap
	if run.awaits != 10 || st.Yields != 10 {
		t.Errorf("expected 10 yields, got awaits=%d stats=%d", run.awaits, st.Yields)
	}
}

func TestBubbleEarlyExit(t *testing.T) {
	arr := NewArray([]int{10, 20, 30, 40, 50})
	run := &scriptedRun{arr: arr}

	_, st := Bubble.Sort(arr, run)
	if st.Comparisons != 4 {
		t.Errorf("expected a single pass of 4 comparisons, got %d", st.Comparisons)
	}
	if st.Writes != 0 {
		t.Errorf("expected no swaps, got %d", st.Writes)
	}
}

func TestInsertionScenario(t *testing.T) {
	arr := NewArray([]int{2, 1})
	run := &scriptedRun{arr: arr}

	outcome, st := Insertion.Sort(arr, run)
	if outcome != Completed {
		t.Fatalf("expected completed, got %s", outcome)
	}
	if arr.Values[0] != 1 || arr.Values[1] != 2 {
		t.Errorf("expected [1 2], got %v", arr.Values)
	}
	if st.Writes != 1 {
		t.Errorf("expected one shift, got %d", st.Writes)
	}
	// active(i), compare after the shift, active at the final slot
	if run.awaits != 3 {
		t.Errorf("expected 3 yields, got %d", run.awaits)
	}
	if got := run.frames[len(run.frames)-2].Highlight.Active; len(got) != 1 || got[0] != 0 {
		t.Errorf("expected key placed at slot 0, got %v", got)
	}
}

func TestAbortStopsMutation(t *testing.T) {
	for _, alg := range Algorithms() {
		for abortAt := 1; abortAt <= 12; abortAt++ {
			arr := NewArray([]int{90, 70, 50, 30, 10, 80, 60})
			run := &scriptedRun{arr: arr, abortAfter: abortAt}

			outcome, _ := alg.Sort(arr, run)
			if outcome != Aborted {
				t.Fatalf("%s abort at %d: expected aborted, got %s", alg, abortAt, outcome)
			}
			for i := range arr.Values {
				if arr.Values[i] != run.atAbort[i] {
					t.Fatalf("%s abort at %d: array changed after abort: %v -> %v", alg, abortAt, run.atAbort, arr.Values)
				}
			}
			if run.awaits != abortAt {
				t.Errorf("%s abort at %d: awaited %d times", alg, abortAt, run.awaits)
			}
			last := run.frames[len(run.frames)-1]
			if last.Highlight.SortedSuffix == arr.Len() {
				t.Errorf("%s abort at %d: completion rendered after abort", alg, abortAt)
			}
		}
	}
}

func TestTrivialArrays(t *testing.T) {
	tests := []struct {
		name   string
		values []int
	}{
		{"empty", []int{}},
		{"single", []int{42}},
	}

	for _, tt := range tests {
		for _, alg := range Algorithms() {
			t.Run(tt.name+"/"+alg.String(), func(t *testing.T) {
				arr := NewArray(tt.values)
				run := &scriptedRun{arr: arr}
				outcome, _ := alg.Sort(arr, run)
				if outcome != Completed {
					t.Errorf("expected completed, got %s", outcome)
				}
				if run.awaits != 0 {
					t.Errorf("expected no yields, got %d", run.awaits)
				}
				if len(run.frames) == 0 || run.frames[len(run.frames)-1].Highlight.SortedSuffix != len(tt.values) {
					t.Errorf("expected completion frame")
				}
			})
		}
	}
}

func TestHighlightRole(t *testing.T) {
	h := Highlight{Active: []int{0}, Compare: []int{1, 4}, SortedSuffix: 2}
	tests := []struct {
		idx  int
		want Role
	}{
		{0, RoleActive},
		{1, RoleCompare},
		{2, RoleNone},
		{3, RoleSorted},
		{4, RoleSorted},
	}

	for _, tt := range tests {
		if got := h.Role(tt.idx, 5); got != tt.want {
			t.Errorf("Role(%d) = %s, want %s", tt.idx, got, tt.want)
		}
	}
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		name    string
		want    Algorithm
		wantErr bool
	}{
		{"bubble", Bubble, false},
		{"Insertion", Insertion, false},
		{" insertion_sort ", Insertion, false},
		{"quick", Bubble, true},
	}

	for _, tt := range tests {
		got, err := ParseAlgorithm(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAlgorithm(%q) err = %v", tt.name, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseAlgorithm(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}

	if Bubble.Next() != Insertion || Insertion.Next() != Bubble {
		t.Error("Next should cycle through algorithms")
	}
}

func TestGenerateBounds(t *testing.T) {
	arr := Generate(rand.New(rand.NewSource(1)), 500)
	if arr.Len() != 500 {
		t.Fatalf("expected 500 values, got %d", arr.Len())
	}
	for _, v := range arr.Values {
		if v < MinValue || v > MaxValue {
			t.Fatalf("value %d out of range", v)
		}
	}
}

func TestIsPermutation(t *testing.T) {
	if !IsPermutation([]int{1, 2, 2, 3}, []int{2, 3, 1, 2}) {
		t.Error("expected permutation")
	}
	if IsPermutation([]int{1, 2, 2}, []int{1, 1, 2}) {
		t.Error("expected mismatch on duplicate counts")
	}
	if IsPermutation([]int{1}, []int{1, 1}) {
		t.Error("expected mismatch on length")
	}
}
