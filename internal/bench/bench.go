package bench

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/san-kum/sortviz/internal/analysis"
	"github.com/san-kum/sortviz/internal/engine"
	"github.com/san-kum/sortviz/internal/sorting"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted set of headless runs.
type Scenario struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Runs        []RunSpec `yaml:"runs"`
}

// RunSpec is one entry of a scenario. Values, when set, replace random input.
type RunSpec struct {
	Algorithm string `yaml:"algorithm"`
	Size      int    `yaml:"size"`
	Seed      int64  `yaml:"seed"`
	Repeat    int    `yaml:"repeat"`
	Values    []int  `yaml:"values"`
}

// Summary is the outcome of one headless run.
type Summary struct {
	Algorithm  string
	Size       int
	Seed       int64
	Trial      int
	Inversions int
	Stats      sorting.Stats
	Elapsed    time.Duration
	Sorted     bool
	Outcome    sorting.Outcome
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// DefaultScenario compares every algorithm on a few sizes.
func DefaultScenario() *Scenario {
	sc := &Scenario{Name: "default", Description: "all algorithms, small to large"}
	for _, alg := range sorting.Algorithms() {
		for _, size := range []int{10, 30, 100} {
			sc.Runs = append(sc.Runs, RunSpec{Algorithm: alg.String(), Size: size, Seed: 1, Repeat: 3})
		}
	}
	return sc
}

// instantRun never waits; it only stops when ctx is done.
type instantRun struct {
	ctx context.Context
}

func (r instantRun) Render(sorting.Highlight) {}

func (r instantRun) Await() bool {
	return r.ctx.Err() == nil
}

// runTrials sorts every input concurrently. Summaries keep the input order.
func runTrials(ctx context.Context, alg sorting.Algorithm, inputs []*sorting.Array) []Summary {
	out := make([]Summary, len(inputs))

	var wg sync.WaitGroup
	for i, arr := range inputs {
		wg.Add(1)
		go func(idx int, arr *sorting.Array) {
			defer wg.Done()

			initial := arr.Snapshot()
			start := time.Now()
			outcome, stats := alg.Sort(arr, instantRun{ctx: ctx})

			out[idx] = Summary{
				Algorithm:  alg.String(),
				Inversions: analysis.Inversions(initial),
				Stats:      stats,
				Elapsed:    time.Since(start),
				Sorted:     sorting.IsSorted(arr.Values) && sorting.IsPermutation(initial, arr.Values),
				Outcome:    outcome,
			}
		}(i, arr)
	}

	wg.Wait()
	return out
}

// Run executes every run of the scenario without pacing.
func Run(ctx context.Context, scenario *Scenario) ([]Summary, error) {
	results := make([]Summary, 0, len(scenario.Runs))

	for i, spec := range scenario.Runs {
		alg, err := sorting.ParseAlgorithm(spec.Algorithm)
		if err != nil {
			return results, fmt.Errorf("run %d: %w", i+1, err)
		}

		size := engine.ClampSize(spec.Size)
		if len(spec.Values) > 0 {
			size = len(spec.Values)
		}
		repeat := spec.Repeat
		if repeat <= 0 {
			repeat = 1
		}
		rng := rand.New(rand.NewSource(spec.Seed))

		// inputs are drawn in order so a seed always yields the same trials
		inputs := make([]*sorting.Array, repeat)
		for trial := range inputs {
			if len(spec.Values) > 0 {
				inputs[trial] = sorting.NewArray(spec.Values)
			} else {
				inputs[trial] = sorting.Generate(rng, size)
			}
		}

		trials := runTrials(ctx, alg, inputs)
		for trial, sum := range trials {
			if sum.Outcome == sorting.Aborted {
				return results, ctx.Err()
			}
			sum.Size = size
			sum.Seed = spec.Seed
			sum.Trial = trial
			results = append(results, sum)
		}
	}

	return results, nil
}
