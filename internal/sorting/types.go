package sorting

import "fmt"

// Highlight describes the index roles shown for one step.
type Highlight struct {
	Active       []int `json:"active,omitempty"`
	Compare      []int `json:"compare,omitempty"`
	SortedSuffix int   `json:"sorted_suffix"`
}

type Role int

const (
	RoleNone Role = iota
	RoleActive
	RoleCompare
	RoleSorted
)

func (r Role) String() string {
	switch r {
	case RoleActive:
		return "active"
	case RoleCompare:
		return "compare"
	case RoleSorted:
		return "sorted"
	default:
		return "none"
	}
}

// Role projects index i of an n-long array onto the role it is drawn with.
// Sorted beats compare, compare beats active.
func (h Highlight) Role(i, n int) Role {
	if h.SortedSuffix > 0 && i >= n-h.SortedSuffix {
		return RoleSorted
	}
	if contains(h.Compare, i) {
		return RoleCompare
	}
	if contains(h.Active, i) {
		return RoleActive
	}
	return RoleNone
}

func contains(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// Frame is a published snapshot of one step. Values is a private copy.
type Frame struct {
	Token     uint64    `json:"token"`
	Step      int       `json:"step"`
	Values    []int     `json:"values"`
	Highlight Highlight `json:"highlight"`
}

type Outcome int

const (
	Completed Outcome = iota
	Aborted
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case Aborted:
		return "aborted"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	for _, c := range []Outcome{Completed, Aborted, Rejected} {
		if c.String() == string(text) {
			*o = c
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", text)
}

// Run is what a procedure sees of the engine while it executes.
type Run interface {
	// Render hands the current array and h to the renderer. It must not
	// retain or mutate the procedure's slice.
	Render(h Highlight)
	// Await suspends until the next step may proceed. False means the run
	// was superseded and the procedure must return without further writes.
	Await() bool
}

// Stats counts the work a procedure did. Writes counts swaps and shifts;
// placing a held key is not counted.
type Stats struct {
	Comparisons int `json:"comparisons"`
	Writes      int `json:"writes"`
	Yields      int `json:"yields"`
}
