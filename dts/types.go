// Package dts implements the deterministic transition system substrate
// that every other package in omegalearn builds on: states and colored
// edges stored in a stable arena, with the add/remove/query primitives
// prefix acceptors, right congruences, and DPAs all share.
//
// The arena-plus-index representation uses two growable slices with id
// tombstoning; an id, once handed out, is never reused.
package dts

import (
	"github.com/coregx/omegalearn/alphabet"
)

// StateID identifies a state within a DTS. InvalidState never refers
// to a live state.
type StateID int32

// InvalidState is the sentinel returned in place of a state id when an
// operation has nothing to report.
const InvalidState StateID = -1

// Color is an opaque per-state or per-edge color. DTS is agnostic to
// what a color means; callers (sample prefix trees, DPAs, right
// congruences) attach their own semantics.
type Color = int

// Void is the color used by states and edges that carry no
// information beyond their existence.
const Void Color = 0

// Expression is the partial-function key used by AddEdge/EdgesFrom: a
// single alphabet symbol labels a transition from one state to at most
// one other.
type Expression = alphabet.Symbol

// FiniteWord is a sequence of expressions, used by the shortest-word
// and minimal-representative computations in this package and scc. It
// is an alias, not a defined type, so word.FiniteWord values flow into
// these APIs without conversion.
type FiniteWord = []Expression

// Edge is a materialized transition tuple, returned by iteration and
// removal operations.
type Edge struct {
	Source StateID
	Expr   Expression
	Color  Color
	Target StateID
}

type stateSlot struct {
	live  bool
	color Color
	// out maps expression -> edge index into the edges arena.
	out map[Expression]int
}

type edgeSlot struct {
	live   bool
	source StateID
	expr   Expression
	color  Color
	target StateID
}

// DTS is a deterministic transition system: a partial function
// Q x Sigma -> Q backed by stable, sparse integer state identifiers.
// Construct one with New or NewPointed: the zero value has no
// incoming-edge index, so adding an edge to it panics.
type DTS struct {
	states  []stateSlot
	edges   []edgeSlot
	initial StateID
	pointed bool

	// in indexes incoming edges per target state, required for
	// Predecessors and for the conflict relation's backward closure.
	in map[StateID][]int
}

// New creates an empty, unpointed DTS.
func New() *DTS {
	return &DTS{initial: InvalidState, in: make(map[StateID][]int)}
}

// NewPointed creates an empty DTS with a single initial state of the
// given color.
func NewPointed(initialColor Color) *DTS {
	d := New()
	id := d.AddState(initialColor)
	d.SetInitial(id)
	return d
}

// SetInitial designates q as the initial state. q must be live.
func (d *DTS) SetInitial(q StateID) {
	if !d.isLive(q) {
		return
	}
	d.initial = q
	d.pointed = true
}

// Initial returns the initial state and true if the DTS is pointed.
func (d *DTS) Initial() (StateID, bool) {
	if !d.pointed {
		return InvalidState, false
	}
	return d.initial, true
}

// MustInitial returns the initial state, panicking if the DTS is not
// pointed. Used internally where pointedness is a documented
// precondition (e.g. minimal representative computation).
func (d *DTS) MustInitial() StateID {
	if !d.pointed {
		panic("dts: MustInitial called on an unpointed DTS")
	}
	return d.initial
}

func (d *DTS) isLive(q StateID) bool {
	if q < 0 || int(q) >= len(d.states) {
		return false
	}
	return d.states[q].live
}
