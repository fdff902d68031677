package scc

import (
	"testing"

	"github.com/coregx/omegalearn/dts"
)

func buildRing(t *testing.T) (*dts.DTS, dts.StateID, dts.StateID) {
	t.Helper()
	d := dts.New()
	q0 := d.AddState(dts.Void)
	q1 := d.AddState(dts.Void)
	d.AddEdge(q0, 'a', 0, q0)
	d.AddEdge(q0, 'b', 1, q1)
	d.AddEdge(q1, 'a', 2, q1)
	d.AddEdge(q1, 'b', 0, q0)
	d.SetInitial(q0)
	return d, q0, q1
}

func TestDecomposeFindsInteriorTransitionsExample(t *testing.T) {
	d := dts.New()
	a := d.AddState(dts.Void)
	b := d.AddState(dts.Void)
	d.AddEdge(a, 'a', 0, a)
	d.AddEdge(a, 'b', 1, b)
	d.AddEdge(b, 'a', 2, b)
	d.AddEdge(b, 'b', 0, a)
	d.SetInitial(a)

	comps := Decompose(d)
	if len(comps) != 1 {
		t.Fatalf("expected a single SCC, got %d", len(comps))
	}
	first := comps[0]
	if first.Size() != 2 {
		t.Fatalf("expected both states in one SCC, got %d", first.Size())
	}
	colors := first.InteriorEdgeColors()
	for _, want := range []dts.Color{0, 1, 2} {
		if _, ok := colors[want]; !ok {
			t.Errorf("missing interior edge color %d", want)
		}
	}
}

func TestComponentTransienceAndBorderEdges(t *testing.T) {
	d := dts.New()
	source := d.AddState(dts.Void)
	sink := d.AddState(dts.Void)
	d.AddEdge(source, 'a', 0, sink)
	d.AddEdge(sink, 'a', 0, sink)
	d.SetInitial(source)

	comps := Decompose(d)
	if len(comps) != 2 {
		t.Fatalf("expected 2 SCCs, got %d", len(comps))
	}
	sourceComp := comps[0]
	sinkComp := comps[1]
	if sourceComp.First() != source {
		sourceComp, sinkComp = sinkComp, sourceComp
	}
	if !sourceComp.IsTransient() {
		t.Errorf("source-only SCC must be transient")
	}
	if sinkComp.IsTransient() {
		t.Errorf("self-looping sink SCC must not be transient")
	}
	border := sourceComp.BorderEdges()
	if len(border) != 1 || border[0].Target != sink {
		t.Fatalf("expected one border edge to sink, got %v", border)
	}
}

func TestMinimalRepresentative(t *testing.T) {
	d, _, _ := buildRing(t)
	comps := Decompose(d)
	if len(comps) != 1 {
		t.Fatalf("ring must form a single SCC, got %d", len(comps))
	}
	rep, ok := comps[0].MinimalRepresentative()
	if !ok {
		t.Fatalf("expected a minimal representative")
	}
	if len(rep) != 0 {
		t.Fatalf("initial state's own SCC should have empty minimal representative, got %q", rep)
	}
}

func TestMaximalLoopFromUsesEveryInteriorTransition(t *testing.T) {
	d, q0, q1 := buildRing(t)
	comps := Decompose(d)
	loop := comps[0].MaximalLoopFrom(q0)
	if loop == nil {
		t.Fatalf("expected a maximal loop in a non-transient SCC")
	}

	// Replay the loop and confirm every interior transition is used
	// and the walk returns to q0.
	used := map[[2]dts.StateID]bool{}
	cur := q0
	for _, sym := range loop {
		next, ok := d.HasEdge(cur, sym)
		if !ok {
			t.Fatalf("maximal loop used an undefined transition from %v on %q", cur, sym)
		}
		used[[2]dts.StateID{cur, next}] = true
		cur = next
	}
	if cur != q0 {
		t.Fatalf("maximal loop must return to its start, ended at %v", cur)
	}
	for _, e := range comps[0].InteriorEdges() {
		if !used[[2]dts.StateID{e.Source, e.Target}] {
			t.Errorf("interior transition %v --%q--> %v was not used by the maximal loop", e.Source, e.Expr, e.Target)
		}
	}
	_ = q1
}

func TestMaximalLoopFromTransientComponentIsNil(t *testing.T) {
	d := dts.New()
	a := d.AddState(dts.Void)
	b := d.AddState(dts.Void)
	d.AddEdge(a, 'a', 0, b)
	d.SetInitial(a)

	comps := Decompose(d)
	for _, c := range comps {
		if c.IsTransient() {
			if loop := c.MaximalLoopFrom(c.First()); loop != nil {
				t.Errorf("transient component should have nil maximal loop, got %v", loop)
			}
		}
	}
}
