package product

import (
	"testing"

	"github.com/coregx/omegalearn/dts"
)

func TestProductStepAgreesWithBothOperands(t *testing.T) {
	t1 := dts.New()
	a0 := t1.AddState(dts.Void)
	a1 := t1.AddState(dts.Void)
	t1.AddEdge(a0, 'a', dts.Void, a1)
	t1.AddEdge(a1, 'a', dts.Void, a1)
	t1.SetInitial(a0)

	t2 := dts.New()
	b0 := t2.AddState(dts.Void)
	t2.AddEdge(b0, 'a', dts.Void, b0)
	t2.SetInitial(b0)

	p := New(t1, t2)
	init, ok := p.Initial()
	if !ok || init.Left != a0 || init.Right != b0 {
		t.Fatalf("Initial() = %v, %v", init, ok)
	}

	next, _, ok := p.Step(init, 'a')
	if !ok || next.Left != a1 || next.Right != b0 {
		t.Fatalf("Step = %v, %v", next, ok)
	}

	if _, _, ok := p.Step(init, 'b'); ok {
		t.Fatalf("Step on undefined symbol should fail")
	}
}

func TestReachableIndicesFromCoversProductClosure(t *testing.T) {
	t1 := dts.New()
	a0 := t1.AddState(dts.Void)
	a1 := t1.AddState(dts.Void)
	t1.AddEdge(a0, 'a', dts.Void, a1)
	t1.AddEdge(a1, 'a', dts.Void, a0)
	t1.SetInitial(a0)

	t2 := dts.New()
	b0 := t2.AddState(dts.Void)
	t2.AddEdge(b0, 'a', dts.Void, b0)
	t2.SetInitial(b0)

	p := New(t1, t2)
	reach := p.ReachableIndices()
	if len(reach) != 2 {
		t.Fatalf("expected 2 reachable product states, got %d: %v", len(reach), reach)
	}
}

func TestCollectBuildsDeterministicDTS(t *testing.T) {
	t1 := dts.New()
	a0 := t1.AddState(dts.Void)
	t1.AddEdge(a0, 'a', dts.Void, a0)
	t1.SetInitial(a0)

	t2 := dts.New()
	b0 := t2.AddState(dts.Void)
	b1 := t2.AddState(dts.Void)
	t2.AddEdge(b0, 'a', 1, b1)
	t2.AddEdge(b1, 'a', 2, b1)
	t2.SetInitial(b0)

	p := New(t1, t2)
	out, ids := p.Collect()
	if out.Size() != 2 {
		t.Fatalf("Collect size = %d, want 2", out.Size())
	}
	init, ok := out.Initial()
	if !ok || init != ids[Index{Left: a0, Right: b0}] {
		t.Fatalf("Collect did not preserve initial state")
	}
}
