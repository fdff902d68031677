package quotient

import (
	"testing"

	"github.com/coregx/omegalearn/dts"
)

func TestQuotientCollapsesClassesAndPreservesTransitions(t *testing.T) {
	d := dts.New()
	a := d.AddState(dts.Void)
	b := d.AddState(dts.Void)
	c := d.AddState(dts.Void)
	d.AddEdge(a, 'x', 1, b)
	d.AddEdge(b, 'x', 1, c)
	d.AddEdge(c, 'x', 1, a)
	d.SetInitial(a)

	part := Partition{{a, c}, {b}}
	out, classOf := Quotient(d, part)

	if out.Size() != 2 {
		t.Fatalf("Quotient size = %d, want 2", out.Size())
	}
	classA := classOf[a]
	classB := classOf[b]
	if classOf[c] != classA {
		t.Fatalf("a and c should collapse to the same class")
	}

	target, ok := out.HasEdge(classA, 'x')
	if !ok || target != classB {
		t.Fatalf("quotient edge class(a)--x-->class(b) missing, got target=%v ok=%v", target, ok)
	}

	init, ok := out.Initial()
	if !ok || init != classA {
		t.Fatalf("quotient should preserve the initial class")
	}
}
