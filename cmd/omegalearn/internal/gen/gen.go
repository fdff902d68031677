// Package gen implements the "gen" subcommand: regenerating the
// ground-truth automata and labeled CSV sample sets under
// data/automata/, data/sets/, and data/tasks/<name>/.
package gen

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/coregx/omegalearn/alphabet"
	"github.com/coregx/omegalearn/dpa"
	"github.com/coregx/omegalearn/dts"
	"github.com/coregx/omegalearn/hoa"
	"github.com/coregx/omegalearn/internal/taskio"
	"github.com/coregx/omegalearn/word"
)

// Spec describes one task to regenerate: a random ground-truth
// automaton plus a labeled train/test split drawn from it.
type Spec struct {
	Name         string
	AccType      string // "dba" or "dpa"
	NumStates    int
	Alphabet     string
	MaxPriority  int // DPA only; DBA always uses priorities {0,1}
	Seed         int64
	TrainSize    int
	TestSize     int
	MaxSpokeLen  int
	MaxCycleLen  int
}

// DefaultSpecs returns the small fixed set of tasks the driver
// regenerates when no custom spec list is supplied, spanning both
// acceptance kinds and a couple of sizes.
func DefaultSpecs() []Spec {
	return []Spec{
		{Name: "dba_small", AccType: "dba", NumStates: 4, Alphabet: "ab", Seed: 1, TrainSize: 40, TestSize: 40, MaxSpokeLen: 4, MaxCycleLen: 3},
		{Name: "dba_medium", AccType: "dba", NumStates: 8, Alphabet: "ab", Seed: 2, TrainSize: 80, TestSize: 80, MaxSpokeLen: 6, MaxCycleLen: 4},
		{Name: "dpa_small", AccType: "dpa", NumStates: 4, Alphabet: "ab", MaxPriority: 3, Seed: 3, TrainSize: 40, TestSize: 40, MaxSpokeLen: 4, MaxCycleLen: 3},
		{Name: "dpa_medium", AccType: "dpa", NumStates: 8, Alphabet: "abc", MaxPriority: 4, Seed: 4, TrainSize: 80, TestSize: 80, MaxSpokeLen: 6, MaxCycleLen: 4},
	}
}

// Run regenerates every task in specs under root/data/tasks.
func Run(root string, specs []Spec) error {
	for _, sp := range specs {
		if err := generateTask(root, sp); err != nil {
			return fmt.Errorf("gen: task %s: %w", sp.Name, err)
		}
	}
	return nil
}

func generateTask(root string, sp Spec) error {
	dir := filepath.Join(root, "data", "tasks", sp.Name)
	autDir := filepath.Join(root, "data", "automata")
	setsDir := filepath.Join(root, "data", "sets")
	for _, d := range []string{dir, autDir, setsDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}

	a := alphabet.FromString(sp.Alphabet)
	rng := rand.New(rand.NewSource(sp.Seed))

	sem := semanticsFor(sp.AccType)
	maxPriority := sp.MaxPriority
	if sp.AccType == "dba" {
		maxPriority = 1
	}
	aut := randomAutomaton(a, sp.NumStates, maxPriority, rng)

	doc := []byte(hoa.ToHOA(aut, sem))
	if err := os.WriteFile(filepath.Join(dir, "aut.hoa"), doc, 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(autDir, sp.Name+".hoa"), doc, 0o644); err != nil {
		return err
	}

	trainWords, trainLabels := sampleWords(aut, sem, a, sp, rng, sp.TrainSize)
	if err := taskio.ExportLabelledSet(filepath.Join(dir, "train.csv"), trainWords, trainLabels); err != nil {
		return err
	}
	if err := taskio.ExportLabelledSet(filepath.Join(setsDir, sp.Name+"_train.csv"), trainWords, trainLabels); err != nil {
		return err
	}
	testWords, testLabels := sampleWords(aut, sem, a, sp, rng, sp.TestSize)
	if err := taskio.ExportLabelledSet(filepath.Join(dir, "test.csv"), testWords, testLabels); err != nil {
		return err
	}
	if err := taskio.ExportLabelledSet(filepath.Join(setsDir, sp.Name+"_test.csv"), testWords, testLabels); err != nil {
		return err
	}

	return taskio.ExportSettings(filepath.Join(dir, "settings.txt"), [][2]string{
		{"acc_type", sp.AccType},
		{"num_states", strconv.Itoa(sp.NumStates)},
		{"alphabet", sp.Alphabet},
		{"seed", strconv.FormatInt(sp.Seed, 10)},
		{"train_size", strconv.Itoa(sp.TrainSize)},
		{"test_size", strconv.Itoa(sp.TestSize)},
	})
}

func semanticsFor(accType string) dpa.Semantics {
	if accType == "dba" {
		return dpa.Buchi
	}
	return dpa.MinEven
}

// randomAutomaton builds a complete (every state has an outgoing edge
// for every symbol), pointed, connected-by-construction DTS with
// random edge priorities in [0, maxPriority], wrapped as a DPA. Every
// state gets at least one incoming edge from an earlier state before
// random edges are added, so the automaton has no unreachable states.
func randomAutomaton(a alphabet.Alphabet, n, maxPriority int, rng *rand.Rand) *dpa.DPA {
	if n < 1 {
		n = 1
	}
	if maxPriority < 0 {
		maxPriority = 0
	}
	t := dts.New()
	ids := make([]dts.StateID, n)
	for i := 0; i < n; i++ {
		ids[i] = t.AddState(dts.Void)
	}
	t.SetInitial(ids[0])

	universe := a.Universe()
	// Spanning pass: state i gets an edge from state
	// (i-1)/len(universe), which always precedes it.
	for i := 1; i < n && len(universe) > 0; i++ {
		color := 0
		if maxPriority > 0 {
			color = rng.Intn(maxPriority + 1)
		}
		t.AddEdge(ids[(i-1)/len(universe)], universe[(i-1)%len(universe)], color, ids[i])
	}
	for i, q := range ids {
		for _, sym := range universe {
			if _, ok := t.HasEdge(q, sym); ok {
				continue
			}
			var target dts.StateID
			if i > 0 && rng.Intn(4) == 0 {
				// Bias an early edge back toward a known-reachable
				// predecessor, keeping the graph well-connected.
				target = ids[rng.Intn(i)]
			} else {
				target = ids[rng.Intn(n)]
			}
			color := 0
			if maxPriority > 0 {
				color = rng.Intn(maxPriority + 1)
			}
			t.AddEdgeReplacing(q, sym, color, target)
		}
	}
	return dpa.New(a, t)
}

// sampleWords draws n random ultimately periodic words over a and
// labels each by running it against aut under sem.
func sampleWords(aut *dpa.DPA, sem dpa.Semantics, a alphabet.Alphabet, sp Spec, rng *rand.Rand, n int) ([]word.ReducedOmegaWord, []bool) {
	words := make([]word.ReducedOmegaWord, 0, n)
	labels := make([]bool, 0, n)
	universe := a.Universe()

	for len(words) < n {
		spoke := randomFiniteWord(universe, rng.Intn(sp.MaxSpokeLen+1), rng)
		cycleLen := 1 + rng.Intn(sp.MaxCycleLen)
		cycle := randomFiniteWord(universe, cycleLen, rng)
		w := word.New(spoke, cycle)
		words = append(words, w)
		labels = append(labels, aut.Accepts(sem, w))
	}
	return words, labels
}

func randomFiniteWord(universe []alphabet.Symbol, n int, rng *rand.Rand) word.FiniteWord {
	w := make(word.FiniteWord, n)
	for i := range w {
		w[i] = universe[rng.Intn(len(universe))]
	}
	return w
}
