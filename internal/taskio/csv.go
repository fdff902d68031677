package taskio

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/coregx/omegalearn/sample"
	"github.com/coregx/omegalearn/word"
)

// LoadSample reads dir/train.csv (header "spoke,cycle,acceptance")
// and returns the Sample it encodes, with its alphabet auto-detected
// from the words actually present via DetectAlphabet.
func LoadSample(dir string) (*sample.Sample, error) {
	rows, err := readLabelledCSV(filepath.Join(dir, "train.csv"))
	if err != nil {
		return nil, err
	}

	var words []string
	for _, r := range rows {
		words = append(words, r.spoke, r.cycle)
	}
	a, err := DetectAlphabet(words)
	if err != nil {
		return nil, err
	}

	s := sample.New(a)
	for _, r := range rows {
		w := word.New(word.FromString(r.spoke), word.FromString(r.cycle))
		if err := s.Add(w, r.accept); err != nil {
			return nil, fmt.Errorf("taskio: %s: %w", dir, err)
		}
	}
	return s, nil
}

// LoadTestSet reads dir/test.csv the same way LoadSample reads
// train.csv, returning the raw (word, expected) pairs rather than a
// Sample, since the test set may legitimately contain both an
// accepted and a rejected word with the same canonical key (scoring
// does not require disjointness).
func LoadTestSet(dir string) ([]word.ReducedOmegaWord, []bool, error) {
	rows, err := readLabelledCSV(filepath.Join(dir, "test.csv"))
	if err != nil {
		return nil, nil, err
	}
	words := make([]word.ReducedOmegaWord, len(rows))
	expect := make([]bool, len(rows))
	for i, r := range rows {
		words[i] = word.New(word.FromString(r.spoke), word.FromString(r.cycle))
		expect[i] = r.accept
	}
	return words, expect, nil
}

type labelledRow struct {
	spoke, cycle string
	accept       bool
}

func readLabelledCSV(path string) ([]labelledRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("taskio: %s: empty csv", path)
	}

	var rows []labelledRow
	for _, rec := range records[1:] { // skip header
		if len(rec) < 3 {
			continue
		}
		accept, err := strconv.ParseBool(rec[2])
		if err != nil {
			return nil, fmt.Errorf("taskio: %s: malformed acceptance column %q: %w", path, rec[2], err)
		}
		rows = append(rows, labelledRow{spoke: rec[0], cycle: rec[1], accept: accept})
	}
	return rows, nil
}

// ExportLabelledSet writes a (word, accept) set as CSV with header
// "spoke,cycle,acceptance".
func ExportLabelledSet(path string, words []word.ReducedOmegaWord, accept []bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"spoke", "cycle", "acceptance"}); err != nil {
		return err
	}
	for i, rw := range words {
		if err := w.Write([]string{rw.Spoke.String(), rw.Cycle.String(), strconv.FormatBool(accept[i])}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ExportSettings writes simple "key,value" CSV rows, the shape
// settings.txt and result.csv share.
func ExportSettings(path string, fields [][2]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, kv := range fields {
		if err := w.Write(kv[:]); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ExportTimeoutResult writes result.csv for a task whose inference
// aborted on sprout's wall-clock or threshold bound.
func ExportTimeoutResult(path string, abortedSize int, elapsedMS int64) error {
	return ExportSettings(path, [][2]string{
		{"abort_automaton_size", strconv.Itoa(abortedSize)},
		{"time_ms", strconv.FormatInt(elapsedMS, 10)},
	})
}

// ScoredResult is the summary row set ExportResult writes to
// result.csv.
type ScoredResult struct {
	LearnedSize   int
	TotalCorrect  int
	PosCorrect    int
	NegCorrect    int
	PosCount      int
	NegCount      int
	ElapsedMillis int64
}

// ExportResult writes result.csv with the scored-test-set summary
// fields.
func ExportResult(path string, r ScoredResult) error {
	total := r.PosCount + r.NegCount
	pct := func(n, d int) string {
		if d == 0 {
			return "0"
		}
		return strconv.FormatFloat(float64(n)/float64(d), 'f', -1, 64)
	}
	return ExportSettings(path, [][2]string{
		{"learned_aut_size", strconv.Itoa(r.LearnedSize)},
		{"scored_correct", strconv.Itoa(r.TotalCorrect)},
		{"scored_correct%", pct(r.TotalCorrect, total)},
		{"pos_correct", strconv.Itoa(r.PosCorrect)},
		{"pos_correct%", pct(r.PosCorrect, r.PosCount)},
		{"neg_correct", strconv.Itoa(r.NegCorrect)},
		{"neg_correct%", pct(r.NegCorrect, r.NegCount)},
		{"pos_count", strconv.Itoa(r.PosCount)},
		{"pos_count%", pct(r.PosCount, total)},
		{"neg_count", strconv.Itoa(r.NegCount)},
		{"neg_count%", pct(r.NegCount, total)},
		{"time_ms", strconv.FormatInt(r.ElapsedMillis, 10)},
	})
}
