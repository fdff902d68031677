// Command omegalearn is the task-generator/learner driver. Two
// subcommands, selected by scanning argv for the keyword:
//
//	omegalearn gen     regenerate tasks under data/automata, data/sets, data/tasks/<name>
//	omegalearn sprout  learn every task under data/tasks lacking a result.csv
//
// The inference packages (dts, scc, conflict, sprout, congruence,
// dpa, hoa) are usable as a library without this binary.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/coregx/omegalearn/cmd/omegalearn/internal/gen"
	"github.com/coregx/omegalearn/cmd/omegalearn/internal/infer"
	"github.com/coregx/omegalearn/dpa"
	"github.com/coregx/omegalearn/hoa"
	"github.com/coregx/omegalearn/internal/taskio"
	"github.com/coregx/omegalearn/sprout"
	"github.com/coregx/omegalearn/word"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if len(os.Args) < 2 {
		logger.Error("usage: omegalearn <gen|sprout>")
		os.Exit(2)
	}

	var err error
	switch {
	case containsArg(os.Args[1:], "gen"):
		err = runGen(logger, ".")
	case containsArg(os.Args[1:], "sprout"):
		err = runSprout(logger, "data/tasks")
	default:
		logger.Error("unrecognized subcommand", "args", os.Args[1:])
		os.Exit(2)
	}

	if err != nil {
		logger.Error("omegalearn failed", "err", err)
		os.Exit(1)
	}
}

func containsArg(args []string, keyword string) bool {
	for _, a := range args {
		if a == keyword {
			return true
		}
	}
	return false
}

func runGen(logger *slog.Logger, root string) error {
	specs := gen.DefaultSpecs()
	logger.Info("regenerating tasks", "count", len(specs), "root", root)
	return gen.Run(root, specs)
}

// runSprout lists every task lacking a result.csv under root and
// learns each with a bounded worker pool: each worker owns its own
// Sample, ConflictRelation, and congruence exclusively, with no
// shared mutable state between jobs. Errors are reported per-task
// (via logger) and do not stop the remaining tasks.
func runSprout(logger *slog.Logger, root string) error {
	tasks, err := taskio.ListTasks(root)
	if err != nil {
		return fmt.Errorf("omegalearn: listing tasks: %w", err)
	}
	logger.Info("learning tasks", "count", len(tasks))

	const poolSize = 4
	jobs := make(chan taskio.Task)
	var wg sync.WaitGroup
	for i := 0; i < poolSize; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				if err := learnTask(t); err != nil {
					logger.Error("task failed", "dir", t.Dir, "err", err)
				}
			}
		}()
	}
	for _, t := range tasks {
		jobs <- t
	}
	close(jobs)
	wg.Wait()
	return nil
}

// learnTask runs the full pipeline for one task directory: load its
// Sample, infer an automaton via infer.Learn
// (conflict relation -> sprout -> edge coloring -> normalization),
// score it against test.csv, and write learned.hoa/result.csv -- or,
// on a sprout.ThresholdError/TimeoutError, the abort variant of
// result.csv.
func learnTask(t taskio.Task) error {
	start := time.Now()

	s, err := taskio.LoadSample(t.Dir)
	if err != nil {
		return fmt.Errorf("loading sample: %w", err)
	}

	sem := dpa.MinEven
	if t.AccType == "dba" {
		sem = dpa.Buchi
	}

	resultPath := filepath.Join(t.Dir, "result.csv")
	lock, err := taskio.LockResult(resultPath)
	if err != nil {
		return fmt.Errorf("locking result.csv: %w", err)
	}
	defer lock.Unlock()

	res, err := infer.Learn(s, sem, sprout.Config{Timeout: 2 * time.Minute})
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		return taskio.ExportTimeoutResult(resultPath, infer.PartialSize(err), elapsed)
	}

	if err := os.WriteFile(filepath.Join(t.Dir, "learned.hoa"), []byte(hoa.ToHOA(res.Automaton, res.Semantics)), 0o644); err != nil {
		return fmt.Errorf("writing learned.hoa: %w", err)
	}

	testWords, expect, err := taskio.LoadTestSet(t.Dir)
	if err != nil {
		return fmt.Errorf("loading test set: %w", err)
	}
	scored := score(res, testWords, expect)
	scored.LearnedSize = res.Size
	scored.ElapsedMillis = elapsed
	return taskio.ExportResult(resultPath, scored)
}

// score runs every (word, expected) pair in the test set through the
// learned automaton and tallies the taskio.ExportResult breakdown.
func score(res infer.Result, words []word.ReducedOmegaWord, expect []bool) taskio.ScoredResult {
	var out taskio.ScoredResult
	for i, w := range words {
		got := res.Automaton.Accepts(res.Semantics, w)
		if expect[i] {
			out.PosCount++
			if got {
				out.PosCorrect++
				out.TotalCorrect++
			}
		} else {
			out.NegCount++
			if !got {
				out.NegCorrect++
				out.TotalCorrect++
			}
		}
	}
	return out
}
