// Package taskio implements the file-system task layout the
// cmd/omegalearn driver reads and writes: one directory per learning
// task under data/tasks/<name>/, each holding aut.hoa, train.csv,
// test.csv, settings.txt, and (once learned) learned.hoa/result.csv.
package taskio

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Task identifies one learning-task directory and the acceptance
// condition its name selects: directories whose name contains "dba"
// are learned as Büchi automata, every other directory as DPAs.
type Task struct {
	Dir     string
	AccType string // "dba" or "dpa"
}

// ListTasks scans root for task subdirectories, skipping any that
// already carry a result.csv (already computed).
func ListTasks(root string) ([]Task, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var tasks []Task
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(root, e.Name())
		if _, err := os.Stat(filepath.Join(dir, "result.csv")); err == nil {
			continue
		}
		accType := "dpa"
		if strings.Contains(e.Name(), "dba") {
			accType = "dba"
		}
		tasks = append(tasks, Task{Dir: dir, AccType: accType})
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Dir < tasks[j].Dir })
	return tasks, nil
}
