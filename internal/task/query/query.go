package query

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/AlibekovAA/tasklist/backend/internal/task/domain"
)

// Matches reports whether text contains filter as a case-insensitive
// substring. An empty filter matches everything.
func Matches(text, filter string) bool {
	if filter == "" {
		return true
	}
	fold := cases.Fold()
	return strings.Contains(fold.String(text), fold.String(filter))
}

// Filter returns the tasks whose text matches filter, keeping their order.
func Filter(tasks []domain.Task, filter string) []domain.Task {
	if filter == "" {
		return tasks
	}
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if Matches(t.Text, filter) {
			out = append(out, t)
		}
	}
	return out
}

// Sort orders tasks in place. asc and desc compare text with a locale-aware
// collator, ties newest first; the default is newest first.
func Sort(tasks []domain.Task, mode domain.SortMode) {
	byRecency := func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	}

	if mode != domain.SortAsc && mode != domain.SortDesc {
		sort.SliceStable(tasks, byRecency)
		return
	}

	// collate.Collator is not safe for concurrent use.
	col := collate.New(language.Und)
	sort.SliceStable(tasks, func(i, j int) bool {
		c := col.CompareString(tasks[i].Text, tasks[j].Text)
		if c == 0 {
			return byRecency(i, j)
		}
		if mode == domain.SortDesc {
			return c > 0
		}
		return c < 0
	})
}
