package store

import "github.com/sandeepkv93/taskpad/internal/model"

// The functions below are the pure half of the store: each returns a new
// collection and never mutates its input.

func Append(tasks []model.Task, t model.Task) []model.Task {
	out := make([]model.Task, 0, len(tasks)+1)
	out = append(out, tasks...)
	return append(out, t)
}

// Toggle flips Completed on the task with id. An unknown id yields an
// unchanged copy.
func Toggle(tasks []model.Task, id int64) []model.Task {
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		if t.ID == id {
			t.Completed = !t.Completed
		}
		out[i] = t
	}
	return out
}

// Replace rewrites title and description of the task with id in place,
// keeping its position and completion state.
func Replace(tasks []model.Task, id int64, d model.Draft) []model.Task {
	d = d.Trimmed()
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		if t.ID == id {
			t.Title = d.Title
			t.Description = model.StringPtr(d.Description)
		}
		out[i] = t
	}
	return out
}

// Remove drops the task with id. An unknown id yields an unchanged copy.
func Remove(tasks []model.Task, id int64) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// Find returns the task with id.
func Find(tasks []model.Task, id int64) (model.Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// Dedupe gives every repeated id after its first occurrence a fresh id from
// ids, so lookups by id match at most one task. It reports how many ids
// were reassigned. All ids are observed by ids first.
func Dedupe(tasks []model.Task, ids *model.IDSource) ([]model.Task, int) {
	for _, t := range tasks {
		ids.Observe(t.ID)
	}
	seen := make(map[int64]bool, len(tasks))
	out := make([]model.Task, len(tasks))
	changed := 0
	for i, t := range tasks {
		if seen[t.ID] {
			t.ID = ids.Next()
			changed++
		}
		seen[t.ID] = true
		out[i] = t
	}
	return out, changed
}
