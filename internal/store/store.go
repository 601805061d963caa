// Package store holds the in-memory task collection grouped by day.
package store

import (
	"sort"

	"github.com/sandeepkv93/weekplan/internal/model"
)

// DayTasks pairs a day bucket with its tasks in insertion order.
type DayTasks struct {
	Day   model.Day
	Tasks []model.Task
}

// Store owns the day -> task mapping and the per-day next-id counters.
// All eight canonical days are present at all times. A mutation hook can
// be registered so persistence can autosave after successful changes.
type Store struct {
	days        map[model.Day][]model.Task
	nextID      map[model.Day]int
	afterMutate func()
}

func New() *Store {
	s := &Store{
		days:   make(map[model.Day][]model.Task, 8),
		nextID: make(map[model.Day]int, 8),
	}
	for _, day := range model.WeekOrder() {
		s.days[day] = []model.Task{}
		s.nextID[day] = 0
	}
	return s
}

// OnMutate registers fn to run after every successful mutation. Add always
// fires it; EditName and SetStatus fire it only when the target was found.
func (s *Store) OnMutate(fn func()) {
	s.afterMutate = fn
}

func (s *Store) fireMutate() {
	if s.afterMutate != nil {
		s.afterMutate()
	}
}

// Add appends a task to the given day and assigns the day's next id.
// Blank day falls back to general; an unrecognized day still gets its own
// bucket rather than failing the add. Empty names are allowed.
func (s *Store) Add(day, name string, status model.Status) model.Task {
	key := model.NormalizeDay(day)
	if _, ok := s.days[key]; !ok {
		s.days[key] = []model.Task{}
	}
	if status == "" {
		status = model.StatusPending
	}
	task := model.Task{ID: s.nextID[key], Name: name, Status: status}
	s.days[key] = append(s.days[key], task)
	s.nextID[key]++
	s.fireMutate()
	return task
}

// EditName renames the task with the given id within the day. A missing
// day+id pair is a silent no-op reported as false, not an error.
func (s *Store) EditName(day string, id int, name string) bool {
	key := model.NormalizeDay(day)
	tasks := s.days[key]
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i].Name = name
			s.fireMutate()
			return true
		}
	}
	return false
}

// SetStatus updates the status of the task with the given id within the
// day, with the same found/not-found semantics as EditName.
func (s *Store) SetStatus(day string, id int, status model.Status) bool {
	key := model.NormalizeDay(day)
	tasks := s.days[key]
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i].Status = status
			s.fireMutate()
			return true
		}
	}
	return false
}

func (s *Store) MarkDone(day string, id int) bool {
	return s.SetStatus(day, id, model.StatusDone)
}

// ListDay returns a copy of the day's tasks in insertion order. An unknown
// day yields an empty slice.
func (s *Store) ListDay(day string) []model.Task {
	tasks := s.days[model.NormalizeDay(day)]
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	return out
}

// ListAll returns every bucket: the eight canonical days in week order
// first, then any extra buckets created by defensive adds, sorted by name.
func (s *Store) ListAll() []DayTasks {
	out := make([]DayTasks, 0, len(s.days))
	canonical := make(map[model.Day]bool, 8)
	for _, day := range model.WeekOrder() {
		canonical[day] = true
		out = append(out, DayTasks{Day: day, Tasks: s.ListDay(string(day))})
	}
	extras := make([]model.Day, 0)
	for day := range s.days {
		if !canonical[day] {
			extras = append(extras, day)
		}
	}
	sort.Slice(extras, func(i, j int) bool { return extras[i] < extras[j] })
	for _, day := range extras {
		out = append(out, DayTasks{Day: day, Tasks: s.ListDay(string(day))})
	}
	return out
}

// NextID returns the id the next Add on the day would receive.
func (s *Store) NextID(day string) int {
	return s.nextID[model.NormalizeDay(day)]
}

// Count returns the number of tasks in the day.
func (s *Store) Count(day string) int {
	return len(s.days[model.NormalizeDay(day)])
}

// ReplaceAll swaps in a freshly loaded day mapping and counter set. The
// eight canonical days are re-established if the input omits any. The swap
// is atomic from the caller's view: it runs only after a load has fully
// decoded, so a failed load never leaves a partial store. The mutation
// hook does not fire; loading must not trigger an autosave.
func (s *Store) ReplaceAll(days map[model.Day][]model.Task, counters map[model.Day]int) {
	next := make(map[model.Day][]model.Task, len(days))
	nextIDs := make(map[model.Day]int, len(counters))
	for day, tasks := range days {
		copied := make([]model.Task, len(tasks))
		copy(copied, tasks)
		next[day] = copied
	}
	for day, counter := range counters {
		nextIDs[day] = counter
	}
	for _, day := range model.WeekOrder() {
		if _, ok := next[day]; !ok {
			next[day] = []model.Task{}
		}
		if _, ok := nextIDs[day]; !ok {
			nextIDs[day] = 0
		}
	}
	s.days = next
	s.nextID = nextIDs
}
