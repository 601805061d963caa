package model

type Status string

const (
	StatusPending Status = "Pending"
	StatusDone    Status = "Done"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusDone:
		return true
	default:
		return false
	}
}

// Task is a single entry in a day bucket. ID is assigned per day in
// insertion order starting at 0 and is never written to the canonical
// file format; it exists so edit and done commands can address a task
// within its day for the lifetime of a session.
type Task struct {
	ID     int
	Name   string
	Status Status
}

func (t Task) Done() bool {
	return t.Status == StatusDone
}
