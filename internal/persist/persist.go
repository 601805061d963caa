// Package persist reads and writes the on-disk task file.
//
// The canonical format is a flat JSON object mapping capitalized day names
// to arrays of {task, status} entries, all eight keys always present in
// week order. An older wrapped format under a top-level "daily_tasks" key
// is still accepted on load and converted; it is never written.
package persist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/weekplan/internal/model"
	"github.com/sandeepkv93/weekplan/internal/store"
)

var (
	ErrNotFound = errors.New("persist: file not found")
	ErrParse    = errors.New("persist: malformed task file")
)

// legacyKey marks the wrapped format: a top-level mapping of lowercase day
// names to arrays of {id, name, status} entries.
const legacyKey = "daily_tasks"

type taskEntry struct {
	Task   string `json:"task"`
	Status string `json:"status"`
}

// canonicalEntry reads a canonical array element. Pointers distinguish
// absent fields so structurally off entries degrade to defaults instead of
// failing the whole load.
type canonicalEntry struct {
	Task   *string `json:"task"`
	Name   *string `json:"name"`
	Status *string `json:"status"`
}

type legacyEntry struct {
	ID     *int    `json:"id"`
	Name   *string `json:"name"`
	Status *string `json:"status"`
}

// Adapter serializes a store to the canonical format and fills it back
// from either accepted format. It remembers the last-used file path and
// re-saves there after every successful store mutation.
type Adapter struct {
	store            *store.Store
	path             string
	logger           *log.Logger
	autosaveDisabled bool
}

func NewAdapter(s *store.Store, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.Default()
	}
	a := &Adapter{store: s, logger: logger}
	s.OnMutate(a.autosave)
	return a
}

// Path returns the last-used file path, empty before any save or load.
func (a *Adapter) Path() string {
	return a.path
}

// SetAutosaveEnabled turns the after-mutate autosave on or off. It is on
// by default; explicit Save and Load are unaffected.
func (a *Adapter) SetAutosaveEnabled(enabled bool) {
	a.autosaveDisabled = !enabled
}

// Encode renders the canonical document: capitalized day keys in week
// order, 2-space indent, trailing newline. encoding/json sorts object keys
// alphabetically, so the top level is assembled by hand to keep week order.
func (a *Adapter) Encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	days := model.WeekOrder()
	for i, day := range days {
		tasks := a.store.ListDay(string(day))
		entries := make([]taskEntry, 0, len(tasks))
		for _, t := range tasks {
			entries = append(entries, taskEntry{Task: t.Name, Status: string(t.Status)})
		}
		arr, err := json.MarshalIndent(entries, "  ", "  ")
		if err != nil {
			return nil, fmt.Errorf("persist: encode %s: %w", day, err)
		}
		fmt.Fprintf(&buf, "  %q: ", day.Capitalized())
		buf.Write(arr)
		if i < len(days)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// Save writes the canonical document to path via a temp file and records
// path for autosave. Write failures are returned, never raised.
func (a *Adapter) Save(path string) error {
	data, err := a.Encode()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("persist: create directory for %s: %w", path, err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("persist: write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("persist: write %s: %w", path, err)
	}
	a.path = path
	return nil
}

// Load reads path, detects the format, and atomically replaces the store
// contents. A missing file reports ErrNotFound, invalid JSON or a
// non-object document reports ErrParse; neither touches the store.
func (a *Adapter) Load(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("persist: read %s: %w", path, err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %s", ErrParse, path)
	}

	var days map[model.Day][]model.Task
	var counters map[model.Day]int
	if wrapped, ok := doc[legacyKey]; ok {
		days, counters, err = decodeLegacy(wrapped)
		if err != nil {
			return err
		}
	} else {
		days, counters = decodeCanonical(doc)
	}

	a.store.ReplaceAll(days, counters)
	a.path = path
	a.logger.Debug("loaded task file", "path", path)
	return nil
}

// decodeLegacy converts the wrapped format. Stored ids are kept for the
// session but only seed the counter recomputation: next id per day is
// max(existing ids) + 1, never the value any stale counter in the file
// might claim.
func decodeLegacy(wrapped json.RawMessage) (map[model.Day][]model.Task, map[model.Day]int, error) {
	var byDay map[string][]json.RawMessage
	if err := json.Unmarshal(wrapped, &byDay); err != nil {
		return nil, nil, fmt.Errorf("%w: %s is not a day mapping", ErrParse, legacyKey)
	}

	days := make(map[model.Day][]model.Task, 8)
	counters := make(map[model.Day]int, 8)
	for _, day := range model.WeekOrder() {
		// Legacy files keyed days in lowercase only.
		entries := byDay[string(day)]
		tasks := make([]model.Task, 0, len(entries))
		maxID := -1
		for i, raw := range entries {
			var e legacyEntry
			_ = json.Unmarshal(raw, &e)
			id := i
			if e.ID != nil {
				id = *e.ID
			}
			tasks = append(tasks, model.Task{
				ID:     id,
				Name:   stringOrEmpty(e.Name),
				Status: statusOrPending(e.Status),
			})
			if id > maxID {
				maxID = id
			}
		}
		days[day] = tasks
		counters[day] = maxID + 1
	}
	return days, counters, nil
}

// decodeCanonical reads the flat format: capitalized day keys with a
// lowercase fallback for hand-edited files, "task" with a legacy "name"
// fallback per entry. Ids are positional, counters are array lengths.
// Entries that are not objects degrade to an empty Pending task.
func decodeCanonical(doc map[string]json.RawMessage) (map[model.Day][]model.Task, map[model.Day]int) {
	days := make(map[model.Day][]model.Task, 8)
	counters := make(map[model.Day]int, 8)
	for _, day := range model.WeekOrder() {
		raw, ok := doc[day.Capitalized()]
		if !ok {
			raw, ok = doc[string(day)]
		}
		var entries []json.RawMessage
		if ok {
			// A day mapped to a non-array reads as empty.
			_ = json.Unmarshal(raw, &entries)
		}
		tasks := make([]model.Task, 0, len(entries))
		for i, rawEntry := range entries {
			var e canonicalEntry
			_ = json.Unmarshal(rawEntry, &e)
			name := ""
			switch {
			case e.Task != nil:
				name = *e.Task
			case e.Name != nil:
				name = *e.Name
			}
			tasks = append(tasks, model.Task{
				ID:     i,
				Name:   name,
				Status: statusOrPending(e.Status),
			})
		}
		days[day] = tasks
		counters[day] = len(tasks)
	}
	return days, counters
}

// autosave re-saves to the last-used path after a mutation. Before any
// explicit save or load it is a no-op; failures are logged and the
// in-memory mutation stands.
func (a *Adapter) autosave() {
	if a.autosaveDisabled || a.path == "" {
		return
	}
	if err := a.Save(a.path); err != nil {
		a.logger.Warn("autosave failed", "path", a.path, "err", err)
	}
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func statusOrPending(s *string) model.Status {
	if s == nil || *s == "" {
		return model.StatusPending
	}
	return model.Status(*s)
}
