// Package telemetry holds the dashboard key-value table shared between the
// operators and the robot program.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// ProgramKey names the selected autonomous program.
const ProgramKey = "Autonomous modes"

// Store is a string-keyed dashboard table.
type Store interface {
	GetNumber(key string, def float64) float64
	PutNumber(key string, value float64)
	GetString(key string, def string) string
	PutString(key string, value string)
}

// ValueKey is the key of a channel's commanded value.
func ValueKey(label string) string { return label }

// StartKey is the key of a channel's window start, in seconds.
func StartKey(label string) string { return label + " Start (secs)" }

// EndKey is the key of a channel's window end, in seconds.
func EndKey(label string) string { return label + " End (secs)" }

// Table is an in-memory Store.
type Table struct {
	mu      sync.Mutex
	numbers map[string]float64
	strings map[string]string
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		numbers: map[string]float64{},
		strings: map[string]string{},
	}
}

// LoadTable seeds a table from a flat JSON object. Numbers become numeric
// entries and strings become string entries; anything else is rejected.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read telemetry")
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "unmarshal telemetry")
	}

	t := NewTable()
	for k, v := range raw {
		switch vv := v.(type) {
		case float64:
			t.numbers[k] = vv
		case string:
			t.strings[k] = vv
		default:
			return nil, errors.Errorf("telemetry key %q: unsupported value %v", k, v)
		}
	}
	return t, nil
}

// GetNumber returns the number stored under key, or def.
func (t *Table) GetNumber(key string, def float64) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if v, ok := t.numbers[key]; ok {
		return v
	}
	return def
}

// PutNumber stores a number under key.
func (t *Table) PutNumber(key string, value float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.numbers[key] = value
}

// GetString returns the string stored under key, or def.
func (t *Table) GetString(key string, def string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if v, ok := t.strings[key]; ok {
		return v
	}
	return def
}

// PutString stores a string under key.
func (t *Table) PutString(key string, value string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.strings[key] = value
}

// Snapshot renders every entry as "key=value", sorted by key.
func (t *Table) Snapshot() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]string, 0, len(t.numbers)+len(t.strings))
	for k, v := range t.numbers {
		out = append(out, fmt.Sprintf("%s=%g", k, v))
	}
	for k, v := range t.strings {
		out = append(out, fmt.Sprintf("%s=%q", k, v))
	}
	sort.Strings(out)
	return out
}
