// Package journal keeps the session-scoped mood log and its aggregates.
package journal

import (
	"slices"
	"strings"
	"sync"
	"time"
)

// DateFormat is the day-granularity layout used for log dates.
const DateFormat = "2006-01-02"

// Entry is one logged mood. Entries are never edited or removed.
type Entry struct {
	Date string // calendar day, DateFormat
	Mood string
}

// Cell is the number of times a mood was logged on a given day.
type Cell struct {
	Date  string
	Mood  string
	Count int
}

// Log is an append-only sequence of mood entries for one session.
// It lives only as long as the process; nothing is persisted.
type Log struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{}
}

// Append records mood on the calendar day of date.
func (l *Log) Append(date time.Time, mood string) {
	entry := Entry{Date: date.Format(DateFormat), Mood: mood}

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()
}

// Entries returns a copy of the logged entries in insertion order.
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.entries)
}

// Len returns the number of logged entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Aggregate counts entries per (date, mood) pair.
func (l *Log) Aggregate() []Cell {
	return Aggregate(l.Entries())
}

// Aggregate counts entries per (date, mood) pair. The counts do not depend
// on entry order; cells are sorted by date then mood for stable output.
// An empty input yields an empty, non-nil slice.
func Aggregate(entries []Entry) []Cell {
	type key struct{ date, mood string }

	counts := make(map[key]int)
	for _, e := range entries {
		counts[key{e.Date, e.Mood}]++
	}

	cells := make([]Cell, 0, len(counts))
	for k, n := range counts {
		cells = append(cells, Cell{Date: k.date, Mood: k.mood, Count: n})
	}

	slices.SortFunc(cells, func(a, b Cell) int {
		if c := strings.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		return strings.Compare(a.Mood, b.Mood)
	})
	return cells
}
