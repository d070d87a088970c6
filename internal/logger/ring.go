// internal/logger/ring.go
package logger

import (
	"sync"
	"time"

	"go.uber.org/zap/zapcore"
)

// LogEntry represents a single log entry in the ring.
type LogEntry struct {
	Timestamp time.Time
	Level     zapcore.Level
	Message   string
}

// Ring is a thread-safe fixed-size buffer of the most recent log entries.
type Ring struct {
	mu           sync.Mutex
	entries      []LogEntry
	currentIndex int
	wrapped      bool
	total        uint64
}

// NewRing creates a ring holding up to size entries.
func NewRing(size int) *Ring {
	if size <= 0 {
		size = 1
	}
	return &Ring{entries: make([]LogEntry, size)}
}

// Add appends an entry, overwriting the oldest one when full.
func (r *Ring) Add(entry LogEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[r.currentIndex] = entry
	r.currentIndex = (r.currentIndex + 1) % len(r.entries)
	if r.currentIndex == 0 {
		r.wrapped = true
	}
	r.total++
}

// Recent returns up to limit entries, oldest first. A non-positive limit
// returns everything held.
func (r *Ring) Recent(limit int) []LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := r.currentIndex
	start := 0
	if r.wrapped {
		count = len(r.entries)
		start = r.currentIndex
	}

	skip := 0
	if limit > 0 && limit < count {
		skip = count - limit
	}

	out := make([]LogEntry, 0, count-skip)
	for i := skip; i < count; i++ {
		out = append(out, r.entries[(start+i)%len(r.entries)])
	}
	return out
}

// Last returns the newest entry.
func (r *Ring) Last() (LogEntry, bool) {
	recent := r.Recent(1)
	if len(recent) == 0 {
		return LogEntry{}, false
	}
	return recent[0], true
}

// Total counts every entry ever added.
func (r *Ring) Total() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}

// Core returns a zapcore.Core that records entries at or above level.
// Fields are dropped; only the message is kept.
func (r *Ring) Core(level zapcore.LevelEnabler) zapcore.Core {
	return &ringCore{LevelEnabler: level, ring: r}
}

type ringCore struct {
	zapcore.LevelEnabler
	ring *Ring
}

func (c *ringCore) With([]zapcore.Field) zapcore.Core { return c }

func (c *ringCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *ringCore) Write(entry zapcore.Entry, _ []zapcore.Field) error {
	c.ring.Add(LogEntry{Timestamp: entry.Time, Level: entry.Level, Message: entry.Message})
	return nil
}

func (c *ringCore) Sync() error { return nil }
