package sim

import (
	"fmt"

	"go.uber.org/zap"
)

// Log is the player-visible message list. Entries are mirrored to the
// diagnostics logger at debug level.
type Log struct {
	entries []string
	logger  *zap.Logger
	depth   int
}

func NewLog(logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{logger: logger}
}

// SetDepth tags future mirrored entries with the dungeon depth.
func (l *Log) SetDepth(depth int) { l.depth = depth }

func (l *Log) Add(msg string) {
	l.entries = append(l.entries, msg)
	l.logger.Debug("game log", zap.String("msg", msg), zap.Int("depth", l.depth))
}

func (l *Log) Addf(format string, args ...any) {
	l.Add(fmt.Sprintf(format, args...))
}

// Tail returns the last n entries, oldest first.
func (l *Log) Tail(n int) []string {
	if n <= 0 {
		return nil
	}
	start := max(len(l.entries)-n, 0)
	out := make([]string, len(l.entries)-start)
	copy(out, l.entries[start:])
	return out
}

// Entries returns every entry.
func (l *Log) Entries() []string { return l.Tail(len(l.entries)) }

func (l *Log) Len() int { return len(l.entries) }

// Last returns the newest entry or "".
func (l *Log) Last() string {
	if len(l.entries) == 0 {
		return ""
	}
	return l.entries[len(l.entries)-1]
}

// Reset drops every entry.
func (l *Log) Reset() { l.entries = l.entries[:0] }
