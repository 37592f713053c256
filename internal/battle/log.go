package battle

import "fmt"

// Log is the append-only record of everything that happened in a battle.
type Log struct {
	entries []string
}

// Append adds a line to the log.
func (l *Log) Append(entry string) {
	l.entries = append(l.entries, entry)
}

// Appendf formats and adds a line to the log.
func (l *Log) Appendf(format string, args ...any) {
	l.Append(fmt.Sprintf(format, args...))
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Entries returns a copy of all entries in order.
func (l *Log) Entries() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Tail returns a copy of the last n entries. n <= 0 returns nil; n larger
// than the log returns everything.
func (l *Log) Tail(n int) []string {
	if n <= 0 {
		return nil
	}
	if n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]string, n)
	copy(out, l.entries[len(l.entries)-n:])
	return out
}
