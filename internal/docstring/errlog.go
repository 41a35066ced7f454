package docstring

import "fmt"

// ErrorLog collects human-readable diagnostics for a single parse, in the
// order they were detected. It is not safe for concurrent use; every parse
// gets its own.
type ErrorLog struct {
	entries []string
}

// Errorf appends a diagnostic. Calls on a nil log are dropped.
func (l *ErrorLog) Errorf(format string, args ...any) {
	if l == nil {
		return
	}
	l.entries = append(l.entries, fmt.Sprintf(format, args...))
}

func (l *ErrorLog) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// Entries returns a copy of the collected diagnostics.
func (l *ErrorLog) Entries() []string {
	if l == nil {
		return nil
	}
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}
