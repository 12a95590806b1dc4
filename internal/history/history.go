// Package history records submitted terminal commands and persists them
// between sessions.
package history

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// History is the list of submitted command lines, most recent first, with a
// recall cursor for up/down navigation. Cursor 0 means the live input line;
// cursor n > 0 means entries[n-1] is on display.
type History struct {
	entries []string
	cursor  int
}

// New creates an empty history.
func New() *History {
	return &History{entries: make([]string, 0)}
}

// Record prepends a raw command line and resets the recall cursor.
func (h *History) Record(raw string) {
	h.entries = append([]string{raw}, h.entries...)
	h.cursor = 0
}

// RecallOlder moves one entry towards the oldest and returns it. At the oldest
// entry the cursor stays put and the oldest entry is returned again.
func (h *History) RecallOlder() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor < len(h.entries) {
		h.cursor++
	}
	return h.entries[h.cursor-1], true
}

// RecallNewer moves one entry towards the live input line. Returning to the
// live line yields an empty string. At the live line it is a no-op.
func (h *History) RecallNewer() (string, bool) {
	if h.cursor == 0 {
		return "", false
	}
	h.cursor--
	if h.cursor == 0 {
		return "", true
	}
	return h.entries[h.cursor-1], true
}

// ResetCursor returns the cursor to the live input line.
func (h *History) ResetCursor() {
	h.cursor = 0
}

// Cursor returns the recall cursor.
func (h *History) Cursor() int {
	return h.cursor
}

// Len returns the number of recorded entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the entries, most recent first.
func (h *History) Entries() []string {
	result := make([]string, len(h.entries))
	copy(result, h.entries)
	return result
}

// escape converts newlines to \n and backslashes to \\ for storage.
func escape(command string) string {
	escaped := strings.ReplaceAll(command, "\\", "\\\\")
	return strings.ReplaceAll(escaped, "\n", "\\n")
}

func unescape(escaped string) string {
	var result strings.Builder
	for i := 0; i < len(escaped); i++ {
		if escaped[i] == '\\' && i+1 < len(escaped) {
			switch escaped[i+1] {
			case 'n':
				result.WriteByte('\n')
				i++
				continue
			case '\\':
				result.WriteByte('\\')
				i++
				continue
			}
		}
		result.WriteByte(escaped[i])
	}
	return result.String()
}

// Load replaces the entries with the contents of path, stored oldest first.
// A missing file is not an error.
func (h *History) Load(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()

	var loaded []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		loaded = append([]string{unescape(scanner.Text())}, loaded...)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read history file: %w", err)
	}

	h.entries = append(h.entries[:0], loaded...)
	h.cursor = 0
	return nil
}

// Save writes the entries to path, oldest first, keeping at most limit
// entries when limit is positive.
func (h *History) Save(path string, limit int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create history file: %w", err)
	}
	defer file.Close()

	n := len(h.entries)
	if limit > 0 && n > limit {
		n = limit
	}
	w := bufio.NewWriter(file)
	for i := n - 1; i >= 0; i-- {
		if _, err := fmt.Fprintln(w, escape(h.entries[i])); err != nil {
			return fmt.Errorf("failed to write command to history file: %w", err)
		}
	}
	return w.Flush()
}
