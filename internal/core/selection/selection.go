// Package selection tracks the set of resume files chosen for ranking and
// renders it as a human readable list.
package selection

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// EmptyText is rendered when nothing is selected.
const EmptyText = "No files selected"

// File is the metadata of one selected file.
type File struct {
	Name      string `json:"name"`
	Path      string `json:"path,omitempty"`
	SizeBytes int64  `json:"size_bytes"`
}

// Summary formats f as "<name> (<size> KB)" with the size rounded to the nearest KB.
func Summary(f File) string {
	kb := int64(math.Round(float64(f.SizeBytes) / 1024))
	return fmt.Sprintf("%s (%d KB)", f.Name, kb)
}

// Selection holds the current file selection and notifies listeners when it is
// replaced or reset. It is not safe for concurrent use.
type Selection struct {
	files     []File
	listeners []func([]File)
}

// New returns a selection seeded with files. Listeners are not notified.
func New(files ...File) *Selection {
	return &Selection{files: slices.Clone(files)}
}

// Files returns a copy of the current selection.
func (s *Selection) Files() []File {
	return slices.Clone(s.files)
}

// Len returns the number of selected files.
func (s *Selection) Len() int { return len(s.files) }

// TotalBytes sums the size of all selected files.
func (s *Selection) TotalBytes() int64 {
	var total int64
	for _, f := range s.files {
		total += f.SizeBytes
	}
	return total
}

// Paths returns the path of each selected file, falling back to its name.
func (s *Selection) Paths() []string {
	out := make([]string, len(s.files))
	for i, f := range s.files {
		out[i] = f.Path
		if out[i] == "" {
			out[i] = f.Name
		}
	}
	return out
}

// OnSelectionChanged registers cb to run after every Replace or Reset.
func (s *Selection) OnSelectionChanged(cb func([]File)) {
	if cb == nil {
		return
	}
	s.listeners = append(s.listeners, cb)
}

// Replace swaps the whole selection for files.
func (s *Selection) Replace(files []File) {
	s.files = slices.Clone(files)
	s.notify()
}

// Reset clears the selection.
func (s *Selection) Reset() {
	s.files = nil
	s.notify()
}

// Lines returns one summary line per file.
func (s *Selection) Lines() []string {
	out := make([]string, len(s.files))
	for i, f := range s.files {
		out[i] = Summary(f)
	}
	return out
}

// Render returns the summary lines joined by newlines, or EmptyText.
func (s *Selection) Render() string {
	if len(s.files) == 0 {
		return EmptyText
	}
	return strings.Join(s.Lines(), "\n")
}

func (s *Selection) notify() {
	snapshot := s.Files()
	for _, cb := range s.listeners {
		cb(snapshot)
	}
}
