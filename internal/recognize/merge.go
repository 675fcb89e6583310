package recognize

import (
	"fmt"
	"sort"
	"strings"
)

// NoTextSentinel is returned by Merge when no strip produced any text.
const NoTextSentinel = "No text could be extracted."

// Merge reassembles per-strip results into one document.
//
// Results are ordered by Y (ties keep their input order), results with blank
// text are dropped, and the remaining texts are trimmed, each preceded by a
// "<label> <id>" line, and joined with a blank line. The input slice is not
// reordered. When nothing remains, NoTextSentinel is returned.
func Merge(results []Result, opts ...Option) string {
	o := newOptions(opts)

	sorted := make([]Result, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Y < sorted[j].Y
	})

	entries := make([]string, 0, len(sorted))
	for _, r := range sorted {
		text := strings.TrimSpace(r.Text)
		if text == "" {
			continue
		}
		entries = append(entries, fmt.Sprintf("%s %d\n%s", o.label, r.StripID, text))
	}

	if len(entries) == 0 {
		return NoTextSentinel
	}
	return strings.Join(entries, "\n\n")
}
