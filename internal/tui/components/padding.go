package components

import "strings"

// Widths up to maxCachedPad are sliced from a shared string.
const maxCachedPad = 256

var spaces = strings.Repeat(" ", maxCachedPad)

// Pad returns n spaces. Table cells, the header and centred overlays use it
// to fill rows to an exact width.
func Pad(n int) string {
	if n <= 0 {
		return ""
	}
	if n <= maxCachedPad {
		return spaces[:n]
	}
	return strings.Repeat(" ", n)
}
