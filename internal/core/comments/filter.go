package comments

import "strings"

// Filter returns the rows whose name, email or body contain term, ignoring
// case. Source order is preserved and an empty term matches every row.
func Filter(rows []EditableComment, term string) []EditableComment {
	needle := strings.ToLower(term)
	out := make([]EditableComment, 0, len(rows))
	for i := range rows {
		if needle == "" || matches(&rows[i], needle) {
			out = append(out, rows[i])
		}
	}
	return out
}

func matches(c *EditableComment, needle string) bool {
	return strings.Contains(strings.ToLower(c.Name), needle) ||
		strings.Contains(strings.ToLower(c.Email), needle) ||
		strings.Contains(strings.ToLower(c.Body), needle)
}
