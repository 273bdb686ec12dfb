// Package comments holds the comment dashboard's domain model: the loaded
// records, the per-field inline edit state machine, and the Board that derives
// the filtered and paginated view.
package comments

import (
	"errors"
	"fmt"
	"strings"
)

// UnknownPostTitle is returned by title lookups when no post matches.
const UnknownPostTitle = "Unknown Post"

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotEditing      = errors.New("field is not being edited")
	ErrUnknownField    = errors.New("unknown field")
)

// Comment is a record from the remote dataset. Unknown wire fields are ignored.
type Comment struct {
	ID     int    `json:"id"`
	PostID int    `json:"postId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Body   string `json:"body"`
}

// Post is read-only reference data used for display titles.
type Post struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// Field identifies an editable column of a comment.
type Field string

const (
	FieldName Field = "name"
	FieldBody Field = "body"
)

// ParseField converts a user supplied string into a Field.
func ParseField(s string) (Field, error) {
	switch Field(strings.ToLower(strings.TrimSpace(s))) {
	case FieldName:
		return FieldName, nil
	case FieldBody:
		return FieldBody, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
}

func (f Field) String() string { return string(f) }

// Valid reports whether f is one of the editable fields.
func (f Field) Valid() bool {
	return f == FieldName || f == FieldBody
}
