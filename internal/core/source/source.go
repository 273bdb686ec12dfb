// Package source reads the comment and post datasets from a read-only
// backend and joins them into a single load result.
package source

import (
	"context"
	"errors"

	"github.com/colonyops/remark/internal/core/comments"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrDecode           = errors.New("decode response")
)

// Source retrieves the two datasets.
type Source interface {
	Comments(ctx context.Context) ([]comments.Comment, error)
	Posts(ctx context.Context) ([]comments.Post, error)
}
