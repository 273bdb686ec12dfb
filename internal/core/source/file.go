package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/colonyops/remark/internal/core/comments"
)

// File names read by FileSource.
const (
	CommentsFile = "comments.json"
	PostsFile    = "posts.json"
)

// FileSource reads the datasets from JSON files in a directory, using the
// same wire shape as the HTTP endpoints.
type FileSource struct {
	dir string
}

// NewFileSource returns a source reading from dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

func (s *FileSource) Comments(ctx context.Context) ([]comments.Comment, error) {
	return readJSON[[]comments.Comment](ctx, filepath.Join(s.dir, CommentsFile))
}

func (s *FileSource) Posts(ctx context.Context) ([]comments.Post, error) {
	return readJSON[[]comments.Post](ctx, filepath.Join(s.dir, PostsFile))
}

func readJSON[T any](ctx context.Context, path string) (T, error) {
	var out T
	if err := ctx.Err(); err != nil {
		return out, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return out, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("read %s: %w: %w", path, ErrDecode, err)
	}
	return out, nil
}
