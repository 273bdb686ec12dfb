package source

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/colonyops/remark/internal/core/comments"
	"github.com/colonyops/remark/internal/core/logging"
)

// Result is the outcome of one load. Each dataset fails independently.
type Result struct {
	Comments    []comments.Comment
	Posts       []comments.Post
	CommentsErr error
	PostsErr    error
}

// Err joins the dataset errors, or returns nil when both loaded.
func (r Result) Err() error {
	return errors.Join(r.CommentsErr, r.PostsErr)
}

// Board builds the working collection from the result. A failed comments
// read yields an empty board; failed posts only lose titles.
func (r Result) Board() *comments.Board {
	if r.CommentsErr != nil {
		return comments.NewBoard(nil, r.Posts)
	}
	return comments.NewBoard(r.Comments, r.Posts)
}

// Loader performs the one-shot load of both datasets.
type Loader struct {
	src     Source
	log     zerolog.Logger
	once    sync.Once
	loading atomic.Bool
	result  Result
}

// NewLoader returns a loader for src. It reports Loading until the first
// Load call has settled.
func NewLoader(src Source) *Loader {
	l := &Loader{
		src: src,
		log: logging.Component("source"),
	}
	l.loading.Store(true)
	return l
}

// Loading reports whether the load is still outstanding.
func (l *Loader) Loading() bool {
	return l.loading.Load()
}

// Load fetches comments and posts concurrently and returns once both have
// settled. Only the first call fetches; later calls return the same result.
// Failures are logged and never retried.
func (l *Loader) Load(ctx context.Context) Result {
	l.once.Do(func() {
		l.result = l.fetch(ctx)
		l.loading.Store(false)
	})
	return l.result
}

func (l *Loader) fetch(ctx context.Context) Result {
	var (
		res Result
		g   errgroup.Group
	)

	g.Go(func() error {
		res.Comments, res.CommentsErr = l.src.Comments(ctx)
		if res.CommentsErr != nil {
			return fmt.Errorf("load comments: %w", res.CommentsErr)
		}
		return nil
	})
	g.Go(func() error {
		res.Posts, res.PostsErr = l.src.Posts(ctx)
		if res.PostsErr != nil {
			return fmt.Errorf("load posts: %w", res.PostsErr)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		l.log.Error().
			Err(res.Err()).
			Bool("comments_ok", res.CommentsErr == nil).
			Bool("posts_ok", res.PostsErr == nil).
			Msg("dataset load failed")
	}

	l.log.Debug().
		Int("comments", len(res.Comments)).
		Int("posts", len(res.Posts)).
		Msg("dataset load settled")

	return res
}
