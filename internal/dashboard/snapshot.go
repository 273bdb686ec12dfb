package dashboard

import "github.com/colonyops/remark/internal/core/comments"

// Row is a comment as rendered, with its post title resolved.
type Row struct {
	comments.EditableComment
	PostTitle string `json:"postTitle"`
}

// Snapshot is everything a renderer needs for one frame.
type Snapshot struct {
	Loading        bool   `json:"loading"`
	Search         string `json:"search"`
	Page           int    `json:"page"`
	TotalPages     int    `json:"totalPages"`
	ShowPagination bool   `json:"showPagination"`
	Matches        int    `json:"matches"`
	Rows           []Row  `json:"rows"`
	Error          string `json:"error,omitempty"`
	// CommentsError is set when the comments dataset itself failed, in which
	// case the collection is empty. A posts failure only sets Error.
	CommentsError string `json:"commentsError,omitempty"`
}

func newRow(b *comments.Board, c comments.EditableComment) Row {
	return Row{EditableComment: c, PostTitle: b.PostTitle(c.PostID)}
}

func snapshot(b *comments.Board, loadErr, commentsErr error) Snapshot {
	page := b.PageRows()
	rows := make([]Row, 0, len(page))
	for _, c := range page {
		rows = append(rows, newRow(b, c))
	}

	snap := Snapshot{
		Search:         b.Search(),
		Page:           b.Page(),
		TotalPages:     b.TotalPages(),
		ShowPagination: b.ShowPagination(),
		Matches:        len(b.Filtered()),
		Rows:           rows,
	}
	if loadErr != nil {
		snap.Error = loadErr.Error()
	}
	if commentsErr != nil {
		snap.CommentsError = commentsErr.Error()
	}
	return snap
}
