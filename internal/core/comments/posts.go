package comments

// PostIndex resolves post titles by id. The zero value resolves every id to
// UnknownPostTitle.
type PostIndex struct {
	titles map[int]string
}

// NewPostIndex indexes posts by id. When ids repeat the first post wins.
func NewPostIndex(posts []Post) PostIndex {
	titles := make(map[int]string, len(posts))
	for _, p := range posts {
		if _, ok := titles[p.ID]; !ok {
			titles[p.ID] = p.Title
		}
	}
	return PostIndex{titles: titles}
}

// Title returns the title of the post, or UnknownPostTitle.
func (idx PostIndex) Title(postID int) string {
	if t, ok := idx.titles[postID]; ok {
		return t
	}
	return UnknownPostTitle
}

// Len returns the number of indexed posts.
func (idx PostIndex) Len() int {
	return len(idx.titles)
}
