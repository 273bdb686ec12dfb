package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconComment = "\uf075" // nf-fa-comment
	IconSearch  = "\uf002" // nf-fa-search
	IconEdit    = "\uf040" // nf-fa-pencil
	IconCheck   = "\uf00c" // nf-fa-check
	IconCancel  = "\uf00d" // nf-fa-times
	IconPost    = "\uf15c" // nf-fa-file_text
	IconWarning = "\uf071" // nf-fa-warning
)
