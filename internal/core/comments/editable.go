package comments

// EditableComment is the working projection of a Comment. Name and Body hold
// the working values; OriginalName and OriginalBody hold the last committed
// values and are only allowed to differ from them while the matching
// IsEditing flag is set.
type EditableComment struct {
	Comment
	OriginalName  string `json:"originalName"`
	OriginalBody  string `json:"originalBody"`
	IsEditingName bool   `json:"isEditingName"`
	IsEditingBody bool   `json:"isEditingBody"`
}

// NewEditable projects a loaded comment into its editable form.
func NewEditable(c Comment) EditableComment {
	return EditableComment{
		Comment:      c,
		OriginalName: c.Name,
		OriginalBody: c.Body,
	}
}

// Value returns the working value of the field.
func (e *EditableComment) Value(f Field) string {
	if f == FieldBody {
		return e.Body
	}
	return e.Name
}

// Original returns the last committed value of the field.
func (e *EditableComment) Original(f Field) string {
	if f == FieldBody {
		return e.OriginalBody
	}
	return e.OriginalName
}

// IsEditing reports whether the field is in edit mode.
func (e *EditableComment) IsEditing(f Field) bool {
	if f == FieldBody {
		return e.IsEditingBody
	}
	return e.IsEditingName
}

// StartEdit moves the field from Viewing to Editing. Calling it on a field
// that is already being edited keeps the in-progress value.
func (e *EditableComment) StartEdit(f Field) {
	e.setEditing(f, true)
}

// SetDraft replaces the working value of a field that is being edited.
func (e *EditableComment) SetDraft(f Field, value string) error {
	if !e.IsEditing(f) {
		return ErrNotEditing
	}
	e.setValue(f, value)
	return nil
}

// Commit makes value the new working and committed value and leaves edit mode.
func (e *EditableComment) Commit(f Field, value string) error {
	if !e.IsEditing(f) {
		return ErrNotEditing
	}
	e.setValue(f, value)
	if f == FieldBody {
		e.OriginalBody = value
	} else {
		e.OriginalName = value
	}
	e.setEditing(f, false)
	return nil
}

// Discard restores the committed value and leaves edit mode.
func (e *EditableComment) Discard(f Field) error {
	if !e.IsEditing(f) {
		return ErrNotEditing
	}
	e.setValue(f, e.Original(f))
	e.setEditing(f, false)
	return nil
}

func (e *EditableComment) setValue(f Field, value string) {
	if f == FieldBody {
		e.Body = value
		return
	}
	e.Name = value
}

func (e *EditableComment) setEditing(f Field, editing bool) {
	if f == FieldBody {
		e.IsEditingBody = editing
		return
	}
	e.IsEditingName = editing
}
