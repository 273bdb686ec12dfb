package comments

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseField(t *testing.T) {
	tests := []struct {
		in      string
		want    Field
		wantErr bool
	}{
		{in: "name", want: FieldName},
		{in: "Body", want: FieldBody},
		{in: " NAME ", want: FieldName},
		{in: "email", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseField(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownField)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComment_IgnoresUnknownWireFields(t *testing.T) {
	raw := `{"postId":1,"id":3,"name":"odio","email":"nikita@garfield.biz","body":"quia","extra":{"nested":true}}`

	var c Comment
	require.NoError(t, json.Unmarshal([]byte(raw), &c))

	assert.Equal(t, Comment{ID: 3, PostID: 1, Name: "odio", Email: "nikita@garfield.biz", Body: "quia"}, c)
}

func TestPostIndex_Title(t *testing.T) {
	idx := NewPostIndex([]Post{
		{ID: 1, Title: "first"},
		{ID: 2, Title: "second"},
		{ID: 1, Title: "duplicate"},
	})

	assert.Equal(t, "first", idx.Title(1))
	assert.Equal(t, "second", idx.Title(2))
	assert.Equal(t, UnknownPostTitle, idx.Title(99))
	assert.Equal(t, 2, idx.Len())

	var empty PostIndex
	assert.Equal(t, UnknownPostTitle, empty.Title(1))
}
