package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/colonyops/remark/internal/core/comments"
	"github.com/colonyops/remark/internal/dashboard"
)

type handler struct {
	session *dashboard.Session
}

type searchInput struct {
	Term string `json:"term"`
}

type pageInput struct {
	Page *int `json:"page" binding:"required"`
}

type valueInput struct {
	Value *string `json:"value" binding:"required"`
}

func (h *handler) view(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.Snapshot())
}

func (h *handler) setSearch(c *gin.Context) {
	var in searchInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	snap, err := h.session.SetSearch(in.Term)
	respondView(c, snap, err)
}

func (h *handler) setPage(c *gin.Context) {
	var in pageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	snap, err := h.session.SetPage(*in.Page)
	respondView(c, snap, err)
}

func (h *handler) nextPage(c *gin.Context) {
	snap, err := h.session.NextPage()
	respondView(c, snap, err)
}

func (h *handler) prevPage(c *gin.Context) {
	snap, err := h.session.PrevPage()
	respondView(c, snap, err)
}

func (h *handler) edit(c *gin.Context) {
	id, field, ok := commentTarget(c)
	if !ok {
		return
	}
	row, err := h.session.Edit(id, field)
	respondRow(c, row, err)
}

func (h *handler) input(c *gin.Context) {
	id, field, ok := commentTarget(c)
	if !ok {
		return
	}
	var in valueInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	row, err := h.session.Input(id, field, *in.Value)
	respondRow(c, row, err)
}

func (h *handler) commit(c *gin.Context) {
	id, field, ok := commentTarget(c)
	if !ok {
		return
	}
	var in valueInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	row, err := h.session.Commit(id, field, *in.Value)
	respondRow(c, row, err)
}

func (h *handler) discard(c *gin.Context) {
	id, field, ok := commentTarget(c)
	if !ok {
		return
	}
	row, err := h.session.Discard(id, field)
	respondRow(c, row, err)
}

func (h *handler) postTitle(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, errors.New("invalid post id"))
		return
	}
	title, err := h.session.PostTitle(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "title": title})
}

func respondView(c *gin.Context, snap dashboard.Snapshot, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func commentTarget(c *gin.Context) (int, comments.Field, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, errors.New("invalid comment id"))
		return 0, "", false
	}
	field, err := comments.ParseField(c.Param("field"))
	if err != nil {
		badRequest(c, err)
		return 0, "", false
	}
	return id, field, true
}

func respondRow(c *gin.Context, row dashboard.Row, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// statusFor maps session errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, comments.ErrUnknownField):
		return http.StatusBadRequest
	case errors.Is(err, comments.ErrCommentNotFound):
		return http.StatusNotFound
	case errors.Is(err, comments.ErrNotEditing):
		return http.StatusConflict
	case errors.Is(err, dashboard.ErrLoading), errors.Is(err, dashboard.ErrClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
