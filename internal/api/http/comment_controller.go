package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/immxrtalbeast/simplewish/internal/api/http/converter"
	"github.com/immxrtalbeast/simplewish/internal/domain"
	"github.com/immxrtalbeast/simplewish/internal/service"
)

type CommentController struct {
	comments service.CommentInteractor
}

func NewCommentController(comments service.CommentInteractor) *CommentController {
	return &CommentController{comments: comments}
}

// threadOwner pulls the optional list-owner segment: absent on the
// event-wide thread routes, present on list thread routes.
func threadOwner(ctx *gin.Context) (*uuid.UUID, bool) {
	raw := ctx.Param("attendeeID")
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, false
	}
	return &id, true
}

func (c *CommentController) List(ctx *gin.Context) {
	eventID, err := uuid.Parse(ctx.Param("eventID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	listOwnerID, ok := threadOwner(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid attendee id"})
		return
	}

	comments, err := c.comments.List(ctx.Request.Context(), currentUser(ctx).ID, eventID, listOwnerID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	result := make([]*converter.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		result = append(result, converter.CommentToApi(comment))
	}
	ctx.JSON(http.StatusOK, gin.H{"comments": result})
}

func (c *CommentController) Post(ctx *gin.Context) {
	eventID, err := uuid.Parse(ctx.Param("eventID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	listOwnerID, ok := threadOwner(ctx)
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid attendee id"})
		return
	}

	type request struct {
		Text string `json:"text"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	comment, err := c.comments.Post(ctx.Request.Context(), currentUser(ctx).ID, eventID, listOwnerID, req.Text)
	if err != nil {
		respondError(ctx, err)
		return
	}

	// A fresh comment is always viewed by its author.
	ctx.JSON(http.StatusCreated, gin.H{"comment": converter.CommentToApi(&domain.CommentView{Comment: comment, Viewed: true})})
}

func (c *CommentController) Delete(ctx *gin.Context) {
	eventID, err := uuid.Parse(ctx.Param("eventID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}
	commentID, err := uuid.Parse(ctx.Param("commentID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	if err := c.comments.Delete(ctx.Request.Context(), currentUser(ctx).ID, eventID, commentID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
