package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/immxrtalbeast/simplewish/internal/api/http/converter"
	"github.com/immxrtalbeast/simplewish/internal/service"
)

type ListController struct {
	lists service.ListInteractor
}

func NewListController(lists service.ListInteractor) *ListController {
	return &ListController{lists: lists}
}

func (c *ListController) CreateItem(ctx *gin.Context) {
	eventID, err := uuid.Parse(ctx.Param("eventID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}
	attendeeID, err := uuid.Parse(ctx.Param("attendeeID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid attendee id"})
		return
	}

	type request struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Link        string `json:"link"`
		Quantity    *int   `json:"quantity"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	// A missing quantity means unlimited, matching the form's behavior.
	quantity := -1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	item, err := c.lists.CreateItem(ctx.Request.Context(), eventID, attendeeID, currentUser(ctx).ID, service.ItemInput{
		Name:        req.Name,
		Description: req.Description,
		Link:        req.Link,
		Quantity:    quantity,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"item": converter.ListItemToApi(item)})
}

func (c *ListController) ListItems(ctx *gin.Context) {
	eventID, err := uuid.Parse(ctx.Param("eventID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}
	attendeeID, err := uuid.Parse(ctx.Param("attendeeID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid attendee id"})
		return
	}

	items, err := c.lists.ListForOwner(ctx.Request.Context(), eventID, attendeeID, currentUser(ctx).ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	result := make([]*converter.ListItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, converter.ListItemToApi(item))
	}
	ctx.JSON(http.StatusOK, gin.H{"items": result})
}

func (c *ListController) DeleteItem(ctx *gin.Context) {
	eventID, err := uuid.Parse(ctx.Param("eventID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}
	itemID, err := uuid.Parse(ctx.Param("itemID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	if err := c.lists.DeleteItem(ctx.Request.Context(), eventID, itemID, currentUser(ctx).ID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (c *ListController) Give(ctx *gin.Context) {
	eventID, err := uuid.Parse(ctx.Param("eventID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}
	itemID, err := uuid.Parse(ctx.Param("itemID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	item, err := c.lists.Give(ctx.Request.Context(), eventID, itemID, currentUser(ctx).ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"item": converter.ListItemToApi(item)})
}

func (c *ListController) DontGive(ctx *gin.Context) {
	eventID, err := uuid.Parse(ctx.Param("eventID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}
	itemID, err := uuid.Parse(ctx.Param("itemID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	item, err := c.lists.DontGive(ctx.Request.Context(), eventID, itemID, currentUser(ctx).ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"item": converter.ListItemToApi(item)})
}
