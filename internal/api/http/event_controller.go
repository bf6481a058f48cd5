package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/immxrtalbeast/simplewish/internal/api/http/converter"
	"github.com/immxrtalbeast/simplewish/internal/service"
)

type EventController struct {
	events service.EventInteractor
}

func NewEventController(events service.EventInteractor) *EventController {
	return &EventController{events: events}
}

type eventRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"`
	Location    string `json:"location"`
	Code        string `json:"code" binding:"required"`
}

func (r eventRequest) toInput() service.EventInput {
	return service.EventInput{
		Name:        r.Name,
		Description: r.Description,
		Date:        r.Date,
		Location:    r.Location,
		Code:        r.Code,
	}
}

func (c *EventController) CreateEvent(ctx *gin.Context) {
	var req eventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	event, err := c.events.CreateEvent(ctx.Request.Context(), currentUser(ctx).ID, req.toInput())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"event": converter.EventToApi(event)})
}

func (c *EventController) ListEvents(ctx *gin.Context) {
	events, err := c.events.ListEvents(ctx.Request.Context(), currentUser(ctx).ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	result := make([]*converter.EventResponse, 0, len(events))
	for _, event := range events {
		result = append(result, converter.EventToApi(event))
	}
	ctx.JSON(http.StatusOK, gin.H{"events": result})
}

func (c *EventController) GetEvent(ctx *gin.Context) {
	eventID, err := uuid.Parse(ctx.Param("eventID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	event, attendee, err := c.events.GetEvent(ctx.Request.Context(), eventID, currentUser(ctx).ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"event":    converter.EventToApi(event),
		"attendee": converter.AttendeeToApi(attendee),
	})
}

func (c *EventController) EditEvent(ctx *gin.Context) {
	eventID, err := uuid.Parse(ctx.Param("eventID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	var req eventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	event, err := c.events.EditEvent(ctx.Request.Context(), eventID, currentUser(ctx).ID, req.toInput())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"event": converter.EventToApi(event)})
}

func (c *EventController) DeleteEvent(ctx *gin.Context) {
	eventID, err := uuid.Parse(ctx.Param("eventID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	if err := c.events.DeleteEvent(ctx.Request.Context(), eventID, currentUser(ctx).ID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (c *EventController) Join(ctx *gin.Context) {
	eventID, err := uuid.Parse(ctx.Param("eventID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	type request struct {
		Nickname string `json:"nickname"`
	}
	var req request
	_ = ctx.ShouldBindJSON(&req)

	attendee, err := c.events.Join(ctx.Request.Context(), eventID, currentUser(ctx).ID, req.Nickname)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"attendee": converter.AttendeeToApi(attendee)})
}

func (c *EventController) JoinByCode(ctx *gin.Context) {
	type request struct {
		Code string `json:"code" binding:"required"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	event, err := c.events.JoinByCode(ctx.Request.Context(), req.Code, currentUser(ctx).ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"event": converter.EventToApi(event)})
}

func (c *EventController) Leave(ctx *gin.Context) {
	eventID, err := uuid.Parse(ctx.Param("eventID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	if err := c.events.Leave(ctx.Request.Context(), eventID, currentUser(ctx).ID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (c *EventController) Kick(ctx *gin.Context) {
	eventID, err := uuid.Parse(ctx.Param("eventID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	type request struct {
		UserID uuid.UUID `json:"user_id" binding:"required"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := c.events.Kick(ctx.Request.Context(), eventID, req.UserID, currentUser(ctx).ID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (c *EventController) ChangeRole(ctx *gin.Context) {
	eventID, err := uuid.Parse(ctx.Param("eventID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	type request struct {
		AttendeeID uuid.UUID `json:"attendee_id" binding:"required"`
		Role       string    `json:"role" binding:"required"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := c.events.ChangeRole(ctx.Request.Context(), eventID, req.AttendeeID, req.Role, currentUser(ctx).ID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (c *EventController) UpdateProfile(ctx *gin.Context) {
	eventID, err := uuid.Parse(ctx.Param("eventID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	type request struct {
		Nickname string `json:"nickname" binding:"required"`
		Avatar   string `json:"avatar"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	attendee, err := c.events.UpdateProfile(ctx.Request.Context(), eventID, currentUser(ctx).ID, req.Nickname, req.Avatar)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"attendee": converter.AttendeeToApi(attendee)})
}
