package converter

import (
	"time"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/simplewish/internal/domain"
)

type EventResponse struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Date        time.Time          `json:"date"`
	Location    string             `json:"location,omitempty"`
	Code        string             `json:"code"`
	CreatorID   uuid.UUID          `json:"creator_id"`
	Attendees   []AttendeeResponse `json:"attendees"`
}

type AttendeeResponse struct {
	ID       uuid.UUID   `json:"id"`
	UserID   uuid.UUID   `json:"user_id"`
	Nickname string      `json:"nickname"`
	Avatar   string      `json:"avatar,omitempty"`
	Role     domain.Role `json:"role"`
}

func EventToApi(e *domain.Event) *EventResponse {
	attendees := make([]AttendeeResponse, 0, len(e.Attendees))
	for _, att := range e.Attendees {
		attendees = append(attendees, AttendeeToApi(att))
	}

	return &EventResponse{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Date:        e.Date,
		Location:    e.Location,
		Code:        e.Code,
		CreatorID:   e.CreatorID,
		Attendees:   attendees,
	}
}

func AttendeeToApi(a *domain.Attendee) AttendeeResponse {
	return AttendeeResponse{
		ID:       a.ID,
		UserID:   a.UserID,
		Nickname: a.Nickname,
		Avatar:   a.Avatar,
		Role:     a.Role,
	}
}
