package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is an attendee's permission level within one event.
type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleOrganizer Role = "Organizer"
	RoleGuest     Role = "Guest"
)

// Valid reports whether the role is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOrganizer, RoleGuest:
		return true
	}
	return false
}

// CanManage reports whether the role may edit the event, kick attendees or
// change roles. Only the creator's Admin role and promoted Organizers qualify.
func (r Role) CanManage() bool {
	return r == RoleAdmin || r == RoleOrganizer
}

// Attendee is a user's membership and per-event persona within one event.
// At most one attendee exists per (event, user) pair.
type Attendee struct {
	ID       uuid.UUID `json:"id"`
	EventID  uuid.UUID `json:"event_id"`
	UserID   uuid.UUID `json:"user_id"`
	Nickname string    `json:"nickname"`
	Avatar   string    `json:"avatar,omitempty"`
	Role     Role      `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

func NewAttendee(eventID, userID uuid.UUID, nickname string, role Role) *Attendee {
	return &Attendee{
		ID:       uuid.New(),
		EventID:  eventID,
		UserID:   userID,
		Nickname: nickname,
		Role:     role,
		JoinedAt: time.Now().UTC(),
	}
}
