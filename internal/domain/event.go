package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is a gift-coordination occasion. The creator always has a matching
// Attendee record with the Admin role; deleting the event removes every
// attendee, list item and comment that belongs to it.
type Event struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location,omitempty"`
	Code        string    `json:"code"`
	CreatorID   uuid.UUID `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Attendees []*Attendee `json:"attendees,omitempty"`
}

func NewEvent(name, description string, date time.Time, location, code string, creatorID uuid.UUID) *Event {
	now := time.Now().UTC()
	return &Event{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Date:        date,
		Location:    location,
		Code:        code,
		CreatorID:   creatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// AttendeeForUser returns the event's attendee record for a user, or nil.
func (e *Event) AttendeeForUser(userID uuid.UUID) *Attendee {
	for _, att := range e.Attendees {
		if att.UserID == userID {
			return att
		}
	}
	return nil
}
