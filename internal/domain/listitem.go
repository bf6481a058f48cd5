package domain

import (
	"time"

	"github.com/google/uuid"
)

// UnlimitedQuantity marks a list item that any number of attendees may give.
const UnlimitedQuantity = -1

// ListItem is a wish-list entry owned by one attendee within one event.
// Givers is a set: an attendee appears at most once, and the owner never
// appears at all.
type ListItem struct {
	ID          uuid.UUID `json:"id"`
	EventID     uuid.UUID `json:"event_id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Link        string    `json:"link,omitempty"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`

	Givers []*Attendee `json:"givers,omitempty"`
}

func NewListItem(eventID, ownerID uuid.UUID, name, description, link string, quantity int) *ListItem {
	return &ListItem{
		ID:          uuid.New(),
		EventID:     eventID,
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		Link:        link,
		Quantity:    quantity,
		CreatedAt:   time.Now().UTC(),
	}
}

// HasGiver reports whether the attendee is already in the giver set.
func (i *ListItem) HasGiver(attendeeID uuid.UUID) bool {
	for _, g := range i.Givers {
		if g.ID == attendeeID {
			return true
		}
	}
	return false
}

// AtCapacity reports whether the giver set is full. Unlimited items are
// never at capacity.
func (i *ListItem) AtCapacity() bool {
	return i.Quantity > 0 && len(i.Givers) >= i.Quantity
}
