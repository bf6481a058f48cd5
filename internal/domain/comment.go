package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a discussion message scoped either to the whole event
// (ListOwnerID nil) or to one attendee's list thread.
type Comment struct {
	ID          uuid.UUID  `json:"id"`
	EventID     uuid.UUID  `json:"event_id"`
	ListOwnerID *uuid.UUID `json:"list_owner_id,omitempty"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	Text        string     `json:"text"`
	CreatedAt   time.Time  `json:"created_at"`

	Owner *Attendee `json:"owner,omitempty"`
}

func NewComment(eventID uuid.UUID, listOwnerID *uuid.UUID, ownerID uuid.UUID, text string) *Comment {
	return &Comment{
		ID:          uuid.New(),
		EventID:     eventID,
		ListOwnerID: listOwnerID,
		OwnerID:     ownerID,
		Text:        text,
		CreatedAt:   time.Now().UTC(),
	}
}

// CommentView is a comment annotated with whether the viewer has already seen
// it. The flag drives the "new message" affordance; nothing is filtered.
type CommentView struct {
	*Comment
	Viewed bool `json:"viewed"`
}

// ViewedComment is a per-(user, event, thread) last-viewed watermark. The
// thread key is the list owner's attendee id, or empty for the event-wide
// thread.
type ViewedComment struct {
	UserID     uuid.UUID
	EventID    uuid.UUID
	AttendeeID string
	Timestamp  time.Time
}

// ThreadKey normalizes an optional list owner id into the watermark key.
func ThreadKey(listOwnerID *uuid.UUID) string {
	if listOwnerID == nil {
		return ""
	}
	return listOwnerID.String()
}
