package converter

import (
	"time"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/simplewish/internal/domain"
)

type ListItemResponse struct {
	ID          uuid.UUID          `json:"id"`
	EventID     uuid.UUID          `json:"event_id"`
	OwnerID     uuid.UUID          `json:"owner_id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Link        string             `json:"link,omitempty"`
	Quantity    int                `json:"quantity"`
	Givers      []AttendeeResponse `json:"givers"`
}

type CommentResponse struct {
	ID          uuid.UUID  `json:"id"`
	EventID     uuid.UUID  `json:"event_id"`
	ListOwnerID *uuid.UUID `json:"list_owner_id,omitempty"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	Text        string     `json:"text"`
	CreatedAt   time.Time  `json:"created_at"`
	Nickname    string     `json:"nickname,omitempty"`
	Viewed      bool       `json:"viewed"`
}

func ListItemToApi(i *domain.ListItem) *ListItemResponse {
	givers := make([]AttendeeResponse, 0, len(i.Givers))
	for _, g := range i.Givers {
		givers = append(givers, AttendeeToApi(g))
	}

	return &ListItemResponse{
		ID:          i.ID,
		EventID:     i.EventID,
		OwnerID:     i.OwnerID,
		Name:        i.Name,
		Description: i.Description,
		Link:        i.Link,
		Quantity:    i.Quantity,
		Givers:      givers,
	}
}

func CommentToApi(c *domain.CommentView) *CommentResponse {
	resp := &CommentResponse{
		ID:          c.ID,
		EventID:     c.EventID,
		ListOwnerID: c.ListOwnerID,
		OwnerID:     c.OwnerID,
		Text:        c.Text,
		CreatedAt:   c.CreatedAt,
		Viewed:      c.Viewed,
	}
	if c.Owner != nil {
		resp.Nickname = c.Owner.Nickname
	}
	return resp
}
