package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/simplewish/internal/domain"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUsernameExists   = errors.New("username already taken")
	ErrSessionNotFound  = errors.New("session not found")
	ErrEventNotFound    = errors.New("event not found")
	ErrEventCodeExists  = errors.New("event code already taken")
	ErrAttendeeNotFound = errors.New("attendee not found")
	ErrAttendeeExists   = errors.New("attendee already exists")
	ErrItemNotFound     = errors.New("list item not found")
	ErrCommentNotFound  = errors.New("comment not found")
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	// Delete removes the user row only; the service drives the cascade
	// through the other repositories first.
	Delete(ctx context.Context, id uuid.UUID) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByToken(ctx context.Context, token uuid.UUID) (*domain.Session, error)
	Delete(ctx context.Context, token uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type EventRepository interface {
	// Create inserts the event and the creator's attendee row atomically.
	Create(ctx context.Context, event *domain.Event, creator *domain.Attendee) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	GetByCode(ctx context.Context, code string) (*domain.Event, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	// DeleteCascade removes, in dependency order, the event's list items,
	// comments, attendees and finally the event row, all-or-nothing.
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

type AttendeeRepository interface {
	Create(ctx context.Context, attendee *domain.Attendee) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Attendee, error)
	GetByEventAndUser(ctx context.Context, eventID, userID uuid.UUID) (*domain.Attendee, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Attendee, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, nickname, avatar string) error
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error
	// DeleteCascade removes the attendee's own list items and comments and
	// then the attendee row, all-or-nothing. Giver references the attendee
	// holds on other owners' items are left untouched.
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

type ListItemRepository interface {
	Create(ctx context.Context, item *domain.ListItem) error
	// GetByID loads the item with its giver set.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ListItem, error)
	ListByOwner(ctx context.Context, eventID, ownerID uuid.UUID) ([]*domain.ListItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// AddGiver is idempotent: adding a giver that is already present is a
	// no-op, never a duplicate row.
	AddGiver(ctx context.Context, itemID, attendeeID uuid.UUID) error
	RemoveGiver(ctx context.Context, itemID, attendeeID uuid.UUID) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	// CountThread counts the comments in one (event, list owner) thread;
	// a nil listOwnerID addresses the event-wide thread.
	CountThread(ctx context.Context, eventID uuid.UUID, listOwnerID *uuid.UUID) (int64, error)
	// ListThread returns the thread's comments ordered by creation time
	// ascending, each with its owner attendee attached.
	ListThread(ctx context.Context, eventID uuid.UUID, listOwnerID *uuid.UUID) ([]*domain.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ViewedCommentRepository interface {
	// Upsert writes the watermark for the (user, event, thread) key,
	// creating the row on first view and bumping the timestamp after.
	Upsert(ctx context.Context, userID, eventID uuid.UUID, attendeeID string, at time.Time) error
	// Get returns nil without error when no watermark exists yet.
	Get(ctx context.Context, userID, eventID uuid.UUID, attendeeID string) (*domain.ViewedComment, error)
}
