package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/simplewish/internal/domain"
)

type AuthInteractor interface {
	Register(ctx context.Context, username, password string) (*domain.User, *domain.Session, error)
	Login(ctx context.Context, username, password string) (*domain.User, *domain.Session, error)
	Logout(ctx context.Context, token uuid.UUID) error
	ResolveSession(ctx context.Context, token uuid.UUID) (*domain.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword, newPasswordConfirm string) error
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

type EventInteractor interface {
	CreateEvent(ctx context.Context, userID uuid.UUID, input EventInput) (*domain.Event, error)
	GetEvent(ctx context.Context, eventID, userID uuid.UUID) (*domain.Event, *domain.Attendee, error)
	ListEvents(ctx context.Context, userID uuid.UUID) ([]*domain.Event, error)
	EditEvent(ctx context.Context, eventID, userID uuid.UUID, input EventInput) (*domain.Event, error)
	DeleteEvent(ctx context.Context, eventID, userID uuid.UUID) error
	Join(ctx context.Context, eventID, userID uuid.UUID, nickname string) (*domain.Attendee, error)
	JoinByCode(ctx context.Context, code string, userID uuid.UUID) (*domain.Event, error)
	Leave(ctx context.Context, eventID, userID uuid.UUID) error
	Kick(ctx context.Context, eventID, targetUserID, actingUserID uuid.UUID) error
	ChangeRole(ctx context.Context, eventID, attendeeID uuid.UUID, newRole string, actingUserID uuid.UUID) error
	UpdateProfile(ctx context.Context, eventID, userID uuid.UUID, nickname, avatar string) (*domain.Attendee, error)
}

type ListInteractor interface {
	CreateItem(ctx context.Context, eventID, listOwnerID, actingUserID uuid.UUID, input ItemInput) (*domain.ListItem, error)
	ListForOwner(ctx context.Context, eventID, listOwnerID, actingUserID uuid.UUID) ([]*domain.ListItem, error)
	DeleteItem(ctx context.Context, eventID, itemID, actingUserID uuid.UUID) error
	Give(ctx context.Context, eventID, itemID, actingUserID uuid.UUID) (*domain.ListItem, error)
	DontGive(ctx context.Context, eventID, itemID, actingUserID uuid.UUID) (*domain.ListItem, error)
}

type CommentInteractor interface {
	Post(ctx context.Context, userID, eventID uuid.UUID, listOwnerID *uuid.UUID, text string) (*domain.Comment, error)
	Delete(ctx context.Context, userID, eventID, commentID uuid.UUID) error
	List(ctx context.Context, viewerUserID, eventID uuid.UUID, listOwnerID *uuid.UUID) ([]*domain.CommentView, error)
}

// EventInput carries the raw form fields for event create/edit. Date stays a
// string until validation parses it.
type EventInput struct {
	Name        string
	Description string
	Date        string
	Location    string
	Code        string
}

// ItemInput carries the raw form fields for list-item creation.
type ItemInput struct {
	Name        string
	Description string
	Link        string
	Quantity    int
}
