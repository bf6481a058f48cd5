package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/immxrtalbeast/simplewish/internal/domain"
	"github.com/immxrtalbeast/simplewish/internal/repository"
)

type testEnv struct {
	store    *repository.InMemoryStore
	auth     *AuthService
	events   *EventService
	lists    *ListService
	comments *CommentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := repository.NewInMemoryStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &testEnv{
		store:    store,
		auth:     NewAuthService(store.Users(), store.Sessions(), store.Events(), store.Attendees(), log, time.Hour),
		events:   NewEventService(store.Events(), store.Attendees(), store.Users(), log),
		lists:    NewListService(store.ListItems(), store.Attendees(), log),
		comments: NewCommentService(store.Comments(), store.ViewedComments(), store.Events(), store.Attendees(), log, 5),
	}
}

func (e *testEnv) newUser(t *testing.T, username string) *domain.User {
	t.Helper()

	user := domain.NewUser(username, "not-a-real-hash")
	require.NoError(t, e.store.Users().Create(context.Background(), user))
	return user
}

func validEventInput(code string) EventInput {
	return EventInput{
		Name:        "Christmas 2026",
		Description: "Christmas at Grandma's house.",
		Date:        time.Now().Add(30 * 24 * time.Hour).Format(time.RFC3339),
		Location:    "707 Chelsea Ct.",
		Code:        code,
	}
}

// newEvent creates an event owned by a fresh user and returns both along
// with the creator's attendee record.
func (e *testEnv) newEvent(t *testing.T, username, code string) (*domain.User, *domain.Event, *domain.Attendee) {
	t.Helper()

	user := e.newUser(t, username)
	event, err := e.events.CreateEvent(context.Background(), user.ID, validEventInput(code))
	require.NoError(t, err)
	require.Len(t, event.Attendees, 1)
	return user, event, event.Attendees[0]
}

// join adds a fresh user to the event as a Guest.
func (e *testEnv) join(t *testing.T, event *domain.Event, username string) (*domain.User, *domain.Attendee) {
	t.Helper()

	user := e.newUser(t, username)
	attendee, err := e.events.Join(context.Background(), event.ID, user.ID, "")
	require.NoError(t, err)
	return user, attendee
}

func (e *testEnv) newItem(t *testing.T, event *domain.Event, owner *domain.Attendee, ownerUserID uuid.UUID, name string, quantity int) *domain.ListItem {
	t.Helper()

	item, err := e.lists.CreateItem(context.Background(), event.ID, owner.ID, ownerUserID, ItemInput{
		Name:        name,
		Description: "This cool car",
		Quantity:    quantity,
	})
	require.NoError(t, err)
	return item
}
