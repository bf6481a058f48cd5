package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/immxrtalbeast/simplewish/internal/domain"
	"github.com/immxrtalbeast/simplewish/internal/repository"
)

func TestCreateEventValidation(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, "user")
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*EventInput)
		field  string
	}{
		{"short name", func(in *EventInput) { in.Name = "ab" }, "name"},
		{"long description", func(in *EventInput) { in.Description = string(make([]byte, 257)) }, "description"},
		{"past date", func(in *EventInput) { in.Date = "2001-01-01T00:00" }, "date"},
		{"garbage date", func(in *EventInput) { in.Date = "not a date" }, "date"},
		{"empty code", func(in *EventInput) { in.Code = "" }, "code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validEventInput("code")
			tt.mutate(&input)

			_, err := env.events.CreateEvent(ctx, user.ID, input)
			require.Error(t, err)

			var validationErr *domain.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Fields, tt.field)
		})
	}
}

func TestCreateEventMakesCreatorAdmin(t *testing.T) {
	env := newTestEnv(t)
	user, event, creator := env.newEvent(t, "user", "code")

	assert.Equal(t, user.ID, event.CreatorID)
	assert.Equal(t, user.ID, creator.UserID)
	assert.Equal(t, domain.RoleAdmin, creator.Role)
	assert.Equal(t, user.Username, creator.Nickname)
}

func TestCreateEventDuplicateCode(t *testing.T) {
	env := newTestEnv(t)
	env.newEvent(t, "user", "code")
	other := env.newUser(t, "user2")

	_, err := env.events.CreateEvent(context.Background(), other.ID, validEventInput("code"))
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, "That invite code is already taken")
}

func TestGetEventRequiresMembership(t *testing.T) {
	env := newTestEnv(t)
	creatorUser, event, _ := env.newEvent(t, "user", "code")
	outsider := env.newUser(t, "outsider")
	ctx := context.Background()

	_, _, err := env.events.GetEvent(ctx, event.ID, outsider.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	got, attendee, err := env.events.GetEvent(ctx, event.ID, creatorUser.ID)
	require.NoError(t, err)
	assert.Equal(t, event.ID, got.ID)
	assert.Equal(t, creatorUser.ID, attendee.UserID)
}

func TestEditEventRequiresManagerRole(t *testing.T) {
	env := newTestEnv(t)
	_, event, _ := env.newEvent(t, "user", "code")
	guestUser, _ := env.join(t, event, "user2")

	_, err := env.events.EditEvent(context.Background(), event.ID, guestUser.ID, validEventInput("code"))
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestEditEventCodeCollision(t *testing.T) {
	env := newTestEnv(t)
	creatorUser, event, _ := env.newEvent(t, "user", "code")
	env.newEvent(t, "user2", "taken")
	ctx := context.Background()

	_, err := env.events.EditEvent(ctx, event.ID, creatorUser.ID, validEventInput("taken"))
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, "That invite code is already taken")

	// Keeping the current code is not a collision with itself.
	input := validEventInput("code")
	input.Name = "Christmas, renamed"
	updated, err := env.events.EditEvent(ctx, event.ID, creatorUser.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Christmas, renamed", updated.Name)
}

func TestDeleteEventCreatorOnly(t *testing.T) {
	env := newTestEnv(t)
	_, event, _ := env.newEvent(t, "user", "code")
	organizerUser, organizer := env.join(t, event, "user2")
	ctx := context.Background()

	// Even a promoted Organizer cannot delete; only the creator can.
	require.NoError(t, env.events.ChangeRole(ctx, event.ID, organizer.ID, "Organizer", event.CreatorID))
	err := env.events.DeleteEvent(ctx, event.ID, organizerUser.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.EqualError(t, err, "You can only delete an event you created")
}

func TestDeleteEventCascades(t *testing.T) {
	env := newTestEnv(t)
	creatorUser, event, creator := env.newEvent(t, "user", "code")
	guestUser, guest := env.join(t, event, "user2")
	item := env.newItem(t, event, creator, creatorUser.ID, "Hotwheels", 1)
	ctx := context.Background()

	_, err := env.lists.Give(ctx, event.ID, item.ID, guestUser.ID)
	require.NoError(t, err)
	_, err = env.comments.Post(ctx, guestUser.ID, event.ID, &creator.ID, "nice list")
	require.NoError(t, err)
	_, err = env.comments.List(ctx, guestUser.ID, event.ID, nil)
	require.NoError(t, err)

	require.NoError(t, env.events.DeleteEvent(ctx, event.ID, creatorUser.ID))

	_, err = env.store.Events().GetByID(ctx, event.ID)
	require.ErrorIs(t, err, repository.ErrEventNotFound)
	_, err = env.store.Attendees().GetByID(ctx, guest.ID)
	require.ErrorIs(t, err, repository.ErrAttendeeNotFound)
	_, err = env.store.ListItems().GetByID(ctx, item.ID)
	require.ErrorIs(t, err, repository.ErrItemNotFound)

	count, err := env.store.Comments().CountThread(ctx, event.ID, &creator.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	lastView, err := env.store.ViewedComments().Get(ctx, guestUser.ID, event.ID, domain.ThreadKey(nil))
	require.NoError(t, err)
	assert.Nil(t, lastView)
}

func TestJoinTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)
	_, event, _ := env.newEvent(t, "user", "code")
	guestUser, guest := env.join(t, event, "user2")

	assert.Equal(t, domain.RoleGuest, guest.Role)
	assert.Equal(t, guestUser.Username, guest.Nickname)

	_, err := env.events.Join(context.Background(), event.ID, guestUser.ID, "")
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, "You have already joined that event")
}

func TestJoinByCode(t *testing.T) {
	env := newTestEnv(t)
	_, event, _ := env.newEvent(t, "user", "code")
	guestUser := env.newUser(t, "user2")
	ctx := context.Background()

	_, err := env.events.JoinByCode(ctx, "wrong", guestUser.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "Invalid event code")

	joined, err := env.events.JoinByCode(ctx, "code", guestUser.ID)
	require.NoError(t, err)
	assert.Equal(t, event.ID, joined.ID)

	_, err = env.store.Attendees().GetByEventAndUser(ctx, event.ID, guestUser.ID)
	require.NoError(t, err)

	// Using the code again just lands on the event.
	again, err := env.events.JoinByCode(ctx, "code", guestUser.ID)
	require.NoError(t, err)
	assert.Equal(t, event.ID, again.ID)
}

func TestLeaveRules(t *testing.T) {
	env := newTestEnv(t)
	creatorUser, event, _ := env.newEvent(t, "user", "code")
	outsider := env.newUser(t, "outsider")
	ctx := context.Background()

	err := env.events.Leave(ctx, event.ID, creatorUser.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.EqualError(t, err, "You can't leave an event you created")

	err = env.events.Leave(ctx, event.ID, outsider.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.EqualError(t, err, "You can't leave an event you haven't joined")
}

func TestLeaveRemovesOwnItemsAndComments(t *testing.T) {
	env := newTestEnv(t)
	_, event, _ := env.newEvent(t, "user", "code")
	guestUser, guest := env.join(t, event, "user2")
	item := env.newItem(t, event, guest, guestUser.ID, "Hotwheels", 1)
	ctx := context.Background()

	_, err := env.comments.Post(ctx, guestUser.ID, event.ID, nil, "see you there")
	require.NoError(t, err)

	require.NoError(t, env.events.Leave(ctx, event.ID, guestUser.ID))

	_, err = env.store.Attendees().GetByID(ctx, guest.ID)
	require.ErrorIs(t, err, repository.ErrAttendeeNotFound)
	_, err = env.store.ListItems().GetByID(ctx, item.ID)
	require.ErrorIs(t, err, repository.ErrItemNotFound)

	comments, err := env.store.Comments().ListThread(ctx, event.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestLeaveKeepsGiverReferences(t *testing.T) {
	env := newTestEnv(t)
	creatorUser, event, creator := env.newEvent(t, "user", "code")
	guestUser, guest := env.join(t, event, "user2")
	item := env.newItem(t, event, creator, creatorUser.ID, "Hotwheels", 1)
	ctx := context.Background()

	_, err := env.lists.Give(ctx, event.ID, item.ID, guestUser.ID)
	require.NoError(t, err)

	require.NoError(t, env.events.Leave(ctx, event.ID, guestUser.ID))

	// The departed attendee still occupies the item's giver slot, so the
	// gift stays claimed even though nobody will bring it.
	got, err := env.store.ListItems().GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, got.HasGiver(guest.ID))
	assert.True(t, got.AtCapacity())
}

func TestKickAuthorization(t *testing.T) {
	env := newTestEnv(t)
	creatorUser, event, _ := env.newEvent(t, "user", "code")
	guestUser, _ := env.join(t, event, "user2")
	targetUser, target := env.join(t, event, "user3")
	ctx := context.Background()

	err := env.events.Kick(ctx, event.ID, targetUser.ID, guestUser.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, env.events.Kick(ctx, event.ID, targetUser.ID, creatorUser.ID))
	_, err = env.store.Attendees().GetByID(ctx, target.ID)
	require.ErrorIs(t, err, repository.ErrAttendeeNotFound)

	// Kicking the creator falls into the creator-can't-leave rule.
	err = env.events.Kick(ctx, event.ID, creatorUser.ID, creatorUser.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestChangeRole(t *testing.T) {
	env := newTestEnv(t)
	creatorUser, event, _ := env.newEvent(t, "user", "code")
	guestUser, guest := env.join(t, event, "user2")
	ctx := context.Background()

	t.Run("guest cannot change roles", func(t *testing.T) {
		err := env.events.ChangeRole(ctx, event.ID, guest.ID, "Organizer", guestUser.ID)
		require.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("promotion to Admin is rejected", func(t *testing.T) {
		err := env.events.ChangeRole(ctx, event.ID, guest.ID, "Admin", creatorUser.ID)
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		err := env.events.ChangeRole(ctx, event.ID, guest.ID, "Overlord", creatorUser.ID)
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("promotion to Organizer", func(t *testing.T) {
		require.NoError(t, env.events.ChangeRole(ctx, event.ID, guest.ID, "Organizer", creatorUser.ID))

		got, err := env.store.Attendees().GetByID(ctx, guest.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleOrganizer, got.Role)
	})

	t.Run("organizer can demote", func(t *testing.T) {
		thirdUser, third := env.join(t, event, "user3")
		require.NoError(t, env.events.ChangeRole(ctx, event.ID, third.ID, "Organizer", guestUser.ID))
		require.NoError(t, env.events.ChangeRole(ctx, event.ID, third.ID, "Guest", guestUser.ID))

		got, err := env.store.Attendees().GetByEventAndUser(ctx, event.ID, thirdUser.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleGuest, got.Role)
	})
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	_, event, _ := env.newEvent(t, "user", "code")
	guestUser, guest := env.join(t, event, "user2")
	outsider := env.newUser(t, "outsider")
	ctx := context.Background()

	_, err := env.events.UpdateProfile(ctx, event.ID, outsider.ID, "Nick", "robot")
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = env.events.UpdateProfile(ctx, event.ID, guestUser.ID, "", "robot")
	require.ErrorIs(t, err, domain.ErrValidation)

	updated, err := env.events.UpdateProfile(ctx, event.ID, guestUser.ID, "Nick", "robot")
	require.NoError(t, err)
	assert.Equal(t, "Nick", updated.Nickname)
	assert.Equal(t, "robot", updated.Avatar)

	got, err := env.store.Attendees().GetByID(ctx, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nick", got.Nickname)
	assert.Equal(t, "robot", got.Avatar)
}

func TestListEventsReturnsMemberships(t *testing.T) {
	env := newTestEnv(t)
	_, first, _ := env.newEvent(t, "user", "code")
	guestUser, _ := env.join(t, first, "user2")
	_, second, _ := env.newEvent(t, "user3", "other")
	_, err := env.events.Join(context.Background(), second.ID, guestUser.ID, "")
	require.NoError(t, err)

	events, err := env.events.ListEvents(context.Background(), guestUser.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)

	ids := []string{events[0].ID.String(), events[1].ID.String()}
	assert.Contains(t, ids, first.ID.String())
	assert.Contains(t, ids, second.ID.String())
}

func TestEventDateValidationWindow(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, "user")

	input := validEventInput("code")
	input.Date = time.Now().Add(-time.Hour).Format(time.RFC3339)

	_, err := env.events.CreateEvent(context.Background(), user.ID, input)
	require.ErrorIs(t, err, domain.ErrValidation)
}
