package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/immxrtalbeast/simplewish/internal/domain"
)

func TestPostCommentValidation(t *testing.T) {
	env := newTestEnv(t)
	creatorUser, event, _ := env.newEvent(t, "user", "code")

	_, err := env.comments.Post(context.Background(), creatorUser.ID, event.ID, nil, "")
	require.ErrorIs(t, err, domain.ErrValidation)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Please enter a comment", validationErr.Fields["text"])
}

func TestPostCommentRequiresAttendance(t *testing.T) {
	env := newTestEnv(t)
	_, event, _ := env.newEvent(t, "user", "code")
	outsider := env.newUser(t, "outsider")

	_, err := env.comments.Post(context.Background(), outsider.ID, event.ID, nil, "hello")
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.EqualError(t, err, "You must be attending this event to leave a comment")
}

func TestPostCommentThreadCap(t *testing.T) {
	env := newTestEnv(t)
	creatorUser, event, creator := env.newEvent(t, "user", "code")
	ctx := context.Background()

	// The test environment caps threads at five comments.
	for i := 0; i < 5; i++ {
		_, err := env.comments.Post(ctx, creatorUser.ID, event.ID, nil, "hello")
		require.NoError(t, err)
	}

	_, err := env.comments.Post(ctx, creatorUser.ID, event.ID, nil, "one too many")
	require.ErrorIs(t, err, domain.ErrLimitExceeded)
	assert.EqualError(t, err, "Comment limit of 5 reached for this discussion")

	count, err := env.store.Comments().CountThread(ctx, event.ID, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 5, count)

	// The cap is per thread, not per event.
	_, err = env.comments.Post(ctx, creatorUser.ID, event.ID, &creator.ID, "list thread still open")
	require.NoError(t, err)
}

func TestDeleteCommentAuthorization(t *testing.T) {
	env := newTestEnv(t)
	creatorUser, event, _ := env.newEvent(t, "user", "code")
	authorUser, _ := env.join(t, event, "user2")
	otherUser, _ := env.join(t, event, "user3")
	ctx := context.Background()

	post := func(t *testing.T) *domain.Comment {
		t.Helper()
		comment, err := env.comments.Post(ctx, authorUser.ID, event.ID, nil, "hello")
		require.NoError(t, err)
		return comment
	}

	t.Run("author can delete", func(t *testing.T) {
		comment := post(t)
		require.NoError(t, env.comments.Delete(ctx, authorUser.ID, event.ID, comment.ID))
	})

	t.Run("event creator can delete", func(t *testing.T) {
		comment := post(t)
		require.NoError(t, env.comments.Delete(ctx, creatorUser.ID, event.ID, comment.ID))
	})

	t.Run("other attendee cannot delete", func(t *testing.T) {
		comment := post(t)
		err := env.comments.Delete(ctx, otherUser.ID, event.ID, comment.ID)
		require.ErrorIs(t, err, domain.ErrForbidden)
		assert.EqualError(t, err, "You are not allowed to delete this comment")
	})

	t.Run("missing comment", func(t *testing.T) {
		err := env.comments.Delete(ctx, creatorUser.ID, event.ID, uuid.New())
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.EqualError(t, err, "Invalid comment ID")
	})

	t.Run("missing event", func(t *testing.T) {
		comment := post(t)
		err := env.comments.Delete(ctx, creatorUser.ID, uuid.New(), comment.ID)
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.EqualError(t, err, "Invalid event ID")
	})
}

func TestPostCommentAttachesOwner(t *testing.T) {
	env := newTestEnv(t)
	creatorUser, event, creator := env.newEvent(t, "user", "code")

	comment, err := env.comments.Post(context.Background(), creatorUser.ID, event.ID, nil, "hello")
	require.NoError(t, err)
	require.NotNil(t, comment.Owner)
	assert.Equal(t, creator.ID, comment.Owner.ID)
	assert.Equal(t, creator.Nickname, comment.Owner.Nickname)
}

func TestListRequiresAttendance(t *testing.T) {
	env := newTestEnv(t)
	creatorUser, event, _ := env.newEvent(t, "user", "code")
	outsider := env.newUser(t, "outsider")
	ctx := context.Background()

	_, err := env.comments.Post(ctx, creatorUser.ID, event.ID, nil, "surprise ideas")
	require.NoError(t, err)

	_, err = env.comments.List(ctx, outsider.ID, event.ID, nil)
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.EqualError(t, err, "You aren't attending this event")

	// The rejected read must not leave a watermark behind either.
	lastView, err := env.store.ViewedComments().Get(ctx, outsider.ID, event.ID, domain.ThreadKey(nil))
	require.NoError(t, err)
	assert.Nil(t, lastView)
}

func TestListMarksOwnCommentsViewed(t *testing.T) {
	env := newTestEnv(t)
	creatorUser, event, _ := env.newEvent(t, "user", "code")
	otherUser, _ := env.join(t, event, "user2")
	ctx := context.Background()

	_, err := env.comments.Post(ctx, creatorUser.ID, event.ID, nil, "mine")
	require.NoError(t, err)
	_, err = env.comments.Post(ctx, otherUser.ID, event.ID, nil, "theirs")
	require.NoError(t, err)

	views, err := env.comments.List(ctx, creatorUser.ID, event.ID, nil)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.True(t, views[0].Viewed, "own comment starts viewed")
	assert.False(t, views[1].Viewed, "someone else's comment starts unviewed")
}

func TestListAdvancesWatermark(t *testing.T) {
	env := newTestEnv(t)
	creatorUser, event, _ := env.newEvent(t, "user", "code")
	otherUser, _ := env.join(t, event, "user2")
	ctx := context.Background()

	_, err := env.comments.Post(ctx, otherUser.ID, event.ID, nil, "first")
	require.NoError(t, err)

	views, err := env.comments.List(ctx, creatorUser.ID, event.ID, nil)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.False(t, views[0].Viewed)

	// Listing records that the viewer has seen the thread, so a later
	// read finds the same comment viewed.
	time.Sleep(2 * time.Millisecond)
	views, err = env.comments.List(ctx, creatorUser.ID, event.ID, nil)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].Viewed)

	// A comment posted after the last read is unviewed again.
	time.Sleep(2 * time.Millisecond)
	_, err = env.comments.Post(ctx, otherUser.ID, event.ID, nil, "second")
	require.NoError(t, err)

	views, err = env.comments.List(ctx, creatorUser.ID, event.ID, nil)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.True(t, views[0].Viewed)
	assert.False(t, views[1].Viewed)
}

func TestListOwnerNeverMarksOwnListThread(t *testing.T) {
	env := newTestEnv(t)
	creatorUser, event, creator := env.newEvent(t, "user", "code")
	otherUser, _ := env.join(t, event, "user2")
	ctx := context.Background()

	_, err := env.comments.Post(ctx, otherUser.ID, event.ID, &creator.ID, "what about socks?")
	require.NoError(t, err)

	// The owner reading their own list thread must not advance the
	// watermark, so the thread stays unread for them.
	time.Sleep(2 * time.Millisecond)
	views, err := env.comments.List(ctx, creatorUser.ID, event.ID, &creator.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.False(t, views[0].Viewed)

	lastView, err := env.store.ViewedComments().Get(ctx, creatorUser.ID, event.ID, domain.ThreadKey(&creator.ID))
	require.NoError(t, err)
	assert.Nil(t, lastView)

	// A different attendee reading the same thread does advance theirs.
	views, err = env.comments.List(ctx, otherUser.ID, event.ID, &creator.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)

	lastView, err = env.store.ViewedComments().Get(ctx, otherUser.ID, event.ID, domain.ThreadKey(&creator.ID))
	require.NoError(t, err)
	require.NotNil(t, lastView)
}

func TestWatermarksArePerThread(t *testing.T) {
	env := newTestEnv(t)
	creatorUser, event, _ := env.newEvent(t, "user", "code")
	otherUser, other := env.join(t, event, "user2")
	ctx := context.Background()

	_, err := env.comments.Post(ctx, otherUser.ID, event.ID, nil, "event-wide")
	require.NoError(t, err)
	_, err = env.comments.Post(ctx, otherUser.ID, event.ID, &other.ID, "on their list")
	require.NoError(t, err)

	// Reading the event-wide thread leaves the list thread unread.
	_, err = env.comments.List(ctx, creatorUser.ID, event.ID, nil)
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)

	views, err := env.comments.List(ctx, creatorUser.ID, event.ID, &other.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.False(t, views[0].Viewed)
}
