package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/immxrtalbeast/simplewish/internal/domain"
)

func TestCreateItemValidation(t *testing.T) {
	env := newTestEnv(t)
	creatorUser, event, creator := env.newEvent(t, "user", "code")
	ctx := context.Background()

	tests := []struct {
		name  string
		input ItemInput
		field string
	}{
		{"empty name", ItemInput{Name: "", Quantity: 1}, "name"},
		{"zero quantity", ItemInput{Name: "Hotwheels", Quantity: 0}, "quantity"},
		{"quantity below -1", ItemInput{Name: "Hotwheels", Quantity: -2}, "quantity"},
		{"bad link", ItemInput{Name: "Hotwheels", Quantity: 1, Link: "ht tp://nope"}, "link"},
		{"long description", ItemInput{Name: "Hotwheels", Quantity: 1, Description: string(make([]byte, 129))}, "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.lists.CreateItem(ctx, event.ID, creator.ID, creatorUser.ID, tt.input)
			require.Error(t, err)

			var validationErr *domain.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Fields, tt.field)
		})
	}
}

func TestCreateItemNormalizesLink(t *testing.T) {
	env := newTestEnv(t)
	creatorUser, event, creator := env.newEvent(t, "user", "code")

	item, err := env.lists.CreateItem(context.Background(), event.ID, creator.ID, creatorUser.ID, ItemInput{
		Name:     "Hotwheels",
		Link:     "example.com/toys",
		Quantity: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/toys", item.Link)
}

func TestCreateItemRequiresListOwnership(t *testing.T) {
	env := newTestEnv(t)
	_, event, creator := env.newEvent(t, "user", "code")
	guestUser, _ := env.join(t, event, "user2")

	_, err := env.lists.CreateItem(context.Background(), event.ID, creator.ID, guestUser.ID, ItemInput{
		Name:     "Hotwheels",
		Quantity: 1,
	})
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDeleteItemRequiresOwnership(t *testing.T) {
	env := newTestEnv(t)
	creatorUser, event, creator := env.newEvent(t, "user", "code")
	guestUser, _ := env.join(t, event, "user2")
	item := env.newItem(t, event, creator, creatorUser.ID, "Hotwheels", 1)
	ctx := context.Background()

	err := env.lists.DeleteItem(ctx, event.ID, item.ID, guestUser.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, env.lists.DeleteItem(ctx, event.ID, item.ID, creatorUser.ID))

	err = env.lists.DeleteItem(ctx, event.ID, item.ID, creatorUser.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGiveSingleQuantityScenario(t *testing.T) {
	env := newTestEnv(t)
	creatorUser, event, creator := env.newEvent(t, "user", "code")
	bUser, b := env.join(t, event, "user2")
	cUser, c := env.join(t, event, "user3")
	item := env.newItem(t, event, creator, creatorUser.ID, "Hotwheels", 1)
	ctx := context.Background()

	got, err := env.lists.Give(ctx, event.ID, item.ID, bUser.ID)
	require.NoError(t, err)
	require.Len(t, got.Givers, 1)
	assert.True(t, got.HasGiver(b.ID))

	_, err = env.lists.Give(ctx, event.ID, item.ID, cUser.ID)
	require.ErrorIs(t, err, domain.ErrLimitExceeded)
	assert.EqualError(t, err, "Someone else is already giving this gift")

	got, err = env.lists.DontGive(ctx, event.ID, item.ID, bUser.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Givers)

	got, err = env.lists.Give(ctx, event.ID, item.ID, cUser.ID)
	require.NoError(t, err)
	require.Len(t, got.Givers, 1)
	assert.True(t, got.HasGiver(c.ID))
}

func TestGiveCapacityMessageForMultiple(t *testing.T) {
	env := newTestEnv(t)
	creatorUser, event, creator := env.newEvent(t, "user", "code")
	bUser, _ := env.join(t, event, "user2")
	cUser, _ := env.join(t, event, "user3")
	dUser, _ := env.join(t, event, "user4")
	item := env.newItem(t, event, creator, creatorUser.ID, "Board game", 2)
	ctx := context.Background()

	_, err := env.lists.Give(ctx, event.ID, item.ID, bUser.ID)
	require.NoError(t, err)
	_, err = env.lists.Give(ctx, event.ID, item.ID, cUser.ID)
	require.NoError(t, err)

	_, err = env.lists.Give(ctx, event.ID, item.ID, dUser.ID)
	require.ErrorIs(t, err, domain.ErrLimitExceeded)
	assert.EqualError(t, err, "There are already enough people giving this gift")
}

func TestGiveUnlimitedNeverHitsLimit(t *testing.T) {
	env := newTestEnv(t)
	creatorUser, event, creator := env.newEvent(t, "user", "code")
	item := env.newItem(t, event, creator, creatorUser.ID, "Socks", domain.UnlimitedQuantity)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		user, _ := env.join(t, event, "guest"+string(rune('a'+i)))
		_, err := env.lists.Give(ctx, event.ID, item.ID, user.ID)
		require.NoError(t, err)
	}

	got, err := env.store.ListItems().GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Len(t, got.Givers, 10)
}

func TestGiveRejectsSelfGift(t *testing.T) {
	env := newTestEnv(t)
	creatorUser, event, creator := env.newEvent(t, "user", "code")
	item := env.newItem(t, event, creator, creatorUser.ID, "Hotwheels", 5)

	_, err := env.lists.Give(context.Background(), event.ID, item.ID, creatorUser.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.EqualError(t, err, "You can't give yourself a gift")
}

func TestGiveKeepsGiverSetDeduplicated(t *testing.T) {
	env := newTestEnv(t)
	creatorUser, event, creator := env.newEvent(t, "user", "code")
	bUser, _ := env.join(t, event, "user2")
	item := env.newItem(t, event, creator, creatorUser.ID, "Socks", domain.UnlimitedQuantity)
	ctx := context.Background()

	_, err := env.lists.Give(ctx, event.ID, item.ID, bUser.ID)
	require.NoError(t, err)
	got, err := env.lists.Give(ctx, event.ID, item.ID, bUser.ID)
	require.NoError(t, err)

	assert.Len(t, got.Givers, 1)
}

func TestDontGiveWhenNotGiving(t *testing.T) {
	env := newTestEnv(t)
	creatorUser, event, creator := env.newEvent(t, "user", "code")
	bUser, _ := env.join(t, event, "user2")
	item := env.newItem(t, event, creator, creatorUser.ID, "Hotwheels", 1)

	_, err := env.lists.DontGive(context.Background(), event.ID, item.ID, bUser.ID)
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, "You are already not giving this gift")
}

func TestGiveMissingItem(t *testing.T) {
	env := newTestEnv(t)
	creatorUser, event, _ := env.newEvent(t, "user", "code")

	_, err := env.lists.Give(context.Background(), event.ID, uuid.New(), creatorUser.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListForOwnerRequiresMembership(t *testing.T) {
	env := newTestEnv(t)
	creatorUser, event, creator := env.newEvent(t, "user", "code")
	env.newItem(t, event, creator, creatorUser.ID, "Hotwheels", 1)
	outsider := env.newUser(t, "outsider")

	_, err := env.lists.ListForOwner(context.Background(), event.ID, creator.ID, outsider.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	items, err := env.lists.ListForOwner(context.Background(), event.ID, creator.ID, creatorUser.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
