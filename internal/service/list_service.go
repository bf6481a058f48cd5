package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/immxrtalbeast/simplewish/internal/domain"
	"github.com/immxrtalbeast/simplewish/internal/repository"
	"github.com/immxrtalbeast/simplewish/internal/validation"
	"github.com/immxrtalbeast/simplewish/lib/logger/sl"
)

type ListService struct {
	items     repository.ListItemRepository
	attendees repository.AttendeeRepository
	log       *slog.Logger
}

func NewListService(
	items repository.ListItemRepository,
	attendees repository.AttendeeRepository,
	log *slog.Logger,
) *ListService {
	if log == nil {
		log = slog.Default()
	}
	return &ListService{items: items, attendees: attendees, log: log}
}

func (s *ListService) actingAttendee(ctx context.Context, eventID, userID uuid.UUID) (*domain.Attendee, error) {
	attendee, err := s.attendees.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAttendeeNotFound) {
			return nil, domain.Forbidden("You aren't attending this event")
		}
		return nil, err
	}
	return attendee, nil
}

// CreateItem adds an entry to the caller's own list. All fields are checked
// before any write; failures come back as one field-error map.
func (s *ListService) CreateItem(ctx context.Context, eventID, listOwnerID, actingUserID uuid.UUID, input ItemInput) (*domain.ListItem, error) {
	const op = "service.list.create_item"
	log := s.log.With(slog.String("op", op), slog.String("event_id", eventID.String()))

	attendee, err := s.actingAttendee(ctx, eventID, actingUserID)
	if err != nil {
		return nil, err
	}

	if attendee.ID != listOwnerID {
		return nil, domain.Forbidden("You are not the owner of this list")
	}

	if err := domain.InvalidFields(domain.FieldErrors{
		"name":        validation.ItemName(input.Name),
		"description": validation.ItemDescription(input.Description),
		"link":        validation.ItemLink(input.Link),
		"quantity":    validation.ItemQuantity(input.Quantity),
	}); err != nil {
		return nil, err
	}

	link := ""
	if input.Link != "" {
		link, err = validation.NormalizeURL(input.Link)
		if err != nil {
			return nil, domain.Invalid("link", "Please enter a valid URL, or leave empty")
		}
	}

	item := domain.NewListItem(eventID, attendee.ID, input.Name, input.Description, link, input.Quantity)
	if err := s.items.Create(ctx, item); err != nil {
		log.Error("failed to create item", sl.Err(err))
		return nil, err
	}

	log.Info("item created", slog.String("item_id", item.ID.String()))
	return item, nil
}

// ListForOwner returns another attendee's list (or the caller's own) within
// an event the caller attends.
func (s *ListService) ListForOwner(ctx context.Context, eventID, listOwnerID, actingUserID uuid.UUID) ([]*domain.ListItem, error) {
	if _, err := s.actingAttendee(ctx, eventID, actingUserID); err != nil {
		return nil, err
	}

	owner, err := s.attendees.GetByID(ctx, listOwnerID)
	if err != nil || owner.EventID != eventID {
		return nil, domain.Forbidden("That user does not belong to this event")
	}

	return s.items.ListByOwner(ctx, eventID, listOwnerID)
}

func (s *ListService) DeleteItem(ctx context.Context, eventID, itemID, actingUserID uuid.UUID) error {
	const op = "service.list.delete_item"
	log := s.log.With(slog.String("op", op), slog.String("item_id", itemID.String()))

	attendee, err := s.actingAttendee(ctx, eventID, actingUserID)
	if err != nil {
		return err
	}

	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return domain.NotFound("List item not found")
		}
		return err
	}

	if item.OwnerID != attendee.ID {
		return domain.Forbidden("You are not the owner of this list item")
	}

	if err := s.items.Delete(ctx, itemID); err != nil {
		log.Error("failed to delete item", sl.Err(err))
		return err
	}

	log.Info("item deleted")
	return nil
}

// Give adds the caller to the item's giver set. The capacity check runs
// before the self-gift check, so a full item reports the limit either way.
func (s *ListService) Give(ctx context.Context, eventID, itemID, actingUserID uuid.UUID) (*domain.ListItem, error) {
	const op = "service.list.give"
	log := s.log.With(slog.String("op", op), slog.String("item_id", itemID.String()))

	attendee, err := s.actingAttendee(ctx, eventID, actingUserID)
	if err != nil {
		return nil, err
	}

	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, domain.NotFound("List item not found")
		}
		return nil, err
	}

	if item.AtCapacity() {
		if item.Quantity > 1 {
			return nil, domain.LimitExceeded("There are already enough people giving this gift")
		}
		return nil, domain.LimitExceeded("Someone else is already giving this gift")
	}

	if item.OwnerID == attendee.ID {
		return nil, domain.Forbidden("You can't give yourself a gift")
	}

	if err := s.items.AddGiver(ctx, itemID, attendee.ID); err != nil {
		log.Error("failed to add giver", sl.Err(err))
		return nil, err
	}

	log.Info("giver added", slog.String("attendee_id", attendee.ID.String()))
	return s.items.GetByID(ctx, itemID)
}

// DontGive removes the caller from the item's giver set.
func (s *ListService) DontGive(ctx context.Context, eventID, itemID, actingUserID uuid.UUID) (*domain.ListItem, error) {
	const op = "service.list.dont_give"
	log := s.log.With(slog.String("op", op), slog.String("item_id", itemID.String()))

	attendee, err := s.actingAttendee(ctx, eventID, actingUserID)
	if err != nil {
		return nil, err
	}

	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, domain.NotFound("List item not found")
		}
		return nil, err
	}

	if !item.HasGiver(attendee.ID) {
		return nil, domain.Conflict("You are already not giving this gift")
	}

	if item.OwnerID == attendee.ID {
		return nil, domain.Forbidden("You can't give yourself a gift")
	}

	if err := s.items.RemoveGiver(ctx, itemID, attendee.ID); err != nil {
		log.Error("failed to remove giver", sl.Err(err))
		return nil, err
	}

	log.Info("giver removed", slog.String("attendee_id", attendee.ID.String()))
	return s.items.GetByID(ctx, itemID)
}
