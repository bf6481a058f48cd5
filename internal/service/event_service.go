package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/immxrtalbeast/simplewish/internal/domain"
	"github.com/immxrtalbeast/simplewish/internal/repository"
	"github.com/immxrtalbeast/simplewish/internal/validation"
	"github.com/immxrtalbeast/simplewish/lib/logger/sl"
)

type EventService struct {
	events    repository.EventRepository
	attendees repository.AttendeeRepository
	users     repository.UserRepository
	log       *slog.Logger
}

func NewEventService(
	events repository.EventRepository,
	attendees repository.AttendeeRepository,
	users repository.UserRepository,
	log *slog.Logger,
) *EventService {
	if log == nil {
		log = slog.Default()
	}
	return &EventService{events: events, attendees: attendees, users: users, log: log}
}

func validateEventInput(input EventInput) (time.Time, error) {
	if err := domain.InvalidFields(domain.FieldErrors{
		"name":        validation.EventName(input.Name),
		"description": validation.EventDescription(input.Description),
		"date":        validation.EventDate(input.Date, time.Now()),
		"code":        validation.EventCode(input.Code),
	}); err != nil {
		return time.Time{}, err
	}

	date, err := validation.ParseEventDate(input.Date)
	if err != nil {
		return time.Time{}, domain.Invalid("date", "Please enter a valid date")
	}
	return date, nil
}

// CreateEvent inserts the event together with the creator's Admin attendee,
// so the creator-is-an-attendee invariant holds from the first row.
func (s *EventService) CreateEvent(ctx context.Context, userID uuid.UUID, input EventInput) (*domain.Event, error) {
	const op = "service.event.create"
	log := s.log.With(slog.String("op", op), slog.String("user_id", userID.String()))

	date, err := validateEventInput(input)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domain.Forbidden("You must be logged in to do that")
		}
		return nil, err
	}

	event := domain.NewEvent(input.Name, input.Description, date, input.Location, input.Code, userID)
	creator := domain.NewAttendee(event.ID, userID, user.Username, domain.RoleAdmin)

	if err := s.events.Create(ctx, event, creator); err != nil {
		if errors.Is(err, repository.ErrEventCodeExists) {
			return nil, domain.Conflict("That invite code is already taken")
		}
		log.Error("failed to create event", sl.Err(err))
		return nil, err
	}

	event.Attendees = []*domain.Attendee{creator}
	log.Info("event created", slog.String("event_id", event.ID.String()))
	return event, nil
}

func (s *EventService) GetEvent(ctx context.Context, eventID, userID uuid.UUID) (*domain.Event, *domain.Attendee, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, nil, domain.NotFound("Event not found")
		}
		return nil, nil, err
	}

	attendee := event.AttendeeForUser(userID)
	if attendee == nil {
		return nil, nil, domain.Forbidden("You aren't attending this event")
	}
	return event, attendee, nil
}

func (s *EventService) ListEvents(ctx context.Context, userID uuid.UUID) ([]*domain.Event, error) {
	return s.events.ListByUser(ctx, userID)
}

func (s *EventService) EditEvent(ctx context.Context, eventID, userID uuid.UUID, input EventInput) (*domain.Event, error) {
	const op = "service.event.edit"
	log := s.log.With(slog.String("op", op), slog.String("event_id", eventID.String()))

	date, err := validateEventInput(input)
	if err != nil {
		return nil, err
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, domain.NotFound("Event not found")
		}
		return nil, err
	}

	attendee := event.AttendeeForUser(userID)
	if attendee == nil || !attendee.Role.CanManage() {
		return nil, domain.Forbidden("You are not allowed to do that")
	}

	// If attempting to change the invite code, make sure it's available.
	if event.Code != input.Code {
		if _, err := s.events.GetByCode(ctx, input.Code); err == nil {
			return nil, domain.Conflict("That invite code is already taken")
		} else if !errors.Is(err, repository.ErrEventNotFound) {
			return nil, err
		}
	}

	event.Name = input.Name
	event.Description = input.Description
	event.Date = date
	event.Location = input.Location
	event.Code = input.Code
	event.UpdatedAt = time.Now().UTC()

	if err := s.events.Update(ctx, event); err != nil {
		if errors.Is(err, repository.ErrEventCodeExists) {
			return nil, domain.Conflict("That invite code is already taken")
		}
		log.Error("failed to update event", sl.Err(err))
		return nil, err
	}

	log.Info("event updated")
	return event, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, eventID, userID uuid.UUID) error {
	const op = "service.event.delete"
	log := s.log.With(slog.String("op", op), slog.String("event_id", eventID.String()))

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.NotFound("Event not found")
		}
		return err
	}

	if event.CreatorID != userID {
		return domain.Forbidden("You can only delete an event you created")
	}

	if err := s.events.DeleteCascade(ctx, eventID); err != nil {
		log.Error("failed to delete event", sl.Err(err))
		return err
	}

	log.Info("event deleted")
	return nil
}

func (s *EventService) Join(ctx context.Context, eventID, userID uuid.UUID, nickname string) (*domain.Attendee, error) {
	const op = "service.event.join"
	log := s.log.With(slog.String("op", op), slog.String("event_id", eventID.String()))

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domain.Forbidden("You must be logged in to do that")
		}
		return nil, err
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, domain.NotFound("Event not found")
		}
		return nil, err
	}

	if event.AttendeeForUser(userID) != nil {
		return nil, domain.Conflict("You have already joined that event")
	}

	if nickname == "" {
		nickname = user.Username
	}
	if msg := validation.Nickname(nickname); msg != "" {
		return nil, domain.Invalid("nickname", msg)
	}

	attendee := domain.NewAttendee(eventID, userID, nickname, domain.RoleGuest)
	if err := s.attendees.Create(ctx, attendee); err != nil {
		if errors.Is(err, repository.ErrAttendeeExists) {
			return nil, domain.Conflict("You have already joined that event")
		}
		return nil, err
	}

	log.Info("attendee joined", slog.String("attendee_id", attendee.ID.String()))
	return attendee, nil
}

// JoinByCode resolves an invite code and joins the caller to the matching
// event. Callers who already joined just get the event back.
func (s *EventService) JoinByCode(ctx context.Context, code string, userID uuid.UUID) (*domain.Event, error) {
	event, err := s.events.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, domain.NotFound("Invalid event code")
		}
		return nil, err
	}

	if _, err := s.Join(ctx, event.ID, userID, ""); err != nil && !errors.Is(err, domain.ErrConflict) {
		return nil, err
	}
	return event, nil
}

// Leave removes the caller's attendee record along with their list items and
// comments in one transaction. Creators cannot leave; they delete the event
// instead.
func (s *EventService) Leave(ctx context.Context, eventID, userID uuid.UUID) error {
	const op = "service.event.leave"
	log := s.log.With(slog.String("op", op), slog.String("event_id", eventID.String()))

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.NotFound("Event not found")
		}
		return err
	}

	if event.CreatorID == userID {
		return domain.Forbidden("You can't leave an event you created")
	}

	attendee := event.AttendeeForUser(userID)
	if attendee == nil {
		return domain.Forbidden("You can't leave an event you haven't joined")
	}

	if err := s.attendees.DeleteCascade(ctx, attendee.ID); err != nil {
		log.Error("failed to remove attendee", sl.Err(err))
		return err
	}

	log.Info("attendee left", slog.String("attendee_id", attendee.ID.String()))
	return nil
}

// Kick is Leave on behalf of someone else, restricted to Admins and
// Organizers.
func (s *EventService) Kick(ctx context.Context, eventID, targetUserID, actingUserID uuid.UUID) error {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.NotFound("Event not found")
		}
		return err
	}

	acting := event.AttendeeForUser(actingUserID)
	if acting == nil || !acting.Role.CanManage() {
		return domain.Forbidden("You are not allowed to do that")
	}

	return s.Leave(ctx, eventID, targetUserID)
}

// ChangeRole updates an attendee's role. Promotion to Admin is rejected
// outright: the only Admin is the creator, fixed at event creation.
func (s *EventService) ChangeRole(ctx context.Context, eventID, attendeeID uuid.UUID, newRole string, actingUserID uuid.UUID) error {
	const op = "service.event.change_role"
	log := s.log.With(slog.String("op", op), slog.String("event_id", eventID.String()))

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.NotFound("Event not found")
		}
		return err
	}

	acting := event.AttendeeForUser(actingUserID)
	if acting == nil || !acting.Role.CanManage() {
		return domain.Forbidden("You are not allowed to do that")
	}

	role := domain.Role(newRole)
	if !role.Valid() || role == domain.RoleAdmin {
		return domain.Invalid("role", "Invalid role selected")
	}

	if err := s.attendees.UpdateRole(ctx, attendeeID, role); err != nil {
		if errors.Is(err, repository.ErrAttendeeNotFound) {
			return domain.NotFound("Attendee not found")
		}
		return err
	}

	log.Info("role changed",
		slog.String("attendee_id", attendeeID.String()),
		slog.String("role", newRole),
	)
	return nil
}

// UpdateProfile changes the caller's per-event nickname and avatar seed.
func (s *EventService) UpdateProfile(ctx context.Context, eventID, userID uuid.UUID, nickname, avatar string) (*domain.Attendee, error) {
	attendee, err := s.attendees.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAttendeeNotFound) {
			return nil, domain.Forbidden("You are not an attendee for this event")
		}
		return nil, err
	}

	if err := domain.InvalidFields(domain.FieldErrors{
		"nickname": validation.Nickname(nickname),
		"avatar":   validation.Avatar(avatar),
	}); err != nil {
		return nil, err
	}

	if err := s.attendees.UpdateProfile(ctx, attendee.ID, nickname, avatar); err != nil {
		return nil, err
	}

	attendee.Nickname = nickname
	attendee.Avatar = avatar
	return attendee, nil
}
