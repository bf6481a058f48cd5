package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/simplewish/internal/domain"
	"github.com/immxrtalbeast/simplewish/internal/repository/model"
	"gorm.io/gorm"
)

type PostgresEventRepository struct {
	db *gorm.DB
}

func NewPostgresEventRepository(db *gorm.DB) *PostgresEventRepository {
	return &PostgresEventRepository{db: db}
}

func (r *PostgresEventRepository) Create(ctx context.Context, event *domain.Event, creator *domain.Attendee) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if event == nil || creator == nil {
		return errors.New("event and creator are required")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(toModelEvent(event)).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEventCodeExists
			}
			return err
		}
		return tx.Create(toModelAttendee(creator)).Error
	})
}

func (r *PostgresEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var event model.Event
	err := r.db.WithContext(ctx).Preload("Attendees").First(&event, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	return toDomainEvent(&event), nil
}

func (r *PostgresEventRepository) GetByCode(ctx context.Context, code string) (*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var event model.Event
	err := r.db.WithContext(ctx).Preload("Attendees").First(&event, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	return toDomainEvent(&event), nil
}

func (r *PostgresEventRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var events []model.Event
	err := r.db.WithContext(ctx).Preload("Attendees").
		Joins("JOIN attendees ON attendees.event_id = events.id").
		Where("attendees.user_id = ?", userID).
		Order("events.date ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Event, 0, len(events))
	for i := range events {
		result = append(result, toDomainEvent(&events[i]))
	}
	return result, nil
}

func (r *PostgresEventRepository) Update(ctx context.Context, event *domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if event == nil {
		return errors.New("event is nil")
	}

	eventModel := toModelEvent(event)

	updates := map[string]any{
		"name":        eventModel.Name,
		"description": eventModel.Description,
		"date":        eventModel.Date,
		"code":        eventModel.Code,
		"updated_at":  eventModel.UpdatedAt,
	}
	if eventModel.Location == nil {
		updates["location"] = gorm.Expr("NULL")
	} else {
		updates["location"] = eventModel.Location
	}

	res := r.db.WithContext(ctx).Model(&model.Event{}).Where("id = ?", eventModel.ID).Updates(updates)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ErrEventCodeExists
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *PostgresEventRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Children before parents: items and their giver links, comments,
	// watermarks, attendees, then the event row.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM item_givers WHERE list_item_id IN (SELECT id FROM list_items WHERE event_id = ?)", id,
		).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.ListItem{}, "event_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Comment{}, "event_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.ViewedComment{}, "event_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Attendee{}, "event_id = ?", id).Error; err != nil {
			return err
		}

		res := tx.Delete(&model.Event{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrEventNotFound
		}
		return nil
	})
}

type PostgresAttendeeRepository struct {
	db *gorm.DB
}

func NewPostgresAttendeeRepository(db *gorm.DB) *PostgresAttendeeRepository {
	return &PostgresAttendeeRepository{db: db}
}

func (r *PostgresAttendeeRepository) Create(ctx context.Context, attendee *domain.Attendee) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if attendee == nil {
		return errors.New("attendee is nil")
	}

	if err := r.db.WithContext(ctx).Create(toModelAttendee(attendee)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAttendeeExists
		}
		return err
	}
	return nil
}

func (r *PostgresAttendeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Attendee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var attendee model.Attendee
	err := r.db.WithContext(ctx).First(&attendee, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttendeeNotFound
		}
		return nil, err
	}

	return toDomainAttendee(&attendee), nil
}

func (r *PostgresAttendeeRepository) GetByEventAndUser(ctx context.Context, eventID, userID uuid.UUID) (*domain.Attendee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var attendee model.Attendee
	err := r.db.WithContext(ctx).First(&attendee, "event_id = ? AND user_id = ?", eventID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttendeeNotFound
		}
		return nil, err
	}

	return toDomainAttendee(&attendee), nil
}

func (r *PostgresAttendeeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Attendee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var attendees []model.Attendee
	if err := r.db.WithContext(ctx).Find(&attendees, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}

	result := make([]*domain.Attendee, 0, len(attendees))
	for i := range attendees {
		result = append(result, toDomainAttendee(&attendees[i]))
	}
	return result, nil
}

func (r *PostgresAttendeeRepository) UpdateProfile(ctx context.Context, id uuid.UUID, nickname, avatar string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	updates := map[string]any{"nickname": nickname}
	if avatar == "" {
		updates["avatar"] = gorm.Expr("NULL")
	} else {
		updates["avatar"] = avatar
	}

	res := r.db.WithContext(ctx).Model(&model.Attendee{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAttendeeNotFound
	}
	return nil
}

func (r *PostgresAttendeeRepository) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&model.Attendee{}).Where("id = ?", id).
		Update("role", string(role))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAttendeeNotFound
	}
	return nil
}

func (r *PostgresAttendeeRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Removes what the attendee owns, not the giver links they hold on
	// other attendees' items.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM item_givers WHERE list_item_id IN (SELECT id FROM list_items WHERE owner_id = ?)", id,
		).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.ListItem{}, "owner_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Comment{}, "owner_id = ?", id).Error; err != nil {
			return err
		}

		res := tx.Delete(&model.Attendee{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAttendeeNotFound
		}
		return nil
	})
}

func toModelEvent(event *domain.Event) *model.Event {
	var location *string
	if event.Location != "" {
		l := event.Location
		location = &l
	}
	return &model.Event{
		ID:          event.ID,
		Name:        event.Name,
		Description: event.Description,
		Date:        event.Date.UTC(),
		Location:    location,
		Code:        event.Code,
		CreatorID:   event.CreatorID,
		CreatedAt:   event.CreatedAt.UTC(),
		UpdatedAt:   event.UpdatedAt.UTC(),
	}
}

func toDomainEvent(event *model.Event) *domain.Event {
	location := ""
	if event.Location != nil {
		location = *event.Location
	}

	attendees := make([]*domain.Attendee, 0, len(event.Attendees))
	for i := range event.Attendees {
		attendees = append(attendees, toDomainAttendee(&event.Attendees[i]))
	}

	return &domain.Event{
		ID:          event.ID,
		Name:        event.Name,
		Description: event.Description,
		Date:        event.Date.UTC(),
		Location:    location,
		Code:        event.Code,
		CreatorID:   event.CreatorID,
		CreatedAt:   event.CreatedAt.UTC(),
		UpdatedAt:   event.UpdatedAt.UTC(),
		Attendees:   attendees,
	}
}

func toModelAttendee(attendee *domain.Attendee) *model.Attendee {
	var avatar *string
	if attendee.Avatar != "" {
		a := attendee.Avatar
		avatar = &a
	}
	return &model.Attendee{
		ID:       attendee.ID,
		EventID:  attendee.EventID,
		UserID:   attendee.UserID,
		Nickname: attendee.Nickname,
		Avatar:   avatar,
		Role:     string(attendee.Role),
		JoinedAt: attendee.JoinedAt.UTC(),
	}
}

func toDomainAttendee(attendee *model.Attendee) *domain.Attendee {
	avatar := ""
	if attendee.Avatar != nil {
		avatar = *attendee.Avatar
	}
	return &domain.Attendee{
		ID:       attendee.ID,
		EventID:  attendee.EventID,
		UserID:   attendee.UserID,
		Nickname: attendee.Nickname,
		Avatar:   avatar,
		Role:     domain.Role(attendee.Role),
		JoinedAt: attendee.JoinedAt.UTC(),
	}
}
