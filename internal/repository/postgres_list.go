package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/simplewish/internal/domain"
	"github.com/immxrtalbeast/simplewish/internal/repository/model"
	"gorm.io/gorm"
)

type PostgresListItemRepository struct {
	db *gorm.DB
}

func NewPostgresListItemRepository(db *gorm.DB) *PostgresListItemRepository {
	return &PostgresListItemRepository{db: db}
}

func (r *PostgresListItemRepository) Create(ctx context.Context, item *domain.ListItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if item == nil {
		return errors.New("item is nil")
	}

	return r.db.WithContext(ctx).Omit("Givers").Create(toModelListItem(item)).Error
}

func (r *PostgresListItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ListItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var item model.ListItem
	err := r.db.WithContext(ctx).Preload("Givers").First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return toDomainListItem(&item), nil
}

func (r *PostgresListItemRepository) ListByOwner(ctx context.Context, eventID, ownerID uuid.UUID) ([]*domain.ListItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var items []model.ListItem
	err := r.db.WithContext(ctx).Preload("Givers").
		Where("event_id = ? AND owner_id = ?", eventID, ownerID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.ListItem, 0, len(items))
	for i := range items {
		result = append(result, toDomainListItem(&items[i]))
	}
	return result, nil
}

func (r *PostgresListItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM item_givers WHERE list_item_id = ?", id).Error; err != nil {
			return err
		}

		res := tx.Delete(&model.ListItem{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrItemNotFound
		}
		return nil
	})
}

func (r *PostgresListItemRepository) AddGiver(ctx context.Context, itemID, attendeeID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// ON CONFLICT DO NOTHING on the join table's composite key keeps the
	// giver relation a set.
	return r.db.WithContext(ctx).
		Exec("INSERT INTO item_givers (list_item_id, attendee_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			itemID, attendeeID).Error
}

func (r *PostgresListItemRepository) RemoveGiver(ctx context.Context, itemID, attendeeID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Exec("DELETE FROM item_givers WHERE list_item_id = ? AND attendee_id = ?", itemID, attendeeID).Error
}

func toModelListItem(item *domain.ListItem) *model.ListItem {
	var link *string
	if item.Link != "" {
		l := item.Link
		link = &l
	}
	return &model.ListItem{
		ID:          item.ID,
		EventID:     item.EventID,
		OwnerID:     item.OwnerID,
		Name:        item.Name,
		Description: item.Description,
		Link:        link,
		Quantity:    item.Quantity,
		CreatedAt:   item.CreatedAt.UTC(),
	}
}

func toDomainListItem(item *model.ListItem) *domain.ListItem {
	link := ""
	if item.Link != nil {
		link = *item.Link
	}

	givers := make([]*domain.Attendee, 0, len(item.Givers))
	for i := range item.Givers {
		givers = append(givers, toDomainAttendee(&item.Givers[i]))
	}

	return &domain.ListItem{
		ID:          item.ID,
		EventID:     item.EventID,
		OwnerID:     item.OwnerID,
		Name:        item.Name,
		Description: item.Description,
		Link:        link,
		Quantity:    item.Quantity,
		CreatedAt:   item.CreatedAt.UTC(),
		Givers:      givers,
	}
}
