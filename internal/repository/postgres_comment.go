package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/simplewish/internal/domain"
	"github.com/immxrtalbeast/simplewish/internal/repository/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresCommentRepository struct {
	db *gorm.DB
}

func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if comment == nil {
		return errors.New("comment is nil")
	}

	return r.db.WithContext(ctx).Omit("Owner").Create(toModelComment(comment)).Error
}

func (r *PostgresCommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var comment model.Comment
	err := r.db.WithContext(ctx).Preload("Owner").First(&comment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	return toDomainComment(&comment), nil
}

func (r *PostgresCommentRepository) CountThread(ctx context.Context, eventID uuid.UUID, listOwnerID *uuid.UUID) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	query := r.db.WithContext(ctx).Model(&model.Comment{}).Where("event_id = ?", eventID)
	if listOwnerID == nil {
		query = query.Where("list_owner_id IS NULL")
	} else {
		query = query.Where("list_owner_id = ?", *listOwnerID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresCommentRepository) ListThread(ctx context.Context, eventID uuid.UUID, listOwnerID *uuid.UUID) ([]*domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Preload("Owner").Where("event_id = ?", eventID)
	if listOwnerID == nil {
		query = query.Where("list_owner_id IS NULL")
	} else {
		query = query.Where("list_owner_id = ?", *listOwnerID)
	}

	var comments []model.Comment
	if err := query.Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, err
	}

	result := make([]*domain.Comment, 0, len(comments))
	for i := range comments {
		result = append(result, toDomainComment(&comments[i]))
	}
	return result, nil
}

func (r *PostgresCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Delete(&model.Comment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

type PostgresViewedCommentRepository struct {
	db *gorm.DB
}

func NewPostgresViewedCommentRepository(db *gorm.DB) *PostgresViewedCommentRepository {
	return &PostgresViewedCommentRepository{db: db}
}

func (r *PostgresViewedCommentRepository) Upsert(ctx context.Context, userID, eventID uuid.UUID, attendeeID string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "event_id"}, {Name: "attendee_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"timestamp"}),
	}).Create(&model.ViewedComment{
		UserID:     userID,
		EventID:    eventID,
		AttendeeID: attendeeID,
		Timestamp:  at.UTC(),
	}).Error
}

func (r *PostgresViewedCommentRepository) Get(ctx context.Context, userID, eventID uuid.UUID, attendeeID string) (*domain.ViewedComment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var viewed model.ViewedComment
	err := r.db.WithContext(ctx).
		First(&viewed, "user_id = ? AND event_id = ? AND attendee_id = ?", userID, eventID, attendeeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &domain.ViewedComment{
		UserID:     viewed.UserID,
		EventID:    viewed.EventID,
		AttendeeID: viewed.AttendeeID,
		Timestamp:  viewed.Timestamp.UTC(),
	}, nil
}

func toModelComment(comment *domain.Comment) *model.Comment {
	return &model.Comment{
		ID:          comment.ID,
		EventID:     comment.EventID,
		ListOwnerID: comment.ListOwnerID,
		OwnerID:     comment.OwnerID,
		Text:        comment.Text,
		CreatedAt:   comment.CreatedAt.UTC(),
	}
}

func toDomainComment(comment *model.Comment) *domain.Comment {
	return &domain.Comment{
		ID:          comment.ID,
		EventID:     comment.EventID,
		ListOwnerID: comment.ListOwnerID,
		OwnerID:     comment.OwnerID,
		Text:        comment.Text,
		CreatedAt:   comment.CreatedAt.UTC(),
		Owner:       toDomainAttendee(&comment.Owner),
	}
}
