package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/immxrtalbeast/simplewish/internal/domain"
	"github.com/immxrtalbeast/simplewish/internal/repository"
	"github.com/immxrtalbeast/simplewish/lib/logger/sl"
)

// DefaultMaxCommentCount caps each discussion thread.
const DefaultMaxCommentCount = 200

type CommentService struct {
	comments  repository.CommentRepository
	viewed    repository.ViewedCommentRepository
	events    repository.EventRepository
	attendees repository.AttendeeRepository
	log       *slog.Logger
	maxCount  int64
}

func NewCommentService(
	comments repository.CommentRepository,
	viewed repository.ViewedCommentRepository,
	events repository.EventRepository,
	attendees repository.AttendeeRepository,
	log *slog.Logger,
	maxCount int64,
) *CommentService {
	if log == nil {
		log = slog.Default()
	}
	if maxCount <= 0 {
		maxCount = DefaultMaxCommentCount
	}
	return &CommentService{
		comments:  comments,
		viewed:    viewed,
		events:    events,
		attendees: attendees,
		log:       log,
		maxCount:  maxCount,
	}
}

// Post appends a comment to a thread, subject to the per-thread cap.
func (s *CommentService) Post(ctx context.Context, userID, eventID uuid.UUID, listOwnerID *uuid.UUID, text string) (*domain.Comment, error) {
	const op = "service.comment.post"
	log := s.log.With(slog.String("op", op), slog.String("event_id", eventID.String()))

	if text == "" {
		return nil, domain.Invalid("text", "Please enter a comment")
	}

	attendee, err := s.attendees.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAttendeeNotFound) {
			return nil, domain.Forbidden("You must be attending this event to leave a comment")
		}
		return nil, err
	}

	count, err := s.comments.CountThread(ctx, eventID, listOwnerID)
	if err != nil {
		return nil, err
	}
	if count >= s.maxCount {
		return nil, domain.LimitExceeded(
			fmt.Sprintf("Comment limit of %d reached for this discussion", s.maxCount))
	}

	comment := domain.NewComment(eventID, listOwnerID, attendee.ID, text)
	comment.Owner = attendee
	if err := s.comments.Create(ctx, comment); err != nil {
		log.Error("failed to create comment", sl.Err(err))
		return nil, err
	}

	log.Info("comment posted", slog.String("comment_id", comment.ID.String()))
	return comment, nil
}

// Delete removes one comment. Allowed for the event creator and the
// comment's author, nobody else.
func (s *CommentService) Delete(ctx context.Context, userID, eventID, commentID uuid.UUID) error {
	const op = "service.comment.delete"
	log := s.log.With(slog.String("op", op), slog.String("comment_id", commentID.String()))

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.NotFound("Invalid event ID")
		}
		return err
	}

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return domain.NotFound("Invalid comment ID")
		}
		return err
	}

	attendee := event.AttendeeForUser(userID)
	if attendee == nil {
		return domain.Forbidden("You aren't attending this event")
	}

	// Must be the event creator, or the user that submitted the comment.
	if event.CreatorID != userID && comment.OwnerID != attendee.ID {
		return domain.Forbidden("You are not allowed to delete this comment")
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		log.Error("failed to delete comment", sl.Err(err))
		return err
	}

	log.Info("comment deleted")
	return nil
}

// List returns the thread's comments, each flagged viewed when the viewer
// wrote it or saw the thread after it was posted. It then advances the
// viewer's watermark, except that list owners never mark their own list
// thread: they cannot read its discussion, so it must stay "unread" for
// them.
func (s *CommentService) List(ctx context.Context, viewerUserID, eventID uuid.UUID, listOwnerID *uuid.UUID) ([]*domain.CommentView, error) {
	if _, err := s.attendees.GetByEventAndUser(ctx, eventID, viewerUserID); err != nil {
		if errors.Is(err, repository.ErrAttendeeNotFound) {
			return nil, domain.Forbidden("You aren't attending this event")
		}
		return nil, err
	}

	comments, err := s.comments.ListThread(ctx, eventID, listOwnerID)
	if err != nil {
		return nil, err
	}

	threadKey := domain.ThreadKey(listOwnerID)
	watermark := time.Time{}
	if lastView, err := s.viewed.Get(ctx, viewerUserID, eventID, threadKey); err != nil {
		return nil, err
	} else if lastView != nil {
		watermark = lastView.Timestamp
	}

	views := make([]*domain.CommentView, 0, len(comments))
	for _, comment := range comments {
		own := comment.Owner != nil && comment.Owner.UserID == viewerUserID
		views = append(views, &domain.CommentView{
			Comment: comment,
			Viewed:  own || comment.CreatedAt.Before(watermark),
		})
	}

	skipWatermark := false
	if listOwnerID != nil {
		owner, err := s.attendees.GetByID(ctx, *listOwnerID)
		if err == nil && owner.UserID == viewerUserID {
			skipWatermark = true
		}
	}
	if !skipWatermark {
		if err := s.viewed.Upsert(ctx, viewerUserID, eventID, threadKey, time.Now().UTC()); err != nil {
			return nil, err
		}
	}

	return views, nil
}
