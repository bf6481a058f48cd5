package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/immxrtalbeast/simplewish/internal/domain"
	"github.com/immxrtalbeast/simplewish/internal/repository"
	"github.com/immxrtalbeast/simplewish/internal/validation"
	"github.com/immxrtalbeast/simplewish/lib/logger/sl"
)

const bcryptCost = 12

type AuthService struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	events     repository.EventRepository
	attendees  repository.AttendeeRepository
	log        *slog.Logger
	sessionTTL time.Duration
}

func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	events repository.EventRepository,
	attendees repository.AttendeeRepository,
	log *slog.Logger,
	sessionTTL time.Duration,
) *AuthService {
	if log == nil {
		log = slog.Default()
	}
	return &AuthService{
		users:      users,
		sessions:   sessions,
		events:     events,
		attendees:  attendees,
		log:        log,
		sessionTTL: sessionTTL,
	}
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, *domain.Session, error) {
	const op = "service.auth.register"
	log := s.log.With(slog.String("op", op))

	if err := domain.InvalidFields(domain.FieldErrors{
		"username": validation.Username(username),
		"password": validation.Password(password),
	}); err != nil {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, nil, err
	}

	user := domain.NewUser(username, string(hash))
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return nil, nil, domain.Conflict("User with username " + username + " already exists")
		}
		return nil, nil, err
	}

	session := domain.NewSession(user.ID, s.sessionTTL)
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, nil, err
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, session, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, *domain.Session, error) {
	const op = "service.auth.login"
	log := s.log.With(slog.String("op", op))

	if err := domain.InvalidFields(domain.FieldErrors{
		"username": validation.Username(username),
		"password": validation.Password(password),
	}); err != nil {
		return nil, nil, err
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, domain.Forbidden("Username/Password combination is incorrect")
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.Forbidden("Username/Password combination is incorrect")
	}

	session := domain.NewSession(user.ID, s.sessionTTL)
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, nil, err
	}

	log.Info("user logged in", slog.String("user_id", user.ID.String()))
	return user, session, nil
}

func (s *AuthService) Logout(ctx context.Context, token uuid.UUID) error {
	return s.sessions.Delete(ctx, token)
}

// ResolveSession maps a bearer token to the authenticated user, the
// per-request identity resolution the middleware relies on.
func (s *AuthService) ResolveSession(ctx context.Context, token uuid.UUID) (*domain.User, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, domain.Forbidden("You must be logged in to do that")
		}
		return nil, err
	}

	if session.IsExpired() {
		_ = s.sessions.Delete(ctx, token)
		return nil, domain.Forbidden("You must be logged in to do that")
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domain.Forbidden("You must be logged in to do that")
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword, newPasswordConfirm string) error {
	const op = "service.auth.change_password"
	log := s.log.With(slog.String("op", op), slog.String("user_id", userID.String()))

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.NotFound("User not found!")
		}
		return err
	}

	fieldErrors := domain.FieldErrors{
		"newPassword": validation.Password(newPassword),
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		fieldErrors["oldPassword"] = "Current password is incorrect"
	}
	if fieldErrors["newPassword"] == "" && oldPassword == newPassword {
		fieldErrors["newPassword"] = "New password must be different than your old password"
	}
	if newPassword != newPasswordConfirm {
		fieldErrors["newPasswordConfirm"] = "New passwords do not match"
	}
	if err := domain.InvalidFields(fieldErrors); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		log.Error("failed to update password", sl.Err(err))
		return err
	}

	log.Info("password updated")
	return nil
}

// DeleteAccount removes the user and everything hanging off them: events
// they created (with their full cascades), attendee records elsewhere (with
// their item/comment cascades), and any open sessions.
func (s *AuthService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	const op = "service.auth.delete_account"
	log := s.log.With(slog.String("op", op), slog.String("user_id", userID.String()))

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.NotFound("User not found!")
		}
		return err
	}

	events, err := s.events.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, event := range events {
		if event.CreatorID == userID {
			if err := s.events.DeleteCascade(ctx, event.ID); err != nil {
				return err
			}
		}
	}

	attendees, err := s.attendees.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, attendee := range attendees {
		if err := s.attendees.DeleteCascade(ctx, attendee.ID); err != nil &&
			!errors.Is(err, repository.ErrAttendeeNotFound) {
			return err
		}
	}

	if err := s.sessions.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	log.Info("account deleted")
	return nil
}
