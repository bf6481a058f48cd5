package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/simplewish/internal/domain"
)

// InMemoryStore backs the in-memory repositories used in tests and local
// development. Cascade deletes cross entity boundaries, so all repositories
// share one store and one lock.
type InMemoryStore struct {
	mu        sync.RWMutex
	users     map[uuid.UUID]*domain.User
	usernames map[string]uuid.UUID
	sessions  map[uuid.UUID]*domain.Session
	events    map[uuid.UUID]*domain.Event
	codes     map[string]uuid.UUID
	attendees map[uuid.UUID]*domain.Attendee
	items     map[uuid.UUID]*domain.ListItem
	givers    map[uuid.UUID]map[uuid.UUID]struct{}
	comments  map[uuid.UUID]*domain.Comment
	viewed    map[viewedKey]time.Time
}

type viewedKey struct {
	userID     uuid.UUID
	eventID    uuid.UUID
	attendeeID string
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		users:     make(map[uuid.UUID]*domain.User),
		usernames: make(map[string]uuid.UUID),
		sessions:  make(map[uuid.UUID]*domain.Session),
		events:    make(map[uuid.UUID]*domain.Event),
		codes:     make(map[string]uuid.UUID),
		attendees: make(map[uuid.UUID]*domain.Attendee),
		items:     make(map[uuid.UUID]*domain.ListItem),
		givers:    make(map[uuid.UUID]map[uuid.UUID]struct{}),
		comments:  make(map[uuid.UUID]*domain.Comment),
		viewed:    make(map[viewedKey]time.Time),
	}
}

func (s *InMemoryStore) Users() *InMemoryUserRepository {
	return &InMemoryUserRepository{store: s}
}

func (s *InMemoryStore) Sessions() *InMemorySessionRepository {
	return &InMemorySessionRepository{store: s}
}

func (s *InMemoryStore) Events() *InMemoryEventRepository {
	return &InMemoryEventRepository{store: s}
}

func (s *InMemoryStore) Attendees() *InMemoryAttendeeRepository {
	return &InMemoryAttendeeRepository{store: s}
}

func (s *InMemoryStore) ListItems() *InMemoryListItemRepository {
	return &InMemoryListItemRepository{store: s}
}

func (s *InMemoryStore) Comments() *InMemoryCommentRepository {
	return &InMemoryCommentRepository{store: s}
}

func (s *InMemoryStore) ViewedComments() *InMemoryViewedCommentRepository {
	return &InMemoryViewedCommentRepository{store: s}
}

type InMemoryUserRepository struct {
	store *InMemoryStore
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.usernames[user.Username]; ok {
		return ErrUsernameExists
	}

	u := *user
	s.users[u.ID] = &u
	s.usernames[u.Username] = u.ID
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}

	u := *user
	return &u, nil
}

func (r *InMemoryUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usernames[username]
	if !ok {
		return nil, ErrUserNotFound
	}

	u := *s.users[id]
	return &u, nil
}

func (r *InMemoryUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return ErrUserNotFound
	}

	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *InMemoryUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return ErrUserNotFound
	}

	delete(s.usernames, user.Username)
	delete(s.users, id)
	return nil
}

type InMemorySessionRepository struct {
	store *InMemoryStore
}

func (r *InMemorySessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := *session
	s.sessions[sess.Token] = &sess
	return nil
}

func (r *InMemorySessionRepository) GetByToken(ctx context.Context, token uuid.UUID) (*domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}

	sess := *session
	return &sess, nil
}

func (r *InMemorySessionRepository) Delete(ctx context.Context, token uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}

func (r *InMemorySessionRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if session.UserID == userID {
			delete(s.sessions, token)
		}
	}
	return nil
}

type InMemoryEventRepository struct {
	store *InMemoryStore
}

func (r *InMemoryEventRepository) Create(ctx context.Context, event *domain.Event, creator *domain.Attendee) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.codes[event.Code]; ok {
		return ErrEventCodeExists
	}

	e := *event
	e.Attendees = nil
	s.events[e.ID] = &e
	s.codes[e.Code] = e.ID

	a := *creator
	s.attendees[a.ID] = &a
	return nil
}

func (r *InMemoryEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	event, ok := s.events[id]
	if !ok {
		return nil, ErrEventNotFound
	}

	return s.assembleEvent(event), nil
}

func (r *InMemoryEventRepository) GetByCode(ctx context.Context, code string) (*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.codes[code]
	if !ok {
		return nil, ErrEventNotFound
	}

	return s.assembleEvent(s.events[id]), nil
}

func (r *InMemoryEventRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Event
	for _, att := range s.attendees {
		if att.UserID != userID {
			continue
		}
		if event, ok := s.events[att.EventID]; ok {
			result = append(result, s.assembleEvent(event))
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (r *InMemoryEventRepository) Update(ctx context.Context, event *domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.events[event.ID]
	if !ok {
		return ErrEventNotFound
	}

	if existing.Code != event.Code {
		if _, taken := s.codes[event.Code]; taken {
			return ErrEventCodeExists
		}
		delete(s.codes, existing.Code)
		s.codes[event.Code] = event.ID
	}

	e := *event
	e.Attendees = nil
	s.events[e.ID] = &e
	return nil
}

func (r *InMemoryEventRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[id]
	if !ok {
		return ErrEventNotFound
	}

	for itemID, item := range s.items {
		if item.EventID == id {
			delete(s.givers, itemID)
			delete(s.items, itemID)
		}
	}
	for commentID, comment := range s.comments {
		if comment.EventID == id {
			delete(s.comments, commentID)
		}
	}
	for key := range s.viewed {
		if key.eventID == id {
			delete(s.viewed, key)
		}
	}
	for attendeeID, att := range s.attendees {
		if att.EventID == id {
			delete(s.attendees, attendeeID)
		}
	}

	delete(s.codes, event.Code)
	delete(s.events, id)
	return nil
}

type InMemoryAttendeeRepository struct {
	store *InMemoryStore
}

func (r *InMemoryAttendeeRepository) Create(ctx context.Context, attendee *domain.Attendee) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.attendees {
		if existing.EventID == attendee.EventID && existing.UserID == attendee.UserID {
			return ErrAttendeeExists
		}
	}

	a := *attendee
	s.attendees[a.ID] = &a
	return nil
}

func (r *InMemoryAttendeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Attendee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	attendee, ok := s.attendees[id]
	if !ok {
		return nil, ErrAttendeeNotFound
	}

	a := *attendee
	return &a, nil
}

func (r *InMemoryAttendeeRepository) GetByEventAndUser(ctx context.Context, eventID, userID uuid.UUID) (*domain.Attendee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, attendee := range s.attendees {
		if attendee.EventID == eventID && attendee.UserID == userID {
			a := *attendee
			return &a, nil
		}
	}
	return nil, ErrAttendeeNotFound
}

func (r *InMemoryAttendeeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Attendee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Attendee
	for _, attendee := range s.attendees {
		if attendee.UserID == userID {
			a := *attendee
			result = append(result, &a)
		}
	}
	return result, nil
}

func (r *InMemoryAttendeeRepository) UpdateProfile(ctx context.Context, id uuid.UUID, nickname, avatar string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	attendee, ok := s.attendees[id]
	if !ok {
		return ErrAttendeeNotFound
	}

	attendee.Nickname = nickname
	attendee.Avatar = avatar
	return nil
}

func (r *InMemoryAttendeeRepository) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	attendee, ok := s.attendees[id]
	if !ok {
		return ErrAttendeeNotFound
	}

	attendee.Role = role
	return nil
}

func (r *InMemoryAttendeeRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.attendees[id]; !ok {
		return ErrAttendeeNotFound
	}

	for itemID, item := range s.items {
		if item.OwnerID == id {
			delete(s.givers, itemID)
			delete(s.items, itemID)
		}
	}
	for commentID, comment := range s.comments {
		if comment.OwnerID == id {
			delete(s.comments, commentID)
		}
	}

	delete(s.attendees, id)
	return nil
}

type InMemoryListItemRepository struct {
	store *InMemoryStore
}

func (r *InMemoryListItemRepository) Create(ctx context.Context, item *domain.ListItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	i := *item
	i.Givers = nil
	s.items[i.ID] = &i
	s.givers[i.ID] = make(map[uuid.UUID]struct{})
	return nil
}

func (r *InMemoryListItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ListItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, ErrItemNotFound
	}

	return s.assembleItem(item), nil
}

func (r *InMemoryListItemRepository) ListByOwner(ctx context.Context, eventID, ownerID uuid.UUID) ([]*domain.ListItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.ListItem
	for _, item := range s.items {
		if item.EventID == eventID && item.OwnerID == ownerID {
			result = append(result, s.assembleItem(item))
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *InMemoryListItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrItemNotFound
	}

	delete(s.givers, id)
	delete(s.items, id)
	return nil
}

func (r *InMemoryListItemRepository) AddGiver(ctx context.Context, itemID, attendeeID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[itemID]; !ok {
		return ErrItemNotFound
	}

	set, ok := s.givers[itemID]
	if !ok {
		set = make(map[uuid.UUID]struct{})
		s.givers[itemID] = set
	}
	set[attendeeID] = struct{}{}
	return nil
}

func (r *InMemoryListItemRepository) RemoveGiver(ctx context.Context, itemID, attendeeID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[itemID]; !ok {
		return ErrItemNotFound
	}

	delete(s.givers[itemID], attendeeID)
	return nil
}

type InMemoryCommentRepository struct {
	store *InMemoryStore
}

func (r *InMemoryCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *comment
	c.Owner = nil
	s.comments[c.ID] = &c
	return nil
}

func (r *InMemoryCommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	comment, ok := s.comments[id]
	if !ok {
		return nil, ErrCommentNotFound
	}

	return s.assembleComment(comment), nil
}

func (r *InMemoryCommentRepository) CountThread(ctx context.Context, eventID uuid.UUID, listOwnerID *uuid.UUID) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, comment := range s.comments {
		if comment.EventID == eventID && sameThread(comment.ListOwnerID, listOwnerID) {
			count++
		}
	}
	return count, nil
}

func (r *InMemoryCommentRepository) ListThread(ctx context.Context, eventID uuid.UUID, listOwnerID *uuid.UUID) ([]*domain.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Comment
	for _, comment := range s.comments {
		if comment.EventID == eventID && sameThread(comment.ListOwnerID, listOwnerID) {
			result = append(result, s.assembleComment(comment))
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *InMemoryCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[id]; !ok {
		return ErrCommentNotFound
	}

	delete(s.comments, id)
	return nil
}

type InMemoryViewedCommentRepository struct {
	store *InMemoryStore
}

func (r *InMemoryViewedCommentRepository) Upsert(ctx context.Context, userID, eventID uuid.UUID, attendeeID string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.viewed[viewedKey{userID: userID, eventID: eventID, attendeeID: attendeeID}] = at.UTC()
	return nil
}

func (r *InMemoryViewedCommentRepository) Get(ctx context.Context, userID, eventID uuid.UUID, attendeeID string) (*domain.ViewedComment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	at, ok := s.viewed[viewedKey{userID: userID, eventID: eventID, attendeeID: attendeeID}]
	if !ok {
		return nil, nil
	}

	return &domain.ViewedComment{
		UserID:     userID,
		EventID:    eventID,
		AttendeeID: attendeeID,
		Timestamp:  at,
	}, nil
}

// Callers must hold at least the read lock.
func (s *InMemoryStore) assembleEvent(event *domain.Event) *domain.Event {
	e := *event
	e.Attendees = nil
	for _, attendee := range s.attendees {
		if attendee.EventID == event.ID {
			a := *attendee
			e.Attendees = append(e.Attendees, &a)
		}
	}
	sort.Slice(e.Attendees, func(i, j int) bool {
		return e.Attendees[i].JoinedAt.Before(e.Attendees[j].JoinedAt)
	})
	return &e
}

func (s *InMemoryStore) assembleItem(item *domain.ListItem) *domain.ListItem {
	i := *item
	i.Givers = nil
	for attendeeID := range s.givers[item.ID] {
		if attendee, ok := s.attendees[attendeeID]; ok {
			a := *attendee
			i.Givers = append(i.Givers, &a)
		} else {
			// A giver who left the event lingers as a bare reference.
			i.Givers = append(i.Givers, &domain.Attendee{ID: attendeeID})
		}
	}
	sort.Slice(i.Givers, func(a, b int) bool {
		return i.Givers[a].ID.String() < i.Givers[b].ID.String()
	})
	return &i
}

func (s *InMemoryStore) assembleComment(comment *domain.Comment) *domain.Comment {
	c := *comment
	if attendee, ok := s.attendees[comment.OwnerID]; ok {
		a := *attendee
		c.Owner = &a
	}
	return &c
}

func sameThread(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
