package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"size:16;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:128;not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

type Session struct {
	Token     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
}

type Event struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"size:255;not null"`
	Description string    `gorm:"size:256;not null"`
	Date        time.Time `gorm:"not null"`
	Location    *string   `gorm:"size:255"`
	Code        string    `gorm:"size:64;uniqueIndex;not null"`
	CreatorID   uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
	Attendees   []Attendee
}

type Attendee struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attendees_event_user"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attendees_event_user"`
	Nickname string    `gorm:"size:24;not null"`
	Avatar   *string   `gorm:"size:24"`
	Role     string    `gorm:"size:16;not null"`
	JoinedAt time.Time `gorm:"not null"`
}

type ListItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventID     uuid.UUID `gorm:"type:uuid;index;not null"`
	OwnerID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Name        string    `gorm:"size:255;not null"`
	Description string    `gorm:"size:128;not null"`
	Link        *string   `gorm:"size:2048"`
	Quantity    int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
	// The join table's composite primary key makes the giver relation a
	// true set: re-adding an existing giver cannot create a second row.
	Givers []Attendee `gorm:"many2many:item_givers"`
}

type Comment struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EventID     uuid.UUID  `gorm:"type:uuid;index;not null"`
	ListOwnerID *uuid.UUID `gorm:"type:uuid;index"`
	OwnerID     uuid.UUID  `gorm:"type:uuid;index;not null"`
	Text        string     `gorm:"type:text;not null"`
	CreatedAt   time.Time  `gorm:"not null"`
	Owner       Attendee   `gorm:"foreignKey:OwnerID"`
}

// ViewedComment keys the per-thread watermark on (user, event, thread), with
// the empty string standing in for the event-wide thread.
type ViewedComment struct {
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	AttendeeID string    `gorm:"size:36;primaryKey;default:''"`
	Timestamp  time.Time `gorm:"not null"`
}
