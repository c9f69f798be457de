package models

import (
	"time"

	"github.com/google/uuid"
)

type Person struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"type:text;not null"`
	Email      string    `gorm:"type:text;not null;uniqueIndex"`
	Role       string    `gorm:"type:text;not null"`
	Reputation int       `gorm:"not null;default:0"`
	// Version guards concurrent reputation writes. Updates carry
	// WHERE version = ? and bump it on success.
	Version   int `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Activity struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"type:text;not null"`
	Description string    `gorm:"type:text;not null"`
	CreatorID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Points      int       `gorm:"not null"`
	IsActive    bool      `gorm:"not null;default:true;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Action struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	PersonID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ActivityID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Proof         string    `gorm:"type:text;not null"`
	Status        string    `gorm:"type:text;not null;index"`
	SubmittedAt   time.Time `gorm:"not null"`
	VerifiedAt    *time.Time
	ChainActionID *uint64
}

// EventLog is the append-only record of published domain events. Insertions
// conflict-skip on the event id so republishing is harmless.
type EventLog struct {
	EventID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventType     string    `gorm:"type:text;not null;index"`
	AggregateID   string    `gorm:"type:text;not null;index"`
	AggregateType string    `gorm:"type:text;not null"`
	Payload       string    `gorm:"type:jsonb"`
	OccurredAt    time.Time `gorm:"not null"`
}

// ActivityStat is the durable backing row of the submission-volume
// projection. A memcached layer sits in front of reads.
type ActivityStat struct {
	ActivityID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	PersonID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Submissions int64     `gorm:"not null;default:0"`
	UpdatedAt   time.Time
}

type APIToken struct {
	TokenHash string    `gorm:"type:text;primaryKey"`
	PersonID  uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time
	RevokedAt *time.Time
}
