package types

import (
	"time"

	"gorm.io/datatypes"
)

// SessionRow is the SQL shape of a SessionRecord: the full document serialized
// into a JSON column, with the immutable metadata denormalized for querying.
type SessionRow struct {
	ID         string         `gorm:"primaryKey;size:64" json:"id"`
	Difficulty string         `gorm:"size:32;index" json:"difficulty"`
	Topic      string         `gorm:"size:128;index" json:"topic"`
	Type       string         `gorm:"size:64;index" json:"type"`
	Record     datatypes.JSON `gorm:"column:record" json:"record"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
}

func (SessionRow) TableName() string { return "interview_session" }
