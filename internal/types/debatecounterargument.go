package types

import (
	"time"

	"github.com/google/uuid"
)

type DebateCounterargument struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ArgumentID uuid.UUID `gorm:"type:uuid;not null;index;column:argument_id" json:"argument_id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;column:user_id" json:"user_id"`
	Content    string    `gorm:"type:text;not null;column:content" json:"content"`
	Author     *Profile  `gorm:"foreignKey:UserID" json:"profiles,omitempty"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (DebateCounterargument) TableName() string {
	return "debate_counterarguments"
}
