package types

import (
	"time"

	"github.com/google/uuid"
)

type DebateQuestion struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title     string    `gorm:"not null;column:title" json:"title"`
	Content   string    `gorm:"type:text;column:content" json:"content"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;column:user_id" json:"user_id"`
	Author    *Profile  `gorm:"foreignKey:UserID" json:"profiles,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (DebateQuestion) TableName() string {
	return "debate_questions"
}
