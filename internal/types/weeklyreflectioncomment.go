package types

import (
	"time"

	"github.com/google/uuid"
)

type WeeklyReflectionComment struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ReflectionID uuid.UUID `gorm:"type:uuid;not null;index;column:reflection_id" json:"reflection_id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;column:user_id" json:"user_id"`
	Content      string    `gorm:"type:text;not null;column:content" json:"content"`
	Author       *Profile  `gorm:"foreignKey:UserID" json:"profiles,omitempty"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (WeeklyReflectionComment) TableName() string {
	return "weekly_reflection_comments"
}
