package types

import (
	"time"

	"github.com/google/uuid"
)

type PostComment struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;index;column:post_id" json:"post_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;column:user_id" json:"user_id"`
	Content   string    `gorm:"type:text;not null;column:content" json:"content"`
	Author    *Profile  `gorm:"foreignKey:UserID" json:"profiles,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (PostComment) TableName() string {
	return "post_comments"
}
