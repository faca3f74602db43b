package types

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title       string    `gorm:"not null;column:title" json:"title"`
	Content     string    `gorm:"type:text;column:content" json:"content"`
	UpvoteCount int       `gorm:"not null;default:0;column:upvote_count" json:"upvote_count"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Author      *Profile  `gorm:"foreignKey:UserID" json:"profiles,omitempty"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}
