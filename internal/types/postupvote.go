package types

import (
	"time"

	"github.com/google/uuid"
)

type PostUpvote struct {
	PostID    uuid.UUID `gorm:"type:uuid;primaryKey;column:post_id" json:"post_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id" json:"user_id"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (PostUpvote) TableName() string {
	return "post_upvotes"
}
