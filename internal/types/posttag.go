package types

import "github.com/google/uuid"

type PostTag struct {
	PostID uuid.UUID `gorm:"type:uuid;primaryKey;column:post_id" json:"post_id"`
	TagID  int64     `gorm:"primaryKey;column:tag_id" json:"tag_id"`
}

func (PostTag) TableName() string {
	return "post_tags"
}
