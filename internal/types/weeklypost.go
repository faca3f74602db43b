package types

import (
	"time"

	"github.com/google/uuid"
)

type WeeklyPost struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title      string    `gorm:"not null;column:title" json:"title"`
	Content    string    `gorm:"type:text;column:content" json:"content"`
	Year       int       `gorm:"not null;index:idx_weekly_posts_year_week;column:year" json:"year"`
	WeekNumber int       `gorm:"not null;index:idx_weekly_posts_year_week;column:week_number" json:"week_number"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (WeeklyPost) TableName() string {
	return "weekly_posts"
}
