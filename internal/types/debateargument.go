package types

import (
	"time"

	"github.com/google/uuid"
)

type DebateArgument struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index;column:question_id" json:"question_id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;column:user_id" json:"user_id"`
	Content    string    `gorm:"type:text;not null;column:content" json:"content"`
	IsInFavor  bool      `gorm:"not null;column:is_in_favor" json:"is_in_favor"`
	Intensity  int       `gorm:"not null;default:2;column:intensity" json:"intensity"`
	Author     *Profile  `gorm:"foreignKey:UserID" json:"profiles,omitempty"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (DebateArgument) TableName() string {
	return "debate_arguments"
}
