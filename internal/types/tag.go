package types

type Tag struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Category string `gorm:"column:category" json:"category"`
}

func (Tag) TableName() string {
	return "tags"
}
