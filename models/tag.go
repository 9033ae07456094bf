package models

// Tag is a free-form label attached to products.
// Tags are always listed alphabetically by name.
type Tag struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:50;uniqueIndex;not null"`
}

func (t *Tag) TableName() string {
	return "tags"
}
