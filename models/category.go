package models

// Category groups products under a unique name.
// Deletion is blocked while any product still references the category.
type Category struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:120;uniqueIndex;not null"`
	Description string `gorm:"type:text"`
}

func (c *Category) TableName() string {
	return "categories"
}
