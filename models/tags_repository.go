package models

import "gorm.io/gorm"

type TagsRepository struct {
	db *gorm.DB
}

func NewTagsRepository(db *gorm.DB) *TagsRepository {
	return &TagsRepository{
		db: db,
	}
}

func (r *TagsRepository) GetAllTags() ([]Tag, error) {
	var tags []Tag
	if err := r.db.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// GetOrCreateTag returns the tag with the given name, creating it if needed.
func (r *TagsRepository) GetOrCreateTag(name string) (*Tag, error) {
	var tag Tag
	if err := r.db.Where("name = ?", name).
		FirstOrCreate(&tag, Tag{Name: name}).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}
