package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

type ProductsRepository struct {
	db *gorm.DB
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

// Search returns products matching the free-text query and tag filter, with
// category and tags preloaded. The query matches case-insensitive substrings
// of product name, SKU, category name and tag name; the tag filter requires
// an exact (case-insensitive) tag. Empty arguments match everything, and a
// tag filter naming no existing tag is ignored rather than matching nothing.
func (r *ProductsRepository) Search(query, tag string) ([]Product, error) {
	q := r.db.Model(&Product{}).
		Preload("Category").
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tags.name ASC")
		})

	if query != "" {
		pattern := "%" + query + "%"
		q = q.
			Joins("LEFT JOIN categories ON categories.id = products.category_id").
			Joins("LEFT JOIN product_tags ON product_tags.product_id = products.id").
			Joins("LEFT JOIN tags ON tags.id = product_tags.tag_id").
			Where(r.db.
				Where("products.name ILIKE ?", pattern).
				Or("products.sku ILIKE ?", pattern).
				Or("categories.name ILIKE ?", pattern).
				Or("tags.name ILIKE ?", pattern)).
			Distinct("products.*")
	}

	if tag != "" {
		var known int64
		if err := r.db.Model(&Tag{}).
			Where("LOWER(name) = LOWER(?)", tag).
			Count(&known).Error; err != nil {
			return nil, err
		}
		if known > 0 {
			q = q.Where(
				"EXISTS (SELECT 1 FROM product_tags pt JOIN tags t ON t.id = pt.tag_id "+
					"WHERE pt.product_id = products.id AND LOWER(t.name) = LOWER(?))", tag)
		}
	}

	var products []Product
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductsRepository) GetByID(id uint) (*Product, error) {
	var product Product
	if err := r.db.
		Preload("Category").
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tags.name ASC")
		}).
		Preload("GroupParent").
		First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err // Other DB error
	}
	return &product, nil
}

// Create inserts a new product. The group parent, if any, is validated
// first; an initial quantity on hand is accepted here and only here.
func (r *ProductsRepository) Create(p *Product) error {
	if err := r.validateGroupParent(p); err != nil {
		return err
	}
	if err := r.db.Create(p).Error; err != nil {
		return mapSaveConstraint(err)
	}
	return nil
}

// Update rewrites a product's catalog attributes and replaces its tag set.
// Quantity on hand is ledger-owned and is deliberately left out of the
// column list.
func (r *ProductsRepository) Update(p *Product) error {
	if err := r.validateGroupParent(p); err != nil {
		return err
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing Product
		if err := tx.First(&existing, p.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		if err := tx.Model(&existing).
			Select("SKU", "Name", "CategoryID", "ReorderLevel", "IsActive",
				"Image", "Price", "WebsiteLink", "GroupParentID").
			Updates(p).Error; err != nil {
			return err
		}
		return tx.Model(&existing).Association("Tags").Replace(p.Tags)
	})
	if err != nil {
		return mapSaveConstraint(err)
	}
	return nil
}

// mapSaveConstraint translates constraint violations raised while saving a
// product into the sentinel errors handlers understand. Foreign-key failures
// are told apart by the violated constraint's name.
func mapSaveConstraint(err error) error {
	switch {
	case isUniqueViolation(err):
		return ErrDuplicateSKU
	case isForeignKeyViolation(err):
		constraint := foreignKeyTarget(err)
		switch {
		case strings.Contains(constraint, "tag"):
			return ErrTagNotFound
		case strings.Contains(constraint, "group_parent"):
			return ErrInvalidGroupParent
		}
		return ErrCategoryNotFound
	}
	return err
}

// Delete removes a product. Its movements cascade at the database level,
// tag links are cleared, and any children become standalone again.
func (r *ProductsRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var product Product
		if err := tx.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		if err := tx.Model(&product).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&Product{}).
			Where("group_parent_id = ?", id).
			Update("group_parent_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
}

// validateGroupParent resolves the candidate's parent row and child count and
// runs the pure group-shape check over them.
func (r *ProductsRepository) validateGroupParent(p *Product) error {
	if p.GroupParentID == nil {
		return nil
	}
	var parent *Product
	var row Product
	switch err := r.db.First(&row, *p.GroupParentID).Error; {
	case err == nil:
		parent = &row
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}
	var children int64
	if p.ID != 0 {
		if err := r.db.Model(&Product{}).
			Where("group_parent_id = ?", p.ID).
			Count(&children).Error; err != nil {
			return err
		}
	}
	return checkGroupParent(p, parent, children)
}
