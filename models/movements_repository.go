package models

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MovementsRepository persists stock movements together with their quantity
// adjustment. It is the database-backed store behind the ledger.
type MovementsRepository struct {
	db *gorm.DB
}

func NewMovementsRepository(db *gorm.DB) *MovementsRepository {
	return &MovementsRepository{
		db: db,
	}
}

// ApplyMovement runs fn with the product row locked FOR UPDATE and commits
// the returned movement together with the adjusted quantity, or neither.
// Serialization conflicts surface as ErrTransientContention.
func (r *MovementsRepository) ApplyMovement(ctx context.Context, productID uint, fn func(p *Product) (*StockMovement, error)) (*StockMovement, error) {
	var movement *StockMovement
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		m, err := fn(&product)
		if err != nil {
			return err
		}
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		if err := tx.Model(&Product{}).
			Where("id = ?", product.ID).
			Update("quantity_on_hand", product.QuantityOnHand).Error; err != nil {
			return err
		}
		movement = m
		return nil
	})
	if err != nil {
		if isSerializationFailure(err) {
			return nil, ErrTransientContention
		}
		return nil, err
	}
	return movement, nil
}

// ListByProduct returns a product's movement log, newest first.
func (r *MovementsRepository) ListByProduct(productID uint) ([]StockMovement, error) {
	var movements []StockMovement
	if err := r.db.
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}
