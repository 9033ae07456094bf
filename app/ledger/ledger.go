// Package ledger records stock movements and applies their quantity
// adjustment to the product they reference.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/stockroom/inventory/models"
)

// Store owns the lock/commit boundary for a movement. ApplyMovement must run
// fn with the product row exclusively locked and persist the returned
// movement together with the product's adjusted quantity, or neither.
type Store interface {
	ApplyMovement(ctx context.Context, productID uint, fn func(p *models.Product) (*models.StockMovement, error)) (*models.StockMovement, error)
}

// Request describes one movement to record.
type Request struct {
	ProductID uint
	Kind      models.MovementKind
	Quantity  int
	Note      string
}

type Ledger struct {
	store Store
}

func New(store Store) *Ledger {
	return &Ledger{
		store: store,
	}
}

// Record validates req against the product's current quantity and, if valid,
// persists the movement and the adjusted on-hand count as one atomic step.
// The insufficient-stock check runs against the quantity read under the
// store's lock, so concurrent movements on the same product serialize.
func (l *Ledger) Record(ctx context.Context, req Request) (*models.StockMovement, error) {
	if req.Quantity <= 0 {
		return nil, models.ErrInvalidQuantity
	}
	if req.Kind != models.MovementIn && req.Kind != models.MovementOut {
		return nil, fmt.Errorf("unknown movement kind %q", req.Kind)
	}

	return l.store.ApplyMovement(ctx, req.ProductID, func(p *models.Product) (*models.StockMovement, error) {
		switch req.Kind {
		case models.MovementIn:
			p.QuantityOnHand += req.Quantity
		case models.MovementOut:
			if req.Quantity > p.QuantityOnHand {
				return nil, models.ErrInsufficientStock
			}
			p.QuantityOnHand -= req.Quantity
		}
		return &models.StockMovement{
			ProductID: p.ID,
			Kind:      req.Kind,
			Quantity:  req.Quantity,
			Note:      req.Note,
			CreatedAt: time.Now().UTC(),
		}, nil
	})
}
