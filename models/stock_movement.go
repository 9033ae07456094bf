package models

import (
	"fmt"
	"strings"
	"time"
)

// MovementKind is the direction of a stock movement.
type MovementKind string

const (
	MovementIn  MovementKind = "IN"
	MovementOut MovementKind = "OUT"
)

// ParseMovementKind maps a wire value to a MovementKind, case-insensitively.
func ParseMovementKind(s string) (MovementKind, error) {
	switch MovementKind(strings.ToUpper(strings.TrimSpace(s))) {
	case MovementIn:
		return MovementIn, nil
	case MovementOut:
		return MovementOut, nil
	}
	return "", fmt.Errorf("unknown movement kind %q", s)
}

// StockMovement is one immutable entry in a product's stock ledger.
// Rows are only ever inserted; the single quantity adjustment happens in the
// same transaction as the insert. Movements are deleted only when their
// product is deleted.
type StockMovement struct {
	ID        uint         `gorm:"primaryKey"`
	ProductID uint         `gorm:"not null;index"`
	Product   Product      `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Kind      MovementKind `gorm:"size:3;not null"`
	Quantity  int          `gorm:"not null"`
	Note      string       `gorm:"size:255"`
	CreatedAt time.Time
}

func (m *StockMovement) TableName() string {
	return "stock_movements"
}
