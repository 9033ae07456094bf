package models

import (
	"github.com/shopspring/decimal"
)

// Product represents a catalog item.
// It includes a unique SKU, price, category, tags, stock counters and an
// optional group parent linking it under a header product. Quantity on hand
// is owned by the stock ledger and is never written by catalog updates.
type Product struct {
	ID             uint            `gorm:"primaryKey"`
	SKU            string          `gorm:"size:64;uniqueIndex;not null"`
	Name           string          `gorm:"size:200;not null"`
	CategoryID     uint            `gorm:"not null"`
	Category       Category        `gorm:"foreignKey:CategoryID"`
	QuantityOnHand int             `gorm:"not null;default:0"`
	ReorderLevel   int             `gorm:"not null;default:0"`
	IsActive       bool            `gorm:"not null;default:true"`
	Tags           []Tag           `gorm:"many2many:product_tags"`
	Image          string          `gorm:"size:255"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	WebsiteLink    string          `gorm:"size:255"`
	GroupParentID  *uint           `gorm:"index"`
	GroupParent    *Product        `gorm:"foreignKey:GroupParentID"`
}

func (p *Product) TableName() string {
	return "products"
}

// NeedsRestock reports whether on-hand stock has fallen to the reorder level.
func (p *Product) NeedsRestock() bool {
	return p.QuantityOnHand <= p.ReorderLevel
}

// InventoryValue is the quantity on hand valued at the current price.
func (p *Product) InventoryValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.QuantityOnHand)))
}
