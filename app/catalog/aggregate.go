package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/stockroom/inventory/models"
)

// Group is a header product together with its ordered child products.
type Group struct {
	Header   models.Product
	Children []models.Product
}

// Aggregation is the display-ready shape of a filtered product set.
type Aggregation struct {
	Standalone      []models.Product
	Groups          []Group
	StandaloneTotal decimal.Decimal
	GroupTotals     map[uint]decimal.Decimal
	GrandTotal      decimal.Decimal
}

// Aggregate partitions products into standalone items and header/children
// groups, orders both lists for display and computes the monetary totals.
// It is a pure function of its input: a child whose header is not part of
// the input set is omitted from the result. Sorting is stable, so products
// with identical sort keys keep their input order.
func Aggregate(products []models.Product) Aggregation {
	present := make(map[uint]bool, len(products))
	for _, p := range products {
		present[p.ID] = true
	}

	childrenOf := make(map[uint][]models.Product)
	for _, p := range products {
		if p.GroupParentID != nil && present[*p.GroupParentID] {
			childrenOf[*p.GroupParentID] = append(childrenOf[*p.GroupParentID], p)
		}
	}

	agg := Aggregation{
		Standalone:  []models.Product{},
		Groups:      []Group{},
		GroupTotals: make(map[uint]decimal.Decimal),
	}

	for _, p := range products {
		if p.GroupParentID != nil {
			continue
		}
		children := childrenOf[p.ID]
		if len(children) == 0 {
			agg.Standalone = append(agg.Standalone, p)
			continue
		}
		sort.SliceStable(children, func(i, j int) bool {
			return strings.ToLower(children[i].Name) < strings.ToLower(children[j].Name)
		})
		agg.Groups = append(agg.Groups, Group{Header: p, Children: children})
	}

	sort.SliceStable(agg.Standalone, func(i, j int) bool {
		return displayLess(agg.Standalone[i], agg.Standalone[j])
	})
	sort.SliceStable(agg.Groups, func(i, j int) bool {
		return displayLess(agg.Groups[i].Header, agg.Groups[j].Header)
	})

	for _, p := range agg.Standalone {
		agg.StandaloneTotal = agg.StandaloneTotal.Add(p.Price)
	}
	agg.GrandTotal = agg.StandaloneTotal
	for _, g := range agg.Groups {
		total := g.Header.Price
		for _, c := range g.Children {
			total = total.Add(c.Price)
		}
		agg.GroupTotals[g.Header.ID] = total
		agg.GrandTotal = agg.GrandTotal.Add(total)
	}

	return agg
}

// displayLess orders by category name, then product name, both
// case-insensitively. A missing category sorts as the empty string.
func displayLess(a, b models.Product) bool {
	ca := strings.ToLower(a.Category.Name)
	cb := strings.ToLower(b.Category.Name)
	if ca != cb {
		return ca < cb
	}
	return strings.ToLower(a.Name) < strings.ToLower(b.Name)
}
