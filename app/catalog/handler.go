package catalog

import (
	"net/http"
	"strings"

	"github.com/stockroom/inventory/app/httputil"
	"github.com/stockroom/inventory/models"
)

type Response struct {
	Query           string      `json:"query,omitempty"`
	Tag             string      `json:"tag,omitempty"`
	Standalone      []Product   `json:"standalone"`
	Groups          []GroupView `json:"groups"`
	StandaloneTotal string      `json:"standalone_total"`
	GrandTotal      string      `json:"grand_total"`
}

type GroupView struct {
	Header     Product   `json:"header"`
	Children   []Product `json:"children"`
	GroupTotal string    `json:"group_total"`
}

type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID             uint     `json:"id"`
	SKU            string   `json:"sku"`
	Name           string   `json:"name"`
	Category       Category `json:"category"`
	QuantityOnHand int      `json:"quantity_on_hand"`
	ReorderLevel   int      `json:"reorder_level"`
	NeedsRestock   bool     `json:"needs_restock"`
	IsActive       bool     `json:"is_active"`
	Price          string   `json:"price"`
	InventoryValue string   `json:"inventory_value"`
	Tags           []string `json:"tags"`
}

type ProductProvider interface {
	Search(query, tag string) ([]models.Product, error)
}

type CatalogHandler struct {
	repo ProductProvider
}

func NewCatalogHandler(r ProductProvider) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
	}
}

// HandleGet searches the catalog and renders the grouped, totaled view.
func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	tag := strings.TrimSpace(r.URL.Query().Get("tag"))

	res, err := h.repo.Search(query, tag)
	if err != nil {
		httputil.Error(w, http.StatusInternalServerError, "failed to get products")
		return
	}

	agg := Aggregate(res)

	standalone := make([]Product, len(agg.Standalone))
	for i, p := range agg.Standalone {
		standalone[i] = toProductView(p)
	}

	groups := make([]GroupView, len(agg.Groups))
	for i, g := range agg.Groups {
		children := make([]Product, len(g.Children))
		for j, c := range g.Children {
			children[j] = toProductView(c)
		}
		groups[i] = GroupView{
			Header:     toProductView(g.Header),
			Children:   children,
			GroupTotal: agg.GroupTotals[g.Header.ID].StringFixed(2),
		}
	}

	httputil.JSON(w, http.StatusOK, Response{
		Query:           query,
		Tag:             tag,
		Standalone:      standalone,
		Groups:          groups,
		StandaloneTotal: agg.StandaloneTotal.StringFixed(2),
		GrandTotal:      agg.GrandTotal.StringFixed(2),
	})
}

func toProductView(p models.Product) Product {
	tags := make([]string, len(p.Tags))
	for i, t := range p.Tags {
		tags[i] = t.Name
	}
	return Product{
		ID:   p.ID,
		SKU:  p.SKU,
		Name: p.Name,
		Category: Category{
			ID:   p.Category.ID,
			Name: p.Category.Name,
		},
		QuantityOnHand: p.QuantityOnHand,
		ReorderLevel:   p.ReorderLevel,
		NeedsRestock:   p.NeedsRestock(),
		IsActive:       p.IsActive,
		Price:          p.Price.StringFixed(2),
		InventoryValue: p.InventoryValue().StringFixed(2),
		Tags:           tags,
	}
}
