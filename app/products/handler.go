package products

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/stockroom/inventory/app/httputil"
	"github.com/stockroom/inventory/models"
)

type ProductStore interface {
	GetByID(id uint) (*models.Product, error)
	Create(p *models.Product) error
	Update(p *models.Product) error
	Delete(id uint) error
}

type ProductHandler struct {
	repo ProductStore
}

func NewProductHandler(r ProductStore) *ProductHandler {
	return &ProductHandler{
		repo: r,
	}
}

// Input is the JSON body for create and update. Quantity on hand is only
// honored on create; updates never touch it (movements own that column).
type Input struct {
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	CategoryID     uint            `json:"category_id"`
	QuantityOnHand int             `json:"quantity_on_hand"`
	ReorderLevel   int             `json:"reorder_level"`
	IsActive       *bool           `json:"is_active"`
	TagIDs         []uint          `json:"tag_ids"`
	Image          string          `json:"image"`
	Price          decimal.Decimal `json:"price"`
	WebsiteLink    string          `json:"website_link"`
	GroupParentID  *uint           `json:"group_parent_id"`
}

type Response struct {
	ID             uint     `json:"id"`
	SKU            string   `json:"sku"`
	Name           string   `json:"name"`
	CategoryID     uint     `json:"category_id"`
	CategoryName   string   `json:"category_name,omitempty"`
	QuantityOnHand int      `json:"quantity_on_hand"`
	ReorderLevel   int      `json:"reorder_level"`
	NeedsRestock   bool     `json:"needs_restock"`
	IsActive       bool     `json:"is_active"`
	Tags           []string `json:"tags"`
	Image          string   `json:"image,omitempty"`
	Price          string   `json:"price"`
	InventoryValue string   `json:"inventory_value"`
	WebsiteLink    string   `json:"website_link,omitempty"`
	GroupParentID  *uint    `json:"group_parent_id,omitempty"`
}

func (h *ProductHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	product, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			httputil.Error(w, http.StatusNotFound, "Product not found")
			return
		}
		httputil.Error(w, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}

	httputil.JSON(w, http.StatusOK, toResponse(product))
}

func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeInput(w, r)
	if !ok {
		return
	}
	if input.QuantityOnHand < 0 {
		httputil.Error(w, http.StatusBadRequest, "quantity_on_hand must not be negative")
		return
	}

	product := input.toModel()
	product.QuantityOnHand = input.QuantityOnHand

	if err := h.repo.Create(product); err != nil {
		writeSaveError(w, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, toResponse(product))
}

func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	input, ok := decodeInput(w, r)
	if !ok {
		return
	}

	product := input.toModel()
	product.ID = id

	if err := h.repo.Update(product); err != nil {
		writeSaveError(w, err)
		return
	}

	updated, err := h.repo.GetByID(id)
	if err != nil {
		httputil.Error(w, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}
	httputil.JSON(w, http.StatusOK, toResponse(updated))
}

func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.repo.Delete(id); err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			httputil.Error(w, http.StatusNotFound, "Product not found")
			return
		}
		httputil.Error(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (in *Input) toModel() *models.Product {
	tags := make([]models.Tag, len(in.TagIDs))
	for i, id := range in.TagIDs {
		tags[i] = models.Tag{ID: id}
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return &models.Product{
		SKU:           in.SKU,
		Name:          in.Name,
		CategoryID:    in.CategoryID,
		ReorderLevel:  in.ReorderLevel,
		IsActive:      active,
		Tags:          tags,
		Image:         in.Image,
		Price:         in.Price,
		WebsiteLink:   in.WebsiteLink,
		GroupParentID: in.GroupParentID,
	}
}

func decodeInput(w http.ResponseWriter, r *http.Request) (*Input, bool) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return nil, false
	}
	if input.SKU == "" || input.Name == "" || input.CategoryID == 0 {
		httputil.Error(w, http.StatusBadRequest, "Missing sku, name or category_id")
		return nil, false
	}
	if input.Price.IsNegative() {
		httputil.Error(w, http.StatusBadRequest, "price must not be negative")
		return nil, false
	}
	if input.ReorderLevel < 0 {
		httputil.Error(w, http.StatusBadRequest, "reorder_level must not be negative")
		return nil, false
	}
	return &input, true
}

func writeSaveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrProductNotFound):
		httputil.Error(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, models.ErrInvalidGroupParent):
		httputil.Error(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, models.ErrDuplicateSKU):
		httputil.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrCategoryNotFound), errors.Is(err, models.ErrTagNotFound):
		httputil.Error(w, http.StatusUnprocessableEntity, err.Error())
	default:
		httputil.Error(w, http.StatusInternalServerError, "Failed to save product")
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid product id")
		return 0, false
	}
	return uint(id), true
}

func toResponse(p *models.Product) Response {
	tags := make([]string, len(p.Tags))
	for i, t := range p.Tags {
		tags[i] = t.Name
	}
	return Response{
		ID:             p.ID,
		SKU:            p.SKU,
		Name:           p.Name,
		CategoryID:     p.CategoryID,
		CategoryName:   p.Category.Name,
		QuantityOnHand: p.QuantityOnHand,
		ReorderLevel:   p.ReorderLevel,
		NeedsRestock:   p.NeedsRestock(),
		IsActive:       p.IsActive,
		Tags:           tags,
		Image:          p.Image,
		Price:          p.Price.StringFixed(2),
		InventoryValue: p.InventoryValue().StringFixed(2),
		WebsiteLink:    p.WebsiteLink,
		GroupParentID:  p.GroupParentID,
	}
}
