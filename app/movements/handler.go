package movements

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/stockroom/inventory/app/httputil"
	"github.com/stockroom/inventory/app/ledger"
	"github.com/stockroom/inventory/metrics"
	"github.com/stockroom/inventory/models"
)

type MovementResponse struct {
	ID        uint      `json:"id"`
	ProductID uint      `json:"product_id"`
	Kind      string    `json:"kind"`
	Quantity  int       `json:"quantity"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Recorder is the stock ledger contract used by the create endpoint.
type Recorder interface {
	Record(ctx context.Context, req ledger.Request) (*models.StockMovement, error)
}

type MovementLister interface {
	ListByProduct(productID uint) ([]models.StockMovement, error)
}

type ProductGetter interface {
	GetByID(id uint) (*models.Product, error)
}

type MovementHandler struct {
	recorder  Recorder
	movements MovementLister
	products  ProductGetter
}

func NewMovementHandler(recorder Recorder, movements MovementLister, products ProductGetter) *MovementHandler {
	return &MovementHandler{
		recorder:  recorder,
		movements: movements,
		products:  products,
	}
}

// HandleCreate records one stock movement through the ledger.
func (h *MovementHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ProductID uint   `json:"product_id"`
		Kind      string `json:"kind"`
		Quantity  int    `json:"quantity"`
		Note      string `json:"note"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if input.ProductID == 0 {
		httputil.Error(w, http.StatusBadRequest, "Missing product_id")
		return
	}

	kind, err := models.ParseMovementKind(input.Kind)
	if err != nil {
		httputil.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	movement, err := h.recorder.Record(r.Context(), ledger.Request{
		ProductID: input.ProductID,
		Kind:      kind,
		Quantity:  input.Quantity,
		Note:      input.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidQuantity):
			httputil.Error(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, models.ErrInsufficientStock):
			httputil.Error(w, http.StatusConflict, err.Error())
		case errors.Is(err, models.ErrProductNotFound):
			httputil.Error(w, http.StatusNotFound, "Product not found")
		case errors.Is(err, models.ErrTransientContention):
			httputil.Error(w, http.StatusConflict, err.Error())
		default:
			httputil.Error(w, http.StatusInternalServerError, "Failed to record movement")
		}
		return
	}

	metrics.RecordMovement(string(movement.Kind))
	httputil.JSON(w, http.StatusCreated, toResponse(movement))
}

// HandleListByProduct returns a product's movement log, newest first.
func (h *MovementHandler) HandleListByProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	if _, err := h.products.GetByID(uint(id)); err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			httputil.Error(w, http.StatusNotFound, "Product not found")
			return
		}
		httputil.Error(w, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}

	movements, err := h.movements.ListByProduct(uint(id))
	if err != nil {
		httputil.Error(w, http.StatusInternalServerError, "failed to fetch movements")
		return
	}

	response := make([]MovementResponse, len(movements))
	for i, m := range movements {
		response[i] = toResponse(&m)
	}

	httputil.JSON(w, http.StatusOK, response)
}

func toResponse(m *models.StockMovement) MovementResponse {
	return MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Kind:      string(m.Kind),
		Quantity:  m.Quantity,
		Note:      m.Note,
		CreatedAt: m.CreatedAt,
	}
}
