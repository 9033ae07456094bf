package movements

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stockroom/inventory/app/ledger"
	"github.com/stockroom/inventory/models"
)

// --- Mocks ---

type MockRecorder struct {
	Movement *models.StockMovement
	Err      error

	lastRequest *ledger.Request
}

func (m *MockRecorder) Record(ctx context.Context, req ledger.Request) (*models.StockMovement, error) {
	m.lastRequest = &req
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Movement, nil
}

type MockLister struct {
	Movements []models.StockMovement
	Err       error
}

func (m *MockLister) ListByProduct(productID uint) ([]models.StockMovement, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []models.StockMovement
	for _, mv := range m.Movements {
		if mv.ProductID == productID {
			result = append(result, mv)
		}
	}
	return result, nil
}

type MockProductGetter struct {
	Products map[uint]*models.Product
	Err      error
}

func (m *MockProductGetter) GetByID(id uint) (*models.Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if p, ok := m.Products[id]; ok {
		return p, nil
	}
	return nil, models.ErrProductNotFound
}

// --- Tests: POST /movements ---

func TestHandleCreateMovement(t *testing.T) {
	recorded := &models.StockMovement{
		ID:        1,
		ProductID: 7,
		Kind:      models.MovementIn,
		Quantity:  5,
		Note:      "delivery",
		CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	testCases := []struct {
		name               string
		requestBody        string
		mockRecorderSetup  func() *MockRecorder
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkRecorderCall  func(t *testing.T, recorder *MockRecorder)
	}{
		{
			name:        "Success",
			requestBody: `{"product_id":7,"kind":"IN","quantity":5,"note":"delivery"}`,
			mockRecorderSetup: func() *MockRecorder {
				return &MockRecorder{Movement: recorded}
			},
			expectedStatusCode: http.StatusCreated,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp MovementResponse
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, uint(1), resp.ID)
				assert.Equal(t, "IN", resp.Kind)
				assert.Equal(t, 5, resp.Quantity)
				assert.Equal(t, "delivery", resp.Note)
				assert.False(t, resp.CreatedAt.IsZero())
			},
			checkRecorderCall: func(t *testing.T, recorder *MockRecorder) {
				assert.NotNil(t, recorder.lastRequest)
				assert.Equal(t, uint(7), recorder.lastRequest.ProductID)
				assert.Equal(t, models.MovementIn, recorder.lastRequest.Kind)
				assert.Equal(t, 5, recorder.lastRequest.Quantity)
			},
		},
		{
			name:        "Kind is parsed case-insensitively",
			requestBody: `{"product_id":7,"kind":"out","quantity":2}`,
			mockRecorderSetup: func() *MockRecorder {
				return &MockRecorder{Movement: recorded}
			},
			expectedStatusCode: http.StatusCreated,
			checkRecorderCall: func(t *testing.T, recorder *MockRecorder) {
				assert.Equal(t, models.MovementOut, recorder.lastRequest.Kind)
			},
		},
		{
			name:        "Invalid JSON body",
			requestBody: `{invalid`,
			mockRecorderSetup: func() *MockRecorder {
				return &MockRecorder{}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkRecorderCall: func(t *testing.T, recorder *MockRecorder) {
				assert.Nil(t, recorder.lastRequest, "ledger should not be called with invalid JSON")
			},
		},
		{
			name:        "Missing product id",
			requestBody: `{"kind":"IN","quantity":5}`,
			mockRecorderSetup: func() *MockRecorder {
				return &MockRecorder{}
			},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:        "Unknown kind",
			requestBody: `{"product_id":7,"kind":"SIDEWAYS","quantity":5}`,
			mockRecorderSetup: func() *MockRecorder {
				return &MockRecorder{}
			},
			expectedStatusCode: http.StatusUnprocessableEntity,
			checkRecorderCall: func(t *testing.T, recorder *MockRecorder) {
				assert.Nil(t, recorder.lastRequest, "ledger should not be called with an unknown kind")
			},
		},
		{
			name:        "Invalid quantity",
			requestBody: `{"product_id":7,"kind":"IN","quantity":0}`,
			mockRecorderSetup: func() *MockRecorder {
				return &MockRecorder{Err: models.ErrInvalidQuantity}
			},
			expectedStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:        "Insufficient stock",
			requestBody: `{"product_id":7,"kind":"OUT","quantity":99}`,
			mockRecorderSetup: func() *MockRecorder {
				return &MockRecorder{Err: models.ErrInsufficientStock}
			},
			expectedStatusCode: http.StatusConflict,
		},
		{
			name:        "Product not found",
			requestBody: `{"product_id":99,"kind":"IN","quantity":5}`,
			mockRecorderSetup: func() *MockRecorder {
				return &MockRecorder{Err: models.ErrProductNotFound}
			},
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name:        "Transient contention",
			requestBody: `{"product_id":7,"kind":"IN","quantity":5}`,
			mockRecorderSetup: func() *MockRecorder {
				return &MockRecorder{Err: models.ErrTransientContention}
			},
			expectedStatusCode: http.StatusConflict,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Contains(t, errResp["error"], "retry")
			},
		},
		{
			name:        "Ledger error",
			requestBody: `{"product_id":7,"kind":"IN","quantity":5}`,
			mockRecorderSetup: func() *MockRecorder {
				return &MockRecorder{Err: errors.New("db down")}
			},
			expectedStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRecorder := tc.mockRecorderSetup()
			handler := NewMovementHandler(mockRecorder, &MockLister{}, &MockProductGetter{})
			req := httptest.NewRequest("POST", "/movements", strings.NewReader(tc.requestBody))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			// Act
			handler.HandleCreate(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)

			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}

			if tc.checkRecorderCall != nil {
				tc.checkRecorderCall(t, mockRecorder)
			}
		})
	}
}

// --- Tests: GET /products/{id}/movements ---

func TestHandleListByProduct(t *testing.T) {
	product := &models.Product{ID: 7, SKU: "SKU007", Name: "Torque Wrench"}
	movementLog := []models.StockMovement{
		{ID: 2, ProductID: 7, Kind: models.MovementOut, Quantity: 3, CreatedAt: time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)},
		{ID: 1, ProductID: 7, Kind: models.MovementIn, Quantity: 10, CreatedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)},
	}

	testCases := []struct {
		name               string
		productID          string
		lister             *MockLister
		products           *MockProductGetter
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:               "Success",
			productID:          "7",
			lister:             &MockLister{Movements: movementLog},
			products:           &MockProductGetter{Products: map[uint]*models.Product{7: product}},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp []MovementResponse
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Len(t, resp, 2)
				assert.Equal(t, "OUT", resp[0].Kind)
				assert.Equal(t, "IN", resp[1].Kind)
			},
		},
		{
			name:               "Empty log",
			productID:          "7",
			lister:             &MockLister{},
			products:           &MockProductGetter{Products: map[uint]*models.Product{7: product}},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp []MovementResponse
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Len(t, resp, 0)
			},
		},
		{
			name:               "Unknown product",
			productID:          "99",
			lister:             &MockLister{},
			products:           &MockProductGetter{},
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name:               "Invalid id",
			productID:          "abc",
			lister:             &MockLister{},
			products:           &MockProductGetter{},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "Lister error",
			productID:          "7",
			lister:             &MockLister{Err: errors.New("db down")},
			products:           &MockProductGetter{Products: map[uint]*models.Product{7: product}},
			expectedStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			handler := NewMovementHandler(&MockRecorder{}, tc.lister, tc.products)
			req := httptest.NewRequest("GET", "/products/"+tc.productID+"/movements", nil)
			req.SetPathValue("id", tc.productID)
			rec := httptest.NewRecorder()

			// Act
			handler.HandleListByProduct(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}
