package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/acaizen/posapi/internal/cart"
	"github.com/acaizen/posapi/internal/domain"
	"github.com/acaizen/posapi/internal/repository"
	"github.com/acaizen/posapi/pkg/errors"
)

type stubProductRepo struct {
	products map[uuid.UUID]*domain.Product
}

func (r *stubProductRepo) GetAll(ctx context.Context) ([]*domain.Product, error) { return nil, nil }

func (r *stubProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "product", ID: id.String()}
	}
	return product, nil
}

func (r *stubProductRepo) Create(ctx context.Context, product *domain.Product) error { return nil }
func (r *stubProductRepo) Update(ctx context.Context, product *domain.Product) error { return nil }
func (r *stubProductRepo) Delete(ctx context.Context, id uuid.UUID) error            { return nil }

func (r *stubProductRepo) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (*domain.Product, error) {
	return nil, nil
}

type stubAddonRepo struct {
	addons map[uuid.UUID]*domain.Addon
}

func (r *stubAddonRepo) GetAll(ctx context.Context) ([]*domain.Addon, error) { return nil, nil }

func (r *stubAddonRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Addon, error) {
	addon, ok := r.addons[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "addon", ID: id.String()}
	}
	return addon, nil
}

func (r *stubAddonRepo) Create(ctx context.Context, addon *domain.Addon) error { return nil }
func (r *stubAddonRepo) Update(ctx context.Context, addon *domain.Addon) error { return nil }
func (r *stubAddonRepo) Delete(ctx context.Context, id uuid.UUID) error        { return nil }

func newCartTestRouter(t *testing.T, repos *repository.Repositories) (*gin.Engine, *cart.Sessions) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := cart.NewSessions()
	logger := zap.NewNop()

	router := gin.New()
	router.GET("/v1/cart/:terminal", HandleGetCart(sessions))
	router.POST("/v1/cart/:terminal/items", HandleAddItem(sessions, repos, logger))
	router.PUT("/v1/cart/:terminal/items/:index", HandleUpdateItem(sessions, repos, logger))
	router.DELETE("/v1/cart/:terminal/items/:index", HandleRemoveItem(sessions))
	router.DELETE("/v1/cart/:terminal", HandleClearCart(sessions))

	return router, sessions
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleAddItemMergesAndTotals(t *testing.T) {
	acai := &domain.Product{ID: uuid.New(), Name: "Açaí Tradicional 300ml", Price: 14.90, Stock: 100}
	repos := &repository.Repositories{
		Product: &stubProductRepo{products: map[uuid.UUID]*domain.Product{acai.ID: acai}},
		Addon:   &stubAddonRepo{},
	}
	router, _ := newCartTestRouter(t, repos)

	w := doJSON(router, http.MethodPost, "/v1/cart/t1/items", AddItemRequest{ProductID: acai.ID.String(), Quantity: 2})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/v1/cart/t1/items", AddItemRequest{ProductID: acai.ID.String(), Quantity: 1})
	require.Equal(t, http.StatusOK, w.Code)

	var resp cartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 3, resp.Items[0].Item.Quantity)
	assert.InDelta(t, 14.90*3, resp.Total, 1e-9)
}

func TestHandleAddItemWithAddon(t *testing.T) {
	categoryID := uuid.New()
	acai := &domain.Product{ID: uuid.New(), Name: "Açaí Tradicional 300ml", Price: 14.90, CategoryID: categoryID}
	granola := &domain.Addon{ID: uuid.New(), Name: "Granola", Price: 2.00, CategoryID: &categoryID}
	repos := &repository.Repositories{
		Product: &stubProductRepo{products: map[uuid.UUID]*domain.Product{acai.ID: acai}},
		Addon:   &stubAddonRepo{addons: map[uuid.UUID]*domain.Addon{granola.ID: granola}},
	}
	router, _ := newCartTestRouter(t, repos)

	w := doJSON(router, http.MethodPost, "/v1/cart/t1/items", AddItemRequest{
		ProductID: acai.ID.String(),
		Addons:    []AddonSelection{{AddonID: granola.ID.String(), Quantity: 2}},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp cartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 14.90+2.00*2, resp.Total, 1e-9)
}

func TestHandleAddItemRejectsAddonFromOtherCategory(t *testing.T) {
	otherCategory := uuid.New()
	acai := &domain.Product{ID: uuid.New(), Name: "Açaí Tradicional 300ml", Price: 14.90, CategoryID: uuid.New()}
	granola := &domain.Addon{ID: uuid.New(), Name: "Granola", Price: 2.00, CategoryID: &otherCategory}
	repos := &repository.Repositories{
		Product: &stubProductRepo{products: map[uuid.UUID]*domain.Product{acai.ID: acai}},
		Addon:   &stubAddonRepo{addons: map[uuid.UUID]*domain.Addon{granola.ID: granola}},
	}
	router, _ := newCartTestRouter(t, repos)

	w := doJSON(router, http.MethodPost, "/v1/cart/t1/items", AddItemRequest{
		ProductID: acai.ID.String(),
		Addons:    []AddonSelection{{AddonID: granola.ID.String()}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleAddItemUnknownProduct(t *testing.T) {
	repos := &repository.Repositories{
		Product: &stubProductRepo{},
		Addon:   &stubAddonRepo{},
	}
	router, _ := newCartTestRouter(t, repos)

	w := doJSON(router, http.MethodPost, "/v1/cart/t1/items", AddItemRequest{ProductID: uuid.New().String()})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleUpdateAndRemoveItem(t *testing.T) {
	acai := &domain.Product{ID: uuid.New(), Name: "Açaí Tradicional 300ml", Price: 14.90}
	repos := &repository.Repositories{
		Product: &stubProductRepo{products: map[uuid.UUID]*domain.Product{acai.ID: acai}},
		Addon:   &stubAddonRepo{},
	}
	router, sessions := newCartTestRouter(t, repos)

	w := doJSON(router, http.MethodPost, "/v1/cart/t1/items", AddItemRequest{ProductID: acai.ID.String()})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPut, "/v1/cart/t1/items/0", UpdateItemRequest{Quantity: 5})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, sessions.Get("t1").Items()[0].Quantity)

	w = doJSON(router, http.MethodPut, "/v1/cart/t1/items/7", UpdateItemRequest{Quantity: 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, http.MethodDelete, "/v1/cart/t1/items/0", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, sessions.Get("t1").Len())
}

func TestHandleClearCart(t *testing.T) {
	acai := &domain.Product{ID: uuid.New(), Name: "Açaí Tradicional 300ml", Price: 14.90}
	repos := &repository.Repositories{
		Product: &stubProductRepo{products: map[uuid.UUID]*domain.Product{acai.ID: acai}},
		Addon:   &stubAddonRepo{},
	}
	router, sessions := newCartTestRouter(t, repos)

	doJSON(router, http.MethodPost, "/v1/cart/t1/items", AddItemRequest{ProductID: acai.ID.String()})
	require.Equal(t, 1, sessions.Get("t1").Len())

	w := doJSON(router, http.MethodDelete, "/v1/cart/t1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, sessions.Get("t1").Len())

	// Clearing again is harmless.
	w = doJSON(router, http.MethodDelete, "/v1/cart/t1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCartsAreIsolatedPerTerminal(t *testing.T) {
	acai := &domain.Product{ID: uuid.New(), Name: "Açaí Tradicional 300ml", Price: 14.90}
	repos := &repository.Repositories{
		Product: &stubProductRepo{products: map[uuid.UUID]*domain.Product{acai.ID: acai}},
		Addon:   &stubAddonRepo{},
	}
	router, _ := newCartTestRouter(t, repos)

	doJSON(router, http.MethodPost, "/v1/cart/t1/items", AddItemRequest{ProductID: acai.ID.String()})

	w := doJSON(router, http.MethodGet, fmt.Sprintf("/v1/cart/%s", "t2"), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp cartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
}
