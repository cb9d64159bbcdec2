package order_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-kantin/internal/order"
)

type snapshotBody struct {
	OrderID string `json:"orderId"`
	Entree  *struct {
		Name         string `json:"name"`
		Price        int64  `json:"price"`
		PriceDisplay string `json:"priceDisplay"`
	} `json:"entree"`
	Subtotal int64 `json:"subtotal"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
	Display  struct {
		Subtotal string `json:"subtotal"`
		Tax      string `json:"tax"`
		Total    string `json:"total"`
	} `json:"display"`
}

type dataEnvelope struct {
	Data snapshotBody `json:"data"`
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	svc := &order.Service{Menu: testMenu(t), TaxBps: 800, TTL: time.Hour}
	handler := &order.Handler{Svc: svc, Currency: "USD"}

	r := chi.NewRouter()
	r.Route("/api/v1/orders", func(o chi.Router) {
		o.Post("/", handler.Create)
		o.Get("/{id}", handler.Get)
		o.Get("/{id}/stream", handler.Stream)
		o.Put("/{id}/selections/{category}", handler.Select)
		o.Post("/{id}/recompute", handler.Recompute)
		o.Post("/{id}/reset", handler.Reset)
		o.Delete("/{id}", handler.Delete)
	})
	return r
}

func createOrder(t *testing.T, router http.Handler) string {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/orders", nil))
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp dataEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.OrderID)
	return resp.Data.OrderID
}

func selectItem(t *testing.T, router http.Handler, orderID, category, name string) *httptest.ResponseRecorder {
	t.Helper()
	body := strings.NewReader(`{"name":"` + name + `"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/orders/"+orderID+"/selections/"+category, body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestOrderFlowOverHTTP(t *testing.T) {
	router := newRouter(t)
	orderID := createOrder(t, router)

	rec := selectItem(t, router, orderID, "entree", "Pizza")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp dataEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, int64(600), resp.Data.Subtotal)
	require.Equal(t, int64(48), resp.Data.Tax)
	require.Equal(t, int64(648), resp.Data.Total)
	require.Equal(t, "$6.48", resp.Data.Display.Total)
	require.NotNil(t, resp.Data.Entree)
	require.Equal(t, "Pizza", resp.Data.Entree.Name)
	require.Equal(t, "$6.00", resp.Data.Entree.PriceDisplay)

	rec = selectItem(t, router, orderID, "side", "Salad")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, int64(900), resp.Data.Subtotal)
	require.Equal(t, "$9.72", resp.Data.Display.Total)

	recompute := httptest.NewRecorder()
	router.ServeHTTP(recompute, httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+orderID+"/recompute", nil))
	require.Equal(t, http.StatusOK, recompute.Code)
	require.NoError(t, json.Unmarshal(recompute.Body.Bytes(), &resp))
	require.Equal(t, int64(972), resp.Data.Total, "recompute without subtotal change is stable")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+orderID+"/reset", nil)
	reset := httptest.NewRecorder()
	router.ServeHTTP(reset, req)
	require.Equal(t, http.StatusOK, reset.Code)
	require.NoError(t, json.Unmarshal(reset.Body.Bytes(), &resp))
	require.Equal(t, int64(0), resp.Data.Subtotal)
	require.Nil(t, resp.Data.Entree)
	require.Equal(t, "$0.00", resp.Data.Display.Subtotal)
}

func TestSelectUnknownItemReturns422(t *testing.T) {
	router := newRouter(t)
	orderID := createOrder(t, router)

	rec := selectItem(t, router, orderID, "entree", "Sushi")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "NO_SUCH_ITEM", resp.Error.Code)

	// The rejected select left the order untouched.
	get := httptest.NewRecorder()
	router.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+orderID, nil))
	require.Equal(t, http.StatusOK, get.Code)
	var snap dataEnvelope
	require.NoError(t, json.Unmarshal(get.Body.Bytes(), &snap))
	require.Equal(t, int64(0), snap.Data.Subtotal)
}

func TestSelectValidation(t *testing.T) {
	router := newRouter(t)
	orderID := createOrder(t, router)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/orders/"+orderID+"/selections/entree", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "VALIDATION", resp.Error.Code)

	rec = selectItem(t, router, orderID, "dessert", "Pizza")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownOrderReturns404(t *testing.T) {
	router := newRouter(t)

	rec := selectItem(t, router, "3f0c9a2e-5b7d-4f7e-9a61-0a4f3c2d1b00", "entree", "Pizza")
	require.Equal(t, http.StatusNotFound, rec.Code)

	bad := httptest.NewRecorder()
	router.ServeHTTP(bad, httptest.NewRequest(http.MethodGet, "/api/v1/orders/not-a-uuid", nil))
	require.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestDeleteOrder(t *testing.T) {
	router := newRouter(t)
	orderID := createOrder(t, router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/orders/"+orderID, nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	get := httptest.NewRecorder()
	router.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+orderID, nil))
	require.Equal(t, http.StatusNotFound, get.Code)
}

func TestStreamReplaysCurrentSnapshot(t *testing.T) {
	router := newRouter(t)
	orderID := createOrder(t, router)

	rec := selectItem(t, router, orderID, "entree", "Pizza")
	require.Equal(t, http.StatusOK, rec.Code)

	srv := httptest.NewServer(router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/orders/"+orderID+"/stream", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	event, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, "event: snapshot\n", event)

	data, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(data, "data: "))

	var snap snapshotBody
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(strings.TrimSpace(data), "data: ")), &snap))
	require.Equal(t, int64(600), snap.Subtotal)
	require.Equal(t, "$6.48", snap.Display.Total)
}
