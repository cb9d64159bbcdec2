package order

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/noah-isme/backend-kantin/internal/common"
	"github.com/noah-isme/backend-kantin/internal/menu"
	"github.com/noah-isme/backend-kantin/internal/pricing"
)

// Handler wires the order session service to HTTP.
type Handler struct {
	Svc      *Service
	Currency string
}

type selectRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

// Create opens a new order session.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "order service not configured", nil)
		return
	}
	id, snap, err := h.Svc.Create(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": h.snapshotBody(id, snap)})
}

// Get returns the current snapshot of an order.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	state, err := h.Svc.Get(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.snapshotBody(id, state.Snapshot())})
}

// Select replaces the selection of the category named in the route.
func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	cat, err := menu.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "unknown menu category", nil)
		return
	}
	var payload selectRequest
	if err := common.DecodeAndValidate(r, &payload); err != nil {
		h.writeError(w, common.NewAppError("VALIDATION", err.Error(), http.StatusBadRequest, err))
		return
	}
	snap, err := h.Svc.Select(r.Context(), id, cat, payload.Name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.snapshotBody(id, snap)})
}

// Recompute rederives tax and total from the current subtotal.
func (h *Handler) Recompute(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	snap, err := h.Svc.Recompute(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.snapshotBody(id, snap)})
}

// Reset clears all selections and zeroes the totals.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	snap, err := h.Svc.Reset(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.snapshotBody(id, snap)})
}

// Delete drops the order session.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	if err := h.Svc.Remove(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) orderID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "order service not configured", nil)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid order id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var appErr *common.AppError
	switch {
	case errors.As(err, &appErr):
		common.JSONError(w, appErr.HTTPStatus, appErr.Code, appErr.Message, appErr.Details)
	case errors.Is(err, ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "ORDER_NOT_FOUND", "order not found", nil)
	case errors.Is(err, menu.ErrNoSuchItem):
		common.JSONError(w, http.StatusUnprocessableEntity, "NO_SUCH_ITEM", "item is not on the menu", nil)
	case errors.Is(err, menu.ErrUnknownCategory):
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "unknown menu category", nil)
	case errors.Is(err, ErrTooManySessions):
		common.JSONError(w, http.StatusTooManyRequests, "TOO_MANY_ORDERS", "too many active orders", nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unexpected error", nil)
	}
}

func (h *Handler) snapshotBody(id uuid.UUID, snap Snapshot) map[string]any {
	return map[string]any{
		"orderId":       id.String(),
		"entree":        h.selectionBody(snap.Entree),
		"side":          h.selectionBody(snap.Side),
		"accompaniment": h.selectionBody(snap.Accompaniment),
		"subtotal":      snap.Subtotal,
		"tax":           snap.Tax,
		"total":         snap.Total,
		"display": map[string]string{
			"subtotal": pricing.Format(snap.Subtotal, h.Currency),
			"tax":      pricing.Format(snap.Tax, h.Currency),
			"total":    pricing.Format(snap.Total, h.Currency),
		},
	}
}

func (h *Handler) selectionBody(sel Selection) map[string]any {
	if !sel.Valid {
		return nil
	}
	return map[string]any{
		"name":         sel.Item.Name,
		"category":     string(sel.Item.Category),
		"price":        sel.Item.Price,
		"priceDisplay": pricing.Format(sel.Item.Price, h.Currency),
	}
}
