package menu

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/backend-kantin/internal/common"
)

// Handler exposes the injected menu over HTTP.
type Handler struct {
	Menu *Menu
}

// List returns every category with its items.
func (h *Handler) List(w http.ResponseWriter, _ *http.Request) {
	if h.Menu == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "menu not configured", nil)
		return
	}
	data := make(map[string][]Item, 3)
	for _, cat := range Categories() {
		data[string(cat)] = h.Menu.Items(cat)
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": data})
}

// ByCategory returns the items of a single category.
func (h *Handler) ByCategory(w http.ResponseWriter, r *http.Request) {
	if h.Menu == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "menu not configured", nil)
		return
	}
	cat, err := ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "unknown menu category", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Menu.Items(cat)})
}
