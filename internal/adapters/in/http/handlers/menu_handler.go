// internal/adapters/in/http/handlers/menu_handler.go
package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	uc "canteen/internal/application/usecase"
	"canteen/internal/domain/catalog"
)

type MenuHandler struct {
	UC  *uc.MenuUsecase
	Log logrus.FieldLogger
}

func NewMenuHandler(u *uc.MenuUsecase, log logrus.FieldLogger) *MenuHandler {
	return &MenuHandler{UC: u, Log: log}
}

// List handles GET /menu?category=.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	var category *catalog.Category
	if v := r.URL.Query().Get("category"); active(v) {
		c, err := catalog.ParseCategory(v)
		if err != nil {
			writeDomainError(w, r, h.Log, err)
			return
		}
		category = &c
	}

	items, err := h.UC.List(r.Context(), category)
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}
