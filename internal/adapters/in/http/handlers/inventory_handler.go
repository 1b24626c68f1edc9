// internal/adapters/in/http/handlers/inventory_handler.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	uc "canteen/internal/application/usecase"
	"canteen/internal/domain/catalog"
	invdom "canteen/internal/domain/inventory"
)

type InventoryHandler struct {
	UC  *uc.InventoryUsecase
	Log logrus.FieldLogger
}

func NewInventoryHandler(u *uc.InventoryUsecase, log logrus.FieldLogger) *InventoryHandler {
	return &InventoryHandler{UC: u, Log: log}
}

// Routes mounts the handler under /inventory.
func (h *InventoryHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Put("/{id}", h.Upsert)
	r.Delete("/{id}", h.Delete)
}

type upsertStockRequest struct {
	// ID is accepted for round-tripping; the path id wins.
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Category string          `json:"category"`
	Quantity int             `json:"quantity"`
}

// GET /inventory?search=&category=
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := invdom.Query{Search: r.URL.Query().Get("search")}
	if v := r.URL.Query().Get("category"); active(v) {
		c, err := catalog.ParseCategory(v)
		if err != nil {
			writeDomainError(w, r, h.Log, err)
			return
		}
		q.Category = c
	}

	view, err := h.UC.List(r.Context(), q)
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// PUT /inventory/{id} replaces the record.
func (h *InventoryHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req upsertStockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	cat, err := catalog.ParseCategory(req.Category)
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}

	rec := invdom.StockRecord{
		Item: catalog.Item{
			ID:       strings.TrimSpace(chi.URLParam(r, "id")),
			Name:     req.Name,
			Price:    req.Price,
			Image:    req.Image,
			Category: cat,
		},
		Quantity: req.Quantity,
	}
	saved, err := h.UC.Upsert(r.Context(), rec)
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// DELETE /inventory/{id}
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.UC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
