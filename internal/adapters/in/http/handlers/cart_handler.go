// internal/adapters/in/http/handlers/cart_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	uc "canteen/internal/application/usecase"
	cartdom "canteen/internal/domain/cart"
	invdom "canteen/internal/domain/inventory"
)

type CartHandler struct {
	UC  *uc.CartUsecase
	Log logrus.FieldLogger
}

func NewCartHandler(u *uc.CartUsecase, log logrus.FieldLogger) *CartHandler {
	return &CartHandler{UC: u, Log: log}
}

// Routes mounts the handler under /cart.
func (h *CartHandler) Routes(r chi.Router) {
	r.Get("/", h.Get)
	r.Delete("/", h.Clear)
	r.Post("/items", h.Add)
	r.Put("/items/{id}", h.SetQuantity)
	r.Delete("/items/{id}", h.Remove)
	r.Post("/checkout", h.Checkout)
	r.Post("/commit", h.Commit)
}

type addToCartRequest struct {
	ItemID string `json:"itemId"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

type commitResponse struct {
	Result invdom.CommitResult `json:"result"`
	Cart   cartdom.Snapshot    `json:"cart"`
}

// GET /cart
func (h *CartHandler) Get(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.UC.Snapshot())
}

// POST /cart/items {"itemId": "..."}
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	if strings.TrimSpace(req.ItemID) == "" {
		writeError(w, http.StatusBadRequest, "itemId is required")
		return
	}
	snap, err := h.UC.Add(r.Context(), req.ItemID)
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// PUT /cart/items/{id} {"quantity": n}; n < 1 removes the line.
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var req setQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	if req.Quantity == nil {
		writeDomainError(w, r, h.Log, fmt.Errorf("%w: quantity is required", errBadRequest))
		return
	}
	writeJSON(w, http.StatusOK, h.UC.SetQuantity(r.Context(), chi.URLParam(r, "id"), *req.Quantity))
}

// DELETE /cart/items/{id}
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.UC.Remove(r.Context(), chi.URLParam(r, "id")))
}

// DELETE /cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.UC.Clear(r.Context()))
}

// POST /cart/checkout
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	placed, err := h.UC.Checkout(r.Context())
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, placed)
}

// POST /cart/commit merges the cart into the stock ledger.
func (h *CartHandler) Commit(w http.ResponseWriter, r *http.Request) {
	res, err := h.UC.CommitToStock(r.Context())
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, commitResponse{Result: res, Cart: h.UC.Snapshot()})
}
