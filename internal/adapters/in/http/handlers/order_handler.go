// internal/adapters/in/http/handlers/order_handler.go
package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"canteen/internal/adapters/out/xlsx"
	uc "canteen/internal/application/usecase"
	orderdom "canteen/internal/domain/order"
)

type OrderHandler struct {
	UC  *uc.OrderUsecase
	Log logrus.FieldLogger
}

func NewOrderHandler(u *uc.OrderUsecase, log logrus.FieldLogger) *OrderHandler {
	return &OrderHandler{UC: u, Log: log}
}

// Routes mounts the handler under /orders.
func (h *OrderHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/report", h.Report)
	r.Get("/export.xlsx", h.Export)
	r.Post("/refresh", h.Refresh)
	r.Post("/{id}/status", h.UpdateStatus)
	r.Post("/{id}/priority", h.SetHighPriority)
}

// ============================================================
// DTOs
// ============================================================

type updateStatusRequest struct {
	Status string `json:"status"`
}

type listOrdersResponse struct {
	Orders   []orderdom.Order `json:"orders"`
	Count    int              `json:"count"`
	LoadedAt string           `json:"loadedAt,omitempty"`
}

type reportResponse struct {
	Orders   int                     `json:"orders"`
	Revenue  string                  `json:"revenue"`
	Statuses []orderdom.StatusCount  `json:"statuses"`
	Hours    []orderdom.HourCount    `json:"hours"`
	Sessions []orderdom.SessionCount `json:"sessions"`
}

// ============================================================
// Handlers
// ============================================================

// GET /orders?status=&start=&end=&session=&hours=
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	spec, err := filterFromQuery(r)
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	orders, err := h.UC.View(r.Context(), spec)
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	resp := listOrdersResponse{Orders: orders, Count: len(orders)}
	if at := h.UC.LoadedAt(); !at.IsZero() {
		resp.LoadedAt = at.UTC().Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, resp)
}

// GET /orders/report
func (h *OrderHandler) Report(w http.ResponseWriter, r *http.Request) {
	spec, err := filterFromQuery(r)
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	sum, err := h.UC.Report(r.Context(), spec)
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, reportResponse{
		Orders:   sum.Orders,
		Revenue:  sum.Revenue.StringFixed(2),
		Statuses: sum.StatusCounts(),
		Hours:    sum.ActiveHours(),
		Sessions: sum.SessionCounts(),
	})
}

// GET /orders/export.xlsx takes the same filters as List.
func (h *OrderHandler) Export(w http.ResponseWriter, r *http.Request) {
	spec, err := filterFromQuery(r)
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	orders, err := h.UC.View(r.Context(), spec)
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}

	w.Header().Set("Content-Type", xlsx.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename=orders.xlsx")
	if err := xlsx.WriteOrderReport(w, orders, orderdom.Summarize(orders)); err != nil {
		h.Log.WithError(err).Error("export orders")
	}
}

// POST /orders/refresh
func (h *OrderHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	orders, err := h.UC.Refresh(r.Context())
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": len(orders)})
}

// POST /orders/{id}/status {"status": "paid"}
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	status, err := orderdom.ParseStatus(req.Status)
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	o, err := h.UC.UpdateStatus(r.Context(), id, status)
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// POST /orders/{id}/priority
func (h *OrderHandler) SetHighPriority(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	o, err := h.UC.SetHighPriority(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// filterFromQuery builds a FilterSpec from the list query string. The date
// bounds only take effect when both are given.
func filterFromQuery(r *http.Request) (orderdom.FilterSpec, error) {
	q := r.URL.Query()
	var spec orderdom.FilterSpec

	if v := q.Get("status"); active(v) {
		s, err := orderdom.ParseStatus(v)
		if err != nil {
			return spec, err
		}
		spec.Status = &s
	}
	if v := q.Get("session"); active(v) {
		s, err := orderdom.ParseSession(v)
		if err != nil {
			return spec, err
		}
		spec.Session = &s
	}
	if v := q.Get("hours"); active(v) {
		hr, err := orderdom.ParseHourRange(v)
		if err != nil {
			return spec, err
		}
		spec.Hours = &hr
	}

	start, err := parseDay(q.Get("start"), false)
	if err != nil {
		return spec, err
	}
	end, err := parseDay(q.Get("end"), true)
	if err != nil {
		return spec, err
	}
	spec.StartDate, spec.EndDate = start, end
	return spec, nil
}
