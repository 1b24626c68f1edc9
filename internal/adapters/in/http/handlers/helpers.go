// internal/adapters/in/http/handlers/helpers.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	uc "canteen/internal/application/usecase"
	"canteen/internal/domain/catalog"
	invdom "canteen/internal/domain/inventory"
	orderdom "canteen/internal/domain/order"
)

const maxBodyBytes = 1 << 20

var errBadRequest = errors.New("bad request")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

// writeDomainError maps use case and domain errors onto status codes.
func writeDomainError(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, err error) {
	var partial *invdom.PartialCommitError

	switch {
	case errors.As(err, &partial):
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"error":  err.Error(),
			"result": partial.Result,
		})
		return
	case errors.Is(err, errBadRequest),
		errors.Is(err, orderdom.ErrInvalidStatus),
		errors.Is(err, orderdom.ErrInvalidSession),
		errors.Is(err, orderdom.ErrInvalidHourRange),
		errors.Is(err, catalog.ErrInvalidItem),
		errors.Is(err, catalog.ErrInvalidCategory),
		errors.Is(err, invdom.ErrInvalidRecord):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, orderdom.ErrNotFound),
		errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, invdom.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, uc.ErrCartEmpty), errors.Is(err, uc.ErrCommitBusy):
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	if log != nil {
		log.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).WithError(err).Error("request failed")
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

// decodeJSON reads a single JSON object from the request body.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid json: %v", errBadRequest, err)
	}
	return nil
}

// parseDay accepts "2006-01-02" or RFC3339. With endOfDay a bare date
// is moved to the last instant of that day.
func parseDay(s string, endOfDay bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		tt := t.UTC()
		return &tt, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", errBadRequest, s)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// active reports whether a query filter value selects anything; "" and
// "all" mean no filter.
func active(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, "all")
}
