// internal/adapters/in/http/router.go
package httpin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"canteen/internal/adapters/in/http/handlers"
	"canteen/internal/adapters/in/http/middleware"
	usecase "canteen/internal/application/usecase"
)

// RouterDeps collects the use cases and HTTP collaborators wired in main.
type RouterDeps struct {
	CartUC      *usecase.CartUsecase
	InventoryUC *usecase.InventoryUsecase
	OrderUC     *usecase.OrderUsecase
	MenuUC      *usecase.MenuUsecase

	Logger      logrus.FieldLogger
	CORSOrigins []string

	// Auth is optional; nil leaves the API open.
	Auth *middleware.AuthMiddleware

	// Metrics, when set, instruments every request and serves /metrics.
	Metrics        func(http.Handler) http.Handler
	MetricsHandler http.Handler
}

// NewRouter builds the console API.
func NewRouter(deps RouterDeps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(deps.CORSOrigins))
	r.Use(middleware.Recover(log))
	r.Use(middleware.Logger(log))
	if deps.Metrics != nil {
		r.Use(deps.Metrics)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Group(func(r chi.Router) {
		if deps.Auth != nil {
			r.Use(deps.Auth.Handler)
		}
		if deps.OrderUC != nil {
			r.Route("/orders", handlers.NewOrderHandler(deps.OrderUC, log.WithField("handler", "orders")).Routes)
		}
		if deps.CartUC != nil {
			r.Route("/cart", handlers.NewCartHandler(deps.CartUC, log.WithField("handler", "cart")).Routes)
		}
		if deps.InventoryUC != nil {
			r.Route("/inventory", handlers.NewInventoryHandler(deps.InventoryUC, log.WithField("handler", "inventory")).Routes)
		}
		if deps.MenuUC != nil {
			r.Get("/menu", handlers.NewMenuHandler(deps.MenuUC, log.WithField("handler", "menu")).List)
		}
	})
	return r
}
