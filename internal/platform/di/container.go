// internal/platform/di/container.go
package di

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	httpin "canteen/internal/adapters/in/http"
	"canteen/internal/adapters/in/http/middleware"
	"canteen/internal/adapters/out/docstore"
	"canteen/internal/adapters/out/events"
	"canteen/internal/adapters/out/gcs"
	"canteen/internal/adapters/out/lock"
	"canteen/internal/adapters/out/mail"
	"canteen/internal/adapters/out/notify"
	uc "canteen/internal/application/usecase"
	appcfg "canteen/internal/infra/config"
	"canteen/internal/platform/metrics"
)

// Container is everything main needs: infra, repositories, use cases and
// the HTTP router.
type Container struct {
	Infra   *Infra
	Logger  logrus.FieldLogger
	Metrics *metrics.Registry

	MenuRepo  *docstore.MenuRepository
	StockRepo *docstore.StockRepository
	OrderRepo *docstore.OrderRepository

	CartUC      *uc.CartUsecase
	InventoryUC *uc.InventoryUsecase
	OrderUC     *uc.OrderUsecase
	MenuUC      *uc.MenuUsecase

	mailer    *mail.NotificationMailer
	publisher *events.NotificationPublisher
}

func NewContainer(ctx context.Context, cfg *appcfg.Config, logger logrus.FieldLogger) (*Container, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	inf, err := NewInfra(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Infra:     inf,
		Logger:    logger,
		Metrics:   metrics.New(),
		MenuRepo:  docstore.NewMenuRepository(inf.Store),
		StockRepo: docstore.NewStockRepository(inf.Store),
		OrderRepo: docstore.NewOrderRepository(inf.Store),
	}

	sinks := uc.Notifiers{notify.NewLogNotifier(logger)}
	if cfg.MailEnabled() {
		key, err := ResolveSendGridKey(ctx, cfg)
		if err != nil {
			logger.WithError(err).Warn("sendgrid key unavailable; error mail disabled")
		} else if key != "" {
			c.mailer = mail.NewNotificationMailer(
				mail.NewSendGridClient(key, "Canteen Console", logger),
				cfg.NotifyFrom, cfg.NotifyTo, logger,
			)
			sinks = append(sinks, c.mailer)
		}
	}

	if inf.PubSub != nil {
		topic, err := events.EnsureTopic(ctx, inf.PubSub, cfg.PubSubTopic)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		c.publisher = events.NewNotificationPublisher(topic, "canteen-console", logger)
		sinks = append(sinks, c.publisher)
	}

	deps := uc.Deps{
		Notifier: metrics.CountingNotifier{Next: sinks, Registry: c.Metrics},
		Metrics:  c.Metrics,
		Logger:   logger,
	}
	images := gcs.NewImageURLResolver(inf.GCS, cfg.ItemImageBucket, cfg.ItemImageSignedURLTTL, logger)

	c.InventoryUC = uc.NewInventoryUsecase(c.StockRepo, images, deps)
	if inf.Redis != nil {
		c.InventoryUC.SetCommitLocker(lock.NewRedisCommitLocker(inf.Redis, cfg.CommitLockTTL, logger))
	}
	c.CartUC = uc.NewCartUsecase(c.MenuRepo, c.InventoryUC, deps)
	c.OrderUC = uc.NewOrderUsecase(c.OrderRepo, deps)
	c.MenuUC = uc.NewMenuUsecase(c.MenuRepo, images, deps)
	return c, nil
}

// Router builds the console HTTP API.
func (c *Container) Router() http.Handler {
	deps := httpin.RouterDeps{
		CartUC:         c.CartUC,
		InventoryUC:    c.InventoryUC,
		OrderUC:        c.OrderUC,
		MenuUC:         c.MenuUC,
		Logger:         c.Logger,
		CORSOrigins:    c.Infra.Config.CORSAllowedOrigins,
		Metrics:        c.Metrics.Middleware,
		MetricsHandler: c.Metrics.Handler(),
	}
	if c.Infra.Auth != nil {
		deps.Auth = &middleware.AuthMiddleware{Verifier: c.Infra.Auth, Log: c.Logger}
	}
	return httpin.NewRouter(deps)
}

// Close flushes pending mail and publishes, then releases the clients.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.mailer != nil {
		c.mailer.Close()
	}
	if c.publisher != nil {
		c.publisher.Close()
	}
	return c.Infra.Close()
}
