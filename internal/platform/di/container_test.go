package di

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	appcfg "canteen/internal/infra/config"
)

func memoryConfig(t *testing.T) *appcfg.Config {
	t.Helper()
	cfg, err := appcfg.FromEnv(func(k string) string {
		if k == "STORE_DRIVER" {
			return appcfg.DriverMemory
		}
		return ""
	})
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return cfg
}

func TestContainerMemoryDriver(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	c, err := NewContainer(context.Background(), memoryConfig(t), log)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	defer c.Close()

	if _, ok := c.Infra.Batch(); ok {
		t.Fatalf("memory store should not be a batch writer")
	}
	if c.Infra.Auth != nil || c.Infra.GCS != nil || c.Infra.Redis != nil || c.Infra.PubSub != nil {
		t.Fatalf("optional clients should stay nil")
	}

	r := c.Router()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("/cart = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), `canteen_http_requests_total{code="200",method="GET"`) {
		t.Fatalf("request not counted:\n%s", rec.Body.String())
	}
}

func TestResolveSendGridKeyPrefersDirectKey(t *testing.T) {
	cfg := &appcfg.Config{SendGridAPIKey: " SG.direct ", SendGridSecretID: "ignored"}
	key, err := ResolveSendGridKey(context.Background(), cfg)
	if err != nil || key != "SG.direct" {
		t.Fatalf("key = %q, %v", key, err)
	}

	key, err = ResolveSendGridKey(context.Background(), &appcfg.Config{})
	if err != nil || key != "" {
		t.Fatalf("unconfigured key = %q, %v", key, err)
	}
}

func TestInfraFailsOnUnreachableRedis(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := memoryConfig(t)
	cfg.RedisAddr = "127.0.0.1:1"

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if inf, err := NewInfra(ctx, cfg, log); err == nil {
		_ = inf.Close()
		t.Fatalf("expected redis ping failure")
	}
}
