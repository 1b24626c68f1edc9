// internal/platform/di/infra.go
package di

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/pubsub"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	dbadapter "canteen/internal/adapters/out/db"
	"canteen/internal/adapters/out/docstore"
	fsadapter "canteen/internal/adapters/out/firestore"
	"canteen/internal/domain/common"
	appcfg "canteen/internal/infra/config"
	"canteen/internal/infra/database"
	firestoreinfra "canteen/internal/infra/firestore"
	redisinfra "canteen/internal/infra/redis"
	"canteen/internal/infra/secrets"
)

// BatchWriter is implemented by stores that can write many documents of one
// collection at once (Firestore batches, a Postgres transaction).
type BatchWriter interface {
	SetAll(ctx context.Context, collection string, docs []common.Document) error
}

var (
	_ BatchWriter = (*fsadapter.DocumentStoreFS)(nil)
	_ BatchWriter = (*dbadapter.DocumentStorePG)(nil)
)

// Infra owns the external clients. The document store, Redis and Pub/Sub
// are strict once configured; GCS is best effort.
type Infra struct {
	Config *appcfg.Config
	Logger logrus.FieldLogger

	Store     common.DocumentRepository
	Firestore *firestore.Client
	DB        *database.DB
	GCS       *storage.Client
	Auth      *firebaseauth.Client
	Redis     *redis.Client
	PubSub    *pubsub.Client
}

// NewInfra opens the document store selected by STORE_DRIVER and the
// optional cloud clients.
func NewInfra(ctx context.Context, cfg *appcfg.Config, logger logrus.FieldLogger) (*Infra, error) {
	if cfg == nil {
		return nil, errors.New("di.infra: config is nil")
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	inf := &Infra{Config: cfg, Logger: logger.WithField("component", "di.infra")}

	if err := inf.openStore(ctx); err != nil {
		_ = inf.Close()
		return nil, err
	}

	if cfg.ItemImageBucket != "" || cfg.ItemImageSignedURLTTL > 0 {
		gcs, err := storage.NewClient(ctx, firestoreinfra.ClientOptions(cfg.FirestoreCredentialsFile)...)
		if err != nil {
			inf.Logger.WithError(err).Warn("storage.NewClient failed; image URLs fall back to public links")
		} else {
			inf.GCS = gcs
		}
	}

	if cfg.AuthEnabled {
		auth, err := newFirebaseAuth(ctx, cfg)
		if err != nil {
			_ = inf.Close()
			return nil, err
		}
		inf.Auth = auth
	}

	if cfg.RedisAddr != "" {
		rdb, err := redisinfra.NewClient(ctx, redisinfra.Params{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, inf.Logger)
		if err != nil {
			_ = inf.Close()
			return nil, err
		}
		inf.Redis = rdb
	}

	if cfg.PubSubTopic != "" {
		ps, err := pubsub.NewClient(ctx, cfg.FirestoreProjectID, firestoreinfra.ClientOptions(cfg.FirestoreCredentialsFile)...)
		if err != nil {
			_ = inf.Close()
			return nil, fmt.Errorf("pubsub.NewClient: %w", err)
		}
		inf.PubSub = ps
	}
	return inf, nil
}

func (i *Infra) openStore(ctx context.Context) error {
	cfg := i.Config
	log := i.Logger.WithField("driver", cfg.StoreDriver)

	switch cfg.StoreDriver {
	case appcfg.DriverFirestore:
		client, err := firestoreinfra.NewClient(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile, log)
		if err != nil {
			return err
		}
		i.Firestore = client
		i.Store = fsadapter.NewDocumentStoreFS(client)

	case appcfg.DriverPostgres:
		db, err := database.NewConnection(ctx, database.Params{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			Name:     cfg.DBName,
		}, log)
		if err != nil {
			return err
		}
		i.DB = db
		pg := dbadapter.NewDocumentStorePG(db.Client, cfg.DBTable)
		if err := pg.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
		i.Store = pg

	case appcfg.DriverMemory:
		log.Warn("using in-memory document store; data is lost on exit")
		i.Store = docstore.NewMemoryStore()

	default:
		return fmt.Errorf("%w: unknown store driver %q", appcfg.ErrInvalidConfig, cfg.StoreDriver)
	}

	log.Info("document store ready")
	return nil
}

// Batch returns the store as a BatchWriter when it supports batched writes.
func (i *Infra) Batch() (BatchWriter, bool) {
	bw, ok := i.Store.(BatchWriter)
	return bw, ok
}

func newFirebaseAuth(ctx context.Context, cfg *appcfg.Config) (*firebaseauth.Client, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirestoreProjectID},
		firestoreinfra.ClientOptions(cfg.FirestoreCredentialsFile)...)
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}
	auth, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth: %w", err)
	}
	return auth, nil
}

// ResolveSendGridKey returns SENDGRID_API_KEY, or reads SENDGRID_SECRET_ID
// from Secret Manager when only the secret id is configured.
func ResolveSendGridKey(ctx context.Context, cfg *appcfg.Config) (string, error) {
	if k := strings.TrimSpace(cfg.SendGridAPIKey); k != "" {
		return k, nil
	}
	if strings.TrimSpace(cfg.SendGridSecretID) == "" {
		return "", nil
	}

	sm, err := secretmanager.NewClient(ctx, firestoreinfra.ClientOptions(cfg.FirestoreCredentialsFile)...)
	if err != nil {
		return "", fmt.Errorf("secretmanager.NewClient: %w", err)
	}
	defer sm.Close()

	return secrets.NewProvider(sm, cfg.FirestoreProjectID).Get(ctx, cfg.SendGridSecretID)
}

func (i *Infra) Close() error {
	if i == nil {
		return nil
	}
	var errs []error
	if i.Firestore != nil {
		errs = append(errs, i.Firestore.Close())
	}
	if i.DB != nil {
		errs = append(errs, i.DB.Close())
	}
	if i.GCS != nil {
		errs = append(errs, i.GCS.Close())
	}
	if i.Redis != nil {
		errs = append(errs, i.Redis.Close())
	}
	if i.PubSub != nil {
		errs = append(errs, i.PubSub.Close())
	}
	return errors.Join(errs...)
}
