// cmd/seed/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"canteen/internal/adapters/out/docstore"
	appcfg "canteen/internal/infra/config"
	"canteen/internal/infra/logging"
	"canteen/internal/platform/di"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type seedOptions struct {
	dryRun  bool
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &seedOptions{}
	root := &cobra.Command{
		Use:           "seed",
		Short:         "Seed the canteen document store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&opts.dryRun, "dry-run", false, "print what would be written without writing")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 2*time.Minute, "overall deadline")

	root.AddCommand(newMenuCmd(opts), newOrdersCmd(opts))
	return root
}

func newMenuCmd(opts *seedOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Upload the default menu to menuItems",
		RunE: func(cmd *cobra.Command, _ []string) error {
			docs, err := menuDocuments()
			if err != nil {
				return err
			}
			return withStore(cmd.Context(), opts, func(ctx context.Context, env *seedEnv) error {
				return env.write(ctx, menuCollection, docs)
			})
		},
	}
}

func newOrdersCmd(opts *seedOptions) *cobra.Command {
	var count int
	var seed int64
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Create sample orders from the stored menu",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be positive")
			}
			return withStore(cmd.Context(), opts, func(ctx context.Context, env *seedEnv) error {
				menu, err := docstore.NewMenuRepository(env.infra.Store).List(ctx)
				if err != nil {
					return fmt.Errorf("load menu: %w", err)
				}
				repo := docstore.NewOrderRepository(env.infra.Store)
				existing, err := repo.GetAll(ctx)
				if err != nil {
					return fmt.Errorf("load orders: %w", err)
				}
				orders, err := sampleOrders(menu, count, existing, time.Now(), seed)
				if err != nil {
					return err
				}
				return env.write(ctx, orderCollection, orderDocuments(orders))
			})
		},
	}
	cmd.Flags().IntVar(&count, "count", 10, "number of orders to create")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")
	return cmd
}

// seedEnv is the opened store plus the logger used while seeding.
type seedEnv struct {
	infra  *di.Infra
	log    logrus.FieldLogger
	dryRun bool
}

func withStore(parent context.Context, opts *seedOptions, fn func(ctx context.Context, env *seedEnv) error) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, opts.timeout)
	defer cancel()

	cfg, err := appcfg.Load()
	if err != nil {
		return err
	}
	lopts := logging.Options{Level: cfg.LogLevel, Service: "canteen-seed", Env: cfg.AppEnv, Text: true}
	log := logging.Base(logging.New(lopts), lopts)

	if cfg.StoreDriver == appcfg.DriverMemory && !opts.dryRun {
		log.Warn("STORE_DRIVER=memory: nothing will persist")
	}
	// the seed never serves requests
	cfg.AuthEnabled = false
	cfg.ItemImageBucket, cfg.ItemImageSignedURLTTL = "", 0
	cfg.RedisAddr, cfg.PubSubTopic = "", ""

	inf, err := di.NewInfra(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := inf.Close(); cerr != nil {
			log.WithError(cerr).Warn("close infra")
		}
	}()

	return fn(ctx, &seedEnv{infra: inf, log: log, dryRun: opts.dryRun})
}
