package main

import (
	"context"
	"fmt"
	"io"

	"go-onboarding-wizard/config"
	"go-onboarding-wizard/internal/domain"
	"go-onboarding-wizard/internal/repository/memory"
	"go-onboarding-wizard/internal/repository/postgres"
	redisrepo "go-onboarding-wizard/internal/repository/redis"
	s3repo "go-onboarding-wizard/internal/repository/s3"
	"go-onboarding-wizard/internal/usecase"
	"go-onboarding-wizard/pkg/audit"
	"go-onboarding-wizard/pkg/clock"
	"go-onboarding-wizard/pkg/database"
	"go-onboarding-wizard/pkg/logger"
	"go-onboarding-wizard/pkg/objectstore"
	"go-onboarding-wizard/pkg/redis"

	"github.com/jackc/pgx/v5/pgxpool"
)

// infra holds the connections opened for the configured drivers
type infra struct {
	cfg     *config.Config
	clock   clock.Clock
	audit   *audit.Logger
	db      *pgxpool.Pool
	medium  domain.StorageMedium
	pingers map[string]usecase.Pinger
}

// setup loads config, initializes logging to logOut and opens the storage
// medium
func setup(ctx context.Context, logOut io.Writer) (*infra, error) {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Setup Logger
	logger.InitWithWriter(logOut, cfg.LogLevel)

	in := &infra{
		cfg:     cfg,
		clock:   clock.New(cfg.Timezone),
		audit:   audit.Init("onboarding-wizard", cfg.AppEnv, cfg.AuditLog),
		pingers: make(map[string]usecase.Pinger),
	}

	// 3. Setup Database
	if cfg.UsesPostgres() {
		pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		in.db = pool
		in.pingers["database"] = pool.Ping
	}

	// 4. Setup Storage Medium
	switch cfg.StorageDriver {
	case config.DriverRedis:
		if err := redis.Initialize(ctx, redis.Config{
			URL:      cfg.UpstashRedisURL,
			Password: cfg.UpstashRedisPassword,
		}); err != nil {
			in.close()
			return nil, err
		}
		client := redis.Client()
		in.medium = redisrepo.NewMediumRepository(client)
		in.pingers["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	case config.DriverPostgres:
		in.medium = postgres.NewMediumRepository(in.db)
	default:
		in.medium = memory.NewMedium(cfg.StorageQuotaBytes)
	}

	logger.Log.Info("Storage medium ready", "driver", cfg.StorageDriver, "form_id", cfg.FormID)
	return in, nil
}

func (in *infra) formStore() (domain.FormStore, error) {
	return usecase.NewFormStore(in.medium, in.clock, in.cfg.SnapshotMaxAge, in.audit)
}

func (in *infra) directory() domain.DirectoryRepository {
	if in.cfg.DirectoryDriver == config.DriverPostgres {
		return postgres.NewDirectoryRepository(in.db)
	}
	return memory.NewDirectory()
}

func (in *infra) blobStore(ctx context.Context) (domain.BlobStore, error) {
	if in.cfg.BlobDriver != config.DriverS3 {
		return memory.NewBlobStore(), nil
	}
	client, err := objectstore.NewClient(ctx, objectstore.Config{
		Provider:        objectstore.Provider(in.cfg.S3Provider),
		AccessKeyID:     in.cfg.S3AccessKeyID,
		SecretAccessKey: in.cfg.S3SecretAccessKey,
		Region:          in.cfg.S3Region,
		Bucket:          in.cfg.S3Bucket,
		Endpoint:        in.cfg.S3Endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}
	return s3repo.NewBlobRepository(client, in.cfg.S3Bucket, in.cfg.S3KeyPrefix), nil
}

func (in *infra) close() {
	if err := redis.Close(); err != nil {
		logger.Log.Warn("Failed to close redis", "error", err)
	}
	if in.db != nil {
		in.db.Close()
	}
	_ = in.audit.Sync()
}
