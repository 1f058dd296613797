package app

import (
	"context"
	"errors"

	"github.com/samber/oops"

	"github.com/matmo1/Another-book-store/internal/auth/credentials"
	"github.com/matmo1/Another-book-store/internal/config"
	"github.com/matmo1/Another-book-store/internal/db"
	"github.com/matmo1/Another-book-store/internal/logger"
	"github.com/matmo1/Another-book-store/internal/redis"
)

// Infra holds the optional external backends. A nil field means the
// in-memory fallback is used for that concern.
type Infra struct {
	DB    *db.DB
	Redis *redis.Client
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	infra := &Infra{}

	if cfg.DatabaseDSN != "" {
		sqlDB, err := db.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		infra.DB = sqlDB
		logger.Info("database ready", nil)
	} else {
		logger.Warn("DATABASE_DSN not set, catalog is in-memory", nil)
	}

	if cfg.RedisAddr != "" {
		redisClient, err := redis.New(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			_ = infra.Close()
			return nil, err
		}
		infra.Redis = redisClient
		logger.Info("redis ready", nil)
	} else {
		logger.Warn("REDIS_ADDR not set, sessions are in-memory", nil)
	}

	return infra, nil
}

func (i *Infra) Close() error {
	var errs []error
	if i.DB != nil {
		errs = append(errs, i.DB.Close())
	}
	if i.Redis != nil {
		errs = append(errs, i.Redis.Close())
	}
	return errors.Join(errs...)
}

// loadPrincipals reads the credentials file when configured, otherwise it
// builds the single bootstrap admin from ADMIN_ID and ADMIN_PASSWORD_HASH.
func loadPrincipals(cfg config.Config) (*credentials.StaticStore, error) {
	var (
		store *credentials.StaticStore
		err   error
	)

	if cfg.CredentialsFile != "" {
		store, err = credentials.LoadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, oops.Code("CREDENTIALS_LOAD_FAILED").
				With("path", cfg.CredentialsFile).
				Wrap(err)
		}
		logger.Info("credentials loaded", map[string]any{
			"principals": store.Len(),
		})
	} else {
		store, err = credentials.NewStaticStore(credentials.Principal{
			ID:           cfg.AdminID,
			Verifier:     cfg.AdminPasswordHash,
			Capabilities: []credentials.Capability{credentials.CapabilityAdmin},
		})
		if err != nil {
			return nil, oops.Code("CREDENTIALS_LOAD_FAILED").Wrap(err)
		}
	}

	for _, id := range store.LegacyVerifiers() {
		logger.Warn("verifier uses a legacy scheme, regenerate it with hash-password", map[string]any{
			"principal_id": id,
		})
	}
	return store, nil
}
