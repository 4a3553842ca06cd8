package storage

import (
	"context"
	"fmt"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/programme-lv/writing/conf"
	"github.com/programme-lv/writing/writing/ddbrepo"
	"github.com/programme-lv/writing/writing/domain"
	"github.com/programme-lv/writing/writing/memrepo"
	"github.com/programme-lv/writing/writing/pgrepo"
	"github.com/programme-lv/writing/writing/sqliterepo"
)

// Store is a submission store as seen by the process: the read path used
// by the service plus the seeding and health operations.
type Store interface {
	ListByUser(ctx context.Context, userID string) ([]domain.WritingSubm, error)
	StoreSubm(ctx context.Context, s domain.WritingSubm) error
	Ping(ctx context.Context) error
}

// Open connects the store selected by cfg.Storage.Driver. The returned
// func releases its resources.
func Open(ctx context.Context, cfg *conf.Config) (Store, func(), error) {
	log := slog.With("driver", cfg.Storage.Driver)

	switch cfg.Storage.Driver {
	case conf.DriverPostgres:
		pgURL, err := cfg.Postgres.PgURL(ctx, cfg.AwsRegion)
		if err != nil {
			return nil, nil, err
		}
		pool, err := pgrepo.NewPool(ctx, pgURL, cfg.Postgres.MaxConns)
		if err != nil {
			return nil, nil, err
		}
		log.Info("connected to postgres", "host", cfg.Postgres.Host, "db", cfg.Postgres.DB)
		return pgrepo.NewPgSubmRepo(pool, cfg.Postgres.QueryTimeout), pool.Close, nil

	case conf.DriverSQLite:
		repo, err := sqliterepo.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.Info("opened sqlite", "path", cfg.Storage.SQLitePath)
		return repo, func() {
			if err := repo.Close(); err != nil {
				log.Error("failed to close sqlite", "error", err)
			}
		}, nil

	case conf.DriverDynamoDB:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AwsRegion))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load aws config: %w", err)
		}
		log.Info("using dynamodb", "table", cfg.Storage.DynamoTable, "region", cfg.AwsRegion)
		repo := ddbrepo.NewDdbSubmRepo(dynamodb.NewFromConfig(awsCfg), cfg.Storage.DynamoTable)
		return repo, func() {}, nil

	case conf.DriverMemory:
		log.Warn("using in-memory store; data is lost on exit")
		return memrepo.NewMemSubmRepo(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
