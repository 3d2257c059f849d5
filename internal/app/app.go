// Package app assembles the stores, caches, delivery adapters and services
// shared by the server and the batch commands.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"darf/internal/cache/local"
	rediscache "darf/internal/cache/redis"
	"darf/internal/clock"
	"darf/internal/config"
	"darf/internal/domain"
	"darf/internal/email/noop"
	"darf/internal/email/ses"
	"darf/internal/metrics"
	"darf/internal/port"
	"darf/internal/repository/memory"
	"darf/internal/repository/postgres"
	"darf/internal/service"
	s3storage "darf/internal/storage/s3"
)

// App holds the wired dependencies.
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *metrics.Metrics

	DB    *sqlx.DB
	Redis *rediscache.Client

	Store   port.RecordStore
	Users   port.UserRepository
	Cache   port.AggregateCache
	Storage port.ObjectStorage
	Email   port.EmailSender

	Records    service.RecordService
	Queries    service.QueryService
	Aggregates service.AggregateService
	Exports    service.ExportService
	Reports    service.ReportService
	Auth       service.AuthService
}

// New connects the configured backends and builds the services.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: log, Metrics: metrics.New()}

	if err := a.initStore(); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.initCache(); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.initDelivery(); err != nil {
		a.Close()
		return nil, err
	}

	clk := clock.Real()
	a.Records = service.NewRecordService(a.Store, a.Cache, clk, a.Metrics, log)
	a.Queries = service.NewQueryService(a.Store, a.Metrics, log)
	a.Aggregates = service.NewAggregateService(a.Store, a.Cache, cfg.Redis.CacheTTL, a.Metrics, log)
	a.Exports = service.NewExportService(a.Store, a.Aggregates, a.Storage, cfg.S3, log)
	a.Reports = service.NewReportService(a.Aggregates, a.Exports, a.Email, cfg.Email.Recipients, clk, log)
	a.Auth = service.NewAuthService(a.Users, cfg.JWT, log)
	return a, nil
}

func (a *App) initStore() error {
	switch a.Config.Store.Driver {
	case "memory":
		a.Store = memory.NewRecordStore()
		a.Users = memory.NewUserRepo()
		a.Logger.Warn("using in-memory record store; data is lost on exit")
	default:
		db, err := postgres.NewDB(&a.Config.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		a.DB = db
		a.Store = postgres.NewRecordRepo(db)
		a.Users = postgres.NewUserRepo(db)
	}
	return nil
}

func (a *App) initCache() error {
	client, err := rediscache.NewClient(a.Config.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	if client == nil {
		a.Cache = local.New(a.Config.Redis.CacheTTL)
		return nil
	}
	a.Redis = client
	a.Cache = rediscache.NewCache(client.Client)
	return nil
}

func (a *App) initDelivery() error {
	if a.Config.S3.Bucket != "" {
		storage, err := s3storage.NewS3Client(&a.Config.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		a.Storage = storage
	}

	switch a.Config.Email.Provider {
	case "ses":
		sender, err := ses.NewSESSender(a.Config.Email.Region, a.Config.Email.FromAddress, a.Config.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
		a.Email = sender
	default:
		a.Email = noop.NewNoopSender(a.Logger)
	}
	return nil
}

// EnsureAdmin creates the configured admin account when it does not exist yet.
func (a *App) EnsureAdmin(ctx context.Context) error {
	adm := a.Config.Admin
	if adm.Email == "" {
		return nil
	}
	if adm.Password == "" {
		return errors.New("admin password is required when admin email is set")
	}
	_, err := a.Users.GetByEmail(ctx, adm.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("looking up admin: %w", err)
	}

	_, err = a.Auth.Register(ctx, service.RegisterInput{
		Email:    adm.Email,
		Password: adm.Password,
		FullName: adm.FullName,
		Role:     domain.RoleAdmin,
	})
	if err != nil && !errors.Is(err, domain.ErrDuplicateEmail) {
		return fmt.Errorf("creating admin: %w", err)
	}
	a.Logger.Info("admin account ensured", zap.String("email", adm.Email))
	return nil
}

// Close releases the database and redis connections.
func (a *App) Close() {
	if a.DB != nil {
		_ = a.DB.Close()
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
}
