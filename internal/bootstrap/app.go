package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/stylegenie/stylegenie-go/config"
	"github.com/stylegenie/stylegenie-go/internal/api"
	"github.com/stylegenie/stylegenie-go/internal/looks"
	"github.com/stylegenie/stylegenie-go/internal/service"
	"github.com/stylegenie/stylegenie-go/internal/session"
	"github.com/stylegenie/stylegenie-go/internal/state"
)

// App bundles the wired application graph: the session manager plus the
// typed service clients the commands call.
type App struct {
	Config  config.AppConfig
	Logger  *slog.Logger
	Session *session.Manager

	Profiles        *service.ProfileService
	Wardrobe        *service.WardrobeService
	Recommendations *service.RecommendationService
	Stylists        *service.StylistService
	Account         *service.AccountService
	Looks           *looks.Store

	redisClient *redis.Client
}

// NewApp wires the full graph from configuration: transport client, state
// store per configured backend, session manager and services.
func NewApp(ctx context.Context, cfg config.AppConfig, logger *slog.Logger) (*App, error) {
	client, err := api.NewClient(api.ClientOptions{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create api client: %w", err)
	}

	app := &App{Config: cfg, Logger: logger}

	store, err := app.buildStore(cfg.State, logger)
	if err != nil {
		return nil, err
	}

	manager, err := session.NewManager(ctx, session.ManagerOptions{
		API:    client,
		Store:  store,
		Logger: logger,
	})
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("create session manager: %w", err)
	}
	app.Session = manager

	if err := app.buildServices(logger); err != nil {
		app.Close()
		return nil, err
	}

	looksPath, err := LooksFilePath()
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Looks, err = looks.NewStore(looksPath)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("create looks store: %w", err)
	}

	return app, nil
}

func (a *App) buildStore(cfg config.StateConfig, logger *slog.Logger) (state.Store, error) {
	switch cfg.Backend {
	case config.StateBackendRedis:
		a.redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store, err := state.NewRedisStoreWithKey(a.redisClient, cfg.Redis.Key, logger)
		if err != nil {
			return nil, fmt.Errorf("create redis state store: %w", err)
		}
		return store, nil
	default:
		path, err := SessionFilePath(cfg)
		if err != nil {
			return nil, err
		}
		store, err := state.NewFileStore(path, logger)
		if err != nil {
			return nil, fmt.Errorf("create file state store: %w", err)
		}
		return store, nil
	}
}

func (a *App) buildServices(logger *slog.Logger) error {
	var err error
	a.Profiles, err = service.NewProfileService(service.ProfileServiceOptions{
		Session: a.Session,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("create profile service: %w", err)
	}

	a.Wardrobe, err = service.NewWardrobeService(service.WardrobeServiceOptions{
		Session: a.Session,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("create wardrobe service: %w", err)
	}

	a.Recommendations, err = service.NewRecommendationService(service.RecommendationServiceOptions{
		Session:  a.Session,
		Wardrobe: a.Wardrobe,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("create recommendation service: %w", err)
	}

	a.Stylists, err = service.NewStylistService(service.StylistServiceOptions{
		Session: a.Session,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("create stylist service: %w", err)
	}

	a.Account, err = service.NewAccountService(service.AccountServiceOptions{
		Session: a.Session,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("create account service: %w", err)
	}
	return nil
}

// Close releases resources held by the app.
func (a *App) Close() {
	if a.redisClient != nil {
		_ = a.redisClient.Close()
	}
}
