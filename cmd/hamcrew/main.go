package main

import (
	"context"
	"fmt"
	"time"

	"hamcrew-club/internal/bot"
	"hamcrew-club/internal/cache"
	"hamcrew-club/internal/models/config"
	"hamcrew-club/internal/repository"
	"hamcrew-club/internal/repository/memory"
	"hamcrew-club/internal/repository/mongodb"
	"hamcrew-club/internal/repository/postgres"
	"hamcrew-club/internal/service"
	attendance_service "hamcrew-club/internal/service/attendance"
	award_service "hamcrew-club/internal/service/award"
	event_service "hamcrew-club/internal/service/event"
	member_service "hamcrew-club/internal/service/member"
	"hamcrew-club/internal/web"
	database "hamcrew-club/pkg"
	"hamcrew-club/pkg/logger"

	"github.com/go-chi/chi/v5"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

const (
	serviceName    = "hamcrew-club"
	connectTimeout = 10 * time.Second
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			newLogger,
			newClock,
			newLocation,
			newStore,
			newKVStore,

			newAwardService,
			newAttendanceService,
			newMemberService,
			newEventService,

			web.NewHandler,
			web.NewMetrics,
			web.NewRouter,
			newServer,
		),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Named("fx")}
		}),
		fx.Invoke(registerServer, registerBot),
	).Run()
}

func newLogger(lc fx.Lifecycle, cfg *config.Config) (*zap.Logger, error) {
	l, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, serviceName)
	if err != nil {
		return nil, err
	}
	l.Info("🚀 starting", zap.String("env", cfg.Environment), zap.String("store", cfg.Store.Driver))

	lc.Append(fx.Hook{OnStop: func(context.Context) error {
		_ = l.Sync()
		return nil
	}})
	return l, nil
}

func newClock() service.Clock {
	return time.Now
}

func newLocation(cfg *config.Config) *time.Location {
	return cfg.Location()
}

// newStore выбирает бэкенд по STORE_DRIVER и готовит схему/индексы
func newStore(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (repository.Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	var store repository.Store
	switch cfg.Store.Driver {
	case config.DriverMongo:
		client, db, err := database.NewMongo(ctx, cfg.Mongo, logger)
		if err != nil {
			return nil, err
		}
		s := mongodb.NewStore(client, db)
		if err := s.EnsureIndexes(ctx); err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("ensure indexes: %w", err)
		}
		store = s
	case config.DriverPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		s := postgres.NewStore(db)
		if err := s.Migrate(ctx); err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("migrate: %w", err)
		}
		store = s
	case config.DriverMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		store = memory.NewStore()
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	lc.Append(fx.Hook{OnStop: store.Close})
	return store, nil
}

func newKVStore(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (cache.KVStore, error) {
	if !cfg.Redis.Enabled {
		return cache.NopKVStore{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := database.NewRedis(ctx, cfg.Redis, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{OnStop: func(context.Context) error {
		return client.Close()
	}})
	return cache.NewRedisKVStore(client), nil
}

func newAwardService(store repository.Store, kv cache.KVStore, cfg *config.Config, logger *zap.Logger) service.AwardService {
	return award_service.NewAwardService(store.Events(), kv, cfg.Redis.AwardTTL, logger)
}

func newAttendanceService(store repository.Store, logger *zap.Logger) service.AttendanceService {
	return attendance_service.NewAttendanceService(store.Attendances(), store.Events(), store, logger)
}

func newMemberService(store repository.Store, attendance service.AttendanceService, clock service.Clock, loc *time.Location, logger *zap.Logger) service.MemberService {
	return member_service.NewMemberService(store.Members(), attendance, clock, loc, logger)
}

func newEventService(store repository.Store, awards service.AwardService, logger *zap.Logger) service.EventService {
	return event_service.NewEventService(store.Members(), store.Events(), store, awards, logger)
}

func newServer(cfg *config.Config, router *chi.Mux, logger *zap.Logger) *web.Server {
	return web.NewServer(cfg.HTTPPort, router, logger)
}

func registerServer(lc fx.Lifecycle, srv *web.Server) {
	lc.Append(fx.Hook{
		OnStart: srv.Start,
		OnStop:  srv.Stop,
	})
}

// registerBot запускает Telegram-бота, если он включён в конфиге
func registerBot(
	lc fx.Lifecycle,
	cfg *config.Config,
	awards service.AwardService,
	events service.EventService,
	members service.MemberService,
	clock service.Clock,
	loc *time.Location,
	logger *zap.Logger,
) error {
	if !cfg.Bot.Enabled {
		logger.Info("telegram bot disabled")
		return nil
	}

	telegramBot, err := bot.NewBot(cfg.Bot, awards, events, members, clock, loc, logger.Named("bot"))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := telegramBot.Start(ctx); err != nil {
					logger.Error("bot stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			telegramBot.Stop()
			return nil
		},
	})
	return nil
}
