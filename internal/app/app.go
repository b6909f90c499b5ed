package app

import (
	"errors"
	"net/http"

	"budgeteer-go/internal/config"
	"budgeteer-go/internal/db"
	categoriesdomain "budgeteer-go/internal/domain/categories"
	historydomain "budgeteer-go/internal/domain/history"
	settingsdomain "budgeteer-go/internal/domain/settings"
	transactionsdomain "budgeteer-go/internal/domain/transactions"
	"budgeteer-go/internal/events"
	"budgeteer-go/internal/repository/inmemory"
	categoriesrepo "budgeteer-go/internal/repository/postgres/categories"
	historyrepo "budgeteer-go/internal/repository/postgres/history"
	settingsrepo "budgeteer-go/internal/repository/postgres/settings"
	transactionsrepo "budgeteer-go/internal/repository/postgres/transactions"
	"budgeteer-go/internal/transport/httpserver"
	"budgeteer-go/internal/transport/httpserver/handler"
	"budgeteer-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	publisher  events.Publisher
}

func New(cfg config.Config, log logger.Logger) (*App, error) {
	if cfg.DB.AutoMigrate {
		log.Info("app: applying migrations")
		if err := db.Migrate(cfg.DB, log); err != nil {
			return nil, err
		}
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	publisher, err := newPublisher(cfg.AMQP, log)
	if err != nil {
		closeDB(dbConn)
		return nil, err
	}

	log.Info("app: initializing services")
	categoriesService := categoriesdomain.NewServiceWithCache(
		categoriesrepo.NewPostgres(dbConn),
		inmemory.NewCategoriesCache(cfg.Cache.MaxEntries),
		cfg.Cache.TTL,
	)
	historyService := historydomain.NewServiceWithCache(
		historyrepo.NewPostgres(dbConn),
		inmemory.NewPeriodsCache(cfg.Cache.MaxEntries),
		cfg.Cache.TTL,
	)
	transactionsService := transactionsdomain.NewService(
		transactionsrepo.NewPostgres(dbConn),
		categoriesService,
		historyService,
	)
	settingsService := settingsdomain.NewService(settingsrepo.NewPostgres(dbConn))

	handlers := handler.New(handler.Services{
		Transactions: transactionsService,
		Categories:   categoriesService,
		History:      historyService,
		Settings:     settingsService,
	}, publisher, cfg.Stats.MaxRangeDays, log)

	log.Info("app: initializing http server")
	router := httpserver.NewRouter(cfg, handlers, log)
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
		publisher:  publisher,
	}, nil
}

// newPublisher connects to the broker when one is configured. Without a URL
// events are dropped.
func newPublisher(cfg config.AMQPConfig, log logger.Logger) (events.Publisher, error) {
	if cfg.URL == "" {
		log.Info("app: amqp url not set, events disabled")
		return events.NoopPublisher{}, nil
	}

	log.Info("app: connecting to amqp", "exchange", cfg.Exchange)
	publisher, err := events.NewAMQPPublisher(cfg.URL, cfg.Exchange)
	if err != nil {
		return nil, err
	}
	return publisher, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	var errs []error
	if a.publisher != nil {
		errs = append(errs, a.publisher.Close())
	}
	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err != nil {
			errs = append(errs, err)
		} else {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}

func closeDB(conn *gorm.DB) {
	if sqlDB, err := conn.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
