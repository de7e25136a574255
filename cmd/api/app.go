package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/commtrack/api/internal/auth"
	"github.com/octobees/commtrack/api/internal/config"
	"github.com/octobees/commtrack/api/internal/database"
	"github.com/octobees/commtrack/api/internal/handler"
	"github.com/octobees/commtrack/api/internal/logging"
	"github.com/octobees/commtrack/api/internal/repository"
	"github.com/octobees/commtrack/api/internal/router"
	"github.com/octobees/commtrack/api/internal/service"
)

const connectTimeout = 10 * time.Second

// app holds the dependencies shared by every subcommand.
type app struct {
	cfg    *config.Config
	logger *log.Logger
	pool   *pgxpool.Pool
	jwt    *auth.JWTManager

	auth           *service.AuthService
	users          *service.UserService
	companies      *service.CompaniesService
	methods        *service.MethodsService
	communications *service.CommunicationsService
	notifications  *service.NotificationsService
	analytics      *service.AnalyticsService
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := database.Connect(connectCtx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	usersRepo := repository.NewPGXUsersRepository(pool)
	companiesRepo := repository.NewPGXCompaniesRepository(pool)
	methodsRepo := repository.NewPGXMethodsRepository(pool)
	communicationsRepo := repository.NewPGXCommunicationsRepository(pool)
	notificationsRepo := repository.NewPGXNotificationsRepository(pool)
	analyticsRepo := repository.NewPGXAnalyticsRepository(pool)

	return &app{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		jwt:    jwtManager,

		auth:           service.NewAuthService(usersRepo, jwtManager),
		users:          service.NewUserService(usersRepo),
		companies:      service.NewCompaniesService(companiesRepo, service.NewContactNormalizer(cfg.DefaultPhoneRegion)),
		methods:        service.NewMethodsService(methodsRepo),
		communications: service.NewCommunicationsService(communicationsRepo),
		notifications:  service.NewNotificationsService(analyticsRepo, notificationsRepo, logger),
		analytics:      service.NewAnalyticsService(analyticsRepo, communicationsRepo),
	}, nil
}

func (a *app) handlers() router.Handlers {
	return router.Handlers{
		Auth:           handler.NewAuthHandler(a.auth),
		Users:          handler.NewUserAdminHandler(a.users),
		Companies:      handler.NewCompaniesHandler(a.companies),
		AdminUpload:    handler.NewAdminUploadHandler(a.companies),
		Methods:        handler.NewMethodsHandler(a.methods),
		Communications: handler.NewCommunicationsHandler(a.communications),
		Notifications:  handler.NewNotificationsHandler(a.notifications),
		Analytics:      handler.NewAnalyticsHandler(a.analytics),
	}
}

func (a *app) Close() {
	a.pool.Close()
}
