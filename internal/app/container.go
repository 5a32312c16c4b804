package app

import (
	"context"
	"log"
	"time"

	"learnpath/internal/config"
	"learnpath/internal/database"
	"learnpath/internal/database/migration"
	dbpostgres "learnpath/internal/database/postgres"
	"learnpath/internal/database/seeder"
	"learnpath/internal/delivery/http/middleware"
	"learnpath/internal/infrastructure/cache"
	"learnpath/internal/infrastructure/delivery"
	"learnpath/internal/pkg/jwt"
	"learnpath/internal/providers"
	"learnpath/internal/providers/coursera"
	"learnpath/internal/providers/edx"
	"learnpath/internal/providers/udemy"
	"learnpath/internal/repository"
	"learnpath/internal/scraper"
	"learnpath/internal/session"
	"learnpath/internal/usecase"
	ucuser "learnpath/internal/usecase/user"
	"learnpath/internal/ws"
)

// Container wires every collaborator once at startup. Close tears down in
// reverse order of construction.
type Container struct {
	Config config.Config
	DB     database.DB
	Redis  *cache.Redis
	Hub    *ws.Hub

	Sessions *session.Store

	Auth            usecase.AuthUsecase
	Users           *ucuser.Service
	Assessments     *usecase.AssessmentUsecase
	Recommendations *usecase.RecommendationUsecase
	Exports         *usecase.ExportUsecase

	LinkedIn scraper.LinkedInExtractor
	AuthMW   *middleware.AuthMiddleware

	aggregator *providers.Aggregator
	cancel     context.CancelFunc
}

// Aggregator exposes the provider fan-out for out-of-band catalog refresh.
func (c *Container) Aggregator() *providers.Aggregator {
	return c.aggregator
}

func NewContainer(cfg config.Config) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := (migration.Runner{Dir: "migrations"}).Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger := log.Default()

	redis := cache.NewRedis(logger)
	cacheTTL := cache.DefaultTTLFromEnv()

	hub := ws.NewHub(logger)
	ws.SetDefaultHub(hub)

	sessions := session.NewStore(cfg.Session.TTL)

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	userRepo := repository.NewPostgresUserRepository(db)
	courseRepo := repository.NewPostgresCourseRepository(db)
	submissionRepo := repository.NewPostgresAssessmentRepository(db)

	aggregator := providers.NewAggregator(logger,
		coursera.New(cfg.Providers.CourseraBaseURL, cfg.Providers.CourseraAPIKey),
		udemy.New(cfg.Providers.UdemyBaseURL, cfg.Providers.UdemyAPIKey),
		edx.New(cfg.Providers.EdxBaseURL, cfg.Providers.EdxAPIKey),
	)
	searchOpts := providers.SearchOptions{LimitPerProvider: int(cfg.Providers.SearchLimit)}

	linkedin := scraper.NewLinkedInScraper(logger, cfg.Scraper.Headless)

	assessments := usecase.NewAssessmentUsecase(
		sessions, submissionRepo, courseRepo, aggregator, linkedin,
		redis, searchOpts, cacheTTL, logger,
	)
	recommendations := usecase.NewRecommendationUsecase(
		sessions, courseRepo, aggregator, redis, searchOpts, cacheTTL, logger,
	)
	exports := usecase.NewExportUsecase(
		recommendations,
		delivery.NewEmailClient(cfg.Export.EmailServiceURL, logger),
		delivery.NewPDFClient(cfg.Export.PDFServiceURL, logger),
		logger,
	)

	runCtx, runCancel := context.WithCancel(context.Background())
	go hub.Run()
	go sessions.Sweep(runCtx, time.Minute)

	return &Container{
		Config:          cfg,
		DB:              db,
		Redis:           redis,
		Hub:             hub,
		Sessions:        sessions,
		Auth:            usecase.NewAuthUsecase(userRepo, jwtSvc),
		Users:           ucuser.NewService(userRepo),
		Assessments:     assessments,
		Recommendations: recommendations,
		Exports:         exports,
		LinkedIn:        linkedin,
		AuthMW:          middleware.NewAuthMiddleware(jwtSvc),
		aggregator:      aggregator,
		cancel:          runCancel,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.cancel != nil {
		c.cancel()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
