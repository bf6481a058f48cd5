package main

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	httpapi "github.com/immxrtalbeast/simplewish/internal/api/http"
	"github.com/immxrtalbeast/simplewish/internal/config"
	"github.com/immxrtalbeast/simplewish/internal/repository"
	"github.com/immxrtalbeast/simplewish/internal/repository/model"
	"github.com/immxrtalbeast/simplewish/internal/service"
	"github.com/immxrtalbeast/simplewish/lib/logger/slogpretty"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)

	db, err := connectDatabase(cfg.Database)
	if err != nil {
		log.Error("failed to connect database", slog.Any("error", err))
		os.Exit(1)
	}

	userRepo := repository.NewPostgresUserRepository(db)
	sessionRepo := repository.NewPostgresSessionRepository(db)
	eventRepo := repository.NewPostgresEventRepository(db)
	attendeeRepo := repository.NewPostgresAttendeeRepository(db)
	itemRepo := repository.NewPostgresListItemRepository(db)
	commentRepo := repository.NewPostgresCommentRepository(db)
	viewedRepo := repository.NewPostgresViewedCommentRepository(db)

	sessionTTL := time.Duration(cfg.Session.TTLHours) * time.Hour

	authService := service.NewAuthService(userRepo, sessionRepo, eventRepo, attendeeRepo, log, sessionTTL)
	eventService := service.NewEventService(eventRepo, attendeeRepo, userRepo, log)
	listService := service.NewListService(itemRepo, attendeeRepo, log)
	commentService := service.NewCommentService(commentRepo, viewedRepo, eventRepo, attendeeRepo, log, cfg.Comments.MaxPerThread)

	authController := httpapi.NewAuthController(
		authService,
		cfg.Session.CookieName,
		int(sessionTTL.Seconds()),
		cfg.Session.Secure,
	)
	eventController := httpapi.NewEventController(eventService)
	listController := httpapi.NewListController(listService)
	commentController := httpapi.NewCommentController(commentService)

	router := httpapi.SetupRouter(
		authService,
		cfg.Session.CookieName,
		authController,
		eventController,
		listController,
		commentController,
	)

	log.Info("starting application", slog.String("addr", cfg.HTTP.Address))
	if err := router.Run(cfg.HTTP.Address); err != nil {
		log.Error("http server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = setupPrettySlog()
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}

func connectDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	if cfg.DSN == "" {
		return nil, errors.New("database dsn is empty")
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	db.AutoMigrate(
		&model.User{},
		&model.Session{},
		&model.Event{},
		&model.Attendee{},
		&model.ListItem{},
		&model.Comment{},
		&model.ViewedComment{},
	)

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
