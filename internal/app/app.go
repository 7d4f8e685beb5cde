package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	_ "quicknotes/docs"
	"quicknotes/internal/config"
	"quicknotes/internal/database"
	"quicknotes/internal/handlers"
	"quicknotes/internal/middleware"
	"quicknotes/internal/pdf"
	"quicknotes/internal/repositories"
	"quicknotes/internal/repositories/memory"
	"quicknotes/internal/routes"
	"quicknotes/internal/services"
)

const shutdownTimeout = 10 * time.Second

// App: собранный HTTP-сервис со всеми зависимостями.
type App struct {
	Router *gin.Engine
	db     *sql.DB
}

type repos struct {
	users repositories.UserRepository
	otps  repositories.OTPRepository
	notes repositories.NoteRepository
}

func openRepos(ctx context.Context, cfg *config.Config) (repos, *sql.DB, error) {
	if cfg.Database.Driver == database.DriverMemory {
		log.Printf("[app][db] driver=memory, data is not persisted")
		store := memory.NewStore()
		return repos{users: store.Users(), otps: store.OTPs(), notes: store.Notes()}, nil, nil
	}

	db, err := database.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return repos{}, nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return repos{}, nil, err
	}
	log.Printf("[app][db] driver=%s migrated", cfg.Database.Driver)
	return repos{
		users: repositories.NewUserRepository(db),
		otps:  repositories.NewOTPRepository(db),
		notes: repositories.NewNoteRepository(db),
	}, db, nil
}

// New собирает репозитории, сервисы, хендлеры и роутер.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === DB ===
	r, db, err := openRepos(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// === Services ===
	var notifier services.SignupNotifier
	tg, err := services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		// уведомления необязательны
		log.Printf("[app][telegram] disabled: %v", err)
	} else if tg != nil {
		notifier = tg
	}

	emailService := services.NewEmailService(cfg.Email)
	sessionService := services.NewSessionService(cfg.Auth.JWTSecret)
	userService := services.NewUserService(r.users, notifier)
	otpService := services.NewOTPService(r.otps, userService, emailService,
		services.WithCodeForExistingUsers(cfg.Auth.RequireOTPForExistingUsers),
	)
	authService := services.NewAuthService(userService, sessionService, services.NewGoogleVerifier(cfg.Google.ClientID))
	avatarService := services.NewAvatarService(cfg.Storage, userService)
	noteService := services.NewNoteService(r.notes, pdf.NewNotesRenderer(cfg.PDF.FontPath))

	// === Handlers ===
	cookie := handlers.CookieSettings{Name: cfg.Auth.CookieName, Secure: cfg.IsProduction()}
	authHandler := handlers.NewAuthHandler(otpService, authService, sessionService, avatarService, cookie)
	noteHandler := handlers.NewNoteHandler(noteService)

	// === Gin ===
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSOrigin))

	routes.SetupRoutes(router, authHandler, noteHandler, authService, cfg.Auth.CookieName)

	return &App{Router: router, db: db}, nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func Run() {
	cfg := config.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := New(ctx, cfg)
	if err != nil {
		log.Fatal("Ошибка инициализации: ", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Printf("Ошибка закрытия БД: %v", err)
		}
	}()

	// === Run ===
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("Сервер запущен на %s (mode=%s)", srv.Addr, cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Ошибка запуска сервера: ", err)
		}
	}()

	<-ctx.Done()
	log.Printf("[app] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[app] shutdown: %v", err)
	}
}
