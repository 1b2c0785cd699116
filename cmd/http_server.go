package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hrportal/leave-management/internal"
	"github.com/hrportal/leave-management/internal/auth"
	"github.com/hrportal/leave-management/internal/core/events"
	"github.com/hrportal/leave-management/internal/core/seed"
	"github.com/hrportal/leave-management/internal/directory"
	"github.com/hrportal/leave-management/internal/leave"
	leavepostgres "github.com/hrportal/leave-management/internal/leave/postgres"
	"github.com/hrportal/leave-management/internal/suggestion"
	"github.com/hrportal/leave-management/internal/transport/rest"
	"github.com/hrportal/leave-management/internal/user"
	userpostgres "github.com/hrportal/leave-management/internal/user/postgres"
	"github.com/hrportal/leave-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if deps.DB != nil {
			if err := deps.DB.Close(); err != nil {
				deps.Logger.Error("database close error", "error", err)
			}
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"), config.Observability.Logging.Level)
	lg := logger.L()

	var (
		sqlDB     *sql.DB
		sqlxDB    *sqlx.DB
		userRepo  user.Repository
		leaveRepo leave.Repository
	)

	if config.Database.Source == "" {
		// In-memory mode: a mutex-guarded directory seeded with sample data.
		store := directory.New(seed.Users(), seed.LeaveRequests())
		userRepo = store.Users()
		leaveRepo = store.Requests()
		lg.Info("using in-memory directory store", "users", len(seed.Users()))
	} else {
		sqlxDB, err = initDB(config.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		sqlDB = sqlxDB.DB

		gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to open gorm connection: %w", err)
		}

		userRepo = userpostgres.NewUserRepository(gormDB)
		leaveRepo = leavepostgres.NewLeaveRequestRepository(gormDB)
		lg.Info("using postgres directory store")
	}

	bus := events.NewEventBus(lg)
	registerEventLogging(bus, lg)

	userService := user.NewService(userRepo, lg)
	leaveService := leave.NewService(leaveRepo, userRepo, bus, lg)

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(userRepo, tokenGen)

	suggestionClient := suggestion.NewClient(suggestion.Config{
		APIURL:  config.Suggestion.APIURL,
		APIKey:  config.Suggestion.APIKey,
		Model:   config.Suggestion.Model,
		Timeout: config.Suggestion.Timeout,
	}, lg)

	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	leaveHandler := leave.NewHandler(leaveService)
	suggestionHandler := suggestion.NewHandler(suggestionClient)

	router := chi.NewRouter()
	origins := splitOrigins(config.Server.AllowedOrigins)
	rest.RegisterAllRoutes(router, sqlDB, origins, authHandler, userHandler, leaveHandler, suggestionHandler, lg)

	return &Dependencies{
		Config: config,
		Logger: lg,
		DB:     sqlxDB,
		Router: router,
	}, nil
}

// registerEventLogging subscribes audit-log handlers for every lifecycle
// event the engine publishes.
func registerEventLogging(bus *events.EventBus, lg *slog.Logger) {
	for _, eventType := range []string{
		events.LeaveRequestSubmitted,
		events.LeaveRequestApproved,
		events.LeaveRequestRejected,
	} {
		bus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
			lg.Info("lifecycle event",
				"event_type", event.EventType(),
				"event_id", event.EventID(),
				"payload", event.Payload())
			return nil
		})
	}
}

func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	if raw == "*" {
		return []string{"*"}
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
