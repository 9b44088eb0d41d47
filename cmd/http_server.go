package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/service-tracking/internal"
	"github.com/frahmantamala/service-tracking/internal/assignment"
	assignmentPostgres "github.com/frahmantamala/service-tracking/internal/assignment/postgres"
	"github.com/frahmantamala/service-tracking/internal/auth"
	authPostgres "github.com/frahmantamala/service-tracking/internal/auth/postgres"
	"github.com/frahmantamala/service-tracking/internal/core/events"
	"github.com/frahmantamala/service-tracking/internal/driver"
	driverPostgres "github.com/frahmantamala/service-tracking/internal/driver/postgres"
	"github.com/frahmantamala/service-tracking/internal/route"
	routePostgres "github.com/frahmantamala/service-tracking/internal/route/postgres"
	"github.com/frahmantamala/service-tracking/internal/shift"
	shiftPostgres "github.com/frahmantamala/service-tracking/internal/shift/postgres"
	"github.com/frahmantamala/service-tracking/internal/tracking"
	trackingPostgres "github.com/frahmantamala/service-tracking/internal/tracking/postgres"
	"github.com/frahmantamala/service-tracking/internal/transport"
	"github.com/frahmantamala/service-tracking/internal/transport/rest"
	"github.com/frahmantamala/service-tracking/internal/user"
	userPostgres "github.com/frahmantamala/service-tracking/internal/user/postgres"
	"github.com/frahmantamala/service-tracking/internal/vehicle"
	vehiclePostgres "github.com/frahmantamala/service-tracking/internal/vehicle/postgres"
	"github.com/frahmantamala/service-tracking/pkg/logger"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
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
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
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
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Format, config.Observability.Logging.Level)
	appLogger := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	router := chi.NewRouter()
	baseHandler := transport.NewBaseHandler(appLogger)
	eventBus := events.NewEventBus(appLogger)

	// Auth
	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.JWTKey,
		config.Security.JWTIssuer,
		config.Security.JWTAudience,
		config.Security.AccessTokenDuration,
	)
	hasher := auth.NewPasswordHasher(config.Security.PBKDF2Iterations)
	authService := auth.NewService(authPostgres.NewRepository(gormDB), tokenGen, hasher, config.Security.RefreshTokenDuration, appLogger)
	authHandler := auth.NewHandler(authService)

	// Domain services
	userService := user.NewService(userPostgres.NewUserRepository(gormDB), appLogger)
	userHandler := user.NewHandler(baseHandler, userService)

	routeService := route.NewService(routePostgres.NewRouteRepository(gormDB), appLogger)
	routeHandler := route.NewHandler(baseHandler, routeService)

	vehicleService := vehicle.NewService(vehiclePostgres.NewVehicleRepository(gormDB), appLogger)
	vehicleHandler := vehicle.NewHandler(baseHandler, vehicleService)

	driverService := driver.NewService(driverPostgres.NewDriverRepository(gormDB), appLogger)
	driverHandler := driver.NewHandler(baseHandler, driverService)

	shiftService := shift.NewService(shiftPostgres.NewShiftRepository(gormDB), appLogger)
	shiftHandler := shift.NewHandler(baseHandler, shiftService)

	assignmentService := assignment.NewService(assignmentPostgres.NewAssignmentRepository(gormDB), appLogger)
	assignmentHandler := assignment.NewHandler(baseHandler, assignmentService)

	trackingService := tracking.NewService(trackingPostgres.NewTrackingRepository(gormDB), eventBus, appLogger)
	trackingHandler := tracking.NewHandler(baseHandler, trackingService)

	// Movement audit trail listens on the bus
	tracking.NewEventHandler(appLogger).RegisterEventHandlers(eventBus)

	rest.RegisterAllRoutes(router, db.DB, authHandler, userHandler, routeHandler, vehicleHandler, driverHandler, shiftHandler, assignmentHandler, trackingHandler, appLogger)

	return &Dependencies{
		Config: config,
		Logger: appLogger,
		DB:     db,
		Router: router,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driverName = "pgx"

	dbConn, err := sqlx.Connect(driverName, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm layers the ORM over the already open pgx connection pool so
// repositories and raw sqlx queries share the same pool limits.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Warn),
		TranslateError: true,
	})
}
