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

	"github.com/frahmantamala/finance-chatbot/internal"
	"github.com/frahmantamala/finance-chatbot/internal/auth"
	"github.com/frahmantamala/finance-chatbot/internal/category"
	categoryRepo "github.com/frahmantamala/finance-chatbot/internal/category/postgres"
	"github.com/frahmantamala/finance-chatbot/internal/chatbot"
	"github.com/frahmantamala/finance-chatbot/internal/core/events"
	"github.com/frahmantamala/finance-chatbot/internal/transaction"
	transactionRepo "github.com/frahmantamala/finance-chatbot/internal/transaction/postgres"
	"github.com/frahmantamala/finance-chatbot/internal/transport"
	"github.com/frahmantamala/finance-chatbot/internal/transport/rest"
	"github.com/frahmantamala/finance-chatbot/internal/user"
	userRepo "github.com/frahmantamala/finance-chatbot/internal/user/postgres"
	"github.com/frahmantamala/finance-chatbot/pkg/logger"

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
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	logger.Init(os.Getenv("APP_ENV"))

	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

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
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func setupRoutes(deps *Dependencies) {
	lg := deps.Logger
	baseHandler := transport.NewBaseHandler(lg)

	bus := events.NewEventBus(lg)
	events.RegisterAuditHandlers(bus, lg)

	users := userRepo.NewUserRepository(deps.GormDB)
	categories := categoryRepo.NewCategoryRepository(deps.GormDB)
	transactions := transactionRepo.NewTransactionRepository(deps.GormDB)

	sec := deps.Config.Security
	tokenGen := auth.NewJWTTokenGenerator(
		sec.AccessTokenSecret,
		sec.RefreshTokenSecret,
		sec.AccessTokenDuration,
		sec.RefreshTokenDuration,
	)
	authService := auth.NewService(users, tokenGen, sec.BCryptCost)
	authHandler := auth.NewHandler(baseHandler, authService)

	userService := user.NewService(users)
	userHandler := user.NewHandler(baseHandler, userService)

	categoryService := category.NewService(categories, transactions, bus, lg)
	categoryHandler := category.NewHandler(baseHandler, categoryService)

	transactionService := transaction.NewService(transactions, categoryService, bus, lg)
	transactionHandler := transaction.NewHandler(baseHandler, transactionService)

	loc := deps.Config.Chatbot.Location()
	clock := func() time.Time { return time.Now().In(loc) }
	formatter := chatbot.NewFormatter(deps.Config.Chatbot.CurrencySymbol)
	chatbotService := chatbot.NewService(transactionService, formatter, clock, lg)
	chatbotHandler := chatbot.NewHandler(baseHandler, chatbotService)

	rest.RegisterAllRoutes(deps.Router, rest.RouterDeps{
		DB:                 deps.DB.DB,
		AuthHandler:        authHandler,
		UserHandler:        userHandler,
		TransactionHandler: transactionHandler,
		CategoryHandler:    categoryHandler,
		ChatbotHandler:     chatbotHandler,
		AllowedOrigins:     deps.Config.Server.AllowedOrigins,
		Logger:             lg,
	})
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm over db connection: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.L(),
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
	}, nil
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

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
