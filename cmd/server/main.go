package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"minevest.backend/internal/config"
	"minevest.backend/internal/infrastructure/jobs"
	"minevest.backend/internal/infrastructure/repositories"
	"minevest.backend/internal/interfaces/http/handlers"
	"minevest.backend/internal/interfaces/http/middleware"
	"minevest.backend/internal/usecases"
	"minevest.backend/pkg/email"
	"minevest.backend/pkg/jwt"
	"minevest.backend/pkg/logger"
	"minevest.backend/pkg/metrics"
	"minevest.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	codeRepo := repositories.NewVerificationCodeRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	operationRepo := repositories.NewMiningOperationRepository(db)
	investmentRepo := repositories.NewInvestmentRepository(db)
	txRepo := repositories.NewTransactionRepository(db)
	kycRepo := repositories.NewKycDocumentRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)
	notifRepo := repositories.NewNotificationRepository(db)
	uow := repositories.NewUnitOfWork(db)

	mailer := email.NewAsyncDispatcher(email.LogSender{}, cfg.Email.From)
	auditor := usecases.NewAuditRecorder(auditRepo)

	// Usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, codeRepo, sessionRepo, txRepo, notifRepo, uow, jwtService, mailer, cfg.JWT.RefreshExpiry)
	operationUsecase := usecases.NewOperationUsecase(operationRepo)
	investmentUsecase := usecases.NewInvestmentUsecase(investmentRepo, operationRepo, userRepo, txRepo, notifRepo, uow)
	walletUsecase := usecases.NewWalletUsecase(userRepo, txRepo, uow)
	kycUsecase := usecases.NewKycUsecase(kycRepo, userRepo, notifRepo, uow, auditor)
	adminUsecase := usecases.NewAdminUsecase(userRepo, operationRepo, auditRepo, auditor)
	notificationUsecase := usecases.NewNotificationUsecase(notifRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	operationHandler := handlers.NewOperationHandler(operationUsecase)
	investmentHandler := handlers.NewInvestmentHandler(investmentUsecase)
	walletHandler := handlers.NewWalletHandler(walletUsecase)
	kycHandler := handlers.NewKycHandler(kycUsecase)
	notificationHandler := handlers.NewNotificationHandler(notificationUsecase)
	adminHandler := handlers.NewAdminHandler(adminUsecase, kycUsecase)

	// Background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	maturityJob := jobs.NewInvestmentMaturityJob(investmentUsecase, cfg.Jobs.MaturityInterval, cfg.Jobs.MaturityBatchSize)
	go maturityJob.Start(ctx)

	// Router
	m := metrics.New()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(m.Middleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	r.GET("/metrics", m.Handler())

	registerAPIV1Routes(r, routeDeps{
		authHandler:         authHandler,
		operationHandler:    operationHandler,
		investmentHandler:   investmentHandler,
		walletHandler:       walletHandler,
		kycHandler:          kycHandler,
		notificationHandler: notificationHandler,
		adminHandler:        adminHandler,
		userAuth:            middleware.AuthMiddleware(jwtService, jwt.AudienceUser),
		adminAuth:           middleware.AuthMiddleware(jwtService, jwt.AudienceAdmin),
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		maturityJob.Stop()
		cancel()
	}()

	log.Printf("🚀 MineVest Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
