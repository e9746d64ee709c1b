package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/precihole/SolidworkConnect/internal/config"
	"github.com/precihole/SolidworkConnect/internal/middleware"
	"github.com/precihole/SolidworkConnect/internal/swconnect/entity"
	"github.com/precihole/SolidworkConnect/internal/swconnect/handler"
	"github.com/precihole/SolidworkConnect/internal/swconnect/repository"
	"github.com/precihole/SolidworkConnect/internal/swconnect/service"
	"github.com/precihole/SolidworkConnect/internal/swconnect/storage"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting swconnect service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	if cfg.JWT.Secret == "" {
		zapLogger.Fatal("JWT secret is not configured (JWT_SECRET)")
	}

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := db.AutoMigrate(entity.All()...); err != nil {
		zapLogger.Fatal("Failed to migrate tables", zap.Error(err))
	}

	ctx := context.Background()

	store, err := initStorage(ctx, cfg.Storage)
	if err != nil {
		zapLogger.Fatal("Failed to init storage", zap.Error(err))
	}
	zapLogger.Info("Storage ready", zap.String("driver", cfg.Storage.Driver))

	// 未配置 redis 时退化为进程内锁，仅适用于单实例
	var locker service.Locker
	if cfg.Redis.Enabled() {
		rdb := initRedis(cfg.Redis)
		if err := rdb.Ping(ctx).Err(); err != nil {
			zapLogger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer rdb.Close()
		locker = service.NewRedisLocker(rdb, cfg.SWConnect.LockTTL, cfg.SWConnect.LockWait, zapLogger.Named("lock"))
		zapLogger.Info("Using redis item lock", zap.String("host", cfg.Redis.Host))
	} else {
		locker = service.NewMemoryLocker(cfg.SWConnect.LockWait)
		zapLogger.Warn("Redis not configured, using in-process item lock")
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, store, locker, cfg, zapLogger)
	handlers := handler.NewHandlers(services)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	// 物料编码可能含 /，客户端需按 %2F 转义；参数由 handler.pathParam 解码
	router.UseRawPath = true
	router.UnescapePathValues = false
	router.Use(middleware.Recovery(zapLogger))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers, db, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create sqlite dir: %w", err)
		}
		dialector = sqlite.Open(cfg.Path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	case "postgres", "":
		dsn := fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
		)
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if cfg.Driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func initStorage(ctx context.Context, cfg config.StorageConfig) (storage.Store, error) {
	switch cfg.Driver {
	case "minio":
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return storage.NewMinIOStore(ctx, storage.MinIOConfig(cfg.MinIO))
	case "local", "":
		return storage.NewLocalStore(cfg.LocalDir)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, db *gorm.DB, cfg *config.Config) {
	// 健康检查
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.MaxBodySize(cfg.Server.MaxBodyBytes))
	api.Use(middleware.JWTAuth(cfg.JWT.Secret, cfg.JWT.Issuer))
	h.Register(api)
}
