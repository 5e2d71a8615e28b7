package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/veldt-labs/auth-service/internal/auth/jwt"
	"github.com/veldt-labs/auth-service/internal/auth/password"
	"github.com/veldt-labs/auth-service/internal/auth/service"
	"github.com/veldt-labs/auth-service/internal/config"
	lg "github.com/veldt-labs/auth-service/internal/infra/log"
	"github.com/veldt-labs/auth-service/internal/migrate"
	postgresRepo "github.com/veldt-labs/auth-service/internal/repo/postgres"
	redisRepo "github.com/veldt-labs/auth-service/internal/repo/redis"
	transport "github.com/veldt-labs/auth-service/internal/transport/http"
	"github.com/veldt-labs/auth-service/internal/transport/http/middleware"
)

func main() {
	zapLog := lg.Must(os.Getenv("LOG_LEVEL"))
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("failed to load config", zap.Error(err))
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zapLog.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()
	if err := migrate.Up(sqlDB); err != nil {
		zapLog.Fatal("run migrations", zap.Error(err))
	}

	redisCli := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisCli.Close()

	userRepo := postgresRepo.NewPostgresUserRepo(db)
	tokenRepo := redisRepo.NewRedisTokenRepo(redisCli)
	issuer := jwt.NewTokenIssuer(cfg)
	hasher := password.NewHasher(cfg.PasswordPepper)

	svc := service.New(userRepo, tokenRepo, issuer, hasher, validator.New(), zapLog)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(zapLog))

	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			AllowCredentials: cfg.AllowCredentials,
			MaxAge:           12 * time.Hour,
		}))
	}

	transport.NewHandler(svc, zapLog, cfg.CookieDomain).Routes(router)

	srv := &http.Server{Addr: cfg.HTTPAddress, Handler: router}

	rootCtx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		zapLog.Info("http server listening", zap.String("addr", cfg.HTTPAddress))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLog.Info("shutdown signal received")
	cancel()

	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
	}
}
