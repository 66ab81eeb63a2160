package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/medtrack/consult-api/config"
	"github.com/medtrack/consult-api/internal/email"
	"github.com/medtrack/consult-api/internal/handler"
	authHandler "github.com/medtrack/consult-api/internal/handler/auth"
	consultationHandler "github.com/medtrack/consult-api/internal/handler/consultation"
	patientHandler "github.com/medtrack/consult-api/internal/handler/patient"
	"github.com/medtrack/consult-api/internal/middleware"
	"github.com/medtrack/consult-api/internal/model"
	"github.com/medtrack/consult-api/internal/repository"
	"github.com/medtrack/consult-api/internal/repository/memory"
	"github.com/medtrack/consult-api/internal/repository/postgres"
	redisrepo "github.com/medtrack/consult-api/internal/repository/redis"
	"github.com/medtrack/consult-api/internal/router"
	authService "github.com/medtrack/consult-api/internal/service/auth"
	consultationService "github.com/medtrack/consult-api/internal/service/consultation"
	patientService "github.com/medtrack/consult-api/internal/service/patient"
	pkgauth "github.com/medtrack/consult-api/pkg/auth"
	"github.com/medtrack/consult-api/pkg/logger"
	"github.com/medtrack/consult-api/pkg/security"
	"github.com/medtrack/consult-api/pkg/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(cfg.Log.Level)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	accountRepo := postgres.NewAccountRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	consultationRepo := postgres.NewConsultationRepository(db)

	// Redis shares the revocation list across instances; without it, a
	// single-process in-memory list still honors logout.
	var tokenStore repository.TokenStore
	if cfg.Redis.URL != "" {
		tokenStore, err = redisrepo.NewTokenStore(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
	} else {
		log.Warn().Msg("no Redis configured, token revocation is process-local")
		tokenStore = memory.NewTokenStore()
	}

	validate := validator.New()
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)
	jwtSvc := pkgauth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryMinutes)*time.Minute)
	emailSvc := email.New(cfg.SMTP)

	authSvc := authService.NewService(accountRepo, tokenStore, jwtSvc, hasher, emailSvc, validate)
	patientSvc := patientService.NewService(patientRepo, validate)
	consultationSvc := consultationService.NewService(consultationRepo, patientRepo, validate)

	consultationWrite := model.AnyAuthenticated()
	if roles := cfg.AccessPolicy.ConsultationWriteRoles; len(roles) > 0 {
		consultationWrite = model.RoleIn(roles...)
	}

	r := router.NewRouter(
		middleware.NewAuthMiddleware(authSvc),
		authHandler.NewHandler(authSvc),
		patientHandler.NewHandler(patientSvc),
		consultationHandler.NewHandler(consultationSvc),
		handler.NewHandler(),
		router.RouterConfig{
			RateLimit:         rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:         cfg.RateLimit.Burst,
			CORSConfig:        middleware.DefaultCORSConfig(),
			ConsultationWrite: consultationWrite,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
