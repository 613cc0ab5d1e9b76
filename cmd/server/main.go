package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/clubhub/events-api/docs"
	"github.com/clubhub/events-api/internal/api"
	"github.com/clubhub/events-api/internal/auth"
	"github.com/clubhub/events-api/internal/auth/provider"
	"github.com/clubhub/events-api/internal/core/service"
	awsinfra "github.com/clubhub/events-api/internal/infrastructure/aws"
	"github.com/clubhub/events-api/internal/infrastructure/config"
	mongodb "github.com/clubhub/events-api/internal/infrastructure/db/mongo"
	redisdb "github.com/clubhub/events-api/internal/infrastructure/db/redis"
	"github.com/clubhub/events-api/internal/infrastructure/queue"
	"github.com/clubhub/events-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        ClubHub Events API
// @version      1.0
// @description  Event management backend: events, registrations, blog, gallery, social login and verification flows.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	log := logger.Init(logger.Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Pretty: os.Getenv("ENV") == "development",
	})
	cfg := config.Load(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Datastores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	userRepo := mongodb.NewUserRepository(db)
	eventRepo := mongodb.NewEventRepository(db)
	regRepo := mongodb.NewRegistrationRepository(db)
	blogRepo := mongodb.NewBlogRepository(db)
	galleryRepo := mongodb.NewGalleryRepository(db)

	for name, idx := range map[string]interface {
		EnsureIndexes(context.Context) error
	}{
		"users":         userRepo,
		"events":        eventRepo,
		"registrations": regRepo,
		"blog":          blogRepo,
		"gallery":       galleryRepo,
	} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	// --- AWS collaborators ---
	awsCfg, err := awsinfra.LoadConfig(ctx, cfg.AWS.Region, cfg.AWS.AccessKeyID, cfg.AWS.SecretAccessKey)
	if err != nil {
		log.Fatal().Err(err).Msg("aws configuration failed")
	}
	blobs := awsinfra.NewBlobStore(awsCfg, cfg.AWS.EndpointURL, log)
	identity := awsinfra.NewIdentity(awsCfg, awsinfra.IdentityConfig{
		UserPoolID:  cfg.Cognito.UserPoolID,
		ClientID:    cfg.Cognito.ClientID,
		SenderEmail: cfg.AWS.SenderEmail,
	}, redisdb.NewCodeStore(rdb), log)

	// --- Token verification ---
	keys, err := auth.NewCognitoKeyfunc(ctx, cfg.AWS.Region, cfg.Cognito.UserPoolID, log)
	if err != nil {
		log.Fatal().Err(err).Msg("jwks fetch failed")
	}
	verifier := auth.NewVerifier(keys, auth.CognitoIssuer(cfg.AWS.Region, cfg.Cognito.UserPoolID), cfg.Cognito.Audience)

	// --- OAuth providers ---
	providers := make([]provider.Provider, 0, 2)
	if cfg.OAuth.GoogleClientID != "" {
		google, err := provider.NewGoogle(ctx, cfg.OAuth.GoogleClientID, cfg.OAuth.GoogleClientSecret, cfg.OAuth.GoogleRedirectURL)
		if err != nil {
			log.Fatal().Err(err).Msg("google provider discovery failed")
		}
		providers = append(providers, google)
	}
	if cfg.OAuth.MicrosoftClientID != "" {
		providers = append(providers, provider.NewMicrosoft(
			cfg.OAuth.MicrosoftClientID,
			cfg.OAuth.MicrosoftClientSecret,
			cfg.OAuth.MicrosoftTenant,
			cfg.OAuth.MicrosoftRedirectURL,
		))
	}

	// --- Services ---
	resolver := service.NewIdentityService(userRepo, log)
	artifactSvc := service.NewArtifactService(regRepo, blobs, cfg.Buckets.QRCodes, log)
	dispatcher := queue.NewDispatcher(cfg.ArtifactWorkers, artifactSvc, log)
	dispatcher.Start(ctx)

	eventSvc := service.NewEventService(eventRepo, regRepo, resolver, blobs, cfg.Buckets.EventCovers, log)
	regSvc := service.NewRegistrationService(regRepo, eventRepo, resolver, dispatcher, blobs, cfg.Buckets.QRCodes, log)
	blogSvc := service.NewBlogService(blogRepo, resolver, log)
	gallerySvc := service.NewGalleryService(galleryRepo, resolver, blobs, cfg.Buckets.Gallery, log)
	userSvc := service.NewUserService(userRepo, resolver, blobs, cfg.Buckets.Avatars, log)
	socialSvc := service.NewSocialService(redisdb.NewStateStore(rdb), resolver, identity, log, providers...)
	verificationSvc := service.NewVerificationService(identity, log)

	// --- HTTP server ---
	e := api.NewRouter(api.Dependencies{
		Logger:        log,
		Verifier:      verifier,
		DevAuth:       cfg.DevAuth,
		Mongo:         db,
		Redis:         rdb,
		Events:        eventSvc,
		Registrations: regSvc,
		Blog:          blogSvc,
		Gallery:       gallerySvc,
		Users:         userSvc,
		Social:        socialSvc,
		Verification:  verificationSvc,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	log.Info().
		Str("port", cfg.Port).
		Str("env", cfg.Env).
		Int("artifact_workers", cfg.ArtifactWorkers).
		Msg("events api started")

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	log.Info().Msg("events api stopped")
}
