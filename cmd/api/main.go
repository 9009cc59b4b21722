package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sumit-Kumar-0/whatsapp-backend/api/routes"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/cache"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/config"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/handlers"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/logger"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/metrics"
	mongorepo "github.com/Sumit-Kumar-0/whatsapp-backend/internal/repositories/mongodb"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/services"
	"github.com/Sumit-Kumar-0/whatsapp-backend/pkg/encryption"
	"github.com/Sumit-Kumar-0/whatsapp-backend/pkg/jwt"
	"github.com/Sumit-Kumar-0/whatsapp-backend/pkg/mailer"
	"github.com/Sumit-Kumar-0/whatsapp-backend/pkg/mongodb"
	"github.com/Sumit-Kumar-0/whatsapp-backend/pkg/whatsapp"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	gin.SetMode(cfg.Server.Mode)
	metrics.InitAPIMetrics()
	metrics.InitDomainMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, err := mongodb.NewClient(ctx, cfg.MongoDB.URI, cfg.MongoDB.Database, cfg.MongoDB.Timeout)
	if err != nil {
		zl.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			zl.Warn("Error disconnecting from MongoDB", zap.Error(err))
		}
	}()

	db := mongoClient.Database()
	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		zl.Fatal("Failed to create indexes", zap.Error(err))
	}

	userRepo := mongorepo.NewUserRepository(db)
	businessRepo := mongorepo.NewBusinessRepository(db)
	templateRepo := mongorepo.NewTemplateRepository(db)
	contactRepo := mongorepo.NewContactRepository(db)
	campaignRepo := mongorepo.NewCampaignRepository(db)
	messageRepo := mongorepo.NewMessageRepository(db)
	planRepo := mongorepo.NewSubscriptionPlanRepository(db)
	configRepo := mongorepo.NewSystemConfigRepository(db)

	var configCache cache.ConfigCache = cache.NopConfigCache{}
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			zl.Warn("Redis unavailable, public configs will not be cached", zap.Error(err))
		} else {
			defer redisClient.Close()
			configCache = cache.NewRedisConfigCache(redisClient, cfg.Redis.TTL, zl)
		}
	}

	cipher, err := encryption.NewAESCipher(cfg.Encryption.Key)
	if err != nil {
		zl.Fatal("Failed to create config cipher", zap.Error(err))
	}

	tokens := jwt.NewTokenService(cfg.JWT.Secret, cfg.JWT.ExpiresIn, cfg.JWT.Issuer)
	platform := whatsapp.NewClient(whatsapp.Options{
		BaseURL:   cfg.WhatsApp.BaseURL,
		Version:   cfg.WhatsApp.Version,
		Timeout:   cfg.WhatsApp.Timeout,
		AppID:     cfg.WhatsApp.AppID,
		AppSecret: cfg.WhatsApp.AppSecret,
	}, zl.Named("whatsapp"))

	authService := services.NewAuthService(userRepo, tokens, newMailer(cfg, zl), cfg.Mail.From, zl.Named("auth"))
	templateService := services.NewTemplateService(
		templateRepo,
		services.NewBusinessCredentialResolver(businessRepo),
		platform,
		cfg.WhatsApp.PageSize,
		zl.Named("templates"),
	)
	planService := services.NewSubscriptionPlanService(planRepo, zl.Named("plans"))
	if err := planService.SeedDefaultPlans(ctx); err != nil {
		zl.Warn("Failed to seed subscription plans", zap.Error(err))
	}

	deps := routes.HandlerDependencies{
		Auth:      handlers.NewAuthHandler(authService, tokens.TTL(), cfg.Server.Mode == gin.ReleaseMode),
		Templates: handlers.NewTemplateHandler(templateService),
		Contacts:  handlers.NewContactHandler(services.NewContactService(contactRepo, zl.Named("contacts"))),
		Campaigns: handlers.NewCampaignHandler(services.NewCampaignService(campaignRepo, templateRepo)),
		Vendors:   handlers.NewVendorHandler(services.NewVendorService(userRepo)),
		Configs:   handlers.NewConfigHandler(services.NewConfigService(configRepo, cipher, configCache, zl.Named("configs"))),
		Plans:     handlers.NewPlanHandler(planService),
		Dashboards: handlers.NewDashboardHandler(services.NewDashboardService(
			userRepo, contactRepo, campaignRepo, messageRepo, templateRepo, businessRepo,
		)),
		Facebook:      handlers.NewFacebookHandler(services.NewBusinessService(businessRepo, platform, cfg.Server.FrontendURL, zl.Named("business"))),
		Health:        handlers.NewHealthHandler(mongoClient),
		Authenticator: authService,
	}
	router := routes.SetupRouter(cfg, deps, zl)

	if cfg.Sync.Interval > 0 {
		scheduler := services.NewTemplateSyncScheduler(businessRepo, templateService, cfg.Sync.Interval, zl.Named("sync"))
		go scheduler.Run(ctx)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zl.Info("Server starting", zap.String("port", cfg.Server.Port), zap.String("mode", cfg.Server.Mode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Error("listen failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	zl.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	zl.Info("Server exiting")
}

func newMailer(cfg *config.Config, zl *zap.Logger) mailer.Mailer {
	switch cfg.Mail.Provider {
	case "smtp":
		return &mailer.SMTPMailer{
			Host:     cfg.Mail.SMTPHost,
			Port:     cfg.Mail.SMTPPort,
			Username: cfg.Mail.SMTPUsername,
			Password: cfg.Mail.SMTPPassword,
			UseAuth:  cfg.Mail.SMTPUsername != "",
			Timeout:  30 * time.Second,
		}
	case "sendgrid":
		return mailer.NewSendGridMailer(cfg.Mail.SendGridKey, cfg.Mail.FromName, cfg.Mail.From)
	default:
		return &mailer.LogMailer{Logger: zl.Named("mail")}
	}
}
