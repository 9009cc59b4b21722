package routes

import (
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/config"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/handlers"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/middleware"
	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// HandlerDependencies holds every handler the router mounts
type HandlerDependencies struct {
	Auth          *handlers.AuthHandler
	Templates     *handlers.TemplateHandler
	Contacts      *handlers.ContactHandler
	Campaigns     *handlers.CampaignHandler
	Vendors       *handlers.VendorHandler
	Configs       *handlers.ConfigHandler
	Plans         *handlers.PlanHandler
	Dashboards    *handlers.DashboardHandler
	Facebook      *handlers.FacebookHandler
	Health        *handlers.HealthHandler
	Authenticator middleware.Authenticator
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	if !cfg.RateLimit.TrustProxies {
		// ClientIP must not honor forwarded headers the limiter cannot trust
		_ = router.SetTrustedProxies(nil)
	}

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	generalLimiter := middleware.NewRateLimiter("general", cfg.RateLimit.General, cfg.RateLimit.Window)
	authLimiter := middleware.NewRateLimiter("auth", cfg.RateLimit.Auth, cfg.RateLimit.Window)

	api := router.Group("/api")
	api.Use(generalLimiter.Middleware())
	api.GET("/health", deps.Health.Health)
	api.GET("/configs/public", deps.Configs.PublicConfigs)
	api.GET("/plans", deps.Plans.ListActivePlans)

	requireAuth := middleware.JWTAuthMiddleware(deps.Authenticator)

	auth := api.Group("/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", deps.Auth.Register)
		auth.POST("/login", deps.Auth.Login)
		auth.POST("/logout", deps.Auth.Logout)
		auth.POST("/verify-email", deps.Auth.VerifyEmail)
		auth.POST("/resend-verification", deps.Auth.ResendVerification)
		auth.GET("/me", requireAuth, deps.Auth.Me)
	}

	admin := api.Group("/admin")
	admin.Use(requireAuth, middleware.Authorize(models.RoleAdmin))
	{
		admin.GET("/dashboard", deps.Dashboards.AdminDashboard)

		vendors := admin.Group("/vendors")
		vendors.GET("", deps.Vendors.ListVendors)
		vendors.POST("", deps.Vendors.CreateVendor)
		vendors.GET("/:id", deps.Vendors.GetVendor)
		vendors.PUT("/:id", deps.Vendors.UpdateVendor)
		vendors.DELETE("/:id", deps.Vendors.DeleteVendor)

		configs := admin.Group("/configs")
		configs.GET("", deps.Configs.ListConfigs)
		configs.POST("", deps.Configs.UpsertConfig)
		configs.GET("/:key", deps.Configs.GetConfig)
		configs.DELETE("/:id", deps.Configs.DeleteConfig)

		plans := admin.Group("/plans")
		plans.GET("", deps.Plans.ListPlans)
		plans.POST("", deps.Plans.CreatePlan)
		plans.GET("/:id", deps.Plans.GetPlan)
		plans.PUT("/:id", deps.Plans.UpdatePlan)
		plans.DELETE("/:id", deps.Plans.DeletePlan)
	}

	vendor := api.Group("")
	vendor.Use(requireAuth, middleware.Authorize(models.RoleVendor))
	{
		vendor.GET("/vendor/dashboard", deps.Dashboards.VendorDashboard)

		templates := vendor.Group("/templates")
		templates.GET("", deps.Templates.ListTemplates)
		templates.POST("", deps.Templates.CreateTemplate)
		templates.POST("/sync", deps.Templates.SyncTemplates)
		templates.GET("/analytics", deps.Templates.GetAnalytics)
		templates.GET("/:id", deps.Templates.GetTemplate)
		templates.PUT("/:id", deps.Templates.UpdateTemplate)
		templates.DELETE("/:id", deps.Templates.DeleteTemplate)
		templates.POST("/:id/submit", deps.Templates.SubmitTemplate)

		contacts := vendor.Group("/contacts")
		contacts.GET("", deps.Contacts.ListContacts)
		contacts.POST("", deps.Contacts.CreateContact)
		contacts.POST("/bulk", deps.Contacts.BulkCreateContacts)
		contacts.POST("/bulk-delete", deps.Contacts.BulkDeleteContacts)
		contacts.POST("/import", deps.Contacts.ImportContacts)
		contacts.GET("/:id", deps.Contacts.GetContact)
		contacts.PUT("/:id", deps.Contacts.UpdateContact)
		contacts.DELETE("/:id", deps.Contacts.DeleteContact)

		campaigns := vendor.Group("/campaigns")
		campaigns.GET("", deps.Campaigns.ListCampaigns)
		campaigns.POST("", deps.Campaigns.CreateCampaign)
		campaigns.GET("/:id", deps.Campaigns.GetCampaign)
		campaigns.PUT("/:id", deps.Campaigns.UpdateCampaign)
		campaigns.DELETE("/:id", deps.Campaigns.DeleteCampaign)

		facebook := vendor.Group("/facebook")
		facebook.POST("", deps.Facebook.HandleAction)
		facebook.GET("/business", deps.Facebook.GetBusiness)
		facebook.GET("/request-permissions", deps.Facebook.RequestPermissions)
	}

	return router
}
