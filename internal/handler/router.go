package handler

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"industry-lens/internal/utils"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Auth          *AuthHandler
	Reviews       *ReviewHandler
	Notifications *NotificationHandler
	Professionals *ProfessionalHandler
	Admin         *AdminHandler
}

// NewRouter builds the full /api route tree: public endpoints, authenticated
// user endpoints behind AuthMiddleware, and the admin surface behind AdminOnly.
func NewRouter(h Handlers, jwtUtil *utils.JWTUtil, redis *utils.RedisClient, allowedOrigins string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), utils.LoggingMiddleware())

	corsConfig := cors.DefaultConfig()
	if allowedOrigins == "" || allowedOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(allowedOrigins, ",")
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/forgot-password", h.Auth.ForgotPassword)
	api.POST("/auth/reset-password", h.Auth.ResetPassword)

	api.GET("/professionals/search", h.Professionals.Search)
	api.GET("/professionals/:id", h.Professionals.Profile)
	api.GET("/departments", h.Professionals.Departments)
	api.GET("/projects/:type/:id", h.Professionals.Project)

	authed := api.Group("")
	authed.Use(utils.AuthMiddleware(jwtUtil, redis))
	{
		authed.POST("/auth/logout", h.Auth.Logout)
		authed.GET("/auth/me", h.Auth.Me)
		authed.PUT("/auth/profile", h.Auth.UpdateProfile)
		authed.PUT("/auth/password", h.Auth.ChangePassword)

		authed.POST("/professionals", h.Professionals.FindOrCreate)

		authed.POST("/reviews", h.Reviews.Create)
		authed.GET("/reviews/my-reviews", h.Reviews.MyReviews)
		authed.GET("/reviews/check/:professionalId", h.Reviews.CheckReviewed)
		authed.PUT("/reviews/:id", h.Reviews.Update)
		authed.DELETE("/reviews/:id", h.Reviews.Delete)
		authed.POST("/reviews/:id/helpful", h.Reviews.MarkHelpful)
		authed.POST("/reviews/:id/flag", h.Reviews.Flag)

		authed.GET("/notifications", h.Notifications.List)
		authed.GET("/notifications/unread-count", h.Notifications.UnreadCount)
		authed.PUT("/notifications/read-all", h.Notifications.MarkAllRead)
		authed.PUT("/notifications/:id/read", h.Notifications.MarkRead)
		authed.DELETE("/notifications/:id", h.Notifications.Delete)
	}

	admin := api.Group("/admin")
	admin.Use(utils.AuthMiddleware(jwtUtil, redis), utils.AdminOnly())
	{
		admin.GET("/users", h.Admin.ListUsers)
		admin.POST("/users", h.Admin.CreateUser)
		admin.GET("/users/:id", h.Admin.GetUser)
		admin.PUT("/users/:id", h.Admin.UpdateUser)
		admin.DELETE("/users/:id", h.Admin.DeleteUser)
		admin.PUT("/users/:id/block", h.Admin.ToggleBlockUser)
		admin.POST("/users/:id/reset-password", h.Admin.ResetUserPassword)
		admin.GET("/users/:id/reviews", h.Admin.UserReviews)

		admin.GET("/reviews", h.Admin.ListReviews)
		admin.PUT("/reviews/:id/status", h.Admin.SetReviewStatus)
		admin.GET("/denial-reasons", h.Admin.DenialReasons)

		admin.GET("/flags", h.Admin.ListFlags)
		admin.PUT("/flags/:id", h.Admin.ResolveFlag)

		admin.GET("/professionals", h.Admin.ListProfessionals)
		admin.POST("/professionals", h.Admin.CreateProfessional)
		admin.GET("/professionals/:id", h.Admin.GetProfessional)
		admin.PUT("/professionals/:id", h.Admin.UpdateProfessional)
		admin.PUT("/professionals/:id/toggle-reviews", h.Admin.ToggleProfessionalReviews)
		admin.PUT("/professionals/:id/imdb", h.Admin.SetProfessionalIMDB)
		admin.PUT("/professionals/:id/verify", h.Admin.VerifyProfessional)
		admin.POST("/professionals/:id/refresh-tmdb", h.Admin.RefreshProfessionalMetadata)

		admin.GET("/stats", h.Admin.Stats)
	}

	return router
}
