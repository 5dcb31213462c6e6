package httpapi

import (
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"reviewhub/internal/config"
	"reviewhub/internal/httpapi/handler"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/httpapi/service"
	"reviewhub/internal/httpapi/validation"
)

// Handlers bundles the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Category *handler.CategoryHandler
	Genre    *handler.GenreHandler
	Title    *handler.TitleHandler
	Review   *handler.ReviewHandler
	Comment  *handler.CommentHandler
}

// NewRouter builds the Gin engine with logging, recovery and the full
// /api/v1 route tree.
func NewRouter(cfg *config.Config, logger *zap.Logger, authService service.AuthService, h Handlers) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	validation.RegisterBindingValidators()

	router := gin.New()
	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(logger, true))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authMW := middleware.AuthMiddleware(authService)
	api := router.Group("/api/v1")

	// Signup and token exchange are rate limited per client IP.
	authLimiter := middleware.NewRateLimiter(cfg.AuthRatePerSecond, cfg.AuthRateBurst)
	authGroup := api.Group("/auth", authLimiter.Middleware())
	h.Auth.RegisterRoutes(authGroup)

	// /users/me must be registered before /users/:username; both live
	// behind authentication, the admin gate is per route.
	usersGroup := api.Group("/users", authMW)
	h.User.RegisterRoutes(usersGroup)

	h.Category.RegisterRoutes(api.Group("/categories"), authMW)
	h.Genre.RegisterRoutes(api.Group("/genres"), authMW)

	titlesGroup := api.Group("/titles")
	h.Title.RegisterRoutes(titlesGroup, authMW)
	h.Review.RegisterRoutes(titlesGroup, authMW)
	h.Comment.RegisterRoutes(titlesGroup, authMW)

	return router
}
