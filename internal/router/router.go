// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/promolab/promo-board/internal/config"
	"github.com/promolab/promo-board/internal/handler"
	"github.com/promolab/promo-board/internal/middleware"
	"github.com/promolab/promo-board/internal/utils"
)

// RegisterRoutes registers routes that belong to no surface in
// particular. Currently it exposes only a health check, used by load
// balancers to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the unauthenticated surface: the live
// promotion listing, promotion submission and the live announcement
// listing. The submission endpoint alone is rate limited; rlCfg and rdb
// configure the limiter and rdb may be nil (limiter disabled).
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	e.GET("/v1/promotions", p.ListPromotions)
	e.POST("/v1/promotions", p.SubmitPromotion, middleware.NewSubmissionLimit(rlCfg, rdb))
	e.GET("/v1/announcements", p.ListAnnouncements)
}

// RegisterAdmin registers the login endpoint and the bearer-token
// protected moderation surface under /v1/admin. Every protected route
// requires a valid token carrying the ADMIN role.
func RegisterAdmin(e *echo.Echo, auth *handler.AuthHandler, a *handler.AdminHandler, jwtSecret string) {
	e.POST("/v1/admin/login", auth.Login)

	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(utils.AdminRole))

	g.GET("/promotions", a.ListPromotions)
	g.POST("/promotions", a.CreatePromotion)
	g.PUT("/promotions/:id", a.UpdatePromotionStatus)
	g.PUT("/promotions/:id/edit", a.EditPromotion)
	g.DELETE("/promotions/:id", a.DeletePromotion)

	g.GET("/announcements", a.ListAnnouncements)
	g.POST("/announcements", a.CreateAnnouncement)
	g.PUT("/announcements/:id", a.UpdateAnnouncement)
	g.DELETE("/announcements/:id", a.DeleteAnnouncement)
}
