package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"aigallery/internal/config"
	"aigallery/internal/middleware"
	"aigallery/internal/service"
)

type HandlerSet struct {
	log          zerolog.Logger
	cfg          *config.AppConfig
	authService  *service.AuthService
	gallery      *service.GalleryService
	interactions *service.InteractionService
	cache        *redis.Client
}

func NewHandlerSet(
	log zerolog.Logger,
	cfg *config.AppConfig,
	auth *service.AuthService,
	gallery *service.GalleryService,
	interactions *service.InteractionService,
	cache *redis.Client,
) HandlerSet {
	return HandlerSet{
		log:          log,
		cfg:          cfg,
		authService:  auth,
		gallery:      gallery,
		interactions: interactions,
		cache:        cache,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")
	v1.Use(middleware.Auth(h.authService))
	{
		auth := v1.Group("/auth")
		auth.POST("/register", h.RegisterUser)
		auth.POST("/login", h.Login)

		protected := v1.Group("/auth")
		protected.Use(middleware.RequireLogin())
		protected.POST("/logout", h.Logout)
		protected.GET("/me", h.Me)
	}

	v1.GET("/session", h.Session)
	session := v1.Group("/session")
	session.Use(middleware.RequireLogin())
	session.POST("/select", h.SelectImage)
	session.POST("/back", h.Back)

	browse := v1.Group("")
	browse.Use(middleware.RequireLogin())
	browse.GET("/gallery", h.Gallery)
	browse.GET("/tags", h.Tags)
	browse.GET("/images/:id", h.ImageDetail)
	browse.GET("/images/:id/comments", h.ListComments)

	// Interactions accept anonymous callers and answer with applied=false.
	v1.POST("/images/:id/like", h.ToggleLike)
	v1.POST("/images/:id/favorite", h.ToggleFavorite)
	v1.POST("/images/:id/reactions/:type", h.ToggleReaction)
	v1.POST("/images/:id/comments", h.AddComment)
	v1.POST("/follows/:author", h.ToggleFollow)
	v1.GET("/me/interactions", h.MyInteractions)
}
