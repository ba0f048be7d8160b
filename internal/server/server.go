package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"blogbackend/internal/auth"
	"blogbackend/internal/config"
	"blogbackend/internal/handler"
	"blogbackend/internal/middleware"
	"blogbackend/internal/models"
	"blogbackend/internal/repository"
	"blogbackend/internal/service"
	"blogbackend/internal/storage"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	cfg    *config.Config
	logger *zap.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	router := gin.Default()

	s := &Server{
		router: router,
		db:     db,
		cfg:    cfg,
		logger: logger,
	}

	if err := s.setupRoutes(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Server) setupRoutes() error {
	hasher := auth.NewHasher()
	tokens := auth.NewTokenManager(auth.TokenConfig{
		Secret:   []byte(s.cfg.JWT.Key),
		Issuer:   s.cfg.JWT.Issuer,
		Audience: s.cfg.JWT.Audience,
		Duration: time.Duration(s.cfg.JWT.DurationMinutes) * time.Minute,
	})

	images, err := storage.NewImageStore(s.cfg.Uploads.Dir, s.logger)
	if err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(s.db, s.logger)
	noteRepo := repository.NewNoteRepository(s.db, s.logger)
	categoryRepo := repository.NewCategoryRepository(s.db, s.logger)
	postRepo := repository.NewPostRepository(s.db, s.logger)

	authService := service.NewAuthService(userRepo, hasher, tokens, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	noteHandler := handler.NewNoteHandler(noteRepo, s.logger)
	categoryHandler := handler.NewCategoryHandler(categoryRepo, s.logger)
	postHandler := handler.NewPostHandler(postRepo, categoryRepo, images, s.logger)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Uploaded post images
	s.router.Static("/uploads", s.cfg.Uploads.Dir)

	// Public authentication routes
	authGroup := s.router.Group("/api/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	// Authenticated routes: any valid token, no role requirement
	authed := s.router.Group("/api")
	authed.Use(middleware.Auth(tokens, s.logger))
	{
		authed.GET("/auth/me", authHandler.Me)

		authed.POST("/notes", noteHandler.Create)
		authed.GET("/notes", noteHandler.GetAll)
		authed.GET("/notes/:id", noteHandler.GetByID)
		authed.PUT("/notes/:id", noteHandler.Update)
		authed.DELETE("/notes/:id", noteHandler.Delete)
	}

	// Admin routes: valid token whose role claim is exactly Admin
	admin := s.router.Group("/api/admin")
	admin.Use(middleware.Auth(tokens, s.logger), middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/categories", categoryHandler.GetAll)
		admin.POST("/categories", categoryHandler.Create)
		admin.PUT("/categories/:id", categoryHandler.Update)
		admin.DELETE("/categories/:id", categoryHandler.Delete)

		admin.GET("/posts", postHandler.GetAll)
		admin.GET("/posts/:id", postHandler.GetByID)
		admin.POST("/posts", postHandler.Create)
		admin.PUT("/posts/:id", postHandler.Update)
		admin.DELETE("/posts/:id", postHandler.Delete)
	}

	return nil
}

func (s *Server) Run(addr string) {
	s.logger.Info("Server starting", zap.String("addr", addr))
	if err := s.router.Run(addr); err != nil {
		s.logger.Fatal("Server failed to start", zap.Error(err))
	}
}
