package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/acharjeesuvo/EvalMind/internal/handler"
	"github.com/acharjeesuvo/EvalMind/internal/middleware"
	"github.com/acharjeesuvo/EvalMind/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Deps are the components the HTTP layer routes to.
type Deps struct {
	Auth        *handler.AuthHandler
	Annotations *handler.AnnotationHandler
	Tokens      *session.TokenIssuer
	Sessions    *session.Manager
	Gatherer    prometheus.Gatherer
}

type Server struct {
	router *gin.Engine
	deps   Deps
	logger *zap.Logger
}

func NewServer(deps Deps, mode string, logger *zap.Logger) *Server {
	gin.SetMode(mode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger))

	s := &Server{
		router: router,
		deps:   deps,
		logger: logger,
	}

	s.setupRoutes()

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	if s.deps.Gatherer != nil {
		s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// Authentication routes
	authGroup := s.router.Group("/api/auth")
	authGroup.POST("/login", s.deps.Auth.Login)

	// Authenticated routes
	authRequired := s.router.Group("/api")
	authRequired.Use(middleware.AuthMiddleware(s.deps.Tokens, s.deps.Sessions, s.logger))
	{
		authRequired.POST("/auth/logout", s.deps.Auth.Logout)
		authRequired.GET("/me", s.deps.Auth.Me)

		authRequired.GET("/progress", s.deps.Annotations.Progress)
		authRequired.GET("/items/next", s.deps.Annotations.Next)
		authRequired.GET("/images/:name", s.deps.Annotations.Image)

		authRequired.POST("/annotations", s.deps.Annotations.Submit)
		authRequired.GET("/annotations", s.deps.Annotations.List)
		authRequired.GET("/annotations/:image_name", s.deps.Annotations.Get)
	}
}

// Run serves on addr until ctx is cancelled, then shuts down within shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	s.logger.Info("Server exited")
	return nil
}
