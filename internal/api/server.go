package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/martijn/todolist/internal/api/docs"
	"github.com/martijn/todolist/internal/api/handler"
	"github.com/martijn/todolist/internal/api/middleware"
	"github.com/martijn/todolist/internal/api/templates"
	"github.com/martijn/todolist/internal/core/service"
	"github.com/martijn/todolist/pkg/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Server struct {
	router *gin.Engine
	srv    *http.Server
	config *config.Config
}

// NewServer creates a new HTTP server
func NewServer(
	cfg *config.Config,
	authService *service.AuthService,
	sessionService *service.SessionService,
	taskService *service.TaskService,
	quotes handler.QuoteSource,
) (*Server, error) {
	// Set Gin mode
	if !cfg.IsDevMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	tmpl, err := templates.Load()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)

	// Global middleware
	router.Use(gin.LoggerWithWriter(log.Writer()))
	router.Use(gin.Recovery())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.ErrorHandlerMiddleware())
	router.Use(middleware.SessionMiddleware(sessionService, cfg.CookieSecure))

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, sessionService, cfg.CookieSecure)
	taskHandler := handler.NewTaskHandler(taskService, quotes)

	// Public routes (no auth required)
	router.GET("/", authHandler.LoginPage)
	router.GET("/login", authHandler.LoginPage)
	router.POST("/login", authHandler.Login)
	router.GET("/logout", authHandler.Logout)
	router.GET("/register", authHandler.RegisterPage)
	router.POST("/register", authHandler.Register)

	// Protected routes (auth required)
	protected := router.Group("/")
	protected.Use(middleware.RequireAuth())
	{
		protected.GET("/tasks", taskHandler.ListTasks)
		protected.POST("/add_task", taskHandler.AddTask)
		protected.GET("/complete_task/:id", taskHandler.CompleteTask)
		protected.GET("/delete_task/:id", taskHandler.DeleteTask)
	}

	// Health check
	router.GET("/health", handler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.IsDevMode() {
		docs.SwaggerInfo.Host = cfg.Addr()
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.NoRoute(handler.NotFound)

	server := &Server{
		router: router,
		config: cfg,
	}

	return server, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := s.config.Addr()

	s.srv = &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	fmt.Printf("Starting HTTP server on %s\n", addr)
	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}
