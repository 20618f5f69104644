package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/task-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/handlers"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
	"github.com/yukikurage/task-tracker-api/internal/services"
)

const shutdownTimeout = 10 * time.Second

// Pinger reports store reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies are the collaborators the router is built from.
type Dependencies struct {
	AuthService    *services.AuthService
	TaskService    *services.TaskService
	Tokens         middleware.TokenVerifier
	Store          Pinger
	Logger         logrus.FieldLogger
	AllowedOrigins []string
}

// NewRouter wires middleware and routes. Only /health, /register and /login
// are reachable without a token.
func NewRouter(deps Dependencies) *gin.Engine {
	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{constants.DefaultAllowedOrigin}
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		deps.Logger.WithField("panic", recovered).Error("Recovered from panic")
		apierrors.InternalError(c, "")
	}))
	r.Use(allowListCORS(origins))
	r.NoRoute(func(c *gin.Context) {
		apierrors.NotFound(c, "")
	})

	authHandler := handlers.NewAuthHandler(deps.AuthService, deps.Logger)
	taskHandler := handlers.NewTaskHandler(deps.TaskService, deps.Logger)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		if err := deps.Store.Ping(c.Request.Context()); err != nil {
			deps.Logger.WithError(err).Warn("Health check failed")
			apierrors.ServiceUnavailable(c, "Database unreachable")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Task Tracker API is running",
		})
	})

	// Auth routes (public)
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)

	// Task routes (protected)
	tasks := r.Group("/tasks")
	tasks.Use(middleware.RequireAuth(deps.Tokens, deps.Logger))
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.PUT("/:id", taskHandler.ToggleTask)
		tasks.DELETE("/:id", taskHandler.DeleteTask)
	}

	return r
}

// allowListCORS adds CORS headers for allow-listed origins. Requests from
// any other origin are handled normally, just without the headers.
func allowListCORS(origins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}

	handler := cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Content-Type", constants.AuthorizationHeader},
		MaxAge:       12 * time.Hour,
	})

	_, wildcard := allowed["*"]

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if _, ok := allowed[origin]; origin != "" && !ok && !wildcard {
			c.Next()
			return
		}
		handler(c)
	}
}

// Run serves handler on addr until ctx is cancelled, then drains in-flight
// requests before returning.
func Run(ctx context.Context, addr string, handler http.Handler, logger logrus.FieldLogger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", addr).Info("Server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
