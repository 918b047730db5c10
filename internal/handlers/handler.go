package handlers

import (
	"net/http"
	"time"

	"learning_platform/internal/config"
	"learning_platform/internal/logger"
	"learning_platform/internal/metrics"
	"learning_platform/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const statusOK = "ok"

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	cors     config.CORSConfig
}

// NewHandler constructs a new HTTP handler with dependencies. A nil logger
// discards output.
func NewHandler(services *service.Service, corsCfg config.CORSConfig, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{services: services, log: log.Named("http"), cors: corsCfg}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), cors.New(h.corsConfig()), metrics.Middleware(), h.requestLogger())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/health", h.health)

	h.registerAccountRoutes(router)
	h.registerModuleRoutes(router)

	router.GET("/activity", h.authMiddleware, h.listActivity)

	return router
}

func (h *Handler) registerAccountRoutes(r *gin.Engine) {
	accounts := r.Group("/accounts")
	{
		accounts.POST("/register", h.register)
		accounts.POST("/login", h.login)
		accounts.POST("/refresh", h.refresh)

		protected := accounts.Group("", h.authMiddleware)
		protected.GET("", h.listAccounts)
		protected.PUT("/:username", h.updateAccount)
		protected.DELETE("/:username", h.deleteAccount)
	}
}

func (h *Handler) registerModuleRoutes(r *gin.Engine) {
	modules := r.Group("/modules", h.authMiddleware)
	{
		modules.GET("", h.listModules)
		modules.POST("", h.createModule)
		modules.GET("/:moduleId", h.getModule)
		modules.PUT("/:moduleId", h.updateModule)
		modules.DELETE("/:moduleId", h.deleteModule)
		modules.GET("/:moduleId/watch", h.watchModule)

		exercises := modules.Group("/:moduleId/exercises")
		exercises.GET("", h.listExercises)
		exercises.POST("", h.addExercise)
		exercises.POST("/bulk", h.addExercisesBulk)
		exercises.GET("/:exerciseId", h.getExercise)
		exercises.PUT("/:exerciseId", h.updateExercise)
		exercises.DELETE("/:exerciseId", h.removeExercise)
	}
}

func (h *Handler) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	origins := h.cors.AllowedOrigins
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// requestLogger writes one line per request after it completes.
func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}
		h.log.Infow("request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}
