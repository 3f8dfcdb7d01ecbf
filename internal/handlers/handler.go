package handlers

import (
	"time"

	_ "todo_service/docs"
	"todo_service/internal/logger"
	"todo_service/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services       *service.Service
	log            *logger.Logger
	streamInterval time.Duration
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log, streamInterval: defaultInterval}
}

// WithStreamInterval sets the default push period of the user stream.
// Values outside (0, maxInterval] are ignored.
func (h *Handler) WithStreamInterval(d time.Duration) *Handler {
	if d > 0 && d <= maxInterval {
		h.streamInterval = d
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestIDMiddleware, h.requestLogger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", h.index)
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Per-user endpoints (protected)
	h.registerAPIRoutes(router)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.POST("/register", h.signUp)
		h.registerUserRoutes(api)
	}
}

func (h *Handler) registerUserRoutes(api *gin.RouterGroup) {
	user := api.Group("/user", h.authMiddleware)
	{
		user.GET("", h.getUser)
		// Body example: {"id":1,"title":"buy milk","completed":false}
		user.POST("", h.upsertTodo)
		user.GET("/activity", h.getActivity)
		user.GET("/ws", h.userStream)
	}

	users := api.Group("/users", h.authMiddleware)
	{
		users.GET("/:username", h.getUserByName)
	}
}
