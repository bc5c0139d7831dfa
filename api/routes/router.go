// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"guestlink/internal/analytics"
	"guestlink/internal/auth"
	"guestlink/internal/checkinout"
	"guestlink/internal/guests"
	"guestlink/internal/gueststatus"
	"guestlink/internal/messaging"
	"guestlink/internal/properties"
	"guestlink/internal/realtime"
	"guestlink/internal/rooms"
	"guestlink/internal/shared/config"
	"guestlink/internal/shared/database"
	"guestlink/internal/templates"
	"guestlink/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config           *config.Config
	db               *database.DB
	cacheService     cache.Service
	messagingService messaging.Service
	hub              *realtime.Hub

	// Services kept for cross-module injection
	statusService     gueststatus.Service
	propertiesService properties.Service
	templatesService  templates.Service
	guestsService     guests.Service
	checkinoutRepo    checkinout.Repository
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, messagingService messaging.Service, hub *realtime.Hub) *Router {
	return &Router{
		config:           cfg,
		db:               db,
		cacheService:     cache.NewService(db.GetRedisClient()),
		messagingService: messagingService,
		hub:              hub,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupPropertyRoutes(api)
		r.setupTemplateRoutes(api)

		// Status engine before guests so the guest service can drive it
		r.setupGuestStatusRoutes(api)
		r.setupGuestRoutes(api)
		r.setupRoomRoutes(api)
		r.setupCheckInOutRoutes(api)
		r.setupMessagingRoutes(api)
		r.setupAnalyticsRoutes(api)
		r.setupRealtimeRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "guestlink-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "guestlink-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":            "operational",
			"api_version":       r.config.APIVersion,
			"realtime_sessions": r.hub.ConnectedSessions(),
			"timestamp":         time.Now(),
		})
	})
}

// setupAuthRoutes configures staff authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController)

	authRouter.SetupRoutes(rg)
}

// setupPropertyRoutes configures property management routes
func (r *Router) setupPropertyRoutes(rg *gin.RouterGroup) {
	propertyRepo := properties.NewRepository(r.db.GetPostgreSQL())
	propertyService := properties.NewService(propertyRepo)
	propertyService.SetCacheService(r.cacheService)
	propertyController := properties.NewController(propertyService)

	r.propertiesService = propertyService

	// The messaging pipeline reads per-property sender numbers
	if r.messagingService != nil {
		r.messagingService.SetSenderNumberLookup(propertyService)
	}

	properties.SetupPropertyRoutes(rg, propertyController)
}

// setupTemplateRoutes configures message template routes
func (r *Router) setupTemplateRoutes(rg *gin.RouterGroup) {
	templateRepo := templates.NewRepository(r.db.GetPostgreSQL())
	templateService := templates.NewService(templateRepo)
	templateService.SetCacheService(r.cacheService)
	templateController := templates.NewController(templateService)

	r.templatesService = templateService

	templates.SetupTemplateRoutes(rg, templateController)
}

// setupGuestStatusRoutes configures the status transition engine routes
func (r *Router) setupGuestStatusRoutes(rg *gin.RouterGroup) {
	statusRepo := gueststatus.NewRepository(r.db.GetPostgreSQL())
	statusService := gueststatus.NewService(statusRepo, r.db.GetPostgreSQL())

	statusService.SetTemplateRenderer(r.templatesService)
	if r.messagingService != nil {
		statusService.SetDispatcher(r.messagingService)
	}
	statusService.SetEmitter(r.hub)
	statusService.SetCacheService(r.cacheService)

	r.statusService = statusService

	statusController := gueststatus.NewController(statusService)
	gueststatus.SetupGuestStatusRoutes(rg, statusController)
}

// setupGuestRoutes configures guest lifecycle routes
func (r *Router) setupGuestRoutes(rg *gin.RouterGroup) {
	guestRepo := guests.NewRepository(r.db.GetPostgreSQL())
	guestService := guests.NewService(guestRepo, r.statusService)
	guestService.SetCacheService(r.cacheService)

	// The status engine resolves guest contact details through this service
	r.statusService.SetGuestProvider(guestService)

	r.guestsService = guestService

	guestController := guests.NewController(guestService)
	guests.SetupGuestRoutes(rg, guestController)
}

// setupRoomRoutes configures room inventory and assignment routes
func (r *Router) setupRoomRoutes(rg *gin.RouterGroup) {
	roomRepo := rooms.NewRepository(r.db.GetPostgreSQL())
	atomicOps := rooms.NewAtomicRedisOperations(r.db.GetRedisClient())
	roomService := rooms.NewService(roomRepo, atomicOps, r.config)
	roomService.SetCacheService(r.cacheService)
	roomController := rooms.NewController(roomService)

	rooms.SetupRoomRoutes(rg, roomController)
}

// setupCheckInOutRoutes configures early check-in and late check-out request routes
func (r *Router) setupCheckInOutRoutes(rg *gin.RouterGroup) {
	requestRepo := checkinout.NewRepository(r.db.GetPostgreSQL())
	requestService := checkinout.NewService(requestRepo, r.statusService, r.db.GetPostgreSQL())
	requestController := checkinout.NewController(requestService)

	r.checkinoutRepo = requestRepo

	checkinout.SetupCheckInOutRoutes(rg, requestController)
}

// setupMessagingRoutes configures message history routes
func (r *Router) setupMessagingRoutes(rg *gin.RouterGroup) {
	if r.messagingService == nil {
		return
	}
	messagingController := messaging.NewController(r.messagingService)
	messaging.SetupMessagingRoutes(rg, messagingController)
}

// setupAnalyticsRoutes configures dashboard analytics routes
func (r *Router) setupAnalyticsRoutes(rg *gin.RouterGroup) {
	analyticsRepo := analytics.NewRepository(r.db.GetPostgreSQL())
	analyticsService := analytics.NewService(analyticsRepo, r.checkinoutRepo, r.messagingService)
	analyticsService.SetCacheService(r.cacheService)
	analyticsController := analytics.NewController(analyticsService)

	analytics.SetupAnalyticsRoutes(rg, analyticsController)
}

// setupRealtimeRoutes configures the dashboard websocket endpoint
func (r *Router) setupRealtimeRoutes(rg *gin.RouterGroup) {
	realtime.SetupRealtimeRoutes(rg, r.hub, r.config)
}
