package api

import (
	intconfig "tripplanbuddy/internal/config"
	h "tripplanbuddy/internal/http/handlers"
	"tripplanbuddy/internal/http/middleware"
	"tripplanbuddy/internal/observability"
	"tripplanbuddy/internal/services"
	"tripplanbuddy/internal/utils"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func NewRouter(env intconfig.Env, itinerary services.ItineraryService) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.AllowedOrigins))
	if env.OtelEnabled {
		r.Use(otelgin.Middleware(env.ServiceName))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.L().Warnw("failed to set trusted proxies", "error", err)
	}

	r.NoRoute(h.NotFound)
	r.NoMethod(h.MethodNotAllowed)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/routes", h.Routes)

		// Itinerary
		api.POST("/itinerary", h.GenerateItinerary(itinerary))

		// Export
		export := api.Group("/itinerary/export")
		export.POST("/pdf", h.ExportItineraryPDF)
		export.POST("/txt", h.ExportItineraryText)
	}

	if env.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(observability.Handler()))
	}

	h.SetRouter(r)
	return r
}
