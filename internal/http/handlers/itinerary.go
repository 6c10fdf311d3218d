package handlers

import (
	"net/http"

	"tripplanbuddy/internal/domain/models"
	"tripplanbuddy/internal/http/middleware"
	"tripplanbuddy/internal/services"

	"github.com/gin-gonic/gin"
)

type itineraryResponse struct {
	Itinerary string `json:"itinerary"`
}

// GenerateItinerary handles POST /api/itinerary. base carries the shared
// client, endpoint and key source; each request works on its own copy.
func GenerateItinerary(base services.ItineraryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.TripRequest
		if err := BindJSONOrEmpty(c, &req); err != nil {
			RespondDomainError(c, err)
			return
		}

		svc := base
		svc.RequestID = middleware.GetRequestID(c)

		text, err := svc.Generate(c.Request.Context(), req)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, itineraryResponse{Itinerary: text})
	}
}
