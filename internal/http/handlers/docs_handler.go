package handlers

import (
	"net/http"

	"tripplanbuddy/internal/http/middleware"
	"tripplanbuddy/internal/services"

	"github.com/gin-gonic/gin"
)

type exportRequest struct {
	Itinerary   string `json:"itinerary"`
	Destination string `json:"destination"`
}

// ExportItineraryPDF returns the itinerary as a PDF attachment.
func ExportItineraryPDF(c *gin.Context) {
	var req exportRequest
	if err := BindJSONOrEmpty(c, &req); err != nil {
		RespondDomainError(c, err)
		return
	}

	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.GenerateItineraryPDF(req.Destination, req.Itinerary)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// ExportItineraryText returns the itinerary as a plain-text attachment.
func ExportItineraryText(c *gin.Context) {
	var req exportRequest
	if err := BindJSONOrEmpty(c, &req); err != nil {
		RespondDomainError(c, err)
		return
	}

	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	body, filename, err := svc.GenerateItineraryText(req.Destination, req.Itinerary)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", body)
}
