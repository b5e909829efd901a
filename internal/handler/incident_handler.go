package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/crimewatch/crimewatch-backend-go/internal/models"
	"github.com/crimewatch/crimewatch-backend-go/internal/service"
	"github.com/crimewatch/crimewatch-backend-go/pkg/response"
)

// IncidentHandler handles HTTP requests for incidents
type IncidentHandler struct {
	incidentService *service.IncidentService
}

// NewIncidentHandler creates a new incident handler
func NewIncidentHandler(incidentService *service.IncidentService) *IncidentHandler {
	return &IncidentHandler{
		incidentService: incidentService,
	}
}

// CreateIncident handles POST /api/v1/incidents
func (h *IncidentHandler) CreateIncident(c *gin.Context) {
	var raw models.RawIncident
	if err := c.ShouldBindJSON(&raw); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	incident, err := h.incidentService.Create(raw)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, incident)
}

// ListIncidents handles GET /api/v1/incidents
func (h *IncidentHandler) ListIncidents(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "100")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 0 {
		response.BadRequest(c, "Invalid limit parameter")
		return
	}

	incidents, err := h.incidentService.List(limit)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	total, err := h.incidentService.Count()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"incidents": incidents,
		"total":     total,
	})
}
