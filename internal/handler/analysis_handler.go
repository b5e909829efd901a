package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/crimewatch/crimewatch-backend-go/internal/models"
	"github.com/crimewatch/crimewatch-backend-go/internal/repository"
	"github.com/crimewatch/crimewatch-backend-go/internal/service"
	"github.com/crimewatch/crimewatch-backend-go/pkg/response"
)

// AnalysisHandler handles HTTP requests for pattern analysis
type AnalysisHandler struct {
	analysisService *service.AnalysisService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisService *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
	}
}

type patternRequest struct {
	Incidents []models.RawIncident `json:"incidents"`
}

// AnalyzePatterns handles POST /api/v1/analysis/patterns
func (h *AnalysisHandler) AnalyzePatterns(c *gin.Context) {
	var req patternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	report, err := h.analysisService.AnalyzeBatch(req.Incidents)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, report)
}

// CreateRun handles POST /api/v1/analysis/runs
func (h *AnalysisHandler) CreateRun(c *gin.Context) {
	run, report, err := h.analysisService.RunStored()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"run_id":          run.ID,
		"generated_at":    run.GeneratedAt,
		"total_incidents": run.TotalIncidents,
		"report":          report,
	})
}

// GetRun handles GET /api/v1/analysis/runs/:id
func (h *AnalysisHandler) GetRun(c *gin.Context) {
	id := c.Param("id")

	run, report, err := h.analysisService.GetRun(id)
	if err != nil {
		if errors.Is(err, repository.ErrRunNotFound) {
			response.NotFound(c, "Analysis run not found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"run_id":          run.ID,
		"generated_at":    run.GeneratedAt,
		"total_incidents": run.TotalIncidents,
		"report":          report,
	})
}
