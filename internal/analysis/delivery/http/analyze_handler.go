package http

import (
	"net/http"

	"go-social-insights/internal/analysis/config"
	"go-social-insights/internal/analysis/dto"
	"go-social-insights/internal/analysis/service"
	"go-social-insights/internal/entity"
	"go-social-insights/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalyzeHandler handles HTTP requests for the analysis pipeline.
type AnalyzeHandler struct {
	analyzerService service.AnalyzerService
	cfg             *config.Config
	logger          *logger.Logger
}

// NewAnalyzeHandler creates a new AnalyzeHandler.
func NewAnalyzeHandler(analyzerService service.AnalyzerService, cfg *config.Config, log *logger.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{analyzerService: analyzerService, cfg: cfg, logger: log}
}

// RegisterRoutes registers the analysis routes to the Echo group.
func (h *AnalyzeHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.Analyze)
}

// Analyze godoc
// @Summary Analyze a batch of posts
// @Description Clusters a post batch by topic and scores sentiment
// @Tags analysis
// @Accept  json
// @Produce  json
// @Param   request  body    dto.AnalyzeRequest   true    "Posts to analyze"
// @Success 200 {object} dto.AnalyzeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /analysis [post]
func (h *AnalyzeHandler) Analyze(c echo.Context) error {
	var req dto.AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:  "invalid request payload",
			Reason: entity.ReasonInvalidInput,
		})
	}

	if err := req.Validate(h.cfg.Analysis.MaxPostsPerBatch, h.cfg.Analysis.MaxContentLength); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:  err.Error(),
			Reason: entity.ReasonInvalidInput,
		})
	}

	resp, err := h.analyzerService.Analyze(c.Request().Context(), &req)
	if err != nil {
		// Full detail stays in the logs; callers get a generic message.
		h.logger.Error("analysis failed", logger.ErrorField(err), logger.IntField("posts", len(req.Posts)))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:  "internal error",
			Reason: entity.ReasonUnexpected,
		})
	}

	return c.JSON(http.StatusOK, resp)
}
