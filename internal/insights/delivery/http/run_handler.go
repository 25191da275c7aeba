package http

import (
	"errors"
	"net/http"
	"strconv"

	"go-social-insights/internal/entity"
	"go-social-insights/internal/insights/dto"
	"go-social-insights/internal/insights/service"
	"go-social-insights/pkg/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// RunHandler handles HTTP requests for analysis runs.
type RunHandler struct {
	runService service.RunService
	logger     *logger.Logger
}

// NewRunHandler creates a new RunHandler.
func NewRunHandler(runService service.RunService, log *logger.Logger) *RunHandler {
	return &RunHandler{runService: runService, logger: log}
}

// RegisterRoutes registers the run routes to the Echo group.
func (h *RunHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.TriggerRun)
	g.GET("", h.GetAllRuns)
	g.GET("/:id", h.GetRunByID)
}

// TriggerRun godoc
// @Summary Trigger an analysis run
// @Description Runs the analysis pipeline over all stored posts
// @Tags runs
// @Produce  json
// @Success 201 {object} dto.RunResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /runs [post]
func (h *RunHandler) TriggerRun(c echo.Context) error {
	run, err := h.runService.TriggerRun(c.Request().Context())
	if err != nil {
		if errors.Is(err, service.ErrRunInProgress) {
			return c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
		}
		h.logger.Error("failed to trigger run", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:  "failed to trigger analysis run",
			Reason: string(entity.ReasonUnexpected),
		})
	}

	return c.JSON(http.StatusCreated, dto.FromRunEntity(run))
}

// GetAllRuns godoc
// @Summary Get all analysis runs
// @Tags runs
// @Produce  json
// @Success 200 {array} dto.RunResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /runs [get]
func (h *RunHandler) GetAllRuns(c echo.Context) error {
	runs, err := h.runService.ListRuns(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to list runs", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to list runs"})
	}

	responses := make([]*dto.RunResponse, 0, len(runs))
	for i := range runs {
		responses = append(responses, dto.FromRunEntity(&runs[i]))
	}
	return c.JSON(http.StatusOK, responses)
}

// GetRunByID godoc
// @Summary Get an analysis run by ID
// @Tags runs
// @Produce  json
// @Param   id  path    int true    "Run ID"
// @Success 200 {object} dto.RunResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /runs/{id} [get]
func (h *RunHandler) GetRunByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid run ID"})
	}

	run, err := h.runService.GetRun(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "run not found"})
		}
		h.logger.Error("failed to get run", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to get run"})
	}

	return c.JSON(http.StatusOK, dto.FromRunEntity(run))
}
