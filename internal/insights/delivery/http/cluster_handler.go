package http

import (
	"net/http"

	"go-social-insights/internal/insights/dto"
	"go-social-insights/internal/insights/service"
	"go-social-insights/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ClusterHandler handles HTTP requests for clusters.
type ClusterHandler struct {
	clusterService service.ClusterService
	logger         *logger.Logger
}

// NewClusterHandler creates a new ClusterHandler.
func NewClusterHandler(clusterService service.ClusterService, log *logger.Logger) *ClusterHandler {
	return &ClusterHandler{clusterService: clusterService, logger: log}
}

// RegisterRoutes registers the cluster routes to the Echo group.
func (h *ClusterHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetAllClusters)
}

// GetAllClusters godoc
// @Summary Get all topic clusters
// @Description Returns the clusters produced by the latest successful run
// @Tags clusters
// @Produce  json
// @Success 200 {array} entity.Cluster
// @Failure 500 {object} dto.ErrorResponse
// @Router /clusters [get]
func (h *ClusterHandler) GetAllClusters(c echo.Context) error {
	clusters, err := h.clusterService.GetAllClusters(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to get clusters", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to get clusters"})
	}
	return c.JSON(http.StatusOK, clusters)
}
