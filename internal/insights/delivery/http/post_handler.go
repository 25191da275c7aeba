package http

import (
	"net/http"

	"go-social-insights/internal/entity"
	"go-social-insights/internal/insights/dto"
	"go-social-insights/internal/insights/service"
	"go-social-insights/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests for posts.
type PostHandler struct {
	postService service.PostService
	logger      *logger.Logger
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postService service.PostService, log *logger.Logger) *PostHandler {
	return &PostHandler{postService: postService, logger: log}
}

// RegisterRoutes registers the post routes to the Echo group.
func (h *PostHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.IngestPosts)
	g.GET("", h.GetAllPosts)
}

// IngestPosts godoc
// @Summary Ingest a batch of posts
// @Description Stores posts for later analysis, upserting on external id
// @Tags posts
// @Accept  json
// @Produce  json
// @Param   request  body    dto.IngestPostsRequest   true    "Posts to store"
// @Success 201 {object} dto.IngestPostsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /posts [post]
func (h *PostHandler) IngestPosts(c echo.Context) error {
	var req dto.IngestPostsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:  "invalid request payload",
			Reason: string(entity.ReasonInvalidInput),
		})
	}

	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:  err.Error(),
			Reason: string(entity.ReasonInvalidInput),
		})
	}

	count, err := h.postService.IngestPosts(c.Request().Context(), &req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to ingest posts"})
	}

	return c.JSON(http.StatusCreated, dto.IngestPostsResponse{Ingested: count})
}

// GetAllPosts godoc
// @Summary Get all posts
// @Tags posts
// @Produce  json
// @Success 200 {array} entity.Post
// @Failure 500 {object} dto.ErrorResponse
// @Router /posts [get]
func (h *PostHandler) GetAllPosts(c echo.Context) error {
	posts, err := h.postService.GetAllPosts(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to get posts", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to get posts"})
	}
	return c.JSON(http.StatusOK, posts)
}
