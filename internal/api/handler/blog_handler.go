package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clubhub/events-api/internal/core/ports"
)

// BlogHandler handles HTTP requests for blog post operations.
type BlogHandler struct {
	service ports.BlogService
}

func NewBlogHandler(service ports.BlogService) *BlogHandler {
	return &BlogHandler{service: service}
}

type createPostRequest struct {
	Title   string `json:"title"   validate:"required"`
	Content string `json:"content" validate:"required"`
}

type updatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// Create handles POST /api/v1/blog.
//
// @Summary      Create a blog post
// @Tags         blog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        post  body      createPostRequest  true  "Post to create"
// @Success      200   {object}  domain.BlogPost
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/v1/blog [post]
func (h *BlogHandler) Create(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.service.Create(c.Request().Context(), claim, ports.CreatePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// List handles GET /api/v1/blog.
//
// @Summary      List blog posts
// @Tags         blog
// @Produce      json
// @Param        offset  query     int  false  "Pagination offset"
// @Param        limit   query     int  false  "Page size (max 100)"
// @Success      200     {array}   domain.BlogPost
// @Router       /api/v1/blog [get]
func (h *BlogHandler) List(c echo.Context) error {
	q := bindListQuery(c)
	posts, err := h.service.List(c.Request().Context(), q.Offset, q.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// Get handles GET /api/v1/blog/:id.
//
// @Summary      Get a blog post
// @Tags         blog
// @Produce      json
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  domain.BlogPost
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/blog/{id} [get]
func (h *BlogHandler) Get(c echo.Context) error {
	post, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Update handles PATCH /api/v1/blog/:id.
//
// @Summary      Update a blog post
// @Tags         blog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Post ID"
// @Param        post  body      updatePostRequest  true  "Fields to update"
// @Success      200   {object}  domain.BlogPost
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/blog/{id} [patch]
func (h *BlogHandler) Update(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}

	var req updatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	post, err := h.service.Update(c.Request().Context(), claim, c.Param("id"), ports.UpdatePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /api/v1/blog/:id.
//
// @Summary      Delete a blog post
// @Tags         blog
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  domain.BlogPost
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/blog/{id} [delete]
func (h *BlogHandler) Delete(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}
	post, err := h.service.Delete(c.Request().Context(), claim, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}
