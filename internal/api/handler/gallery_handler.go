package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clubhub/events-api/internal/api/metrics"
	"github.com/clubhub/events-api/internal/core/ports"
)

// GalleryHandler handles HTTP requests for gallery operations.
type GalleryHandler struct {
	service ports.GalleryService
}

func NewGalleryHandler(service ports.GalleryService) *GalleryHandler {
	return &GalleryHandler{service: service}
}

// Upload handles POST /api/v1/gallery.
//
// @Summary      Upload a gallery image
// @Tags         gallery
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Image file"
// @Success      200   {object}  domain.GalleryItem
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/v1/gallery [post]
func (h *GalleryHandler) Upload(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}
	file, err := formUpload(c, "file")
	if err != nil {
		return err
	}

	item, err := h.service.UploadImage(c.Request().Context(), claim, file)
	if err != nil {
		return err
	}
	metrics.UploadsTotal.WithLabelValues("gallery").Inc()
	return c.JSON(http.StatusOK, item)
}

// List handles GET /api/v1/gallery.
//
// @Summary      List gallery images
// @Tags         gallery
// @Produce      json
// @Param        offset  query     int  false  "Pagination offset"
// @Param        limit   query     int  false  "Page size (max 100)"
// @Success      200     {array}   domain.GalleryItem
// @Router       /api/v1/gallery [get]
func (h *GalleryHandler) List(c echo.Context) error {
	q := bindListQuery(c)
	items, err := h.service.List(c.Request().Context(), q.Offset, q.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /api/v1/gallery/:id.
//
// @Summary      Get a gallery image
// @Tags         gallery
// @Produce      json
// @Param        id   path      string  true  "Image ID"
// @Success      200  {object}  domain.GalleryItem
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/gallery/{id} [get]
func (h *GalleryHandler) Get(c echo.Context) error {
	item, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /api/v1/gallery/:id.
//
// @Summary      Delete a gallery image
// @Tags         gallery
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Image ID"
// @Success      200  {object}  domain.GalleryItem
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/gallery/{id} [delete]
func (h *GalleryHandler) Delete(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}
	item, err := h.service.Delete(c.Request().Context(), claim, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}
