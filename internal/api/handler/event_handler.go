package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clubhub/events-api/internal/api/metrics"
	"github.com/clubhub/events-api/internal/core/ports"
)

// EventHandler handles HTTP requests for event operations.
type EventHandler struct {
	service ports.EventService
}

func NewEventHandler(service ports.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// --- Request types ---

type createEventRequest struct {
	Title       string    `json:"title"       validate:"required"`
	Description string    `json:"description"`
	DateTime    time.Time `json:"date_time"   validate:"required"`
	Venue       string    `json:"venue"       validate:"required"`
	IsPaid      bool      `json:"is_paid"`
	Price       int       `json:"price"       validate:"gte=0"`
	Capacity    int       `json:"capacity"    validate:"gte=0"`
}

type updateEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DateTime    *time.Time `json:"date_time"`
	Venue       *string    `json:"venue"`
	Capacity    *int       `json:"capacity"    validate:"omitempty,gte=0"`
}

type togglePaidRequest struct {
	IsPaid bool `json:"is_paid"`
	Price  *int `json:"price" validate:"omitempty,gte=0"`
}

// Create handles POST /api/v1/events.
//
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        event  body      createEventRequest  true  "Event to create"
// @Success      200    {object}  domain.Event
// @Failure      400    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /api/v1/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}

	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.service.Create(c.Request().Context(), claim, ports.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		DateTime:    req.DateTime,
		Venue:       req.Venue,
		IsPaid:      req.IsPaid,
		Price:       req.Price,
		Capacity:    req.Capacity,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// List handles GET /api/v1/events.
//
// @Summary      List events
// @Tags         events
// @Produce      json
// @Param        offset  query     int  false  "Pagination offset"
// @Param        limit   query     int  false  "Page size (max 100)"
// @Success      200     {array}   domain.Event
// @Router       /api/v1/events [get]
func (h *EventHandler) List(c echo.Context) error {
	q := bindListQuery(c)
	events, err := h.service.List(c.Request().Context(), q.Offset, q.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// Get handles GET /api/v1/events/:id.
//
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  domain.Event
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	event, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// Update handles PATCH /api/v1/events/:id.
//
// @Summary      Update an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string              true  "Event ID"
// @Param        event  body      updateEventRequest  true  "Fields to update"
// @Success      200    {object}  domain.Event
// @Failure      403    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /api/v1/events/{id} [patch]
func (h *EventHandler) Update(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}

	var req updateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.service.Update(c.Request().Context(), claim, c.Param("id"), ports.UpdateEventInput{
		Title:       req.Title,
		Description: req.Description,
		DateTime:    req.DateTime,
		Venue:       req.Venue,
		Capacity:    req.Capacity,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// Delete handles DELETE /api/v1/events/:id.
//
// @Summary      Delete an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  domain.Event
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}
	event, err := h.service.Delete(c.Request().Context(), claim, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// TogglePaid handles PATCH /api/v1/events/:id/toggle-paid.
//
// @Summary      Toggle the paid flag of an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Event ID"
// @Param        body  body      togglePaidRequest  true  "Paid flag and optional price"
// @Success      200   {object}  domain.Event
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/events/{id}/toggle-paid [patch]
func (h *EventHandler) TogglePaid(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}

	var req togglePaidRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.service.TogglePaid(c.Request().Context(), claim, c.Param("id"), req.IsPaid, req.Price)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// UploadCover handles POST /api/v1/events/:id/cover.
//
// @Summary      Upload an event cover image
// @Tags         events
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Event ID"
// @Param        file  formData  file    true  "Cover image"
// @Success      200   {object}  domain.Event
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/v1/events/{id}/cover [post]
func (h *EventHandler) UploadCover(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}
	file, err := formUpload(c, "file")
	if err != nil {
		return err
	}

	event, err := h.service.UploadCover(c.Request().Context(), claim, c.Param("id"), file)
	if err != nil {
		return err
	}
	metrics.UploadsTotal.WithLabelValues("event_cover").Inc()
	return c.JSON(http.StatusOK, event)
}

// MarkAttendance handles POST /api/v1/events/:id/attendance.
//
// @Summary      Mark a user's attendance for an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Event ID"
// @Param        user_id  query     string  true  "User ID to check in"
// @Success      200      {object}  domain.Registration
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /api/v1/events/{id}/attendance [post]
func (h *EventHandler) MarkAttendance(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}
	userID := c.QueryParam("user_id")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	reg, err := h.service.MarkAttendance(c.Request().Context(), claim, c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reg)
}
