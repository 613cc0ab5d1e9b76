package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clubhub/events-api/internal/api/metrics"
	"github.com/clubhub/events-api/internal/core/domain"
	"github.com/clubhub/events-api/internal/core/ports"
)

// RegistrationHandler handles HTTP requests for registration operations.
type RegistrationHandler struct {
	service ports.RegistrationService
}

func NewRegistrationHandler(service ports.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{service: service}
}

type updatePaymentRequest struct {
	Status string `json:"status" validate:"required,oneof=pending completed failed refunded"`
}

// Register handles POST /api/v1/events/:id/register.
//
// @Summary      Register the caller for an event
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  domain.Registration
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/events/{id}/register [post]
func (h *RegistrationHandler) Register(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}

	reg, err := h.service.Register(c.Request().Context(), claim, c.Param("id"))
	if err != nil {
		return err
	}
	metrics.RegistrationsCreatedTotal.Inc()

	return c.JSON(http.StatusOK, reg)
}

// ListMine handles GET /api/v1/registrations/me.
//
// @Summary      List the caller's registrations
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        offset  query     int  false  "Pagination offset"
// @Param        limit   query     int  false  "Page size (max 100)"
// @Success      200     {array}   domain.Registration
// @Router       /api/v1/registrations/me [get]
func (h *RegistrationHandler) ListMine(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}
	q := bindListQuery(c)
	regs, err := h.service.ListMine(c.Request().Context(), claim, q.Offset, q.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, regs)
}

// Get handles GET /api/v1/registrations/:id.
//
// @Summary      Get a registration
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Registration ID"
// @Success      200  {object}  domain.Registration
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/registrations/{id} [get]
func (h *RegistrationHandler) Get(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}
	reg, err := h.service.Get(c.Request().Context(), claim, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reg)
}

type ticketURLResponse struct {
	URL string `json:"url"`
}

// TicketURL handles GET /api/v1/registrations/:id/qr.
//
// @Summary      Get a download link for a registration's QR ticket
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Registration ID"
// @Success      200  {object}  ticketURLResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/registrations/{id}/qr [get]
func (h *RegistrationHandler) TicketURL(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}
	url, err := h.service.TicketURL(c.Request().Context(), claim, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ticketURLResponse{URL: url})
}

// ListByEvent handles GET /api/v1/registrations/event/:event_id.
//
// @Summary      List registrations for an event
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        event_id  path      string  true   "Event ID"
// @Param        offset    query     int     false  "Pagination offset"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {array}   domain.Registration
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /api/v1/registrations/event/{event_id} [get]
func (h *RegistrationHandler) ListByEvent(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}
	q := bindListQuery(c)
	regs, err := h.service.ListByEvent(c.Request().Context(), claim, c.Param("event_id"), q.Offset, q.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, regs)
}

// UpdatePayment handles PATCH /api/v1/registrations/:id/update-payment.
//
// @Summary      Update a registration's payment status
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Registration ID"
// @Param        body  body      updatePaymentRequest  true  "New payment status"
// @Success      200   {object}  domain.Registration
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/registrations/{id}/update-payment [patch]
func (h *RegistrationHandler) UpdatePayment(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}

	var req updatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reg, err := h.service.UpdatePayment(c.Request().Context(), claim, c.Param("id"), domain.PaymentStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reg)
}

// CheckinStart handles PATCH /api/v1/registrations/:id/checkin-start.
//
// @Summary      Mark check-in start on a registration
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Registration ID"
// @Success      200  {object}  domain.Registration
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/registrations/{id}/checkin-start [patch]
func (h *RegistrationHandler) CheckinStart(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}
	reg, err := h.service.MarkCheckinStart(c.Request().Context(), claim, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reg)
}

// CheckinEnd handles PATCH /api/v1/registrations/:id/checkin-end.
//
// @Summary      Mark check-in end on a registration
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Registration ID"
// @Success      200  {object}  domain.Registration
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/registrations/{id}/checkin-end [patch]
func (h *RegistrationHandler) CheckinEnd(c echo.Context) error {
	claim, err := ctxClaim(c)
	if err != nil {
		return err
	}
	reg, err := h.service.MarkCheckinEnd(c.Request().Context(), claim, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reg)
}
