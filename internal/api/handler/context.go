package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/clubhub/events-api/internal/api/middleware"
	"github.com/clubhub/events-api/internal/core/domain"
)

// ctxClaim extracts the claim injected by the Auth middleware. Its absence
// means the middleware did not run for this route; treat as unauthenticated
// rather than panic.
func ctxClaim(c echo.Context) (*domain.Claim, error) {
	claim, _ := c.Get(middleware.ClaimContextKey).(*domain.Claim)
	if claim == nil {
		return nil, domain.ErrUnauthenticated
	}
	return claim, nil
}
