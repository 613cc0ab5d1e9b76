// Package handler holds the HTTP handlers, their request/response types and
// the Echo validator. Request types own the validation tags; responses are
// the domain representations themselves, whose JSON contract is part of the
// API surface.
package handler

import "github.com/labstack/echo/v4"

// errorResponse mirrors the envelope rendered by the central error handler.
// Declared here for the swagger annotations on handlers.
type errorResponse struct {
	Detail string `json:"detail"`
}

// listQuery carries the shared pagination parameters. Services clamp the
// limit, so out-of-range values are accepted here.
type listQuery struct {
	Offset int `query:"offset"`
	Limit  int `query:"limit"`
}

func bindListQuery(c echo.Context) listQuery {
	var q listQuery
	// Binding can only fail on non-numeric input; fall back to defaults.
	if err := c.Bind(&q); err != nil {
		return listQuery{}
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q
}
