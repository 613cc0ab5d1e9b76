package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clubhub/events-api/internal/core/ports"
)

// maxUploadBytes caps in-memory reads of multipart uploads.
const maxUploadBytes = 10 << 20 // 10 MiB

// formUpload reads the multipart file field into a ports.Upload. The content
// type falls back to sniffing when the client did not send one.
func formUpload(c echo.Context, field string) (ports.Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return ports.Upload{}, echo.NewHTTPError(http.StatusBadRequest, field+" is required")
	}
	if fh.Size > maxUploadBytes {
		return ports.Upload{}, echo.NewHTTPError(http.StatusBadRequest, "file too large")
	}

	f, err := fh.Open()
	if err != nil {
		return ports.Upload{}, echo.NewHTTPError(http.StatusBadRequest, "could not read upload")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil || int64(len(data)) > maxUploadBytes {
		return ports.Upload{}, echo.NewHTTPError(http.StatusBadRequest, "could not read upload")
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return ports.Upload{
		Filename:    fh.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}
