package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	apperrors "antrian/internal/errors"
)

// MessageResponse is the body of write endpoints that return no entity.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreatedResponse is the body of create endpoints.
type CreatedResponse struct {
	ID      uint   `json:"id"`
	Message string `json:"message"`
}

func badRequest(message string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
		Error: message,
		Code:  "INVALID_REQUEST",
	})
}

// failure converts err into the HTTP error echo renders. Errors outside the taxonomy
// are logged with full detail and reported with the generic fallback message.
func failure(c echo.Context, log logrus.FieldLogger, err error, fallback string) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	if apperrors.IsUnexpected(err) {
		log.WithError(err).WithFields(logrus.Fields{
			"method":     c.Request().Method,
			"path":       c.Path(),
			"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
		}).Error(fallback)
		httpErr.Message = fallback
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// bindAndValidate binds the request body and runs the struct validator. Any
// failure is reported with message.
func bindAndValidate(c echo.Context, req interface{}, message string) *echo.HTTPError {
	if err := c.Bind(req); err != nil {
		return badRequest(message)
	}
	if err := c.Validate(req); err != nil {
		return badRequest(message)
	}
	return nil
}

func paramID(c echo.Context) (uint, *echo.HTTPError) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, badRequest("invalid id")
	}
	return uint(id), nil
}

// warnIfMissing logs writes that matched no row. The request still succeeds.
func warnIfMissing(c echo.Context, log logrus.FieldLogger, rows int64, entity string, id uint) {
	if rows == 0 {
		log.WithFields(logrus.Fields{
			"entity": entity,
			"id":     id,
			"method": c.Request().Method,
		}).Warn("write matched no rows")
	}
}
