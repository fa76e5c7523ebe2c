package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/petsocial/backend/internal/middleware"
	"github.com/anonto42/petsocial/backend/validators"
	"github.com/labstack/echo/v4"
)

// messageBody is the {msg} shape used for business-rule errors
type messageBody struct {
	Msg string `json:"msg"`
}

// errorsBody renders a single message in the {errors: [...]} shape used for input errors
func errorsBody(msg string) *validators.ValidationError {
	return &validators.ValidationError{Errors: []validators.FieldError{{Msg: msg}}}
}

// HTTPErrorHandler renders client errors as JSON. Anything else is logged and
// collapsed into an opaque 500 so internals never reach the client.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		status int
		body   interface{}
		verr   *validators.ValidationError
		herr   *echo.HTTPError
	)
	switch {
	case errors.As(err, &verr):
		status, body = http.StatusBadRequest, verr
	case errors.As(err, &herr) && herr.Code < http.StatusInternalServerError:
		status = herr.Code
		if msg, ok := herr.Message.(string); ok {
			body = messageBody{Msg: msg}
		} else {
			body = herr.Message
		}
	default:
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		if err := c.String(http.StatusInternalServerError, "Server error"); err != nil {
			c.Logger().Error(err)
		}
		return
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		c.Logger().Error(err)
	}
}

// getUserIDFromContext returns the authenticated user id set by middleware.Auth
func getUserIDFromContext(c echo.Context) (uint, error) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "No token, authorization denied")
	}
	return userID, nil
}

// bindAndValidate decodes the request body into req and runs the registered validator
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	return c.Validate(req)
}
