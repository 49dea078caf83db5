package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/planning-backend/internal/application"
	"github.com/oksasatya/planning-backend/internal/interface/middleware"
	"github.com/oksasatya/planning-backend/pkg/response"
	"github.com/oksasatya/planning-backend/pkg/validation"
)

// respondError maps application errors to HTTP statuses. Unexpected errors
// are logged and answered with the generic server error.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, app.ErrMissingField):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, validation.ErrMissingCredentials):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, app.ErrInvalidImage):
		response.Error(c, http.StatusBadRequest, "Invalid image payload", err.Error())
	case errors.Is(err, app.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "Invalid password", nil)
	case errors.Is(err, app.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "User not found", nil)
	case errors.Is(err, app.ErrNotFound):
		response.Error(c, http.StatusNotFound, "Not found", nil)
	case errors.Is(err, app.ErrUserExists):
		response.Error(c, http.StatusConflict, "User already exists", nil)
	case errors.Is(err, app.ErrStorageDisabled):
		response.Error(c, http.StatusServiceUnavailable, "Image storage unavailable", nil)
	default:
		logger.WithError(err).
			WithField("request_id", c.GetString("request_id")).
			WithField("user_id", c.GetString(middleware.CtxUserIDKey)).
			WithField("path", c.FullPath()).
			Error("request failed")
		response.Error(c, http.StatusInternalServerError, response.ServerError, nil)
	}
}

// rejectInvalid answers a payload that failed decoding or validation.
func rejectInvalid(c *gin.Context, err error) {
	response.Error(c, http.StatusUnauthorized, validation.FirstMessage(err), validation.ToDetails(err))
}

// readJSON decodes the request body into dst; an empty body leaves dst untouched.
func readJSON(c *gin.Context, dst any) error {
	body, err := c.GetRawData()
	if err != nil {
		return err
	}
	return validation.DecodeJSON(body, dst)
}
