// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"relay-messenger/internal/transport/httpdto"
	relay_errors "relay-messenger/pkg/errors"
	"relay-messenger/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	errInvalidRequest   = fmt.Errorf("%w: invalid request", relay_errors.ErrInvalidInput)
	errInvalidBody      = fmt.Errorf("%w: invalid JSON body", relay_errors.ErrInvalidInput)
	errMethodNotAllowed = fmt.Errorf("%w: method not allowed", relay_errors.ErrMethodNotAllowed)
)

// HTTPStatus maps an error onto the response status.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, relay_errors.ErrInvalidInput), errors.Is(err, relay_errors.ErrAlreadyExists):
		return http.StatusBadRequest
	case errors.Is(err, relay_errors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, relay_errors.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, l *logger.Logger, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError && l != nil {
		l.ErrorCtx(c.Request.Context(), "request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
	c.JSON(status, httpdto.NewErrorResponse(relay_errors.Message(err)))
}

// bindBody decodes a JSON body into dst. An empty body leaves dst untouched.
func bindBody(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return errInvalidBody
	}
	return nil
}

// queryID parses an id query parameter. A missing parameter yields 0.
func queryID(c *gin.Context, name string) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", relay_errors.ErrInvalidInput, name)
	}
	return id, nil
}

func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", relay_errors.ErrInvalidInput, name)
	}
	return n, nil
}
