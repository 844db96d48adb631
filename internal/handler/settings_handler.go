package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"relay-messenger/internal/domain/settings"
	"relay-messenger/internal/services"
	"relay-messenger/internal/transport/httpdto"
	relay_errors "relay-messenger/pkg/errors"
	"relay-messenger/pkg/logger"

	"github.com/gin-gonic/gin"
)

// SettingsHandler serves /settings.
type SettingsHandler struct {
	service *services.SettingsService
	log     *logger.Logger
}

func NewSettingsHandler(service *services.SettingsService, log *logger.Logger) *SettingsHandler {
	return &SettingsHandler{service: service, log: log}
}

func (h *SettingsHandler) Handle(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodGet:
		h.get(c)
	case http.MethodPost:
		h.update(c)
	default:
		writeError(c, h.log, errMethodNotAllowed)
	}
}

func (h *SettingsHandler) get(c *gin.Context) {
	userID, err := queryID(c, "user_id")
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	s, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.SettingsResponse{Settings: s})
}

func (h *SettingsHandler) update(c *gin.Context) {
	var body map[string]json.RawMessage
	if err := bindBody(c, &body); err != nil {
		writeError(c, h.log, err)
		return
	}
	userID, patch, err := parseSettingsBody(body)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	s, err := h.service.Update(c.Request.Context(), userID, patch)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.SettingsResponse{Settings: s})
}

// parseSettingsBody picks user_id and every allow-listed field out of body.
// Unknown keys are ignored.
func parseSettingsBody(body map[string]json.RawMessage) (int64, settings.Patch, error) {
	var userID int64
	if raw, ok := body["user_id"]; ok {
		if err := json.Unmarshal(raw, &userID); err != nil {
			return 0, nil, fmt.Errorf("%w: user_id must be an integer", relay_errors.ErrInvalidInput)
		}
	}

	patch := settings.Patch{}
	for key, raw := range body {
		field, ok := settings.ParseField(key)
		if !ok {
			continue
		}
		var value bool
		if string(raw) == "null" || json.Unmarshal(raw, &value) != nil {
			return 0, nil, fmt.Errorf("%w: %s must be a boolean", relay_errors.ErrInvalidInput, key)
		}
		patch[field] = value
	}
	return userID, patch, nil
}
