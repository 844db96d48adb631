package handler

import (
	"net/http"

	"relay-messenger/internal/services"
	"relay-messenger/internal/transport/httpdto"
	"relay-messenger/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves /auth.
type AuthHandler struct {
	service *services.AuthService
	log     *logger.Logger
}

func NewAuthHandler(service *services.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{service: service, log: log}
}

func (h *AuthHandler) Handle(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodGet:
		h.getUser(c)
	case http.MethodPost:
		h.dispatch(c)
	default:
		writeError(c, h.log, errMethodNotAllowed)
	}
}

func (h *AuthHandler) dispatch(c *gin.Context) {
	var req httpdto.AuthRequest
	if err := bindBody(c, &req); err != nil {
		writeError(c, h.log, err)
		return
	}

	switch req.Action {
	case "register":
		name := ""
		if req.Name != nil {
			name = *req.Name
		}
		res, err := h.service.Register(c.Request.Context(), req.Phone, name)
		if err != nil {
			writeError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, httpdto.AuthResponse{User: httpdto.FromUser(res.User), Token: res.Token})

	case "login":
		res, err := h.service.Login(c.Request.Context(), req.Phone)
		if err != nil {
			writeError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, httpdto.AuthResponse{User: httpdto.FromUser(res.User), Token: res.Token})

	case "update_profile":
		u, err := h.service.UpdateProfile(c.Request.Context(), req.UserID, services.ProfileInput{
			Name:      req.Name,
			Bio:       req.Bio,
			AvatarURL: req.AvatarURL,
		})
		if err != nil {
			writeError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, httpdto.UpdateProfileResponse{User: httpdto.UpdatedProfileFromUser(u)})

	default:
		writeError(c, h.log, errInvalidRequest)
	}
}

func (h *AuthHandler) getUser(c *gin.Context) {
	userID, err := queryID(c, "user_id")
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	u, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.ProfileEnvelope{User: httpdto.ProfileFromUser(u)})
}
