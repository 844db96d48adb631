package handler

import (
	"net/http"

	"relay-messenger/internal/services"
	"relay-messenger/internal/transport/httpdto"
	"relay-messenger/pkg/logger"

	"github.com/gin-gonic/gin"
)

// NotificationsHandler serves /notifications.
type NotificationsHandler struct {
	service *services.NotificationService
	log     *logger.Logger
}

func NewNotificationsHandler(service *services.NotificationService, log *logger.Logger) *NotificationsHandler {
	return &NotificationsHandler{service: service, log: log}
}

func (h *NotificationsHandler) Handle(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodGet:
		h.list(c)
	case http.MethodPost:
		h.dispatch(c)
	default:
		writeError(c, h.log, errMethodNotAllowed)
	}
}

func (h *NotificationsHandler) dispatch(c *gin.Context) {
	var req httpdto.NotificationsRequest
	if err := bindBody(c, &req); err != nil {
		writeError(c, h.log, err)
		return
	}

	switch req.Action {
	case "subscribe":
		var in *services.SubscriptionInput
		if req.Subscription != nil {
			in = &services.SubscriptionInput{
				Endpoint: req.Subscription.Endpoint,
				P256dh:   req.Subscription.Keys.P256dh,
				Auth:     req.Subscription.Keys.Auth,
			}
		}
		id, err := h.service.Subscribe(c.Request.Context(), req.UserID, in)
		if err != nil {
			writeError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, httpdto.SubscribeResponse{Success: true, SubscriptionID: id})

	case "send_notification":
		res, err := h.service.SendNotification(c.Request.Context(), req.UserID, services.Notification{
			Title:   req.Title,
			Message: req.Message,
			Icon:    req.Icon,
		})
		if err != nil {
			writeError(c, h.log, err)
			return
		}
		body := httpdto.SendNotificationResponse{Success: true, Sent: res.Sent}
		if len(res.Subscriptions) == 0 {
			body.Message = "No subscriptions found"
		} else {
			body.Subscriptions = httpdto.CredentialsFromSubscriptions(res.Subscriptions)
		}
		c.JSON(http.StatusOK, body)

	default:
		writeError(c, h.log, errInvalidRequest)
	}
}

func (h *NotificationsHandler) list(c *gin.Context) {
	userID, err := queryID(c, "user_id")
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	subs, err := h.service.ListSubscriptions(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.SubscriptionsResponse{Subscriptions: httpdto.SummariesFromSubscriptions(subs)})
}
