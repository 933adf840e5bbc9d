package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"task-tracker-api/internal/dto"
	"task-tracker-api/internal/response"
	"task-tracker-api/internal/service"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// GetNotifications godoc
// @Summary      내 알림 목록
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.SuccessResponse{data=[]dto.NotificationResponse} "조회 성공"
// @Router       /notifications [get]
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	notifications, err := h.notificationService.GetNotifications(c.Request.Context(), auth.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, notifications)
}

// MarkRead godoc
// @Summary      알림 읽음 처리
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        notificationId path string true "Notification ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.MessageResponse} "처리 성공"
// @Failure      404 {object} response.ErrorResponse "알림을 찾을 수 없음"
// @Router       /notifications/{notificationId}/read [put]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID, ok := pathUUID(c, "notificationId", "notification")
	if !ok {
		return
	}

	auth, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), auth.UserID, notificationID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, dto.MessageResponse{Message: "Notification marked as read"})
}
