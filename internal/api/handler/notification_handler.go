package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stayhub/maintenance-be/internal/api/dto"
	"github.com/stayhub/maintenance-be/internal/api/middleware"
	"github.com/stayhub/maintenance-be/internal/api/model"
)

// ListNotifications handles GET /admin/notifications
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID := middleware.UserID(c)

	rows, err := h.storage.ListNotifications(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, "list notifications", err)
		return
	}

	out := make([]dto.NotificationDTO, len(rows))
	for i, row := range rows {
		out[i] = notificationDTO(row)
	}
	respondOK(c, "Notifications retrieved successfully", out)
}

// MarkRead handles POST /admin/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.storage.MarkNotificationRead(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, "mark notification read", err)
		return
	}
	respondOK(c, "Notification marked as read", nil)
}

// MarkAllRead handles POST /admin/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := middleware.UserID(c)

	count, err := h.storage.MarkAllNotificationsRead(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, "mark notifications read", err)
		return
	}
	respondOK(c, "Notifications marked as read", gin.H{"count": count})
}

func notificationDTO(row model.Notification) dto.NotificationDTO {
	out := dto.NotificationDTO{
		ID:        row.ID,
		Title:     row.Title,
		Message:   row.Message,
		Type:      row.Type,
		IsRead:    row.IsRead,
		CreatedAt: row.CreatedAt.Format(time.RFC3339),
	}
	if row.RelatedID.Valid {
		v := row.RelatedID.String
		out.RelatedID = &v
	}
	if row.RelatedType.Valid {
		v := row.RelatedType.String
		out.RelatedType = &v
	}
	return out
}
