package handlers

import (
	"errors"
	"time"

	"salon-app-server/internal/mailer"
	"salon-app-server/internal/middleware"
	"salon-app-server/internal/models"
	"salon-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NotificationHandler records appointment notifications and delivers them by
// email.
type NotificationHandler struct {
	DB     *gorm.DB
	Mailer mailer.Sender
	Logger *zap.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(db *gorm.DB, sender mailer.Sender, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{DB: db, Mailer: sender, Logger: logger}
}

// CreateNotificationRequest represents the request body for creating a
// notification about an appointment.
type CreateNotificationRequest struct {
	AppointmentID string                  `json:"appointmentId" binding:"required,uuid"`
	UserID        string                  `json:"userId" binding:"required,uuid"`
	Type          models.NotificationType `json:"type" binding:"required,oneof=booked confirmed cancelled reminder"`
}

// CreateNotification records a notification and dispatches the email in the
// background. The HTTP response reflects the recorded row, not delivery.
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req CreateNotificationRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var appointment models.Appointment
	if err := h.DB.Preload("Client").Preload("Stylist").Preload("Service").
		First(&appointment, "id = ?", req.AppointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	notification := models.Notification{
		AppointmentID: req.AppointmentID,
		UserID:        req.UserID,
		Type:          req.Type,
		Channel:       "email",
		Status:        models.NotificationPending,
	}
	if err := h.DB.Create(&notification).Error; err != nil {
		utils.InternalServerError(c, "Failed to create notification: "+err.Error())
		return
	}

	go h.deliver(notification.ID, user, appointment)

	utils.Created(c, "Notification created successfully", notification)
}

// deliver sends the email and updates the notification's delivery state. Runs
// in its own goroutine, so it reloads the row instead of sharing the request's
// struct.
func (h *NotificationHandler) deliver(notificationID string, user models.User, appointment models.Appointment) {
	var notification models.Notification
	if err := h.DB.First(&notification, "id = ?", notificationID).Error; err != nil {
		h.Logger.Error("notification vanished before delivery",
			zap.String("notification_id", notificationID), zap.Error(err))
		return
	}

	clientName := user.Name
	subject, body := mailer.AppointmentMessage(string(notification.Type), mailer.AppointmentEmail{
		ClientName:  clientName,
		ServiceName: appointment.Service.Name,
		StylistName: appointment.Stylist.Name,
		StartTime:   appointment.StartTime,
	})

	if user.Email == "" {
		notification.Status = models.NotificationFailed
	} else if err := h.Mailer.Send(user.Email, subject, body); err != nil {
		h.Logger.Warn("notification email failed",
			zap.String("notification_id", notificationID),
			zap.String("to", user.Email),
			zap.Error(err))
		notification.Status = models.NotificationFailed
	} else {
		now := time.Now().UTC()
		notification.Status = models.NotificationSent
		notification.SentAt = &now
	}

	if err := h.DB.Save(&notification).Error; err != nil {
		h.Logger.Error("failed to record notification delivery state",
			zap.String("notification_id", notificationID), zap.Error(err))
	}
}

// GetNotifications lists the caller's notifications, newest first. Admins may
// pass ?userId= to inspect another user's notifications.
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	targetID := userID
	if requested := c.Query("userId"); requested != "" && requested != userID {
		if userRole != models.RoleAdmin {
			utils.Forbidden(c, "You can only view your own notifications")
			return
		}
		targetID = requested
	}

	var notifications []models.Notification
	if err := h.DB.Where("user_id = ?", targetID).
		Order("created_at desc").
		Find(&notifications).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch notifications: "+err.Error())
		return
	}

	utils.Success(c, "Notifications fetched successfully", notifications)
}
