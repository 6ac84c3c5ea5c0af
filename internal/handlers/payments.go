package handlers

import (
	"errors"
	"strconv"

	"salon-app-server/internal/middleware"
	"salon-app-server/internal/models"
	"salon-app-server/internal/payments"
	"salon-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PaymentHandler charges clients for salon services through the injected
// payment processor.
type PaymentHandler struct {
	DB        *gorm.DB
	Processor payments.Processor
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(db *gorm.DB, processor payments.Processor) *PaymentHandler {
	return &PaymentHandler{DB: db, Processor: processor}
}

func (h *PaymentHandler) callerEmail(c *gin.Context) (string, models.Role, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return "", "", false
	}
	role, _ := middleware.GetUserRoleFromContext(c)

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Unauthorized(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return "", "", false
	}
	return user.Email, role, true
}

// CreateChargeRequest represents the request body for charging a salon
// service to a card.
type CreateChargeRequest struct {
	PaymentMethodID string `json:"paymentMethodId" binding:"required"`
	AmountCents     int64  `json:"amountCents" binding:"required,gt=0"`
	Currency        string `json:"currency" binding:"required,len=3"`
	Description     string `json:"description"`
	AppointmentID   string `json:"appointmentId" binding:"omitempty,uuid"`
}

// CreateCharge charges the authenticated client's card. The receipt email is
// always the caller's own; staff collecting in person charge under their
// account with the appointment id in the description trail.
func (h *PaymentHandler) CreateCharge(c *gin.Context) {
	var req CreateChargeRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	email, _, ok := h.callerEmail(c)
	if !ok {
		return
	}

	if req.AppointmentID != "" {
		var appointment models.Appointment
		if err := h.DB.First(&appointment, "id = ?", req.AppointmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.NotFound(c, "Appointment not found")
			} else {
				utils.InternalServerError(c, "Database error: "+err.Error())
			}
			return
		}
	}

	charge, err := h.Processor.CreateCharge(c.Request.Context(), payments.CreateChargeInput{
		PaymentMethodID: req.PaymentMethodID,
		AmountCents:     req.AmountCents,
		Currency:        req.Currency,
		Description:     req.Description,
		Email:           email,
		AppointmentID:   req.AppointmentID,
	})
	if err != nil {
		utils.BadRequest(c, "Payment failed: "+err.Error())
		return
	}

	utils.Created(c, "Charge created successfully", charge)
}

// GetCharge fetches one charge. Non-staff callers may only see charges made
// under their own email.
func (h *PaymentHandler) GetCharge(c *gin.Context) {
	chargeID := c.Param("chargeId")

	email, role, ok := h.callerEmail(c)
	if !ok {
		return
	}

	charge, err := h.Processor.GetCharge(c.Request.Context(), chargeID)
	if err != nil {
		utils.NotFound(c, "Charge not found: "+err.Error())
		return
	}

	if role != models.RoleAdmin && role != models.RoleReceptionist && charge.Email != email {
		utils.Forbidden(c, "You can only view your own payments")
		return
	}

	utils.Success(c, "Charge fetched successfully", charge)
}

// ListCharges lists payment history. Clients and stylists are pinned to their
// own email; admins and receptionists may filter with ?email= or list all.
func (h *PaymentHandler) ListCharges(c *gin.Context) {
	email, role, ok := h.callerEmail(c)
	if !ok {
		return
	}

	filter := c.Query("email")
	if role != models.RoleAdmin && role != models.RoleReceptionist {
		filter = email
	}

	limit := int64(10)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			utils.BadRequest(c, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	charges, err := h.Processor.ListCharges(c.Request.Context(), filter, limit)
	if err != nil {
		utils.InternalServerError(c, "Failed to list charges: "+err.Error())
		return
	}

	utils.Success(c, "Charges fetched successfully", charges)
}
