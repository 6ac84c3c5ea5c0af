package handlers

import (
	"context"
	"errors"
	"time"

	"salon-app-server/internal/middleware"
	"salon-app-server/internal/models"
	"salon-app-server/internal/scheduling"
	"salon-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AppointmentHandler handles appointment booking, rescheduling and the
// availability query.
type AppointmentHandler struct {
	DB     *gorm.DB
	Hours  scheduling.BusinessHours
	Clock  scheduling.Clock
	Logger *zap.Logger
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, hours scheduling.BusinessHours, clock scheduling.Clock, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Hours: hours, Clock: clock, Logger: logger}
}

// schedulingStore adapts a gorm handle (connection or transaction) to the
// scheduling core's Directory and AppointmentSource ports.
type schedulingStore struct {
	db *gorm.DB
}

func (s *schedulingStore) FindService(ctx context.Context, id string) (*scheduling.Service, error) {
	var svc models.Service
	if err := s.db.WithContext(ctx).First(&svc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &scheduling.Service{ID: svc.ID, Name: svc.Name, Duration: svc.Duration()}, nil
}

func (s *schedulingStore) FindStylist(ctx context.Context, id string) (*scheduling.Stylist, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("id = ? AND role = ? AND is_active = ?", id, models.RoleStylist, true).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &scheduling.Stylist{ID: user.ID, Name: user.Name}, nil
}

func (s *schedulingStore) ListStylists(ctx context.Context) ([]scheduling.Stylist, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Where("role = ? AND is_active = ?", models.RoleStylist, true).
		Order("name asc").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	stylists := make([]scheduling.Stylist, len(users))
	for i, u := range users {
		stylists[i] = scheduling.Stylist{ID: u.ID, Name: u.Name}
	}
	return stylists, nil
}

func (s *schedulingStore) BusyIntervals(ctx context.Context, stylistID string, window scheduling.Interval) ([]scheduling.Interval, error) {
	busy, err := s.busyAppointments(ctx, stylistID, window)
	if err != nil {
		return nil, err
	}
	intervals := make([]scheduling.Interval, len(busy))
	for i, b := range busy {
		intervals[i] = b.Interval
	}
	return intervals, nil
}

// busyAppointments loads a stylist's active bookings for the day containing
// window, each sized by its own service's duration.
func (s *schedulingStore) busyAppointments(ctx context.Context, stylistID string, window scheduling.Interval) ([]scheduling.BusyAppointment, error) {
	var appointments []models.Appointment
	err := s.db.WithContext(ctx).
		Preload("Service").
		Where("stylist_id = ? AND status IN ? AND start_time >= ? AND start_time < ?",
			stylistID,
			[]models.AppointmentStatus{models.StatusPending, models.StatusConfirmed},
			window.Start, window.End).
		Order("start_time asc").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}

	busy := make([]scheduling.BusyAppointment, len(appointments))
	for i, a := range appointments {
		busy[i] = scheduling.BusyAppointment{
			ID:       a.ID,
			Status:   string(a.Status),
			Interval: scheduling.NewInterval(a.StartTime, a.Service.Duration()),
		}
	}
	return busy, nil
}

// respondSchedulingError maps scheduling core errors to HTTP responses.
// Returns false if err was nil.
func respondSchedulingError(c *gin.Context, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, scheduling.ErrConflict):
		utils.Conflict(c, err.Error())
	case errors.Is(err, scheduling.ErrServiceNotFound),
		errors.Is(err, scheduling.ErrStylistNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, scheduling.ErrPastDate),
		errors.Is(err, scheduling.ErrOutOfHours),
		errors.Is(err, scheduling.ErrInvalidDate),
		errors.Is(err, scheduling.ErrInvalidInterval):
		utils.BadRequest(c, err.Error())
	default:
		utils.InternalServerError(c, err.Error())
	}
	return true
}

// CreateAppointmentRequest represents the request body for creating an
// appointment. ClientID is honored only for receptionists and admins booking
// on a client's behalf; clients always book for themselves.
type CreateAppointmentRequest struct {
	StylistID string    `json:"stylistId" binding:"required,uuid"`
	ServiceID string    `json:"serviceId" binding:"required,uuid"`
	StartTime time.Time `json:"startTime" binding:"required"`
	ClientID  string    `json:"clientId"`
	Notes     string    `json:"notes"`
}

// CreateAppointment books an appointment for a registered client. The
// conflict guard and the insert run in one transaction; without serializable
// isolation two concurrent requests for the same slot can still both pass,
// so deployments wanting a hard guarantee need an exclusion constraint.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	clientID := userID
	if req.ClientID != "" && req.ClientID != userID {
		if userRole == models.RoleClient {
			utils.Forbidden(c, "Clients can only book appointments for themselves.")
			return
		}
		var client models.User
		if err := h.DB.Where("id = ? AND role = ?", req.ClientID, models.RoleClient).First(&client).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.NotFound(c, "Client not found")
			} else {
				utils.InternalServerError(c, "Database error verifying client: "+err.Error())
			}
			return
		}
		clientID = req.ClientID
	}

	appointment := models.Appointment{
		ClientID:   &clientID,
		StylistID:  req.StylistID,
		ServiceID:  req.ServiceID,
		StartTime:  req.StartTime,
		Status:     models.StatusPending,
		Notes:      req.Notes,
		CreatedBy:  userID,
		ModifiedBy: userID,
	}

	if err := h.bookInTransaction(c.Request.Context(), &appointment, ""); err != nil {
		respondSchedulingError(c, err)
		return
	}

	h.Logger.Info("appointment booked",
		zap.String("appointment_id", appointment.ID),
		zap.String("stylist_id", appointment.StylistID),
		zap.Time("start_time", appointment.StartTime),
	)
	utils.Created(c, "Appointment created successfully", appointment)
}

// CreateWalkInRequest represents the request body for a walk-in booking made
// at the front desk.
type CreateWalkInRequest struct {
	ClientName  string    `json:"clientName" binding:"required"`
	ClientPhone string    `json:"clientPhone"`
	ClientEmail string    `json:"clientEmail" binding:"omitempty,email"`
	StylistID   string    `json:"stylistId" binding:"required,uuid"`
	ServiceID   string    `json:"serviceId" binding:"required,uuid"`
	StartTime   time.Time `json:"startTime" binding:"required"`
	Notes       string    `json:"notes"`
}

// CreateWalkInAppointment books an appointment for a walk-in client without
// an account (receptionist/admin). Walk-ins start confirmed: the client is
// standing at the desk.
func (h *AppointmentHandler) CreateWalkInAppointment(c *gin.Context) {
	var req CreateWalkInRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	appointment := models.Appointment{
		ClientID:    nil,
		IsWalkIn:    true,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		StylistID:   req.StylistID,
		ServiceID:   req.ServiceID,
		StartTime:   req.StartTime,
		Status:      models.StatusConfirmed,
		Notes:       req.Notes,
		CreatedBy:   userID,
		ModifiedBy:  userID,
	}

	if err := h.bookInTransaction(c.Request.Context(), &appointment, ""); err != nil {
		respondSchedulingError(c, err)
		return
	}

	h.Logger.Info("walk-in appointment booked",
		zap.String("appointment_id", appointment.ID),
		zap.String("stylist_id", appointment.StylistID),
		zap.Time("start_time", appointment.StartTime),
	)
	utils.Created(c, "Walk-in appointment created successfully", appointment)
}

// bookInTransaction resolves references, runs the conflict guard against the
// stylist's active bookings and persists the appointment, all inside one
// transaction. excludeID skips the appointment itself on reschedule.
func (h *AppointmentHandler) bookInTransaction(ctx context.Context, appointment *models.Appointment, excludeID string) error {
	return h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		store := &schedulingStore{db: tx}

		svc, err := store.FindService(ctx, appointment.ServiceID)
		if err != nil {
			return err
		}
		if svc == nil {
			return scheduling.ErrServiceNotFound
		}
		stylist, err := store.FindStylist(ctx, appointment.StylistID)
		if err != nil {
			return err
		}
		if stylist == nil {
			return scheduling.ErrStylistNotFound
		}

		window := h.Hours.Window(appointment.StartTime.In(h.Hours.Location))
		busy, err := store.busyAppointments(ctx, appointment.StylistID, window)
		if err != nil {
			return err
		}

		if err := scheduling.CheckBooking(h.Clock.Now(), h.Hours, appointment.StartTime, svc.Duration, busy, excludeID); err != nil {
			return err
		}

		if excludeID == "" {
			return tx.Create(appointment).Error
		}
		return tx.Save(appointment).Error
	})
}

// GetAppointments lists appointments scoped by the caller's role: clients and
// stylists see their own, receptionists and admins see everything.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	var appointments []models.Appointment
	query := h.DB.Preload("Client").Preload("Stylist").Preload("Service").Order("start_time asc")

	var err error
	switch userRole {
	case models.RoleClient:
		err = query.Where("client_id = ?", userID).Find(&appointments).Error
	case models.RoleStylist:
		err = query.Where("stylist_id = ?", userID).Find(&appointments).Error
	case models.RoleReceptionist, models.RoleAdmin:
		err = query.Find(&appointments).Error
	default:
		utils.Forbidden(c, "User role not permitted to view appointments")
		return
	}

	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

func canAccessAppointment(appointment *models.Appointment, userID string, role models.Role) bool {
	switch role {
	case models.RoleAdmin, models.RoleReceptionist:
		return true
	case models.RoleStylist:
		return appointment.StylistID == userID
	case models.RoleClient:
		return appointment.ClientID != nil && *appointment.ClientID == userID
	}
	return false
}

// GetAppointmentByID handles fetching a single appointment by its ID.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointmentID := c.Param("id")

	var appointment models.Appointment
	if err := h.DB.Preload("Client").Preload("Stylist").Preload("Service").
		First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	if !canAccessAppointment(&appointment, userID, userRole) {
		utils.Forbidden(c, "You are not authorized to view this appointment")
		return
	}

	utils.Success(c, "Appointment fetched successfully", appointment)
}

// AppointmentPatch represents a partial update. Only these fields are
// patchable; pointers distinguish absent fields from zero values.
type AppointmentPatch struct {
	StartTime *time.Time                `json:"startTime,omitempty"`
	StylistID *string                   `json:"stylistId,omitempty" binding:"omitempty,uuid"`
	ServiceID *string                   `json:"serviceId,omitempty" binding:"omitempty,uuid"`
	Status    *models.AppointmentStatus `json:"status,omitempty" binding:"omitempty,oneof=pending confirmed completed cancelled no-show"`
	Notes     *string                   `json:"notes,omitempty"`
}

// UpdateAppointment applies a partial update (receptionist/admin). Changing
// the time, stylist or service re-runs the conflict guard with the
// appointment itself excluded.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	appointmentID := c.Param("id")

	var patch AppointmentPatch
	if !utils.BindAndValidate(c, &patch) {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	rebook := false
	if patch.StartTime != nil {
		appointment.StartTime = *patch.StartTime
		rebook = true
	}
	if patch.StylistID != nil {
		appointment.StylistID = *patch.StylistID
		rebook = true
	}
	if patch.ServiceID != nil {
		appointment.ServiceID = *patch.ServiceID
		rebook = true
	}
	if patch.Status != nil {
		appointment.Status = *patch.Status
	}
	if patch.Notes != nil {
		appointment.Notes = *patch.Notes
	}
	appointment.ModifiedBy = userID

	if rebook && appointment.Status.IsActive() {
		if err := h.bookInTransaction(c.Request.Context(), &appointment, appointment.ID); err != nil {
			respondSchedulingError(c, err)
			return
		}
	} else {
		if err := h.DB.Save(&appointment).Error; err != nil {
			utils.InternalServerError(c, "Failed to update appointment: "+err.Error())
			return
		}
	}

	utils.Success(c, "Appointment updated successfully", appointment)
}

// UpdateAppointmentStatusRequest represents the request body for updating an
// appointment's status.
type UpdateAppointmentStatusRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required,oneof=pending confirmed completed cancelled no-show"`
	Notes  string                   `json:"notes"`
}

// UpdateAppointmentStatus handles status transitions. Staff may set any
// status; stylists only on their own appointments; clients may only cancel
// their own pending or confirmed bookings.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	appointmentID := c.Param("id")

	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	canUpdate := false
	switch userRole {
	case models.RoleAdmin, models.RoleReceptionist:
		canUpdate = true
	case models.RoleStylist:
		canUpdate = appointment.StylistID == userID
	case models.RoleClient:
		if appointment.ClientID == nil || *appointment.ClientID != userID {
			break
		}
		if req.Status != models.StatusCancelled {
			utils.Forbidden(c, "Clients can only cancel appointments.")
			return
		}
		canUpdate = appointment.Status.IsActive()
	}

	if !canUpdate {
		utils.Forbidden(c, "You are not authorized to update this appointment's status.")
		return
	}

	appointment.Status = req.Status
	appointment.ModifiedBy = userID
	if req.Notes != "" {
		appointment.Notes = req.Notes
	}

	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to update appointment status: "+err.Error())
		return
	}

	h.Logger.Info("appointment status changed",
		zap.String("appointment_id", appointment.ID),
		zap.String("status", string(req.Status)),
		zap.String("by", userID),
	)
	utils.Success(c, "Appointment status updated successfully", appointment)
}

// DeleteAppointment removes an appointment entirely (admin). Status changes
// are the normal lifecycle; deletion is for records created in error.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	appointmentID := c.Param("id")

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete appointment: "+err.Error())
		return
	}

	utils.Success(c, "Appointment deleted successfully", nil)
}

// GetAvailability answers GET /appointments/availability?date=&serviceId=&stylistId=.
func (h *AppointmentHandler) GetAvailability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.BadRequest(c, "date query parameter is required (YYYY-MM-DD)")
		return
	}

	store := &schedulingStore{db: h.DB}
	availability := scheduling.NewAvailability(store, store, h.Clock, h.Hours, h.Logger)

	result, err := availability.Get(c.Request.Context(), scheduling.AvailabilityQuery{
		Date:      date,
		ServiceID: c.Query("serviceId"),
		StylistID: c.Query("stylistId"),
	})
	if respondSchedulingError(c, err) {
		return
	}

	utils.Success(c, "Availability fetched successfully", result)
}
