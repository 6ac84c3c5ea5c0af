package handlers

import (
	"errors"
	"time"

	"salon-app-server/internal/middleware"
	"salon-app-server/internal/models"
	"salon-app-server/internal/scheduling"
	"salon-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DashboardHandler serves role specific overview payloads.
type DashboardHandler struct {
	DB    *gorm.DB
	Clock scheduling.Clock
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(db *gorm.DB, clock scheduling.Clock) *DashboardHandler {
	return &DashboardHandler{DB: db, Clock: clock}
}

// AppointmentSummary is a flattened appointment row for dashboard lists.
type AppointmentSummary struct {
	ID          string                   `json:"id"`
	ClientName  string                   `json:"clientName"`
	StylistName string                   `json:"stylistName"`
	ServiceName string                   `json:"serviceName"`
	StartTime   time.Time                `json:"startTime"`
	Status      models.AppointmentStatus `json:"status"`
	IsWalkIn    bool                     `json:"isWalkIn"`
}

// AppointmentStats groups appointment counts by status.
type AppointmentStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
	NoShow    int64 `json:"noShow"`
}

// StylistRanking ranks a stylist by booking volume.
type StylistRanking struct {
	StylistID             string `json:"stylistId"`
	StylistName           string `json:"stylistName"`
	TotalAppointments     int64  `json:"totalAppointments"`
	CompletedAppointments int64  `json:"completedAppointments"`
}

// ServiceRanking ranks a service by how often it was booked.
type ServiceRanking struct {
	ServiceID   string `json:"serviceId"`
	ServiceName string `json:"serviceName"`
	TimesBooked int64  `json:"timesBooked"`
}

// StylistAvailabilityToday summarizes a stylist's load for today.
type StylistAvailabilityToday struct {
	StylistID         string `json:"stylistId"`
	StylistName       string `json:"stylistName"`
	AppointmentsToday int64  `json:"appointmentsToday"`
	NextAvailableSlot string `json:"nextAvailableSlot"`
}

func summarize(a models.Appointment) AppointmentSummary {
	clientName := a.ClientName
	if !a.IsWalkIn && a.Client != nil {
		clientName = a.Client.Name
	}
	if clientName == "" {
		clientName = "Unknown"
	}
	return AppointmentSummary{
		ID:          a.ID,
		ClientName:  clientName,
		StylistName: a.Stylist.Name,
		ServiceName: a.Service.Name,
		StartTime:   a.StartTime,
		Status:      a.Status,
		IsWalkIn:    a.IsWalkIn,
	}
}

func summarizeAll(appointments []models.Appointment) []AppointmentSummary {
	summaries := make([]AppointmentSummary, len(appointments))
	for i, a := range appointments {
		summaries[i] = summarize(a)
	}
	return summaries
}

// dayBounds returns midnight today and midnight tomorrow in the clock's zone.
func (h *DashboardHandler) dayBounds() (time.Time, time.Time) {
	now := h.Clock.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}

func (h *DashboardHandler) withRelations() *gorm.DB {
	return h.DB.Preload("Client").Preload("Stylist").Preload("Service")
}

// GetDashboard serves the overview for the caller's role. Each role gets a
// different payload.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	_, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	role, _ := middleware.GetUserRoleFromContext(c)

	switch role {
	case models.RoleAdmin:
		h.adminDashboard(c)
	case models.RoleReceptionist:
		h.receptionistDashboard(c)
	case models.RoleStylist:
		h.stylistDashboard(c)
	case models.RoleClient:
		h.clientDashboard(c)
	default:
		utils.Forbidden(c, "Invalid role")
	}
}

// adminDashboard returns salon-wide statistics: appointment counts by
// status, user and service totals, top stylists/services and recent bookings.
func (h *DashboardHandler) adminDashboard(c *gin.Context) {
	var stats AppointmentStats
	counts := []struct {
		status models.AppointmentStatus
		dest   *int64
	}{
		{models.StatusPending, &stats.Pending},
		{models.StatusConfirmed, &stats.Confirmed},
		{models.StatusCompleted, &stats.Completed},
		{models.StatusCancelled, &stats.Cancelled},
		{models.StatusNoShow, &stats.NoShow},
	}
	if err := h.DB.Model(&models.Appointment{}).Count(&stats.Total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count appointments: "+err.Error())
		return
	}
	for _, cnt := range counts {
		if err := h.DB.Model(&models.Appointment{}).Where("status = ?", cnt.status).Count(cnt.dest).Error; err != nil {
			utils.InternalServerError(c, "Failed to count appointments: "+err.Error())
			return
		}
	}

	var totalClients, totalStylists, totalServices, walkIns int64
	h.DB.Model(&models.User{}).Where("role = ?", models.RoleClient).Count(&totalClients)
	h.DB.Model(&models.User{}).Where("role = ?", models.RoleStylist).Count(&totalStylists)
	h.DB.Model(&models.Service{}).Count(&totalServices)
	h.DB.Model(&models.Appointment{}).Where("is_walk_in = ?", true).Count(&walkIns)

	walkInPercentage := 0.0
	if stats.Total > 0 {
		walkInPercentage = float64(walkIns) / float64(stats.Total) * 100
	}

	topStylists, err := h.topStylists(5)
	if err != nil {
		utils.InternalServerError(c, "Failed to rank stylists: "+err.Error())
		return
	}
	topServices, err := h.topServices(5)
	if err != nil {
		utils.InternalServerError(c, "Failed to rank services: "+err.Error())
		return
	}

	var recent []models.Appointment
	if err := h.withRelations().Order("created_at desc").Limit(5).Find(&recent).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch recent appointments: "+err.Error())
		return
	}

	utils.Success(c, "Admin dashboard fetched successfully", gin.H{
		"appointmentsStats":  stats,
		"totalClients":       totalClients,
		"totalStylists":      totalStylists,
		"totalServices":      totalServices,
		"topStylists":        topStylists,
		"topServices":        topServices,
		"walkInPercentage":   walkInPercentage,
		"recentAppointments": summarizeAll(recent),
	})
}

func (h *DashboardHandler) topStylists(limit int) ([]StylistRanking, error) {
	var rankings []StylistRanking
	err := h.DB.Model(&models.User{}).
		Select(`users.id as stylist_id, users.name as stylist_name,
			count(appointments.id) as total_appointments,
			sum(case when appointments.status = ? then 1 else 0 end) as completed_appointments`,
			models.StatusCompleted).
		Joins("LEFT JOIN appointments ON appointments.stylist_id = users.id").
		Where("users.role = ?", models.RoleStylist).
		Group("users.id, users.name").
		Order("total_appointments desc").
		Limit(limit).
		Scan(&rankings).Error
	return rankings, err
}

func (h *DashboardHandler) topServices(limit int) ([]ServiceRanking, error) {
	var rankings []ServiceRanking
	err := h.DB.Model(&models.Service{}).
		Select(`services.id as service_id, services.name as service_name,
			count(appointments.id) as times_booked`).
		Joins("LEFT JOIN appointments ON appointments.service_id = services.id").
		Group("services.id, services.name").
		Order("times_booked desc").
		Limit(limit).
		Scan(&rankings).Error
	return rankings, err
}

// receptionistDashboard returns today's schedule, pending confirmations
// and each stylist's load for the day.
func (h *DashboardHandler) receptionistDashboard(c *gin.Context) {
	dayStart, dayEnd := h.dayBounds()

	var today []models.Appointment
	if err := h.withRelations().
		Where("start_time >= ? AND start_time < ?", dayStart, dayEnd).
		Order("start_time asc").
		Find(&today).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch today's appointments: "+err.Error())
		return
	}

	var pending []models.Appointment
	if err := h.withRelations().
		Where("status = ?", models.StatusPending).
		Order("start_time asc").
		Limit(10).
		Find(&pending).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch pending appointments: "+err.Error())
		return
	}

	var stylists []models.User
	if err := h.DB.Where("role = ? AND is_active = ?", models.RoleStylist, true).
		Order("name asc").Find(&stylists).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch stylists: "+err.Error())
		return
	}

	availability := make([]StylistAvailabilityToday, len(stylists))
	for i, s := range stylists {
		var count int64
		h.DB.Model(&models.Appointment{}).
			Where("stylist_id = ? AND start_time >= ? AND start_time < ?", s.ID, dayStart, dayEnd).
			Count(&count)
		availability[i] = StylistAvailabilityToday{
			StylistID:         s.ID,
			StylistName:       s.Name,
			AppointmentsToday: count,
			NextAvailableSlot: "Available",
		}
	}

	walkInsToday := 0
	for _, a := range today {
		if a.IsWalkIn {
			walkInsToday++
		}
	}

	utils.Success(c, "Receptionist dashboard fetched successfully", gin.H{
		"appointmentsToday":      summarizeAll(today),
		"pendingConfirmations":   summarizeAll(pending),
		"stylistsAvailability":   availability,
		"totalAppointmentsToday": len(today),
		"walkInsToday":           walkInsToday,
	})
}

// stylistDashboard returns the caller's next appointment, today's and the
// coming week's schedule, and the month's completed count.
func (h *DashboardHandler) stylistDashboard(c *gin.Context) {
	stylistID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	now := h.Clock.Now()
	dayStart, dayEnd := h.dayBounds()
	weekEnd := now.AddDate(0, 0, 7)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	activeStatuses := []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}

	var next models.Appointment
	var nextSummary *AppointmentSummary
	err := h.withRelations().
		Where("stylist_id = ? AND start_time >= ? AND status IN ?", stylistID, now, activeStatuses).
		Order("start_time asc").
		First(&next).Error
	if err == nil {
		s := summarize(next)
		nextSummary = &s
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.InternalServerError(c, "Failed to fetch next appointment: "+err.Error())
		return
	}

	var today []models.Appointment
	if err := h.withRelations().
		Where("stylist_id = ? AND start_time >= ? AND start_time < ?", stylistID, dayStart, dayEnd).
		Order("start_time asc").
		Find(&today).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch today's appointments: "+err.Error())
		return
	}

	var upcoming []models.Appointment
	if err := h.withRelations().
		Where("stylist_id = ? AND start_time >= ? AND start_time < ? AND status IN ?",
			stylistID, dayEnd, weekEnd, activeStatuses).
		Order("start_time asc").
		Find(&upcoming).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch upcoming appointments: "+err.Error())
		return
	}

	var completedThisMonth int64
	h.DB.Model(&models.Appointment{}).
		Where("stylist_id = ? AND status = ? AND start_time >= ?", stylistID, models.StatusCompleted, monthStart).
		Count(&completedThisMonth)

	utils.Success(c, "Stylist dashboard fetched successfully", gin.H{
		"nextAppointment":         nextSummary,
		"appointmentsToday":       summarizeAll(today),
		"appointmentsUpcoming":    summarizeAll(upcoming),
		"totalCompletedThisMonth": completedThisMonth,
	})
}

// clientDashboard returns the caller's upcoming and recent past
// appointments plus their most booked service.
func (h *DashboardHandler) clientDashboard(c *gin.Context) {
	clientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	now := h.Clock.Now()
	activeStatuses := []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}

	var upcoming []models.Appointment
	if err := h.withRelations().
		Where("client_id = ? AND start_time >= ? AND status IN ?", clientID, now, activeStatuses).
		Order("start_time asc").
		Find(&upcoming).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch upcoming appointments: "+err.Error())
		return
	}

	var past []models.Appointment
	if err := h.withRelations().
		Where("client_id = ? AND start_time < ?", clientID, now).
		Order("start_time desc").
		Limit(5).
		Find(&past).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch past appointments: "+err.Error())
		return
	}

	var total int64
	h.DB.Model(&models.Appointment{}).Where("client_id = ?", clientID).Count(&total)

	var favorite struct {
		ServiceName string
	}
	var favoriteService *string
	err := h.DB.Model(&models.Appointment{}).
		Select("services.name as service_name").
		Joins("JOIN services ON services.id = appointments.service_id").
		Where("appointments.client_id = ?", clientID).
		Group("services.id, services.name").
		Order("count(appointments.id) desc").
		Limit(1).
		Scan(&favorite).Error
	if err == nil && favorite.ServiceName != "" {
		favoriteService = &favorite.ServiceName
	}

	utils.Success(c, "Client dashboard fetched successfully", gin.H{
		"upcomingAppointments": summarizeAll(upcoming),
		"pastAppointments":     summarizeAll(past),
		"totalAppointments":    total,
		"favoriteService":      favoriteService,
	})
}
