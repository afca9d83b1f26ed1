package handlers

import (
	"net/http"

	"hebelki/middleware"
	"hebelki/models"
	"hebelki/services/booking"
	"hebelki/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the public reservation boundary: availability,
// hold placement and hold confirmation. These are the same operations the
// agent's tools call; the handlers only translate HTTP to the reservation
// service and its failure codes back to statuses.
type BookingHandler struct {
	Reservations booking.ReservationService
}

func NewBookingHandler(reservations booking.ReservationService) *BookingHandler {
	return &BookingHandler{Reservations: reservations}
}

func tenantOf(c *gin.Context) *models.Business {
	val, _ := c.Get(middleware.BusinessKey)
	biz, _ := val.(*models.Business)
	return biz
}

// reservationStatus maps a ReservationError code to its HTTP status.
// Conflicts and expired holds are 409: expected outcomes the client should
// react to, not server faults.
func reservationStatus(code string) int {
	switch code {
	case booking.CodeSlotUnavailable, booking.CodeHoldExpired:
		return http.StatusConflict
	case booking.CodeNotFound:
		return http.StatusNotFound
	case booking.CodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondReservationError(c *gin.Context, err error) {
	if re := booking.AsReservationError(err); re != nil {
		c.JSON(reservationStatus(re.Code), gin.H{
			"code":  re.Code,
			"error": re.Message,
		})
		return
	}
	utils.GetLogger().Error("Reservation request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"code":  booking.CodeInternal,
		"error": "internal error",
	})
}

// AvailabilityHandler lists the open slots of one service on one day.
// GET /api/:business/availability?serviceId=&date=&staffId=
func (h *BookingHandler) AvailabilityHandler(c *gin.Context) {
	biz := tenantOf(c)
	req := booking.AvailabilityRequest{
		ServiceID: c.Query("serviceId"),
		StaffID:   c.Query("staffId"),
		Date:      c.Query("date"),
	}
	resp, err := h.Reservations.CheckAvailability(c.Request.Context(), biz, req)
	if err != nil {
		respondReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

type createHoldRequest struct {
	ServiceID           string `json:"serviceId" binding:"required"`
	StaffID             string `json:"staffId"`
	StartsAt            string `json:"startsAt" binding:"required"`
	HoldDurationMinutes int    `json:"holdDurationMinutes"`
}

// CreateHoldHandler places a provisional reservation.
// POST /api/:business/holds
func (h *BookingHandler) CreateHoldHandler(c *gin.Context) {
	biz := tenantOf(c)
	var req createHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	res, err := h.Reservations.CreateHold(c.Request.Context(), biz, booking.HoldRequest{
		ServiceID:  req.ServiceID,
		StaffID:    req.StaffID,
		StartsAt:   req.StartsAt,
		TTLMinutes: req.HoldDurationMinutes,
	})
	if err != nil {
		respondReservationError(c, err)
		return
	}

	// The staff id echoed here is the resolved one; auto-assignment may have
	// picked a different member than the caller guessed.
	c.JSON(http.StatusCreated, gin.H{
		"holdId":    res.Hold.ID,
		"expiresAt": res.Hold.ExpiresAt,
		"startsAt":  res.Hold.StartsAt,
		"endsAt":    res.Hold.EndsAt,
		"staffId":   res.Hold.StaffID,
		"staffName": res.StaffName,
	})
}

type confirmBookingRequest struct {
	HoldID         string `json:"holdId" binding:"required"`
	CustomerName   string `json:"customerName" binding:"required"`
	CustomerEmail  string `json:"customerEmail" binding:"required"`
	CustomerPhone  string `json:"customerPhone"`
	Notes          string `json:"notes"`
	IdempotencyKey string `json:"idempotencyKey"`
}

// ConfirmBookingHandler promotes a live hold into a confirmed booking.
// POST /api/:business/confirm
func (h *BookingHandler) ConfirmBookingHandler(c *gin.Context) {
	biz := tenantOf(c)
	var req confirmBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	b, err := h.Reservations.ConfirmHold(c.Request.Context(), biz, booking.ConfirmRequest{
		HoldID:         req.HoldID,
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
		CustomerPhone:  req.CustomerPhone,
		Notes:          req.Notes,
		IdempotencyKey: req.IdempotencyKey,
		Source:         models.SourceAPI,
		Actor:          middleware.Actor(c),
	})
	if err != nil {
		respondReservationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"bookingId":         b.ID,
		"confirmationToken": b.ConfirmationToken,
		"startsAt":          b.StartsAt,
		"endsAt":            b.EndsAt,
		"staffId":           b.StaffID,
		"status":            b.Status,
	})
}
