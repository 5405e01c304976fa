package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emisero8/backend-reserva-alojamiento-openlodge/constants"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/dto"
	apperrors "github.com/emisero8/backend-reserva-alojamiento-openlodge/errors"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/middleware"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/models"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/response"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/services"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/services/logger"
)

type ReservationController struct {
	Reservations *services.ReservationService
}

func NewReservationController(db *gorm.DB) ReservationController {
	return ReservationController{
		Reservations: services.NewReservationService(services.ReservationServiceOptions{
			DB:     db,
			Logger: logger.NewDefaultLogger(logger.InfoLevel),
		}),
	}
}

func parseDateField(value, name string) (time.Time, error) {
	parsed, err := time.Parse(constants.DateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, name+" must use the format "+constants.DateLayout, err)
	}
	return parsed, nil
}

func reservationResponses(reservations []models.Reservation) []dto.ReservationResponse {
	out := make([]dto.ReservationResponse, 0, len(reservations))
	for _, reservation := range reservations {
		out = append(out, dto.NewReservationResponse(reservation))
	}
	return out
}

// CreateReservation books a stay on a property for the authenticated guest.
// The nights [startDate, endDate) must be free; conflicting requests get a
// conflict status.
func (r ReservationController) CreateReservation(c *gin.Context) {
	email, ok := middleware.ActingEmail(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req dto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	start, err := parseDateField(req.StartDate, "startDate")
	if err != nil {
		response.FromError(c, err)
		return
	}
	end, err := parseDateField(req.EndDate, "endDate")
	if err != nil {
		response.FromError(c, err)
		return
	}

	reservation, err := r.Reservations.Create(services.CreateReservationInput{
		PropertyID: req.PropertyID,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: req.TotalPrice,
		Notes:      req.Notes,
	}, email)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, dto.NewReservationResponse(reservation))
}

// CheckAvailability answers whether [start, end) is free on a property,
// without booking anything.
func (r ReservationController) CheckAvailability(c *gin.Context) {
	propertyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	start, err := parseDateField(c.Query("start"), "start")
	if err != nil {
		response.FromError(c, err)
		return
	}
	end, err := parseDateField(c.Query("end"), "end")
	if err != nil {
		response.FromError(c, err)
		return
	}

	err = r.Reservations.CheckAvailability(propertyID, start, end)
	if apperrors.HasCode(err, apperrors.ErrCodeDatesUnavailable) {
		response.Success(c, gin.H{"available": false})
		return
	}
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, gin.H{"available": true})
}

// GetMyReservations lists the authenticated guest's bookings.
func (r ReservationController) GetMyReservations(c *gin.Context) {
	email, ok := middleware.ActingEmail(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	reservations, err := r.Reservations.ListByGuest(email)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, reservationResponses(reservations))
}

// GetReservationsOnMyProperties lists every booking placed on the
// authenticated host's listings.
func (r ReservationController) GetReservationsOnMyProperties(c *gin.Context) {
	email, ok := middleware.ActingEmail(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	reservations, err := r.Reservations.ListForHostProperties(email)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, reservationResponses(reservations))
}

// CancelReservation lets the owning host cancel a booking on one of their
// properties.
func (r ReservationController) CancelReservation(c *gin.Context) {
	email, ok := middleware.ActingEmail(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := r.Reservations.CancelByHost(id, email); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, nil)
}

// CancelMyReservation lets a guest cancel their own booking before the
// stay begins.
func (r ReservationController) CancelMyReservation(c *gin.Context) {
	email, ok := middleware.ActingEmail(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := r.Reservations.CancelByGuest(id, email); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, nil)
}
