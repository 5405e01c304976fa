package dto

import (
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/constants"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/models"
)

type CreateReservationRequest struct {
	PropertyID uint    `json:"propertyId" binding:"required"`
	StartDate  string  `json:"startDate" binding:"required"`
	EndDate    string  `json:"endDate" binding:"required"`
	TotalPrice float64 `json:"totalPrice" binding:"gte=0"`
	Notes      string  `json:"notes"`
}

type ReservationPropertyResponse struct {
	ID            uint    `json:"id"`
	Title         string  `json:"title"`
	Address       string  `json:"address"`
	PricePerNight float64 `json:"pricePerNight"`
}

type ReservationGuestResponse struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type ReservationResponse struct {
	ID         uint                        `json:"id"`
	StartDate  string                      `json:"startDate"`
	EndDate    string                      `json:"endDate"`
	TotalPrice float64                     `json:"totalPrice"`
	Notes      string                      `json:"notes,omitempty"`
	Property   ReservationPropertyResponse `json:"property"`
	Guest      ReservationGuestResponse    `json:"guest"`
}

func NewReservationResponse(reservation models.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:         reservation.ID,
		StartDate:  reservation.StartDate.Format(constants.DateLayout),
		EndDate:    reservation.EndDate.Format(constants.DateLayout),
		TotalPrice: reservation.TotalPrice,
		Notes:      reservation.Notes,
		Property: ReservationPropertyResponse{
			ID:            reservation.Property.ID,
			Title:         reservation.Property.Title,
			Address:       reservation.Property.Address,
			PricePerNight: reservation.Property.PricePerNight,
		},
		Guest: ReservationGuestResponse{
			ID:        reservation.Guest.ID,
			FirstName: reservation.Guest.FirstName,
			LastName:  reservation.Guest.LastName,
			Email:     reservation.Guest.Email,
		},
	}
}
