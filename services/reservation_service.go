package services

import (
	stderrors "errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emisero8/backend-reserva-alojamiento-openlodge/errors"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/models"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/services/logger"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/validator"
)

// Postgres error code for exclusion_violation, raised by the
// reservations_no_overlap constraint when a racing insert loses.
const pgExclusionViolation = "23P01"

// Overlaps is the half-open interval test: [aStart, aEnd) and [bStart, bEnd)
// share at least one night iff aStart < bEnd AND aEnd > bStart. Back-to-back
// ranges (one's end equals the other's start) do not overlap. The single
// formula covers full containment and partial overlap on either edge.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

type ReservationService struct {
	db     *gorm.DB
	logger logger.Logger
}

type ReservationServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
}

func NewReservationService(opts ReservationServiceOptions) *ReservationService {
	return &ReservationService{
		db:     opts.DB,
		logger: opts.Logger,
	}
}

// CreateReservationInput carries the validated booking request.
type CreateReservationInput struct {
	PropertyID uint
	StartDate  time.Time
	EndDate    time.Time
	TotalPrice float64
	Notes      string
}

// CheckAvailability decides whether [start, end) may be booked on the
// property, against current persisted state. It is a pre-flight read: the
// booking path re-checks under lock, so a positive answer here is advisory.
func (s *ReservationService) CheckAvailability(propertyID uint, start, end time.Time) error {
	if err := validator.ValidateReservationDates(start, end); err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&models.Property{}).Where("id = ?", propertyID).Count(&count).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "failed to load property", err)
	}
	if count == 0 {
		return errors.NewAppError(errors.ErrCodeNotFound, "property not found", nil)
	}

	return checkAvailability(s.db, propertyID, start, end)
}

func checkAvailability(tx *gorm.DB, propertyID uint, start, end time.Time) error {
	var count int64
	err := tx.Model(&models.Reservation{}).
		Where("property_id = ? AND start_date < ? AND end_date > ?", propertyID, end, start).
		Count(&count).Error
	if err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "failed to check availability", err)
	}
	if count > 0 {
		return errors.NewAppError(errors.ErrCodeDatesUnavailable, "the selected dates are no longer available", nil)
	}
	return nil
}

// Create books [start, end) on a property for the acting guest. The
// availability check and the insert run in one transaction holding a FOR
// UPDATE lock on the property row, so concurrent attempts on the same
// property serialize; the daterange exclusion constraint backstops the
// store, and its violation is reported as unavailable dates, same as losing
// the check.
func (s *ReservationService) Create(input CreateReservationInput, guestEmail string) (models.Reservation, error) {
	if err := validator.ValidateReservationDates(input.StartDate, input.EndDate); err != nil {
		return models.Reservation{}, err
	}
	if input.TotalPrice < 0 {
		return models.Reservation{}, errors.NewAppError(errors.ErrCodeValidation, "totalPrice must not be negative", nil)
	}

	var guest models.User
	if err := s.db.Where("email = ?", NormalizeEmail(guestEmail)).First(&guest).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return models.Reservation{}, errors.NewAppError(errors.ErrCodeNotFound, "guest not found", err)
		}
		return models.Reservation{}, errors.NewAppError(errors.ErrCodeDBError, "failed to load guest", err)
	}

	reservation := models.Reservation{
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		TotalPrice: input.TotalPrice,
		Notes:      input.Notes,
		PropertyID: input.PropertyID,
		GuestID:    guest.ID,
	}

	var property models.Property
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&property, input.PropertyID).Error; err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.NewAppError(errors.ErrCodeNotFound, "property not found", err)
			}
			return errors.NewAppError(errors.ErrCodeDBError, "failed to load property", err)
		}

		if err := checkAvailability(tx, input.PropertyID, input.StartDate, input.EndDate); err != nil {
			return err
		}

		if err := tx.Create(&reservation).Error; err != nil {
			var pgErr *pgconn.PgError
			if stderrors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation {
				return errors.NewAppError(errors.ErrCodeDatesUnavailable, "the selected dates are no longer available", err)
			}
			return errors.NewAppError(errors.ErrCodeDBError, "failed to create reservation", err)
		}
		return nil
	})
	if err != nil {
		return models.Reservation{}, err
	}

	s.logger.Info("created reservation %d on property %d for guest %d", reservation.ID, reservation.PropertyID, guest.ID)
	reservation.Property = property
	reservation.Guest = guest
	return reservation, nil
}

// ListByGuest returns the reservations made by a guest, with the property.
func (s *ReservationService) ListByGuest(guestEmail string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.db.Preload("Property").Preload("Guest").
		Joins("JOIN users ON users.id = reservations.guest_id").
		Where("users.email = ?", NormalizeEmail(guestEmail)).
		Find(&reservations).Error
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "failed to load reservations", err)
	}
	return reservations, nil
}

// ListForHostProperties returns the reservations placed on any property
// owned by the host, with property and guest loaded.
func (s *ReservationService) ListForHostProperties(hostEmail string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.db.Preload("Property").Preload("Guest").
		Joins("JOIN properties ON properties.id = reservations.property_id").
		Joins("JOIN users ON users.id = properties.host_id").
		Where("users.email = ?", NormalizeEmail(hostEmail)).
		Find(&reservations).Error
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "failed to load reservations", err)
	}
	return reservations, nil
}

func (s *ReservationService) getReservation(id uint) (models.Reservation, error) {
	var reservation models.Reservation
	err := s.db.Preload("Property.Host").Preload("Guest").First(&reservation, id).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return reservation, errors.NewAppError(errors.ErrCodeNotFound, "reservation not found", err)
	}
	if err != nil {
		return reservation, errors.NewAppError(errors.ErrCodeDBError, "failed to load reservation", err)
	}
	return reservation, nil
}

// CancelByHost deletes a reservation on behalf of the host of its property.
func (s *ReservationService) CancelByHost(reservationID uint, hostEmail string) error {
	reservation, err := s.getReservation(reservationID)
	if err != nil {
		return err
	}

	if err := Authorize(reservation.Property.Host.Email, hostEmail); err != nil {
		return err
	}

	if err := s.db.Delete(&reservation).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "failed to delete reservation", err)
	}
	s.logger.Info("host cancelled reservation %d", reservationID)
	return nil
}

// CancelByGuest deletes a reservation on behalf of its guest. A stay that
// has already started (or starts today) can no longer be cancelled by the
// guest; only the host can.
func (s *ReservationService) CancelByGuest(reservationID uint, guestEmail string) error {
	reservation, err := s.getReservation(reservationID)
	if err != nil {
		return err
	}

	if err := Authorize(reservation.Guest.Email, guestEmail); err != nil {
		return err
	}

	today := time.Now().Truncate(24 * time.Hour)
	if !reservation.StartDate.After(today) {
		return errors.NewAppError(errors.ErrCodeValidation, "a reservation that has already started cannot be cancelled", nil)
	}

	if err := s.db.Delete(&reservation).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "failed to delete reservation", err)
	}
	s.logger.Info("guest cancelled reservation %d", reservationID)
	return nil
}
