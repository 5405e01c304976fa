package services

import (
	"os"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/emisero8/backend-reserva-alojamiento-openlodge/config"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/errors"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/models"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/services/logger"
)

// These tests need a real postgres instance because the booking path relies
// on FOR UPDATE locking and the daterange exclusion constraint. Point
// TEST_DB_DSN at a scratch database to run them, e.g.
//
//	TEST_DB_DSN="host=localhost user=postgres dbname=openlodge_test sslmode=disable"
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set; skipping database integration tests")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	require.NoError(t, db.Exec("TRUNCATE reservations, property_amenities, properties, amenities, users RESTART IDENTITY CASCADE").Error)
	return db
}

type testEnv struct {
	db           *gorm.DB
	auth         *AuthService
	properties   *PropertyService
	reservations *ReservationService
	amenities    *AmenityService
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	db := openTestDB(t)
	lg := logger.NewDefaultLogger(logger.ErrorLevel)
	return testEnv{
		db:           db,
		auth:         NewAuthService(AuthServiceOptions{DB: db, Logger: lg}),
		properties:   NewPropertyService(PropertyServiceOptions{DB: db, Logger: lg}),
		reservations: NewReservationService(ReservationServiceOptions{DB: db, Logger: lg}),
		amenities:    NewAmenityService(AmenityServiceOptions{DB: db, Logger: lg}),
	}
}

func (e testEnv) registerUser(t *testing.T, email string, role models.Role) models.User {
	t.Helper()
	user, err := e.auth.Register(models.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "secret-password",
		Role:      role,
	})
	require.NoError(t, err)
	return user
}

func (e testEnv) createProperty(t *testing.T, hostEmail string) models.Property {
	t.Helper()
	property, err := e.properties.Create(models.Property{
		Title:         "Cabin by the lake",
		Address:       "1 Lakeside Rd",
		PricePerNight: 120,
		MaxGuests:     4,
	}, nil, hostEmail)
	require.NoError(t, err)
	return property
}

func futureDate(daysAhead int) time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, daysAhead)
}

func TestRegisterRejectsDuplicateNormalizedEmail(t *testing.T) {
	env := newTestEnv(t)

	env.registerUser(t, "Ana@Example.com", models.RoleGuest)

	_, err := env.auth.Register(models.User{
		FirstName: "Ana",
		LastName:  "Clone",
		Email:     "  ana@example.COM ",
		Password:  "another-password",
		Role:      models.RoleGuest,
	})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeDuplicateEmail))
}

func TestAuthenticateNormalizesEmailAndHidesWhichFieldFailed(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "ana@example.com", models.RoleGuest)

	_, err := env.auth.Authenticate(" ANA@example.com ", "secret-password")
	require.NoError(t, err)

	_, badPass := env.auth.Authenticate("ana@example.com", "wrong-password")
	_, badEmail := env.auth.Authenticate("nobody@example.com", "secret-password")
	require.Error(t, badPass)
	require.Error(t, badEmail)
	assert.True(t, errors.HasCode(badPass, errors.ErrCodeInvalidCredentials))
	assert.True(t, errors.HasCode(badEmail, errors.ErrCodeInvalidCredentials))
	assert.Equal(t, badPass.Error(), badEmail.Error())
}

func TestOnlyOwnerMayMutateProperty(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "owner@example.com", models.RoleHost)
	env.registerUser(t, "other@example.com", models.RoleHost)
	property := env.createProperty(t, "owner@example.com")

	updated := property
	updated.Title = "Hijacked"
	_, err := env.properties.Update(property.ID, updated, nil, "other@example.com")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeAccessDenied))

	err = env.properties.Delete(property.ID, "other@example.com")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeAccessDenied))

	// the owner, spelled differently, passes the guard
	_, err = env.properties.Update(property.ID, updated, nil, " OWNER@example.com ")
	require.NoError(t, err)
}

func TestDeletePropertyWithReservationsIsRejected(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "owner@example.com", models.RoleHost)
	env.registerUser(t, "guest@example.com", models.RoleGuest)
	property := env.createProperty(t, "owner@example.com")

	_, err := env.reservations.Create(CreateReservationInput{
		PropertyID: property.ID,
		StartDate:  futureDate(10),
		EndDate:    futureDate(15),
		TotalPrice: 600,
	}, "guest@example.com")
	require.NoError(t, err)

	err = env.properties.Delete(property.ID, "owner@example.com")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeReferentialConflict))
}

func TestBookingConflictBoundaries(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "owner@example.com", models.RoleHost)
	env.registerUser(t, "guest@example.com", models.RoleGuest)
	property := env.createProperty(t, "owner@example.com")

	book := func(startDay, endDay int) error {
		_, err := env.reservations.Create(CreateReservationInput{
			PropertyID: property.ID,
			StartDate:  futureDate(startDay),
			EndDate:    futureDate(endDay),
			TotalPrice: 100,
		}, "guest@example.com")
		return err
	}

	require.NoError(t, book(10, 20))

	for _, overlap := range [][2]int{{12, 18}, {5, 15}, {15, 25}, {5, 25}, {10, 20}} {
		err := book(overlap[0], overlap[1])
		require.Error(t, err, "range [%d,%d) should conflict", overlap[0], overlap[1])
		assert.True(t, errors.HasCode(err, errors.ErrCodeDatesUnavailable))
	}

	// back-to-back ranges share a boundary day but no night
	require.NoError(t, book(20, 25))
	require.NoError(t, book(5, 10))
}

func TestConcurrentBookingAdmitsExactlyOne(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "owner@example.com", models.RoleHost)
	env.registerUser(t, "guest-a@example.com", models.RoleGuest)
	env.registerUser(t, "guest-b@example.com", models.RoleGuest)
	property := env.createProperty(t, "owner@example.com")

	input := CreateReservationInput{
		PropertyID: property.ID,
		StartDate:  futureDate(30),
		EndDate:    futureDate(35),
		TotalPrice: 600,
	}

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, email := range []string{"guest-a@example.com", "guest-b@example.com"} {
		wg.Add(1)
		go func(i int, email string) {
			defer wg.Done()
			_, results[i] = env.reservations.Create(input, email)
		}(i, email)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
		} else {
			assert.True(t, errors.HasCode(err, errors.ErrCodeDatesUnavailable))
		}
	}
	assert.Equal(t, 1, successes)

	var count int64
	require.NoError(t, env.db.Model(&models.Reservation{}).Where("property_id = ?", property.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGuestCancelFreesTheRange(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "owner@example.com", models.RoleHost)
	env.registerUser(t, "guest@example.com", models.RoleGuest)
	env.registerUser(t, "intruder@example.com", models.RoleGuest)
	property := env.createProperty(t, "owner@example.com")

	reservation, err := env.reservations.Create(CreateReservationInput{
		PropertyID: property.ID,
		StartDate:  futureDate(10),
		EndDate:    futureDate(15),
		TotalPrice: 600,
	}, "guest@example.com")
	require.NoError(t, err)

	// someone else's booking is off limits
	err = env.reservations.CancelByGuest(reservation.ID, "intruder@example.com")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeAccessDenied))

	require.NoError(t, env.reservations.CancelByGuest(reservation.ID, "guest@example.com"))

	// the cancelled range can be booked again
	_, err = env.reservations.Create(CreateReservationInput{
		PropertyID: property.ID,
		StartDate:  futureDate(10),
		EndDate:    futureDate(15),
		TotalPrice: 600,
	}, "intruder@example.com")
	require.NoError(t, err)
}

func TestGuestCannotCancelStartedStay(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "owner@example.com", models.RoleHost)
	guest := env.registerUser(t, "guest@example.com", models.RoleGuest)
	property := env.createProperty(t, "owner@example.com")

	// inserted directly: a started stay legitimately exists in the store,
	// it just cannot be created through the booking path after the fact
	started := models.Reservation{
		StartDate:  futureDate(-2),
		EndDate:    futureDate(3),
		TotalPrice: 600,
		PropertyID: property.ID,
		GuestID:    guest.ID,
	}
	require.NoError(t, env.db.Create(&started).Error)

	err := env.reservations.CancelByGuest(started.ID, "guest@example.com")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))

	// the host can still clear it
	require.NoError(t, env.reservations.CancelByHost(started.ID, "owner@example.com"))
}

func TestHostSeesReservationsOnOwnPropertiesOnly(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "owner-a@example.com", models.RoleHost)
	env.registerUser(t, "owner-b@example.com", models.RoleHost)
	env.registerUser(t, "guest@example.com", models.RoleGuest)
	propertyA := env.createProperty(t, "owner-a@example.com")
	propertyB := env.createProperty(t, "owner-b@example.com")

	_, err := env.reservations.Create(CreateReservationInput{
		PropertyID: propertyA.ID,
		StartDate:  futureDate(10),
		EndDate:    futureDate(12),
		TotalPrice: 240,
	}, "guest@example.com")
	require.NoError(t, err)

	_, err = env.reservations.Create(CreateReservationInput{
		PropertyID: propertyB.ID,
		StartDate:  futureDate(10),
		EndDate:    futureDate(12),
		TotalPrice: 240,
	}, "guest@example.com")
	require.NoError(t, err)

	onA, err := env.reservations.ListForHostProperties("owner-a@example.com")
	require.NoError(t, err)
	require.Len(t, onA, 1)
	assert.Equal(t, propertyA.ID, onA[0].PropertyID)

	mine, err := env.reservations.ListByGuest("guest@example.com")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, reservation := range mine {
		assert.Equal(t, "guest@example.com", reservation.Guest.Email)
		assert.NotZero(t, reservation.Property.ID)
	}
}

func TestBookingEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.amenities.SeedDefaults())
	catalog, err := env.amenities.List()
	require.NoError(t, err)

	env.registerUser(t, "marta@example.com", models.RoleHost)
	env.registerUser(t, "diego@example.com", models.RoleGuest)

	property, err := env.properties.Create(models.Property{
		Title:         "Seaside apartment",
		Description:   "Two bedrooms, ocean view",
		Address:       "8 Harbour St",
		PricePerNight: 150,
		MaxGuests:     4,
	}, []int64{int64(catalog[0].ID)}, "marta@example.com")
	require.NoError(t, err)

	booking, err := env.reservations.Create(CreateReservationInput{
		PropertyID: property.ID,
		StartDate:  futureDate(40),
		EndDate:    futureDate(45),
		TotalPrice: 750,
		Notes:      "late arrival",
	}, "diego@example.com")
	require.NoError(t, err)

	// the booking response carries the property and guest it binds
	assert.Equal(t, property.ID, booking.Property.ID)
	assert.Equal(t, "Seaside apartment", booking.Property.Title)
	assert.Equal(t, "diego@example.com", booking.Guest.Email)

	// overlapping request loses, adjacent one fits
	_, err = env.reservations.Create(CreateReservationInput{
		PropertyID: property.ID,
		StartDate:  futureDate(43),
		EndDate:    futureDate(48),
		TotalPrice: 750,
	}, "diego@example.com")
	assert.True(t, errors.HasCode(err, errors.ErrCodeDatesUnavailable))

	followUp, err := env.reservations.Create(CreateReservationInput{
		PropertyID: property.ID,
		StartDate:  futureDate(45),
		EndDate:    futureDate(47),
		TotalPrice: 300,
	}, "diego@example.com")
	require.NoError(t, err)

	onMine, err := env.reservations.ListForHostProperties("marta@example.com")
	require.NoError(t, err)
	assert.Len(t, onMine, 2)

	require.NoError(t, env.reservations.CancelByHost(booking.ID, "marta@example.com"))

	// one reservation still pins the property
	err = env.properties.Delete(property.ID, "marta@example.com")
	assert.True(t, errors.HasCode(err, errors.ErrCodeReferentialConflict))

	require.NoError(t, env.reservations.CancelByGuest(followUp.ID, "diego@example.com"))
	require.NoError(t, env.properties.Delete(property.ID, "marta@example.com"))
}

func TestAmenitySeedAndAttach(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.amenities.SeedDefaults())

	// seeding again must not duplicate the catalog
	require.NoError(t, env.amenities.SeedDefaults())
	catalog, err := env.amenities.List()
	require.NoError(t, err)
	require.Len(t, catalog, 5)

	env.registerUser(t, "owner@example.com", models.RoleHost)
	property, err := env.properties.Create(models.Property{
		Title:         "Loft",
		Address:       "2 Main St",
		PricePerNight: 80,
		MaxGuests:     2,
	}, []int64{int64(catalog[0].ID), int64(catalog[1].ID)}, "owner@example.com")
	require.NoError(t, err)
	assert.Len(t, property.Amenities, 2)

	// the array column round-trips through the store
	fetched, err := env.properties.GetByID(property.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, pq.Int64Array{int64(catalog[0].ID), int64(catalog[1].ID)}, fetched.AmenityIDs)

	// unknown amenity ids fail the whole request
	_, err = env.properties.Create(models.Property{
		Title:         "Loft 2",
		Address:       "3 Main St",
		PricePerNight: 80,
		MaxGuests:     2,
	}, []int64{999999}, "owner@example.com")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))

	property, err = env.properties.AddAmenity(property.ID, catalog[2].ID, "owner@example.com")
	require.NoError(t, err)
	assert.Len(t, property.Amenities, 3)
	assert.Contains(t, property.AmenityIDs, int64(catalog[2].ID))

	// re-attaching must not duplicate the id in the array column
	property, err = env.properties.AddAmenity(property.ID, catalog[2].ID, "owner@example.com")
	require.NoError(t, err)
	assert.Len(t, property.AmenityIDs, 3)
}

func TestCheckAvailability(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "owner@example.com", models.RoleHost)
	env.registerUser(t, "guest@example.com", models.RoleGuest)
	property := env.createProperty(t, "owner@example.com")

	require.NoError(t, env.reservations.CheckAvailability(property.ID, futureDate(10), futureDate(15)))

	_, err := env.reservations.Create(CreateReservationInput{
		PropertyID: property.ID,
		StartDate:  futureDate(10),
		EndDate:    futureDate(15),
		TotalPrice: 600,
	}, "guest@example.com")
	require.NoError(t, err)

	err = env.reservations.CheckAvailability(property.ID, futureDate(12), futureDate(18))
	assert.True(t, errors.HasCode(err, errors.ErrCodeDatesUnavailable))

	// the boundary day is free
	require.NoError(t, env.reservations.CheckAvailability(property.ID, futureDate(15), futureDate(20)))

	err = env.reservations.CheckAvailability(999999, futureDate(10), futureDate(15))
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))

	err = env.reservations.CheckAvailability(property.ID, futureDate(15), futureDate(10))
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
}
