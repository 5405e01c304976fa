package services

import (
	stderrors "errors"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/emisero8/backend-reserva-alojamiento-openlodge/errors"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/models"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/services/logger"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/validator"
)

// Postgres error code for unique_violation.
const pgUniqueViolation = "23505"

type AuthService struct {
	db     *gorm.DB
	logger logger.Logger
}

type AuthServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
}

func NewAuthService(opts AuthServiceOptions) *AuthService {
	return &AuthService{
		db:     opts.DB,
		logger: opts.Logger,
	}
}

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// CheckPassword verifies a plaintext password against its stored hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GetUserByEmail looks a user up by normalized email.
func (s *AuthService) GetUserByEmail(email string) (models.User, error) {
	var user models.User
	result := s.db.Where("email = ?", NormalizeEmail(email)).First(&user)

	if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
		return user, errors.NewAppError(errors.ErrCodeNotFound, "user not found", result.Error)
	}
	if result.Error != nil {
		return user, errors.NewAppError(errors.ErrCodeDBError, "failed to load user", result.Error)
	}

	return user, nil
}

// Register creates a new user. The email is stored normalized and at most
// one user may exist per normalized email; a store-level unique violation is
// translated to the same duplicate error as the pre-check, so a racing
// registration never surfaces as an opaque failure.
func (s *AuthService) Register(input models.User) (models.User, error) {
	if err := validator.ValidateNewUser(input.Email, input.Password, input.Role); err != nil {
		return models.User{}, err
	}

	email := NormalizeEmail(input.Email)
	if _, err := s.GetUserByEmail(email); err == nil {
		return models.User{}, errors.NewAppError(errors.ErrCodeDuplicateEmail, "email is already registered", nil)
	}

	hashedPassword, err := HashPassword(input.Password)
	if err != nil {
		return models.User{}, errors.NewAppError(errors.ErrCodeDBError, "failed to hash password", err)
	}

	user := models.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     email,
		Password:  hashedPassword,
		Role:      input.Role,
	}

	if err := s.db.Create(&user).Error; err != nil {
		var pgErr *pgconn.PgError
		if stderrors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return models.User{}, errors.NewAppError(errors.ErrCodeDuplicateEmail, "email is already registered", err)
		}
		return models.User{}, errors.NewAppError(errors.ErrCodeDBError, "failed to create user", err)
	}

	s.logger.Info("registered user %d (%s)", user.ID, user.Role)
	return user, nil
}

// Authenticate verifies a credential pair. Unknown email and wrong password
// return the same error, revealing nothing about which one failed.
func (s *AuthService) Authenticate(email, password string) (models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return models.User{}, errors.NewAppError(errors.ErrCodeInvalidCredentials, "invalid email or password", nil)
	}

	if !CheckPassword(password, user.Password) {
		return models.User{}, errors.NewAppError(errors.ErrCodeInvalidCredentials, "invalid email or password", nil)
	}

	return user, nil
}

// UpdatePassword re-hashes on write; plaintext never reaches the store.
func (s *AuthService) UpdatePassword(userID uint, newPassword string) error {
	if err := validator.ValidatePassword(newPassword); err != nil {
		return err
	}

	hashedPassword, err := HashPassword(newPassword)
	if err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "failed to hash password", err)
	}

	result := s.db.Model(&models.User{}).Where("id = ?", userID).Update("password", hashedPassword)
	if result.Error != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "failed to update password", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewAppError(errors.ErrCodeNotFound, "user not found", nil)
	}
	return nil
}
