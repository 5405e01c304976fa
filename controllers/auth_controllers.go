package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emisero8/backend-reserva-alojamiento-openlodge/config"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/constants"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/dto"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/middleware"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/models"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/response"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/services"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/services/logger"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(db *gorm.DB) AuthController {
	return AuthController{
		Auth: services.NewAuthService(services.AuthServiceOptions{
			DB:     db,
			Logger: logger.NewDefaultLogger(logger.InfoLevel),
		}),
	}
}

func tokenTTLMinutes() int {
	if raw := config.GetEnv("TOKEN_TTL_MINUTES"); raw != "" {
		if ttl, err := strconv.Atoi(raw); err == nil && ttl > 0 {
			return ttl
		}
	}
	return constants.DefaultTokenTTLMinutes
}

// Login authenticates a credential pair and returns a signed session token
// plus an identity summary.
func (a AuthController) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := a.Auth.Authenticate(input.Email, input.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}

	accessToken, err := services.GenerateToken(services.Identity{
		Email: user.Email,
		Role:  user.Role,
	}, tokenTTLMinutes())
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, gin.H{
		"user_info":   dto.NewUserResponse(user),
		"accessToken": accessToken,
		"role":        user.Role,
	})
}

// Register creates a new user account. Duplicate normalized emails are
// rejected with a conflict.
func (a AuthController) Register(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := a.Auth.Register(models.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  input.Password,
		Role:      models.Role(input.Role),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, dto.NewUserResponse(user))
}

// Logout clears any client cookies. Tokens are stateless, so there is
// nothing to revoke server-side.
func (a AuthController) Logout(c *gin.Context) {
	cookies := c.Request.Cookies()
	for _, cookie := range cookies {
		c.SetCookie(cookie.Name, "", -1, "/", "", cookie.Secure, cookie.HttpOnly)
	}

	response.Success(c, nil)
}

// Profile returns the authenticated user's own record.
func (a AuthController) Profile(c *gin.Context) {
	email, ok := middleware.ActingEmail(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	user, err := a.Auth.GetUserByEmail(email)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, dto.NewUserResponse(user))
}
