package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/resale_market/internal/hash"
	"github.com/Skotchmaster/resale_market/internal/logging"
	"github.com/Skotchmaster/resale_market/internal/models"
	"github.com/Skotchmaster/resale_market/internal/mykafka"
)

type UserHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

func (h *UserHandler) publish(c echo.Context, key string, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "user_events", key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish failed", "error", err)
	}
}

func (h *UserHandler) CheckUser(c echo.Context) error {
	email := c.QueryParam("email")

	var user models.User
	err := h.DB.WithContext(c.Request().Context()).Where("email = ?", email).First(&user).Error
	if err == nil {
		return statusOK(c, "User already exists!")
	}
	return statusFail(c, "User doesn't exist!")
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	var req struct {
		Email    string      `json:"email"`
		Name     string      `json:"name"`
		Role     models.Role `json:"role"`
		Password string      `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return statusFail(c, "invalid request body")
	}

	if req.Role == "" {
		req.Role = models.RoleBuyer
	}
	if !req.Role.Valid() || req.Email == "" {
		return statusFail(c, "An error occurred! Please register again!")
	}

	user := models.User{
		Email: req.Email,
		Name:  req.Name,
		Role:  req.Role,
	}
	if req.Password != "" {
		hashed, err := hash.HashPassword(req.Password)
		if err != nil {
			return statusFail(c, "An error occurred! Please register again!")
		}
		user.PasswordHash = hashed
	}

	if err := h.DB.WithContext(c.Request().Context()).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return statusFail(c, "User already exists!")
		}
		return statusFail(c, "An error occurred! Please register again!")
	}

	h.publish(c, user.Email, map[string]interface{}{
		"type":  "user_created",
		"email": user.Email,
		"role":  user.Role,
	})

	return statusOK(c, "Your account has been created")
}

func (h *UserHandler) GetUser(c echo.Context) error {
	email := c.QueryParam("email")

	var user models.User
	err := h.DB.WithContext(c.Request().Context()).Where("email = ?", email).First(&user).Error
	if err != nil {
		return statusData(c, nil)
	}
	return statusData(c, user)
}

// GetUsers lists identities of one role, admin only.
func (h *UserHandler) GetUsers(c echo.Context) error {
	role := models.Role(c.QueryParam("type"))

	var users []models.User
	if err := h.DB.WithContext(c.Request().Context()).Where("role = ?", role).Find(&users).Error; err != nil {
		return statusFail(c, "could not load users")
	}
	return c.JSON(200, echo.Map{"status": true, "allData": users})
}

// VerifySeller flips the one-way verified bit.
func (h *UserHandler) VerifySeller(c echo.Context) error {
	email := c.QueryParam("email")

	res := h.DB.WithContext(c.Request().Context()).
		Model(&models.User{}).
		Where("email = ?", email).
		Update("verified", true)
	if res.Error != nil {
		return statusFail(c, "could not verify user")
	}
	if res.RowsAffected == 0 {
		return statusFail(c, "user not found")
	}

	h.publish(c, email, map[string]interface{}{
		"type":  "seller_verified",
		"email": email,
	})

	return statusOK(c, "User verified successfully")
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	email := c.QueryParam("email")

	res := h.DB.WithContext(c.Request().Context()).Where("email = ?", email).Delete(&models.User{})
	if res.Error != nil {
		return statusFail(c, "could not delete user")
	}
	if res.RowsAffected == 0 {
		return statusFail(c, "user not found")
	}
	return statusOK(c, "User deleted successfully")
}
