package handlers

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/resale_market/internal/models"
)

type WishlistHandler struct {
	DB *gorm.DB
}

func (h *WishlistHandler) Add(c echo.Context) error {
	var req struct {
		Email     string `json:"email"`
		ProductID uint   `json:"productId"`
	}
	if err := c.Bind(&req); err != nil || req.Email == "" || req.ProductID == 0 {
		return statusFail(c, "invalid request body")
	}

	item := models.WishlistItem{BuyerEmail: req.Email, ProductID: req.ProductID}
	if err := h.DB.WithContext(c.Request().Context()).Create(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return statusFail(c, "already in wishlist")
		}
		return statusFail(c, "could not add to wishlist")
	}
	return statusData(c, item)
}

func (h *WishlistHandler) Get(c echo.Context) error {
	email := c.QueryParam("email")

	var items []models.WishlistItem
	if err := h.DB.WithContext(c.Request().Context()).
		Where("buyer_email = ?", email).
		Find(&items).Error; err != nil {
		return statusFail(c, "could not load wishlist")
	}
	return statusData(c, items)
}

func (h *WishlistHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return statusFail(c, "invalid wishlist id")
	}

	res := h.DB.WithContext(c.Request().Context()).Delete(&models.WishlistItem{}, id)
	if res.Error != nil {
		return statusFail(c, "could not remove wishlist item")
	}
	if res.RowsAffected == 0 {
		return statusFail(c, "wishlist item not found")
	}
	return statusOK(c, "Removed from wishlist")
}
