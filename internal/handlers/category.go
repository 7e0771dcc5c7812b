package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/resale_market/internal/models"
)

type CategoryHandler struct {
	DB *gorm.DB
}

func (h *CategoryHandler) GetCategories(c echo.Context) error {
	var categories []models.Category
	if err := h.DB.WithContext(c.Request().Context()).Find(&categories).Error; err != nil {
		return statusFail(c, "could not load categories")
	}
	return statusData(c, categories)
}

// GetCategoryProducts lists what is still buyable in a category.
func (h *CategoryHandler) GetCategoryProducts(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return statusFail(c, "invalid category id")
	}

	var products []models.Product
	if err := h.DB.WithContext(c.Request().Context()).
		Where("category_id = ? AND sold = ?", id, false).
		Find(&products).Error; err != nil {
		return statusFail(c, "could not load products")
	}
	return statusData(c, products)
}
