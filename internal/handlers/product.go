package handlers

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/resale_market/internal/logging"
	"github.com/Skotchmaster/resale_market/internal/middleware/auth"
	"github.com/Skotchmaster/resale_market/internal/models"
	"github.com/Skotchmaster/resale_market/internal/mykafka"
	"github.com/Skotchmaster/resale_market/internal/service/search"
)

type ProductHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	Index    string
}

func (h *ProductHandler) publish(c echo.Context, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "product_events", fmt.Sprint(event["productID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish failed", "error", err)
	}
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req struct {
		CategoryID    uint    `json:"categoryId"`
		Name          string  `json:"name"`
		Description   string  `json:"description"`
		OriginalPrice float64 `json:"originalPrice"`
		ResalePrice   float64 `json:"resalePrice"`
		Condition     string  `json:"condition"`
		Location      string  `json:"location"`
		Phone         string  `json:"phone"`
	}
	if err := c.Bind(&req); err != nil {
		return statusFail(c, "invalid request body")
	}
	if req.Name == "" || req.ResalePrice <= 0 {
		return statusFail(c, "name and resale price are required")
	}

	prod := models.Product{
		SellerEmail:   auth.Email(c),
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Description:   req.Description,
		OriginalPrice: req.OriginalPrice,
		ResalePrice:   req.ResalePrice,
		Condition:     req.Condition,
		Location:      req.Location,
		Phone:         req.Phone,
	}
	if err := h.DB.WithContext(c.Request().Context()).Create(&prod).Error; err != nil {
		return statusFail(c, "could not create product")
	}

	if h.ES != nil {
		if err := search.Index(c.Request().Context(), h.ES, h.Index, prod); err != nil {
			logging.FromContext(c.Request().Context()).Error("es index failed", "error", err, "product_id", prod.ID)
		}
	}

	h.publish(c, map[string]interface{}{
		"type":      "product_created",
		"productID": prod.ID,
		"seller":    prod.SellerEmail,
	})

	return statusData(c, prod)
}

func (h *ProductHandler) GetSellerProducts(c echo.Context) error {
	email := c.QueryParam("email")

	var products []models.Product
	if err := h.DB.WithContext(c.Request().Context()).
		Where("seller_email = ?", email).
		Find(&products).Error; err != nil {
		return statusFail(c, "could not load products")
	}
	return statusData(c, products)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return statusFail(c, "invalid product id")
	}

	res := h.DB.WithContext(c.Request().Context()).
		Where("id = ? AND seller_email = ?", id, auth.Email(c)).
		Delete(&models.Product{})
	if res.Error != nil {
		return statusFail(c, "could not delete product")
	}
	if res.RowsAffected == 0 {
		return statusFail(c, "product not found")
	}

	h.publish(c, map[string]interface{}{
		"type":      "product_deleted",
		"productID": id,
	})

	return statusOK(c, "Product deleted successfully")
}

func (h *ProductHandler) ReportProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return statusFail(c, "invalid product id")
	}

	res := h.DB.WithContext(c.Request().Context()).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("reported", true)
	if res.Error != nil {
		return statusFail(c, "could not report product")
	}
	if res.RowsAffected == 0 {
		return statusFail(c, "product not found")
	}
	return statusOK(c, "Product reported")
}

func (h *ProductHandler) GetReported(c echo.Context) error {
	var products []models.Product
	if err := h.DB.WithContext(c.Request().Context()).
		Where("reported = ?", true).
		Find(&products).Error; err != nil {
		return statusFail(c, "could not load products")
	}
	return statusData(c, products)
}
