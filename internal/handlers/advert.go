package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/resale_market/internal/logging"
	"github.com/Skotchmaster/resale_market/internal/models"
	"github.com/Skotchmaster/resale_market/internal/mykafka"
	"github.com/Skotchmaster/resale_market/internal/service/order"
)

type AdvertHandler struct {
	DB       *gorm.DB
	Workflow *order.Workflow
	Producer *mykafka.Producer
}

func (h *AdvertHandler) Advertise(c echo.Context) error {
	var req struct {
		ProductID uint `json:"productId"`
	}
	if err := c.Bind(&req); err != nil || req.ProductID == 0 {
		return statusFail(c, "invalid request body")
	}

	ad, err := h.Workflow.AdvertiseItem(c.Request().Context(), req.ProductID)
	if errors.Is(err, order.ErrConflict) {
		return statusFail(c, "already advertised")
	}
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("advertise failed", "error", err)
		return statusFail(c, "could not advertise product")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "product_events", fmt.Sprint(ad.ProductID), map[string]interface{}{
		"type":      "product_advertised",
		"productID": ad.ProductID,
	}); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish failed", "error", err)
	}

	return statusData(c, ad)
}

// GetAdvertised joins live ads to their still-unsold products.
func (h *AdvertHandler) GetAdvertised(c echo.Context) error {
	var products []models.Product
	if err := h.DB.WithContext(c.Request().Context()).
		Model(&models.Product{}).
		Joins("JOIN advertisements ON advertisements.product_id = products.id").
		Where("products.sold = ?", false).
		Find(&products).Error; err != nil {
		return statusFail(c, "could not load advertised products")
	}
	return statusData(c, products)
}
