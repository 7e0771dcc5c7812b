package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/resale_market/internal/logging"
	"github.com/Skotchmaster/resale_market/internal/payment"
)

type PaymentHandler struct {
	Gateway payment.Gateway
}

// CreatePaymentIntent obtains the charge handle before any booking
// state is touched, the client finalizes the booking afterwards.
func (h *PaymentHandler) CreatePaymentIntent(c echo.Context) error {
	var req struct {
		ProductResalePrice float64 `json:"productResalePrice"`
	}
	if err := c.Bind(&req); err != nil || req.ProductResalePrice <= 0 {
		return statusFail(c, "invalid price")
	}

	secret, err := h.Gateway.CreateIntent(c.Request().Context(), payment.AmountMinor(req.ProductResalePrice))
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("payment intent failed", "error", err)
		return statusFail(c, "could not create payment intent")
	}

	return c.JSON(http.StatusOK, echo.Map{"clientSecret": secret})
}
