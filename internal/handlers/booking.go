package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/resale_market/internal/logging"
	"github.com/Skotchmaster/resale_market/internal/models"
	"github.com/Skotchmaster/resale_market/internal/mykafka"
	"github.com/Skotchmaster/resale_market/internal/service/order"
)

type BookingHandler struct {
	DB       *gorm.DB
	Workflow *order.Workflow
	Producer *mykafka.Producer
}

func (h *BookingHandler) publish(c echo.Context, key string, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "booking_events", key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish failed", "error", err)
	}
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req struct {
		Email           string  `json:"email"`
		ProductID       uint    `json:"productId"`
		ProductName     string  `json:"productName"`
		Price           float64 `json:"price"`
		MeetingLocation string  `json:"meetingLocation"`
	}
	if err := c.Bind(&req); err != nil || req.Email == "" || req.ProductID == 0 {
		return statusFail(c, "invalid request body")
	}

	booking := models.Booking{
		BuyerEmail:      req.Email,
		ProductID:       req.ProductID,
		ProductName:     req.ProductName,
		Price:           req.Price,
		MeetingLocation: req.MeetingLocation,
	}
	err := h.Workflow.PlaceBooking(c.Request().Context(), &booking)
	if errors.Is(err, order.ErrConflict) {
		return statusFail(c, "already booked")
	}
	if err != nil {
		logging.FromContext(c.Request().Context()).Error("booking failed", "error", err)
		return statusFail(c, "could not place booking")
	}

	h.publish(c, fmt.Sprint(booking.ID), map[string]interface{}{
		"type":      "booking_created",
		"bookingID": booking.ID,
		"buyer":     booking.BuyerEmail,
		"productID": booking.ProductID,
	})

	return statusData(c, booking)
}

func (h *BookingHandler) GetOrders(c echo.Context) error {
	email := c.QueryParam("email")

	var bookings []models.Booking
	if err := h.DB.WithContext(c.Request().Context()).
		Where("buyer_email = ?", email).
		Find(&bookings).Error; err != nil {
		return statusFail(c, "could not load orders")
	}
	return statusData(c, bookings)
}

// FinalizeBooking settles a booking after the gateway charge went
// through on the client side. The cascade on advertisement and
// wishlist rows happens inside the workflow.
func (h *BookingHandler) FinalizeBooking(c echo.Context) error {
	email := c.QueryParam("email")
	id, err := strconv.Atoi(c.QueryParam("id"))
	if err != nil || email == "" {
		return statusFail(c, "invalid booking reference")
	}

	var req struct {
		TransactionID string `json:"transactionId"`
		Paid          bool   `json:"paid"`
	}
	if err := c.Bind(&req); err != nil || req.TransactionID == "" {
		return statusFail(c, "invalid request body")
	}

	booking, err := h.Workflow.FinalizePayment(c.Request().Context(), email, uint(id), req.TransactionID)
	switch {
	case errors.Is(err, order.ErrNotFound):
		return statusFail(c, "booking not found")
	case errors.Is(err, order.ErrAlreadyPaid):
		return statusFail(c, "booking already paid")
	case err != nil:
		logging.FromContext(c.Request().Context()).Error("finalize failed", "error", err)
		return statusFail(c, "could not complete payment")
	}

	h.publish(c, fmt.Sprint(booking.ID), map[string]interface{}{
		"type":          "booking_settled",
		"bookingID":     booking.ID,
		"buyer":         booking.BuyerEmail,
		"productID":     booking.ProductID,
		"transactionID": booking.TransactionID,
	})

	return statusOK(c, "Payment completed successfully")
}
