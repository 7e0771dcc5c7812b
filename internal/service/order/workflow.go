package order

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/resale_market/internal/models"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrAlreadyPaid = errors.New("already paid")
)

// Workflow coordinates bookings, advertisements and wishlist entries.
// AllowRebooking keeps the historical behavior of letting a buyer book
// the same product again while a pending booking exists.
type Workflow struct {
	DB             *gorm.DB
	AllowRebooking bool
}

// AdvertiseItem inserts the single live advertisement for a product.
// The pre-check only buys a friendlier message: the unique index on
// product_id decides races, a losing concurrent insert comes back as
// the same conflict.
func (w *Workflow) AdvertiseItem(ctx context.Context, productID uint) (*models.Advertisement, error) {
	var existing models.Advertisement
	err := w.DB.WithContext(ctx).Where("product_id = ?", productID).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: already advertised", ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("advertise lookup: %w", err)
	}

	ad := models.Advertisement{ProductID: productID}
	if err := w.DB.WithContext(ctx).Create(&ad).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: already advertised", ErrConflict)
		}
		return nil, fmt.Errorf("advertise insert: %w", err)
	}
	return &ad, nil
}

// PlaceBooking creates a pending booking. Paid state is owned by
// FinalizePayment and never taken from the caller.
func (w *Workflow) PlaceBooking(ctx context.Context, b *models.Booking) error {
	if !w.AllowRebooking {
		var existing models.Booking
		err := w.DB.WithContext(ctx).
			Where("buyer_email = ? AND product_id = ? AND paid = ?", b.BuyerEmail, b.ProductID, false).
			First(&existing).Error
		if err == nil {
			return fmt.Errorf("%w: already booked", ErrConflict)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("booking lookup: %w", err)
		}
	}

	b.Paid = false
	b.TransactionID = ""
	if err := w.DB.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("booking insert: %w", err)
	}
	return nil
}

// FinalizePayment settles the booking and cascades: the advertisement
// for the product and the buyer's wishlist entry must not survive a
// sale. The three writes run in one transaction rather than the looser
// fixed-order sequence the old server used, deletes of absent rows are
// no-ops so only the booking row has to match.
func (w *Workflow) FinalizePayment(ctx context.Context, buyerEmail string, bookingID uint, transactionID string) (*models.Booking, error) {
	var booking models.Booking
	err := w.DB.WithContext(ctx).
		Where("id = ? AND buyer_email = ?", bookingID, buyerEmail).
		First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: booking", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("booking lookup: %w", err)
	}
	if booking.Paid {
		return nil, fmt.Errorf("%w: booking %d", ErrAlreadyPaid, booking.ID)
	}

	err = w.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Booking{}).
			Where("id = ? AND paid = ?", booking.ID, false).
			Updates(map[string]interface{}{"paid": true, "transaction_id": transactionID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// settled by a concurrent request between the read above and here
			return fmt.Errorf("%w: booking %d", ErrAlreadyPaid, booking.ID)
		}

		if err := tx.Where("product_id = ?", booking.ProductID).
			Delete(&models.Advertisement{}).Error; err != nil {
			return err
		}
		if err := tx.Where("buyer_email = ? AND product_id = ?", booking.BuyerEmail, booking.ProductID).
			Delete(&models.WishlistItem{}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Product{}).
			Where("id = ?", booking.ProductID).
			Update("sold", true).Error
	})
	if err != nil {
		return nil, err
	}

	booking.Paid = true
	booking.TransactionID = transactionID
	return &booking, nil
}
