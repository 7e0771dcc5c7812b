package models

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleBuyer, RoleSeller:
		return true
	}
	return false
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"uniqueIndex;not null"     json:"email"`
	Name         string `json:"name"`
	Role         Role   `gorm:"not null;default:buyer"   json:"role"`
	Verified     bool   `gorm:"default:false"            json:"verified"`
	PasswordHash string `json:"-"`
}

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"not null"                 json:"name"`
}

type Product struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	SellerEmail   string  `gorm:"index;not null"           json:"seller_email"`
	CategoryID    uint    `gorm:"index;not null"           json:"category_id"`
	Name          string  `gorm:"not null"                 json:"name"`
	Description   string  `json:"description"`
	OriginalPrice float64 `json:"original_price"`
	ResalePrice   float64 `gorm:"not null"                 json:"resale_price"`
	Condition     string  `json:"condition"`
	Location      string  `json:"location"`
	Phone         string  `json:"phone"`
	Sold          bool    `gorm:"default:false"            json:"sold"`
	Reported      bool    `gorm:"default:false"            json:"reported"`
}

// Advertisement marks a product as promoted. The unique index is the
// authority for the one-live-ad-per-product rule; the handler pre-check
// only exists to return a friendlier message.
type Advertisement struct {
	ID        uint `gorm:"primaryKey;autoIncrement"  json:"id"`
	ProductID uint `gorm:"uniqueIndex;not null"      json:"product_id"`
}

type WishlistItem struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"               json:"id"`
	BuyerEmail string `gorm:"uniqueIndex:idx_wishlist_pair;not null" json:"buyer_email"`
	ProductID  uint   `gorm:"uniqueIndex:idx_wishlist_pair;not null" json:"product_id"`
}

// Booking starts unpaid and settles exactly once.
type Booking struct {
	ID              uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	BuyerEmail      string  `gorm:"index;not null"           json:"buyer_email"`
	ProductID       uint    `gorm:"index;not null"           json:"product_id"`
	ProductName     string  `json:"product_name"`
	Price           float64 `json:"price"`
	MeetingLocation string  `json:"meeting_location"`
	Paid            bool    `gorm:"default:false"            json:"paid"`
	TransactionID   string  `json:"transaction_id"`
}
