package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/resale_market/internal/handlers"
	"github.com/Skotchmaster/resale_market/internal/middleware/auth"
	"github.com/Skotchmaster/resale_market/internal/models"
)

type Deps struct {
	DB         *gorm.DB
	Guard      *auth.Guard
	Auth       *handlers.AuthHandler
	Users      *handlers.UserHandler
	Categories *handlers.CategoryHandler
	Products   *handlers.ProductHandler
	Adverts    *handlers.AdvertHandler
	Bookings   *handlers.BookingHandler
	Wishlist   *handlers.WishlistHandler
	Payments   *handlers.PaymentHandler
	Search     *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Products resale server running!")
	})
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.GET("/jwt", d.Auth.GetJWT)
	e.POST("/login", d.Auth.Login)

	e.GET("/checkUser", d.Users.CheckUser)
	e.POST("/user", d.Users.CreateUser)
	e.GET("/user", d.Users.GetUser)
	e.GET("/users", d.Users.GetUsers, d.Guard.RequireAuth, d.Guard.RequireRole(models.RoleAdmin))
	e.PATCH("/user", d.Users.VerifySeller, d.Guard.RequireAuth, d.Guard.RequireRole(models.RoleSeller))
	e.DELETE("/user", d.Users.DeleteUser, d.Guard.RequireAuth, d.Guard.RequireRole(models.RoleAdmin))

	e.GET("/categories", d.Categories.GetCategories)
	e.GET("/category/:id", d.Categories.GetCategoryProducts)

	e.POST("/product", d.Products.CreateProduct, d.Guard.RequireAuth, d.Guard.RequireRole(models.RoleSeller))
	e.GET("/products", d.Products.GetSellerProducts, d.Guard.RequireAuth, d.Guard.RequireRole(models.RoleSeller))
	e.DELETE("/product/:id", d.Products.DeleteProduct, d.Guard.RequireAuth, d.Guard.RequireRole(models.RoleSeller))
	e.PATCH("/product/:id/report", d.Products.ReportProduct)
	e.GET("/reported", d.Products.GetReported, d.Guard.RequireAuth, d.Guard.RequireRole(models.RoleAdmin))

	// TODO: gate /advertise behind a seller token once the frontend
	// starts sending one on this call.
	e.POST("/advertise", d.Adverts.Advertise)
	e.GET("/advertised", d.Adverts.GetAdvertised)

	e.POST("/booking", d.Bookings.CreateBooking)
	e.GET("/orders", d.Bookings.GetOrders, d.Guard.RequireAuth, d.Guard.RequireRole(models.RoleBuyer))
	e.PATCH("/booking", d.Bookings.FinalizeBooking)

	e.POST("/wishlist", d.Wishlist.Add)
	e.GET("/wishlist", d.Wishlist.Get)
	e.DELETE("/wishlist/:id", d.Wishlist.Delete)

	e.POST("/create-payment-intent", d.Payments.CreatePaymentIntent)

	if d.Search != nil {
		e.GET("/search", d.Search.Search)
	}
}
