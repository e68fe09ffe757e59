package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hustlenetwork/hustle_backend/controllers"
)

// RegisterVendorRoutes sets up all vendor-offering routes
func RegisterVendorRoutes(e *echo.Echo, db *mongo.Database) {
	vendorController := controllers.NewVendorController(db)

	vendors := e.Group("/api/vendors")
	vendors.POST("", vendorController.CreateVendor)
	vendors.GET("", vendorController.ListVendors)
}
