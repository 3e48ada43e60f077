package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wanderlust/wanderlust-backend/app/controllers"
	"github.com/wanderlust/wanderlust-backend/pkg/middleware"
)

func RegisterListingRoutes(app *fiber.App) {
	app.Get("/", controllers.GetAllListings)
	app.Get("/listings", controllers.GetAllListings)
	app.Get("/listings/new", middleware.RequireLogin(), controllers.NewListingForm)
	app.Post("/listings", middleware.RequireLogin(), controllers.CreateListing)
	app.Get("/listings/:id", controllers.ShowListing)
	app.Get("/listings/:id/edit", middleware.RequireLogin(), controllers.EditListingForm)
	app.Put("/listings/:id", middleware.RequireLogin(), controllers.UpdateListing)
	app.Delete("/listings/:id", middleware.RequireLogin(), controllers.DeleteListing)

	app.Get("/listings/:id/book", middleware.RequireLogin(), controllers.BookingQuote)
	app.Post("/listings/:id/book", middleware.RequireLogin(), controllers.CreateBooking)

	app.Post("/listings/:id/reviews", middleware.RequireLogin(), controllers.CreateReview)
	app.Delete("/listings/:id/reviews/:reviewId", middleware.RequireLogin(), controllers.DeleteReview)
}
