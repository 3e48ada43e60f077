package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wanderlust/wanderlust-backend/app/controllers"
)

func RegisterPaymentRoutes(app *fiber.App) {
	app.Get("/payments", controllers.PaymentPage)
	app.Post("/fake-payment-success", controllers.FakePaymentSuccess)
	app.Post("/fake-payment-failure", controllers.FakePaymentFailure)
}
