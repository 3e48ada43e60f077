package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wanderlust/wanderlust-backend/app/controllers"
)

func RegisterUserRoutes(app *fiber.App) {
	app.Get("/signup", controllers.SignupForm)
	app.Post("/signup", controllers.UserSignUp)
	app.Get("/login", controllers.LoginForm)
	app.Post("/login", controllers.UserSignIn)
	app.Get("/logout", controllers.UserLogout)
}
