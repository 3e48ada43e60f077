package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/wanderlust/wanderlust-backend/pkg/database"
	"github.com/wanderlust/wanderlust-backend/pkg/middleware"
	"github.com/wanderlust/wanderlust-backend/pkg/routes"
	"github.com/wanderlust/wanderlust-backend/pkg/utils"
)

func main() {
	_ = godotenv.Load()

	app := fiber.New(fiber.Config{
		ErrorHandler: utils.ErrorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "http://localhost:3000, http://localhost:8080",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	if _, err := database.InitDB(); err != nil {
		logrus.Fatalf("Failed to connect to the database: %v", err)
	}
	if err := database.Migrate(database.DB); err != nil {
		logrus.Fatalf("Failed to migrate the database: %v", err)
	}

	middleware.InitSessionStore()
	app.Use(middleware.LoadCurrentUser())

	routes.RegisterUserRoutes(app)
	routes.RegisterListingRoutes(app)
	routes.RegisterPaymentRoutes(app)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).SendString("Page Not Found")
	})

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	logrus.Infof("listening on :%s", port)
	logrus.Fatal(app.Listen(":" + port))
}
