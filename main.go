package main

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/facilityhub/facility-rental-app/cron"
	"github.com/facilityhub/facility-rental-app/db"
	"github.com/facilityhub/facility-rental-app/redis"
	"github.com/facilityhub/facility-rental-app/routes"
)

func main() {
	app := fiber.New()
	db.Init()
	redis.InitRedis()
	cron.StartCronJobs()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Hello, World!")
	})
	routes.SetupAuthRoutes(app)
	routes.SetupRBACRoutes(app)
	routes.SetupOwnerRoutes(app)
	routes.SetupRenterRoutes(app)
	routes.SetupAdminRoutes(app)

	app.Listen(":8000")
	fmt.Println("Server started on port 8000")
}
