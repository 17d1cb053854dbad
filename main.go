package main

import (
	"event_manager/database"
	"event_manager/helper"
	"event_manager/router"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // đủ cho upload avatar/banner
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173",
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()

	helper.StartPromotionStatusScheduler()
	defer helper.StopPromotionStatusScheduler()
	helper.StartAppointmentScheduler()
	defer helper.StopAppointmentScheduler()

	router.SetupRoutes(app)
	log.Fatal(app.Listen(":8002"))
}
