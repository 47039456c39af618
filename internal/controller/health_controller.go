package controller

import "github.com/gofiber/fiber/v2"

type IHealthController interface {
	RegisterRoutes(app *fiber.App)
	Check(ctx *fiber.Ctx) error
}

type healthController struct{}

func NewHealthController() IHealthController {
	return &healthController{}
}

func (c *healthController) RegisterRoutes(app *fiber.App) {
	app.Get("/", c.Check)
}

func (c *healthController) Check(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"message": "Healthy"})
}
