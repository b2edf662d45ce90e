package api

import (
	v1 "github.com/braddotcoffee/MinimalRoboBanana/internal/api/v1"
	"github.com/gofiber/fiber/v2"
)

const prefixV1 = "/api/v1"

func SetupRoutes(app *fiber.App, handler *v1.Handler) {
	app.Get("/ping", handler.Pong)
	app.Get(prefixV1+"/users/:id/balance", handler.GetPointBalance)
	app.Post(prefixV1+"/users/:id/points", handler.GivePoints)
	app.Get(prefixV1+"/rewards", handler.ListRewards)
	app.Post(prefixV1+"/rewards", handler.CreateReward)
	app.Delete(prefixV1+"/rewards/:name", handler.DeleteReward)
}
