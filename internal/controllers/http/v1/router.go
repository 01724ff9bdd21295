package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/swaggo/swag"

	_ "github.com/Otigef/weather-dashboard/docs"
	"github.com/Otigef/weather-dashboard/internal/services/session"
	"github.com/Otigef/weather-dashboard/pkg/observe"
)

type routes struct {
	session *session.Session
	l       *observe.Logger
}

func NewRouter(
	app *fiber.App,
	s *session.Session,
	l *observe.Logger,
) {
	r := &routes{
		session: s,
		l:       l,
	}

	// Swagger documentation
	app.Get("/swagger/doc.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read Swagger documentation"})
		}

		c.Set("Content-Type", "application/json")
		return c.SendString(doc)
	})

	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	// API routes
	app.Get("/dashboard", r.handleDashboard)
	app.Post("/search", r.handleSearch)
	app.Post("/input", r.handleInput)
	app.Get("/suggestions", r.handleSuggestions)
	app.Post("/favorites/toggle", r.handleToggleFavorite)
	app.Delete("/favorites/:city", r.handleRemoveFavorite)
}
