package httpserver

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-Id"

func InitFiberServer(appName string) *fiber.App {
	s := fiber.New(fiber.Config{
		AppName:     appName,
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})

	s.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	s.Use(cors.New())
	s.Use(requestID())
	s.Use(healthcheck.New(healthcheck.Config{
		LivenessEndpoint:  "/manage/health",
		ReadinessEndpoint: "/manage/ready",
	}))

	return s
}

// requestID tags every request so log lines from overlapping fetches can be
// told apart.
func requestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(RequestIDHeader, id)
		c.Set(RequestIDHeader, id)
		return c.Next()
	}
}
