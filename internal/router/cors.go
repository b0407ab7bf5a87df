package router

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CorsMiddleware allows the origins listed in CORS_ORIGIN (comma separated),
// or any origin when unset. Content-Disposition is exposed so browsers can
// pick up the statement PDF filename.
func CorsMiddleware() fiber.Handler {
	origins := "*"
	if raw := os.Getenv("CORS_ORIGIN"); strings.TrimSpace(raw) != "" {
		parts := strings.Split(raw, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		origins = strings.Join(parts, ",")
	}

	return cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		ExposeHeaders: "Content-Disposition",
	})
}
