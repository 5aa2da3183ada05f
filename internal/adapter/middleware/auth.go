package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hegaajarad/cashbox/internal/core/security"
)

// Protected requires a valid operator API key ("Bearer cb_live_...").
// Only the SHA-256 hash of the key is stored, so the lookup is by hash.
func Protected(db *pgxpool.Pool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Missing API Key"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid Header Format"})
		}
		apiKey := parts[1]

		hashedKey := security.HashKey(apiKey)

		var label string
		err := db.QueryRow(c.Context(), "SELECT label FROM api_keys WHERE key_hash = $1", hashedKey).Scan(&label)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid API Key"})
		}

		// Handlers can log which operator key performed the action.
		c.Locals("operator", label)

		return c.Next()
	}
}
