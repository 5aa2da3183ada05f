package handler

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hegaajarad/cashbox/internal/adapter/storage"
	"github.com/hegaajarad/cashbox/internal/core/security"
)

type DashboardHandler struct {
	Db *pgxpool.Pool
}

// GetDashboard returns entity counts for the operator landing screen.
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	counts, err := storage.FetchCounts(c.Context(), h.Db)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch counts"})
	}
	return c.JSON(counts)
}

type KeyHandler struct {
	Db *pgxpool.Pool
}

type GenerateKeyRequest struct {
	Label string `json:"label"`
}

// GenerateKey issues an operator API key. The raw key is returned
// once; only its hash is stored.
func (h *KeyHandler) GenerateKey(c *fiber.Ctx) error {
	var req GenerateKeyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	realKey, keyHash, err := security.GenerateAPIKey()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Crypto error"})
	}

	if err := storage.SaveAPIKey(c.Context(), h.Db, keyHash, "cb_live_", req.Label); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save key"})
	}

	return c.JSON(fiber.Map{
		"api_key": realKey,
		"warning": "Save this now! We won't show it again.",
	})
}
