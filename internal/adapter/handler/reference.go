package handler

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/hegaajarad/cashbox/internal/core/domain"
)

// ReferenceHandler administers the currency and account type reference
// data that must exist before boxes and transactions can use it.
type ReferenceHandler struct {
	Currencies   CurrencyStore
	AccountTypes AccountTypeStore
}

type CreateCurrencyRequest struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	DecimalPlaces int32  `json:"decimal_places"`
}

func (h *ReferenceHandler) CreateCurrency(c *fiber.Ctx) error {
	var req CreateCurrencyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Code == "" || req.Name == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "code and name are required"})
	}
	if req.DecimalPlaces < 0 || req.DecimalPlaces > 8 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "decimal_places must be between 0 and 8"})
	}

	cur, err := h.Currencies.Create(c.Context(), domain.Currency{
		Code:          req.Code,
		Name:          req.Name,
		Symbol:        req.Symbol,
		DecimalPlaces: req.DecimalPlaces,
		IsActive:      true,
	})
	if err != nil {
		slog.Error("Failed to create currency", "error", err, "code", req.Code)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create currency"})
	}

	slog.Info("✅ Currency Registered", "code", cur.Code, "decimal_places", cur.DecimalPlaces)
	return c.Status(http.StatusCreated).JSON(cur)
}

func (h *ReferenceHandler) ListCurrencies(c *fiber.Ctx) error {
	currencies, err := h.Currencies.List(c.Context())
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch currencies"})
	}
	return c.JSON(fiber.Map{"currencies": currencies})
}

type CreateAccountTypeRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (h *ReferenceHandler) CreateAccountType(c *fiber.Ctx) error {
	var req CreateAccountTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Code == "" || req.Name == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "code and name are required"})
	}

	at, err := h.AccountTypes.Create(c.Context(), req.Code, req.Name)
	if err != nil {
		slog.Error("Failed to create account type", "error", err, "code", req.Code)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create account type"})
	}

	slog.Info("✅ Account Type Registered", "code", at.Code)
	return c.Status(http.StatusCreated).JSON(at)
}

func (h *ReferenceHandler) ListAccountTypes(c *fiber.Ctx) error {
	types, err := h.AccountTypes.List(c.Context())
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch account types"})
	}
	return c.JSON(fiber.Map{"account_types": types})
}
