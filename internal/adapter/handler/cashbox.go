package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/hegaajarad/cashbox/internal/adapter/storage"
	"github.com/hegaajarad/cashbox/internal/core/ledger"
)

type CashBoxHandler struct {
	Store      CashBoxStore
	Currencies CurrencyStore
	Ledger     ReportService
}

type CreateCashBoxRequest struct {
	CustomerID      string `json:"customer_id"`
	CurrencyCode    string `json:"currency_code"`
	AccountTypeCode string `json:"account_type_code"`
	Name            string `json:"name"`
}

func (h *CashBoxHandler) CreateCashBox(c *fiber.Ctx) error {
	var req CreateCashBoxRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid Customer ID"})
	}
	if req.CurrencyCode == "" || req.AccountTypeCode == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "currency_code and account_type_code are required"})
	}

	// The currency must be registered before a box can reference it.
	cur, err := h.Currencies.FetchCurrency(c.Context(), req.CurrencyCode)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Could not verify currency"})
	}
	if cur == nil || !cur.IsActive {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Unknown or inactive currency: " + req.CurrencyCode})
	}

	box, err := h.Store.Create(c.Context(), customerID, req.CurrencyCode, req.AccountTypeCode, req.Name)
	if err != nil {
		slog.Error("Failed to create cashbox", "error", err, "customer_id", customerID)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create cashbox"})
	}

	slog.Info("✅ CashBox Created", "id", box.ID, "customer_id", box.CustomerID, "currency", box.CurrencyCode)
	return c.Status(http.StatusCreated).JSON(box)
}

func (h *CashBoxHandler) GetCashBox(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid CashBox ID"})
	}

	box, err := h.Store.GetByID(c.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "CashBox not found"})
	}
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch cashbox"})
	}
	return c.JSON(box)
}

// GetBalance returns the box's net balance at full precision plus the
// display rendering at the currency's decimal places.
func (h *CashBoxHandler) GetBalance(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid CashBox ID"})
	}

	box, err := h.Store.GetByID(c.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "CashBox not found"})
	}
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch cashbox"})
	}

	balance, err := h.Ledger.CashBoxBalance(c.Context(), id)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Could not compute balance"})
	}

	cur, err := h.Currencies.FetchCurrency(c.Context(), box.CurrencyCode)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch currency"})
	}
	if cur == nil {
		slog.Error("CashBox references unconfigured currency", "cashbox_id", id, "currency", box.CurrencyCode)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Currency " + box.CurrencyCode + " is not configured"})
	}

	return c.JSON(fiber.Map{
		"cashbox_id":    box.ID,
		"currency_code": box.CurrencyCode,
		"balance":       balance,
		"display":       ledger.Display(balance, cur),
	})
}
