package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/hegaajarad/cashbox/internal/adapter/storage"
	"github.com/hegaajarad/cashbox/internal/core/domain"
)

type ReportHandler struct {
	Customers CustomerStore
	Ledger    ReportService
}

// GetCustomerReport computes per-currency totals and the per-box
// breakdown for one customer. A customer with no boxes gets an empty
// report, not an error.
func (h *ReportHandler) GetCustomerReport(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid Customer ID"})
	}

	customer, err := h.Customers.GetByID(c.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch customer"})
	}

	report, err := h.Ledger.CustomerReport(c.Context(), id)

	var confErr *domain.ConfigurationError
	if errors.As(err, &confErr) {
		// Reference data is broken; refusing beats guessing a precision.
		slog.Error("Report blocked by missing currency config", "customer_id", id, "currency", confErr.CurrencyCode)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": confErr.Error()})
	}
	if err != nil {
		slog.Error("Failed to compute report", "error", err, "customer_id", id)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Could not compute report"})
	}

	return c.JSON(fiber.Map{
		"customer": customer,
		"report":   report,
	})
}
