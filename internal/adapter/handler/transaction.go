package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hegaajarad/cashbox/internal/adapter/storage"
	"github.com/hegaajarad/cashbox/internal/core/domain"
)

type TransactionHandler struct {
	Store TransactionStore
	// WebhookURL receives transaction.created events; empty disables them.
	WebhookURL string
}

// Amounts travel as strings so no precision is lost in JSON floats.
type CreateTransactionRequest struct {
	CashBoxID string `json:"cashbox_id"`
	Direction string `json:"direction"`
	Amount    string `json:"amount"`
	Note      string `json:"note"`
}

func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	var req CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Warn("Invalid transaction body", "error", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	boxID, err := uuid.Parse(req.CashBoxID)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid CashBox ID"})
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid amount"})
	}

	txn, err := h.Store.Create(c.Context(), boxID, domain.Direction(req.Direction), amount, req.Note)

	var invalid *domain.InvalidTransactionError
	if errors.As(err, &invalid) {
		slog.Warn("❌ Transaction rejected", "reason", invalid.Reason, "cashbox_id", boxID)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": invalid.Error()})
	}
	if errors.Is(err, storage.ErrNotFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "CashBox not found"})
	}
	if err != nil {
		slog.Error("Failed to create transaction", "error", err, "cashbox_id", boxID)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create transaction"})
	}

	slog.Info("💰 Transaction Recorded", "id", txn.ID, "cashbox_id", txn.CashBoxID,
		"direction", txn.Direction, "amount", txn.Amount)

	// Queue the event for the background worker instead of calling the
	// subscriber inline.
	if h.WebhookURL != "" {
		payload, err := json.Marshal(map[string]interface{}{
			"event": "transaction.created",
			"data": map[string]interface{}{
				"transaction_id": txn.ID,
				"cashbox_id":     txn.CashBoxID,
				"direction":      txn.Direction,
				"amount":         txn.Amount.String(),
				"note":           txn.Note,
				"timestamp":      time.Now(),
			},
		})
		if err != nil {
			slog.Error("❌ Failed to marshal webhook payload", "error", err)
		} else if err := h.Store.QueueWebhook(c.Context(), h.WebhookURL, payload); err != nil {
			slog.Error("❌ Webhook Queue Error", "error", err)
		} else {
			slog.Info("✅ Webhook queued for Worker!", "transaction_id", txn.ID)
		}
	}

	return c.Status(http.StatusCreated).JSON(txn)
}

// GetTransaction looks a transaction up by ID, the API equivalent of
// the old transaction search screen.
func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid Transaction ID"})
	}

	txn, err := h.Store.GetByID(c.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
	}
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch transaction"})
	}
	return c.JSON(txn)
}

// ListForCashBox returns a box's history newest-first for review.
func (h *TransactionHandler) ListForCashBox(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid CashBox ID"})
	}

	txns, err := h.Store.ListForCashBoxDesc(c.Context(), id)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch history"})
	}
	return c.JSON(fiber.Map{"transactions": txns})
}

// ListForCustomer returns every transaction across a customer's boxes,
// newest-first.
func (h *TransactionHandler) ListForCustomer(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid Customer ID"})
	}

	txns, err := h.Store.ListForCustomerDesc(c.Context(), id)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch history"})
	}
	return c.JSON(fiber.Map{"transactions": txns})
}
