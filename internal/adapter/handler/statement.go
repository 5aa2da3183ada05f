package handler

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/hegaajarad/cashbox/internal/adapter/storage"
	"github.com/hegaajarad/cashbox/internal/core/ledger"
)

// StatementHandler exports a cash box's full transaction history as a
// downloadable CSV statement.
type StatementHandler struct {
	Boxes      CashBoxStore
	Customers  CustomerStore
	Currencies CurrencyStore
	Txns       TransactionStore
	Ledger     ReportService
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	unsafeRe     = regexp.MustCompile(`[\\/:*?"<>|]`)
)

// sanitizeFilename keeps unicode letters/numbers but strips path and
// header-unsafe characters.
func sanitizeFilename(name string) string {
	name = whitespaceRe.ReplaceAllString(name, "_")
	name = strings.Trim(unsafeRe.ReplaceAllString(name, ""), "._ ")
	if name == "" {
		return "Unnamed"
	}
	return name
}

func (h *StatementHandler) GetStatement(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid CashBox ID"})
	}

	box, err := h.Boxes.GetByID(c.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "CashBox not found"})
	}
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch cashbox"})
	}

	customer, err := h.Customers.GetByID(c.Context(), box.CustomerID)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch customer"})
	}

	cur, err := h.Currencies.FetchCurrency(c.Context(), box.CurrencyCode)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch currency"})
	}
	if cur == nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Currency " + box.CurrencyCode + " is not configured"})
	}

	txns, err := h.Txns.ListForCashBoxDesc(c.Context(), id)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch transactions"})
	}

	balance, err := h.Ledger.CashBoxBalance(c.Context(), id)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Could not compute balance"})
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"id", "date", "direction", "amount", "note"})
	for _, t := range txns {
		w.Write([]string{
			t.ID.String(),
			t.CreatedAt.Format(time.RFC3339),
			string(t.Direction),
			t.Amount.String(),
			t.Note,
		})
	}
	w.Write([]string{"", "", "BALANCE", ledger.Display(balance, cur), cur.Code})
	w.Flush()
	if err := w.Error(); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Could not write statement"})
	}

	// CustomerName_BoxLabel_Date.csv, safe for HTTP headers and
	// filesystems.
	filename := fmt.Sprintf("%s_%s_%s.csv",
		sanitizeFilename(customer.Name),
		sanitizeFilename(box.Label()),
		time.Now().Format("20060102_1504"),
	)

	c.Set("Content-Type", "text/csv; charset=utf-8")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`,
		filename, url.PathEscape(filename)))
	return c.Send(buf.Bytes())
}
