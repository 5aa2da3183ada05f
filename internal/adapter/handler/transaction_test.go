package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hegaajarad/cashbox/internal/core/domain"
)

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func setupTransactionApp(webhookURL string) (*fiber.App, *fakeTransactionStore) {
	txns := newFakeTransactionStore()
	h := &TransactionHandler{Store: txns, WebhookURL: webhookURL}

	app := fiber.New()
	app.Post("/v1/transactions", h.CreateTransaction)
	app.Get("/v1/transactions/:id", h.GetTransaction)
	return app, txns
}

func TestCreateTransaction(t *testing.T) {
	app, txns := setupTransactionApp("")
	boxID := uuid.New()
	txns.boxes[boxID] = true

	resp := postJSON(t, app, "/v1/transactions", CreateTransactionRequest{
		CashBoxID: boxID.String(),
		Direction: "DEPOSIT",
		Amount:    "100.123456",
		Note:      "opening float",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created domain.Transaction
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &created))

	assert.Equal(t, boxID, created.CashBoxID)
	assert.Equal(t, domain.Deposit, created.Direction)
	// Stored at full entered precision, no quantization.
	assert.True(t, created.Amount.Equal(dec("100.123456")), "got %s", created.Amount)
}

func TestCreateTransaction_Rejections(t *testing.T) {
	app, txns := setupTransactionApp("")
	boxID := uuid.New()
	txns.boxes[boxID] = true

	tests := []struct {
		name       string
		req        CreateTransactionRequest
		wantStatus int
	}{
		{
			name:       "negative amount",
			req:        CreateTransactionRequest{CashBoxID: boxID.String(), Direction: "DEPOSIT", Amount: "-5"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "zero amount",
			req:        CreateTransactionRequest{CashBoxID: boxID.String(), Direction: "WITHDRAW", Amount: "0"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unparseable amount",
			req:        CreateTransactionRequest{CashBoxID: boxID.String(), Direction: "DEPOSIT", Amount: "ten"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad direction",
			req:        CreateTransactionRequest{CashBoxID: boxID.String(), Direction: "TRANSFER", Amount: "5"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad cashbox id",
			req:        CreateTransactionRequest{CashBoxID: "nope", Direction: "DEPOSIT", Amount: "5"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown cashbox",
			req:        CreateTransactionRequest{CashBoxID: uuid.NewString(), Direction: "DEPOSIT", Amount: "5"},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, app, "/v1/transactions", tt.req)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}

	assert.Empty(t, txns.txns, "no rejected transaction may be recorded")
}

func TestCreateTransaction_QueuesWebhook(t *testing.T) {
	app, txns := setupTransactionApp("https://example.com/hooks")
	boxID := uuid.New()
	txns.boxes[boxID] = true

	resp := postJSON(t, app, "/v1/transactions", CreateTransactionRequest{
		CashBoxID: boxID.String(), Direction: "WITHDRAW", Amount: "3.50",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.Len(t, txns.webhook.payloads, 1)
	assert.Equal(t, "https://example.com/hooks", txns.webhook.url)

	var event struct {
		Event string `json:"event"`
		Data  struct {
			Amount    string `json:"amount"`
			Direction string `json:"direction"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(txns.webhook.payloads[0], &event))
	assert.Equal(t, "transaction.created", event.Event)
	assert.Equal(t, "WITHDRAW", event.Data.Direction)
	assert.Equal(t, "3.5", event.Data.Amount)
}

func TestGetTransaction(t *testing.T) {
	app, txns := setupTransactionApp("")
	boxID := uuid.New()
	txns.boxes[boxID] = true

	created := postJSON(t, app, "/v1/transactions", CreateTransactionRequest{
		CashBoxID: boxID.String(), Direction: "DEPOSIT", Amount: "25",
	})
	require.Equal(t, http.StatusCreated, created.StatusCode)
	var txn domain.Transaction
	raw, _ := io.ReadAll(created.Body)
	require.NoError(t, json.Unmarshal(raw, &txn))

	req := httptest.NewRequest(http.MethodGet, "/v1/transactions/"+txn.ID.String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/v1/transactions/"+uuid.NewString(), nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
