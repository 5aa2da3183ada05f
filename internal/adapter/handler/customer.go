package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/hegaajarad/cashbox/internal/adapter/storage"
)

type CustomerHandler struct {
	Store CustomerStore
}

// CreateCustomerRequest defines what the operator sends us
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (h *CustomerHandler) CreateCustomer(c *fiber.Ctx) error {
	var req CreateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Warn("Invalid customer body", "error", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Name == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Name is required"})
	}

	customer, err := h.Store.Create(c.Context(), req.Name, req.Phone)
	if err != nil {
		slog.Error("Failed to create customer", "error", err, "name", req.Name)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create customer"})
	}

	slog.Info("✅ Customer Created", "id", customer.ID, "name", customer.Name)
	return c.Status(http.StatusCreated).JSON(customer)
}

func (h *CustomerHandler) ListCustomers(c *fiber.Ctx) error {
	customers, err := h.Store.List(c.Context())
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch customers"})
	}
	return c.JSON(fiber.Map{"customers": customers})
}

func (h *CustomerHandler) GetCustomer(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid Customer ID"})
	}

	customer, err := h.Store.GetByID(c.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch customer"})
	}
	return c.JSON(customer)
}

// DeleteCustomer removes the customer and, through the database
// cascade, every cash box and transaction it owns.
func (h *CustomerHandler) DeleteCustomer(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid Customer ID"})
	}

	err = h.Store.Delete(c.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}
	if err != nil {
		slog.Error("Failed to delete customer", "error", err, "id", id)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete customer"})
	}

	slog.Info("🗑️ Customer Deleted", "id", id)
	return c.JSON(fiber.Map{"status": "success", "message": "Customer deleted"})
}
