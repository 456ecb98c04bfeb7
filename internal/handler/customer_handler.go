package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"antrian/internal/model"
	"antrian/internal/repository"
)

// CustomerHandler serves /api/customers.
type CustomerHandler struct {
	repo repository.CustomerRepository
	log  logrus.FieldLogger
}

// NewCustomerHandler creates a customer handler.
func NewCustomerHandler(repo repository.CustomerRepository, log logrus.FieldLogger) *CustomerHandler {
	return &CustomerHandler{repo: repo, log: log}
}

// CreateCustomerRequest is the body of POST /api/customers.
type CreateCustomerRequest struct {
	Name    string  `json:"nama" validate:"required"`
	Phone   string  `json:"nomor_telepon" validate:"required"`
	Address *string `json:"alamat"`
}

// UpdateCustomerRequest is the body of PUT /api/customers.
type UpdateCustomerRequest struct {
	ID      uint    `json:"id" validate:"required"`
	Name    string  `json:"nama" validate:"required"`
	Phone   string  `json:"nomor_telepon" validate:"required"`
	Address *string `json:"alamat"`
}

// IDRequest is the body of DELETE endpoints.
type IDRequest struct {
	ID uint `json:"id" validate:"required"`
}

// List godoc
// @Summary List customers
// @Tags customers
// @Produce json
// @Security CookieAuth
// @Success 200 {array} model.Customer
// @Failure 500 {object} errors.ErrorResponse
// @Router /customers [get]
func (h *CustomerHandler) List(c echo.Context) error {
	customers, err := h.repo.List(c.Request().Context())
	if err != nil {
		return failure(c, h.log, err, "Failed to fetch customers")
	}
	return c.JSON(http.StatusOK, customers)
}

// Get godoc
// @Summary Get customer by id
// @Tags customers
// @Produce json
// @Security CookieAuth
// @Param id path int true "Customer ID"
// @Success 200 {object} model.Customer
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /customers/{id} [get]
func (h *CustomerHandler) Get(c echo.Context) error {
	id, httpErr := paramID(c)
	if httpErr != nil {
		return httpErr
	}
	customer, err := h.repo.FindByID(c.Request().Context(), id)
	if err != nil {
		return failure(c, h.log, err, "Failed to fetch customer")
	}
	return c.JSON(http.StatusOK, customer)
}

// Create godoc
// @Summary Register a customer
// @Tags customers
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body CreateCustomerRequest true "Customer data"
// @Success 201 {object} CreatedResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /customers [post]
func (h *CustomerHandler) Create(c echo.Context) error {
	var req CreateCustomerRequest
	if httpErr := bindAndValidate(c, &req, "Nama and nomor_telepon are required"); httpErr != nil {
		return httpErr
	}

	customer := &model.Customer{Name: req.Name, Phone: req.Phone, Address: req.Address}
	if err := h.repo.Create(c.Request().Context(), customer); err != nil {
		return failure(c, h.log, err, "Failed to add customer")
	}
	return c.JSON(http.StatusCreated, CreatedResponse{ID: customer.ID, Message: "Customer added successfully"})
}

// Update godoc
// @Summary Update a customer
// @Description Succeeds even when no customer has the id.
// @Tags customers
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body UpdateCustomerRequest true "Customer data"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /customers [put]
func (h *CustomerHandler) Update(c echo.Context) error {
	var req UpdateCustomerRequest
	if httpErr := bindAndValidate(c, &req, "ID, nama, and nomor_telepon are required"); httpErr != nil {
		return httpErr
	}

	rows, err := h.repo.Update(c.Request().Context(), &model.Customer{
		ID:      req.ID,
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		return failure(c, h.log, err, "Failed to update customer")
	}
	warnIfMissing(c, h.log, rows, "customer", req.ID)
	return c.JSON(http.StatusOK, MessageResponse{Message: "Customer updated successfully"})
}

// Delete godoc
// @Summary Delete a customer
// @Description Succeeds even when no customer has the id. Queue entries of the customer are removed too.
// @Tags customers
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body IDRequest true "Customer id"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /customers [delete]
func (h *CustomerHandler) Delete(c echo.Context) error {
	var req IDRequest
	if httpErr := bindAndValidate(c, &req, "ID is required"); httpErr != nil {
		return httpErr
	}

	rows, err := h.repo.Delete(c.Request().Context(), req.ID)
	if err != nil {
		return failure(c, h.log, err, "Failed to delete customer")
	}
	warnIfMissing(c, h.log, rows, "customer", req.ID)
	return c.JSON(http.StatusOK, MessageResponse{Message: "Customer deleted successfully"})
}
