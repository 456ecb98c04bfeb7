package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"antrian/internal/model"
	"antrian/internal/repository"
)

// ServiceHandler serves /api/layanan.
type ServiceHandler struct {
	repo repository.ServiceRepository
	log  logrus.FieldLogger
}

// NewServiceHandler creates a layanan handler.
func NewServiceHandler(repo repository.ServiceRepository, log logrus.FieldLogger) *ServiceHandler {
	return &ServiceHandler{repo: repo, log: log}
}

// CreateServiceRequest is the body of POST /api/layanan.
type CreateServiceRequest struct {
	Name string `json:"nama_layanan" validate:"required"`
}

// UpdateServiceRequest is the body of PUT /api/layanan.
type UpdateServiceRequest struct {
	ID   uint   `json:"id" validate:"required"`
	Name string `json:"nama_layanan" validate:"required"`
}

// List godoc
// @Summary List services
// @Tags layanan
// @Produce json
// @Security CookieAuth
// @Success 200 {array} model.Service
// @Failure 500 {object} errors.ErrorResponse
// @Router /layanan [get]
func (h *ServiceHandler) List(c echo.Context) error {
	services, err := h.repo.List(c.Request().Context())
	if err != nil {
		return failure(c, h.log, err, "Failed to fetch layanan")
	}
	return c.JSON(http.StatusOK, services)
}

// Create godoc
// @Summary Add a service
// @Tags layanan
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body CreateServiceRequest true "Service data"
// @Success 201 {object} CreatedResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /layanan [post]
func (h *ServiceHandler) Create(c echo.Context) error {
	var req CreateServiceRequest
	if httpErr := bindAndValidate(c, &req, "nama_layanan is required"); httpErr != nil {
		return httpErr
	}

	service := &model.Service{Name: req.Name}
	if err := h.repo.Create(c.Request().Context(), service); err != nil {
		return failure(c, h.log, err, "Failed to add layanan")
	}
	return c.JSON(http.StatusCreated, CreatedResponse{ID: service.ID, Message: "Layanan added successfully"})
}

// Update godoc
// @Summary Rename a service
// @Tags layanan
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body UpdateServiceRequest true "Service data"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /layanan [put]
func (h *ServiceHandler) Update(c echo.Context) error {
	var req UpdateServiceRequest
	if httpErr := bindAndValidate(c, &req, "ID and nama_layanan are required"); httpErr != nil {
		return httpErr
	}

	rows, err := h.repo.Update(c.Request().Context(), &model.Service{ID: req.ID, Name: req.Name})
	if err != nil {
		return failure(c, h.log, err, "Failed to update layanan")
	}
	warnIfMissing(c, h.log, rows, "layanan", req.ID)
	return c.JSON(http.StatusOK, MessageResponse{Message: "Layanan updated successfully"})
}

// Delete godoc
// @Summary Delete a service
// @Description Queue entries of the service are removed and doctors assigned to it lose the assignment.
// @Tags layanan
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body IDRequest true "Service id"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /layanan [delete]
func (h *ServiceHandler) Delete(c echo.Context) error {
	var req IDRequest
	if httpErr := bindAndValidate(c, &req, "ID is required"); httpErr != nil {
		return httpErr
	}

	rows, err := h.repo.Delete(c.Request().Context(), req.ID)
	if err != nil {
		return failure(c, h.log, err, "Failed to delete layanan")
	}
	warnIfMissing(c, h.log, rows, "layanan", req.ID)
	return c.JSON(http.StatusOK, MessageResponse{Message: "Layanan deleted successfully"})
}
