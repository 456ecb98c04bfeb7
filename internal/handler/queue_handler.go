package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"antrian/internal/service"
)

// QueueHandler serves /api/antrian.
type QueueHandler struct {
	svc service.QueueService
	log logrus.FieldLogger
}

// NewQueueHandler creates a queue handler.
func NewQueueHandler(svc service.QueueService, log logrus.FieldLogger) *QueueHandler {
	return &QueueHandler{svc: svc, log: log}
}

// EnqueueRequest is the body of POST /api/antrian.
type EnqueueRequest struct {
	CustomerID uint `json:"customer_id" validate:"required"`
	ServiceID  uint `json:"layanan_id" validate:"required"`
}

// EnqueueResponse reports the queue number a customer received.
type EnqueueResponse struct {
	ID      uint   `json:"id"`
	Number  int    `json:"nomor_antrian"`
	Message string `json:"message"`
}

// UpdateQueueStatusRequest is the body of PUT /api/antrian.
type UpdateQueueStatusRequest struct {
	ID     uint   `json:"id" validate:"required"`
	Status string `json:"status" validate:"required,oneof=menunggu dipanggil selesai"`
}

// CallNextRequest is the body of POST /api/antrian/next.
type CallNextRequest struct {
	ServiceID uint `json:"layanan_id" validate:"required"`
}

// List godoc
// @Summary List queue entries
// @Tags antrian
// @Produce json
// @Security CookieAuth
// @Param layanan_id query int false "Only entries of this service"
// @Success 200 {array} model.QueueEntry
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /antrian [get]
func (h *QueueHandler) List(c echo.Context) error {
	var serviceID uint
	if raw := c.QueryParam("layanan_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return badRequest("layanan_id must be a number")
		}
		serviceID = uint(id)
	}
	entries, err := h.svc.List(c.Request().Context(), serviceID)
	if err != nil {
		return failure(c, h.log, err, "Failed to fetch antrian")
	}
	return c.JSON(http.StatusOK, entries)
}

// Summary godoc
// @Summary Count queue entries per service and status
// @Tags antrian
// @Produce json
// @Security CookieAuth
// @Success 200 {array} model.QueueSummary
// @Failure 500 {object} errors.ErrorResponse
// @Router /antrian/summary [get]
func (h *QueueHandler) Summary(c echo.Context) error {
	rows, err := h.svc.Summary(c.Request().Context())
	if err != nil {
		return failure(c, h.log, err, "Failed to summarize antrian")
	}
	return c.JSON(http.StatusOK, rows)
}

// Create godoc
// @Summary Put a customer in a service queue
// @Description The entry gets the next number of that service and status "menunggu".
// @Tags antrian
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body EnqueueRequest true "Queue entry"
// @Success 201 {object} EnqueueResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /antrian [post]
func (h *QueueHandler) Create(c echo.Context) error {
	var req EnqueueRequest
	if httpErr := bindAndValidate(c, &req, "customer_id and layanan_id are required"); httpErr != nil {
		return httpErr
	}

	entry, err := h.svc.Enqueue(c.Request().Context(), req.CustomerID, req.ServiceID)
	if err != nil {
		return failure(c, h.log, err, "Failed to add antrian")
	}
	return c.JSON(http.StatusCreated, EnqueueResponse{
		ID:      entry.ID,
		Number:  entry.Number,
		Message: "Antrian added successfully",
	})
}

// CallNext godoc
// @Summary Call the next waiting customer of a service
// @Tags antrian
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body CallNextRequest true "Service id"
// @Success 200 {object} model.QueueEntry
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /antrian/next [post]
func (h *QueueHandler) CallNext(c echo.Context) error {
	var req CallNextRequest
	if httpErr := bindAndValidate(c, &req, "layanan_id is required"); httpErr != nil {
		return httpErr
	}

	entry, err := h.svc.CallNext(c.Request().Context(), req.ServiceID)
	if err != nil {
		return failure(c, h.log, err, "Failed to call next antrian")
	}
	return c.JSON(http.StatusOK, entry)
}

// Update godoc
// @Summary Change the status of a queue entry
// @Tags antrian
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body UpdateQueueStatusRequest true "Status change"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /antrian [put]
func (h *QueueHandler) Update(c echo.Context) error {
	var req UpdateQueueStatusRequest
	if httpErr := bindAndValidate(c, &req, "ID and a valid status are required"); httpErr != nil {
		return httpErr
	}

	rows, err := h.svc.UpdateStatus(c.Request().Context(), req.ID, req.Status)
	if err != nil {
		return failure(c, h.log, err, "Failed to update antrian")
	}
	warnIfMissing(c, h.log, rows, "antrian", req.ID)
	return c.JSON(http.StatusOK, MessageResponse{Message: "Antrian updated successfully"})
}

// Delete godoc
// @Summary Remove a queue entry
// @Tags antrian
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body IDRequest true "Entry id"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /antrian [delete]
func (h *QueueHandler) Delete(c echo.Context) error {
	var req IDRequest
	if httpErr := bindAndValidate(c, &req, "ID is required"); httpErr != nil {
		return httpErr
	}

	rows, err := h.svc.Delete(c.Request().Context(), req.ID)
	if err != nil {
		return failure(c, h.log, err, "Failed to delete antrian")
	}
	warnIfMissing(c, h.log, rows, "antrian", req.ID)
	return c.JSON(http.StatusOK, MessageResponse{Message: "Antrian deleted successfully"})
}
