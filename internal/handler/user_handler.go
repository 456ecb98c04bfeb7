package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"antrian/internal/service"
)

// UserHandler serves /api/users. Routes are admin only.
type UserHandler struct {
	svc service.UserService
	log logrus.FieldLogger
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService, log logrus.FieldLogger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

// CreateUserRequest is the body of POST /api/users.
type CreateUserRequest struct {
	Username    string  `json:"username" validate:"required"`
	Password    string  `json:"password" validate:"required,min=6,max=72"`
	Role        string  `json:"role" validate:"required"`
	FullName    string  `json:"full_name" validate:"required"`
	PhoneNumber *string `json:"phone_number"`
	ServiceID   *uint   `json:"layanan_id"`
}

// ResetPasswordRequest is the body of PUT /api/users/password.
type ResetPasswordRequest struct {
	ID       uint   `json:"id" validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// ListUsers godoc
// @Summary List users with their details
// @Tags users
// @Produce json
// @Security CookieAuth
// @Success 200 {array} service.UserWithDetail
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return failure(c, h.log, err, "Failed to fetch users")
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Security CookieAuth
// @Param id path int true "User ID"
// @Success 200 {object} service.UserWithDetail
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, httpErr := paramID(c)
	if httpErr != nil {
		return httpErr
	}
	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return failure(c, h.log, err, "Failed to fetch user")
	}
	return c.JSON(http.StatusOK, user)
}

// CreateUser godoc
// @Summary Create a staff account
// @Tags users
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body CreateUserRequest true "User data"
// @Success 201 {object} service.UserWithDetail
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if httpErr := bindAndValidate(c, &req, "username, password (6 to 72 characters), role and full_name are required"); httpErr != nil {
		return httpErr
	}

	user, err := h.svc.CreateUser(c.Request().Context(), service.CreateUserInput{
		Username:    req.Username,
		Password:    req.Password,
		Role:        req.Role,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		ServiceID:   req.ServiceID,
	})
	if err != nil {
		return failure(c, h.log, err, "Failed to add user")
	}
	return c.JSON(http.StatusCreated, user)
}

// ResetPassword godoc
// @Summary Set a new password for a user
// @Tags users
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body ResetPasswordRequest true "New password"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/password [put]
func (h *UserHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if httpErr := bindAndValidate(c, &req, "ID and password (6 to 72 characters) are required"); httpErr != nil {
		return httpErr
	}

	if err := h.svc.ResetPassword(c.Request().Context(), req.ID, req.Password); err != nil {
		return failure(c, h.log, err, "Failed to update password")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Password updated successfully"})
}

// DeleteUser godoc
// @Summary Delete a user and its detail
// @Tags users
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body IDRequest true "User id"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	var req IDRequest
	if httpErr := bindAndValidate(c, &req, "ID is required"); httpErr != nil {
		return httpErr
	}

	rows, err := h.svc.DeleteUser(c.Request().Context(), req.ID)
	if err != nil {
		return failure(c, h.log, err, "Failed to delete user")
	}
	warnIfMissing(c, h.log, rows, "user", req.ID)
	return c.JSON(http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}
