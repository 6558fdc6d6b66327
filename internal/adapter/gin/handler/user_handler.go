package handler

import (
	"errors"
	"io"
	"net/http"

	"usuarios-service/internal/usecase/user"
	apperrors "usuarios-service/pkg/errors"
	"usuarios-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.UserUsecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.UserUsecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// UserRequest represents the HTTP request body for creating or updating a user.
// Fields keep their raw JSON values and are typed by the schema. Absent or
// null fields stay nil.
type UserRequest struct {
	Name any `json:"name"`
	Age  any `json:"age"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse represents a plain confirmation
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateUser handles POST /usuarios
func (h *UserHandler) CreateUser(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.WithContext(ctx, h.log)

	req, ok := h.bind(c)
	if !ok {
		return
	}

	resp, err := h.uc.CreateUser(ctx, user.CreateUserRequest{
		Name: req.Name,
		Age:  req.Age,
	})
	if err != nil {
		log.Warn("Gin CreateUser failed", zap.Error(err))
		h.handleError(c, err, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, toResponse(resp.User))
}

// ListUsers handles GET /usuarios
func (h *UserHandler) ListUsers(c *gin.Context) {
	ctx := c.Request.Context()

	resp, err := h.uc.ListUsers(ctx)
	if err != nil {
		logger.WithContext(ctx, h.log).Error("Gin ListUsers failed", zap.Error(err))
		h.handleError(c, err, http.StatusInternalServerError)
		return
	}

	users := make([]UserResponse, len(resp.Users))
	for i, u := range resp.Users {
		users[i] = toResponse(u)
	}

	c.JSON(http.StatusOK, users)
}

// UpdateUser handles PUT /usuarios/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	req, ok := h.bind(c)
	if !ok {
		return
	}

	resp, err := h.uc.UpdateUser(ctx, user.UpdateUserRequest{
		ID:   id,
		Name: req.Name,
		Age:  req.Age,
	})
	if err != nil {
		logger.WithContext(ctx, h.log).Warn("Gin UpdateUser failed", zap.String("id", id), zap.Error(err))
		h.handleError(c, err, http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusOK, toResponse(resp.User))
}

// DeleteUser handles DELETE /usuarios/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if _, err := h.uc.DeleteUser(ctx, user.DeleteUserRequest{ID: id}); err != nil {
		logger.WithContext(ctx, h.log).Warn("Gin DeleteUser failed", zap.String("id", id), zap.Error(err))
		h.handleError(c, err, http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "deleted"})
}

// bind decodes the JSON body. An empty body decodes to an empty request.
func (h *UserHandler) bind(c *gin.Context) (UserRequest, bool) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.WithContext(c.Request.Context(), h.log).Warn("Invalid user request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return UserRequest{}, false
	}
	return req, true
}

// handleError writes typed errors with their own status and everything else
// with fallback and the raw message.
func (h *UserHandler) handleError(c *gin.Context, err error, fallback int) {
	var internal *apperrors.InternalError
	if errors.As(err, &internal) {
		c.JSON(internal.HTTPStatus(), ErrorResponse{Error: internal.Message})
		return
	}

	var statuser apperrors.HTTPStatuser
	if errors.As(err, &statuser) {
		c.JSON(statuser.HTTPStatus(), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(fallback, ErrorResponse{Error: err.Error()})
}

func toResponse(u user.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Age: u.Age}
}
