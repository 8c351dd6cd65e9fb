package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/motormarket/backend/internal/domain/shared"
	"github.com/motormarket/backend/internal/infrastructure/logger"
	"github.com/motormarket/backend/internal/interfaces/http/dto"
	"github.com/motormarket/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides the response helpers shared by all handlers
type BaseHandler struct{}

// Success sends a 200 response with the standard envelope
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest,
		dto.NewErrorResponse("VALIDATION_ERROR", message, middleware.RequestIDFrom(c)))
}

// HandleError maps an application error to an HTTP response. Domain
// errors carry their own code; anything else is a 500 and gets logged.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var derr *shared.DomainError
	if errors.As(err, &derr) {
		c.JSON(dto.GetHTTPStatus(derr.Code),
			dto.NewErrorResponse(derr.Code, derr.Message, middleware.RequestIDFrom(c)))
		return
	}

	logger.FromContext(c.Request.Context()).Error("unhandled request error",
		zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse("INTERNAL_ERROR", "An internal error occurred", middleware.RequestIDFrom(c)))
}

// parseIDParam binds and parses the :id path parameter
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponse("VALIDATION_ERROR", "Invalid id parameter", middleware.RequestIDFrom(c)))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponse("VALIDATION_ERROR", "Invalid id parameter", middleware.RequestIDFrom(c)))
		return uuid.Nil, false
	}
	return id, true
}

// currentUserID returns the authenticated user's ID or writes a 401
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized,
			dto.NewErrorResponse("UNAUTHORIZED", "Authentication required", middleware.RequestIDFrom(c)))
		return uuid.Nil, false
	}
	return id, true
}
