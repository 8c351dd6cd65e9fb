package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appshows "github.com/motormarket/backend/internal/application/shows"
)

// ShowHandler exposes auto show endpoints
type ShowHandler struct {
	BaseHandler
	showService *appshows.ShowService
}

// NewShowHandler creates a new ShowHandler
func NewShowHandler(showService *appshows.ShowService) *ShowHandler {
	return &ShowHandler{showService: showService}
}

// List handles GET /shows
func (h *ShowHandler) List(c *gin.Context) {
	var req appshows.ListShowsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.showService.List(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp.Items, resp.Total, resp.Page, resp.PageSize)
}

// Get handles GET /shows/:id
func (h *ShowHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.showService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Register handles POST /shows/:id/register
func (h *ShowHandler) Register(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.showService.Register(c.Request.Context(), id, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// MyRegistrations handles GET /me/registrations
func (h *ShowHandler) MyRegistrations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	resp, err := h.showService.MyRegistrations(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Create handles POST /admin/shows
func (h *ShowHandler) Create(c *gin.Context) {
	var req appshows.CreateShowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.showService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Open handles POST /admin/shows/:id/open
func (h *ShowHandler) Open(c *gin.Context) {
	h.transition(c, h.showService.Open)
}

// Close handles POST /admin/shows/:id/close
func (h *ShowHandler) Close(c *gin.Context) {
	h.transition(c, h.showService.Close)
}

// Cancel handles POST /admin/shows/:id/cancel
func (h *ShowHandler) Cancel(c *gin.Context) {
	h.transition(c, h.showService.Cancel)
}

func (h *ShowHandler) transition(c *gin.Context, apply func(ctx context.Context, id uuid.UUID) (*appshows.ShowResponse, error)) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := apply(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
