package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"guildbadge"
	"guildbadge/internal/present/rest/presenter"
	"guildbadge/internal/present/rest/render"
	"guildbadge/internal/usecase"
)

type Handler struct {
	aggregator *usecase.Aggregator
}

func NewHandler(aggregator *usecase.Aggregator) *Handler {
	return &Handler{aggregator: aggregator}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.handleIndex)
	e.GET("/api", h.handleBadge)
}

func (h *Handler) handleIndex(c echo.Context) error {
	return c.String(http.StatusOK, "guildbadge is running. Use /api?id=<invite_code>")
}

func (h *Handler) handleBadge(c echo.Context) error {
	ctx := c.Request().Context()

	inviteCode := c.QueryParam("id")
	if inviteCode == "" {
		inviteCode = c.QueryParam("invite")
	}
	if inviteCode == "" {
		return presenter.BadRequestMessage(c, "Error: Missing 'id' (invite code) parameter.")
	}

	req := guildbadge.RenderRequest{
		InviteCode:      inviteCode,
		OwnerAccountID:  c.QueryParam("owner"),
		StaffSpec:       c.QueryParam("staff"),
		BackgroundURL:   c.QueryParam("background"),
		TextColor:       c.QueryParam("text"),
		BackgroundColor: c.QueryParam("bg"),
	}

	result := h.aggregator.Aggregate(ctx, req)

	doc := render.Badge(result, render.Options{
		TextColor:       req.TextColor,
		BackgroundColor: req.BackgroundColor,
	})
	return presenter.SVG(c, doc)
}
