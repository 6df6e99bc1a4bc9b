package audit

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/esaude/esaude/internal/platform/auth"
	"github.com/esaude/esaude/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/auditoria", h.List, auth.RequireRole(auth.RoleManager))
}

func (h *Handler) List(c echo.Context) error {
	ctx := c.Request().Context()
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(ctx, c.QueryParam("entity"), pg.Limit, pg.Offset)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("list audit entries")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list audit entries")
	}
	if items == nil {
		items = []*Entry{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
}
