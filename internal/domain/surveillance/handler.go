package surveillance

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/esaude/esaude/internal/platform/auth"
)

// ReportGenerator is the part of Service the HTTP layer depends on.
type ReportGenerator interface {
	GenerateReport(ctx context.Context, zoneID int, start, end time.Time, userID *string) (Report, error)
}

type Handler struct {
	svc ReportGenerator
}

func NewHandler(svc ReportGenerator) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the report endpoint. Extra middleware (e.g. a
// deadline) applies to this route only.
func (h *Handler) RegisterRoutes(api *echo.Group, mw ...echo.MiddlewareFunc) {
	mw = append([]echo.MiddlewareFunc{auth.RequireRole(auth.RoleManager)}, mw...)
	api.POST("/relatorios/vigilancia", h.Generate, mw...)
}

type reportRequest struct {
	ZoneID      json.Number `json:"zonaId"`
	PeriodStart string      `json:"periodoInicio"`
	PeriodEnd   string      `json:"periodoFim"`
}

const (
	msgMissingFields = "Campos zonaId, periodoInicio e periodoFim são obrigatórios."
	msgInvalidZone   = "zonaId deve ser um número inteiro positivo."
	msgInvalidDates  = "Datas inválidas. Use o formato: YYYY-MM-DD (ex: 2024-02-01)"
	msgInvalidPeriod = "periodoInicio deve ser anterior ou igual a periodoFim."
)

func (h *Handler) Generate(c echo.Context) error {
	var req reportRequest
	if err := c.Bind(&req); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code == http.StatusRequestEntityTooLarge {
			return he
		}
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ZoneID == "" || strings.TrimSpace(req.PeriodStart) == "" || strings.TrimSpace(req.PeriodEnd) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, msgMissingFields)
	}

	zoneID, err := strconv.Atoi(req.ZoneID.String())
	if err != nil || zoneID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidZone)
	}

	start, err := ParseDate(req.PeriodStart)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidDates)
	}
	end, err := ParseDate(req.PeriodEnd)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidDates)
	}
	if start.After(end) {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidPeriod)
	}

	ctx := c.Request().Context()
	report, err := h.svc.GenerateReport(ctx, zoneID, start, end, auth.OptionalUserID(ctx))
	if err != nil {
		return h.mapError(ctx, zoneID, err)
	}
	return c.JSON(http.StatusOK, report)
}

func (h *Handler) mapError(ctx context.Context, zoneID int, err error) error {
	switch {
	case errors.Is(err, ErrInvalidPeriod):
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidPeriod)
	case errors.Is(err, context.DeadlineExceeded):
		zerolog.Ctx(ctx).Warn().Err(err).Int("zone_id", zoneID).Msg("surveillance report timed out")
		return echo.NewHTTPError(http.StatusGatewayTimeout, "report generation timed out")
	case errors.Is(err, ErrDataUnavailable):
		zerolog.Ctx(ctx).Error().Err(err).Int("zone_id", zoneID).Msg("surveillance data unavailable")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "surveillance data unavailable")
	default:
		zerolog.Ctx(ctx).Error().Err(err).Int("zone_id", zoneID).Msg("generate surveillance report")
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}

// Accepted date layouts. Layouts without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate parses a period bound in any of the accepted layouts.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
