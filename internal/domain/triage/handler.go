package triage

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
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
	api.POST("/triagens", h.Create)
	api.GET("/triagens", h.List,
		auth.RequireRole(auth.RoleAgent, auth.RoleNurse, auth.RoleDoctor, auth.RoleManager))
	api.GET("/triagens/utente/:patientId", h.ListByPatient,
		auth.RequireRole(auth.RoleManager, auth.RoleDoctor, auth.RoleNurse))
}

type createRequest struct {
	PatientID  uuid.UUID       `json:"patient_id"`
	Responses  json.RawMessage `json:"responses"`
	RecordedAt *time.Time      `json:"recorded_at"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code == http.StatusRequestEntityTooLarge {
			return he
		}
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	t := &Triage{PatientID: req.PatientID, Responses: req.Responses}
	if req.RecordedAt != nil {
		t.RecordedAt = *req.RecordedAt
	}

	ctx := c.Request().Context()
	if err := h.svc.Create(ctx, t, auth.OptionalUserID(ctx)); err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		zerolog.Ctx(ctx).Error().Err(err).Msg("create triage")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create triage")
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *Handler) List(c echo.Context) error {
	ctx := c.Request().Context()
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(ctx, pg.Limit, pg.Offset)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("list triages")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list triages")
	}
	if items == nil {
		items = []*Triage{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
}

func (h *Handler) ListByPatient(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	ctx := c.Request().Context()
	items, err := h.svc.ListByPatient(ctx, patientID)
	if errors.Is(err, ErrInvalidInput) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("list triages by patient")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list triages")
	}
	if len(items) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "no triages found for patient")
	}
	return c.JSON(http.StatusOK, items)
}
