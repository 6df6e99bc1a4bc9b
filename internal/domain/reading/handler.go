package reading

import (
	"errors"
	"net/http"

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
	api.POST("/leituras-clinicas", h.Create,
		auth.RequireRole(auth.RoleAgent, auth.RoleNurse, auth.RoleDoctor))
	api.GET("/leituras", h.List,
		auth.RequireRole(auth.RoleManager, auth.RoleAgent))
	api.GET("/leituras/utente/:patientId", h.ListByPatient,
		auth.RequireRole(auth.RoleManager, auth.RoleDoctor, auth.RoleNurse, auth.RolePatient))
}

func (h *Handler) Create(c echo.Context) error {
	var r ClinicalReading
	if err := c.Bind(&r); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code == http.StatusRequestEntityTooLarge {
			return he
		}
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	ctx := c.Request().Context()
	if err := h.svc.Create(ctx, &r, auth.OptionalUserID(ctx)); err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		zerolog.Ctx(ctx).Error().Err(err).Msg("create clinical reading")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create clinical reading")
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *Handler) List(c echo.Context) error {
	ctx := c.Request().Context()
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(ctx, pg.Limit, pg.Offset)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("list clinical readings")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list clinical readings")
	}
	if items == nil {
		items = []*ClinicalReading{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
}

// ListByPatient returns a patient's readings. Patients may only read their
// own; staff may read anyone's.
func (h *Handler) ListByPatient(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	ctx := c.Request().Context()
	if !auth.HasAnyRole(auth.RolesFromContext(ctx), auth.StaffRoles...) &&
		auth.UserIDFromContext(ctx) != patientID.String() {
		return echo.NewHTTPError(http.StatusForbidden, "patients may only read their own readings")
	}

	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByPatient(ctx, patientID, pg.Limit, pg.Offset)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("list clinical readings by patient")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list clinical readings")
	}
	if items == nil {
		items = []*ClinicalReading{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
}
