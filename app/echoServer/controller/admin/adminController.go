package admin

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vmmuthu31/EzhuthAI/app/echoServer/jwtx"
	adm "github.com/vmmuthu31/EzhuthAI/service/admin"
)

type Controller struct {
	Svc adm.Service
	Log *slog.Logger
}

// POST /v1/admin/pause  (admin)
func (h *Controller) Pause(c echo.Context) error {
	caller, err := jwtx.CallerAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	if err := h.Svc.PauseMinting(c.Request().Context(), caller); err != nil {
		return h.adminError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"minting_paused": true})
}

// POST /v1/admin/unpause  (admin)
func (h *Controller) Unpause(c echo.Context) error {
	caller, err := jwtx.CallerAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	if err := h.Svc.UnpauseMinting(c.Request().Context(), caller); err != nil {
		return h.adminError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"minting_paused": false})
}

// POST /v1/admin/emergency-withdraw  (admin)
func (h *Controller) EmergencyWithdraw(c echo.Context) error {
	caller, err := jwtx.CallerAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	amount, err := h.Svc.EmergencyWithdraw(c.Request().Context(), caller)
	if err != nil {
		return h.adminError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"admin": caller, "amount_wei": amount})
}

// GET /v1/admin/status
func (h *Controller) Status(c echo.Context) error {
	st, err := h.Svc.Status(c.Request().Context())
	if err != nil {
		h.Log.Error("status error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Controller) adminError(c echo.Context, err error) error {
	switch adm.Code(err) {
	case adm.ErrNotAdmin:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Must have admin role"})
	case adm.ErrEmptyPool:
		return c.JSON(http.StatusConflict, echo.Map{"message": "No funds to withdraw"})
	case adm.ErrPayoutFailed:
		return c.JSON(http.StatusBadGateway, echo.Map{"message": "payout failed, pool unchanged"})
	default:
		h.Log.Error("admin error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
