package access

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/vmmuthu31/EzhuthAI/app/echoServer/jwtx"
	"github.com/vmmuthu31/EzhuthAI/model"
	as "github.com/vmmuthu31/EzhuthAI/service/access"
)

type Controller struct {
	Svc as.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/roles/grant  (admin)
func (h *Controller) Grant(c echo.Context) error {
	return h.roleChange(c, h.Svc.GrantRole)
}

// POST /v1/roles/revoke  (admin)
func (h *Controller) Revoke(c echo.Context) error {
	return h.roleChange(c, h.Svc.RevokeRole)
}

func (h *Controller) roleChange(c echo.Context, apply func(ctx context.Context, caller string, role model.Role, address string) error) error {
	caller, err := jwtx.CallerAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var req RoleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	if err := apply(c.Request().Context(), caller, model.Role(req.Role), req.Address); err != nil {
		return h.accessError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"role": req.Role, "address": req.Address})
}

// GET /v1/roles/:role/:address
func (h *Controller) Has(c echo.Context) error {
	role := model.Role(c.Param("role"))
	ok, err := h.Svc.HasRole(c.Request().Context(), role, c.Param("address"))
	if err != nil {
		return h.accessError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"role": role, "address": c.Param("address"), "has_role": ok})
}

// GET /v1/roles/:role
func (h *Controller) Members(c echo.Context) error {
	role := model.Role(c.Param("role"))
	members, err := h.Svc.Members(c.Request().Context(), role)
	if err != nil {
		return h.accessError(c, err)
	}
	if members == nil {
		members = []string{}
	}
	return c.JSON(http.StatusOK, echo.Map{"role": role, "members": members})
}

// POST /v1/blacklist  (moderator)
func (h *Controller) SetBlacklist(c echo.Context) error {
	caller, err := jwtx.CallerAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var req BlacklistReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	if err := h.Svc.SetBlacklistStatus(c.Request().Context(), caller, req.Address, *req.Blacklisted); err != nil {
		return h.accessError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"address": req.Address, "blacklisted": *req.Blacklisted})
}

// GET /v1/blacklist/:address
func (h *Controller) GetBlacklist(c echo.Context) error {
	blocked, err := h.Svc.IsBlacklisted(c.Request().Context(), c.Param("address"))
	if err != nil {
		return h.accessError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"address": c.Param("address"), "blacklisted": blocked})
}

func (h *Controller) accessError(c echo.Context, err error) error {
	switch as.Code(err) {
	case as.ErrNotAdmin:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Must have admin role"})
	case as.ErrNotModerator:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Must have moderator role"})
	case as.ErrBadRole:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "unknown role"})
	case as.ErrBadAddress:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid address"})
	default:
		h.Log.Error("access error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
