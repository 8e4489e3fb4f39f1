package royalty

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/vmmuthu31/EzhuthAI/app/echoServer/jwtx"
	rs "github.com/vmmuthu31/EzhuthAI/service/royalty"
)

type Controller struct {
	Svc rs.Service
	V   *validator.Validate
	Log *slog.Logger
}

func tokenID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// PUT /v1/royalties/:id/rate  (admin)
func (h *Controller) SetRate(c echo.Context) error {
	caller, err := jwtx.CallerAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, ok := tokenID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req SetRateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	if err := h.Svc.SetRate(c.Request().Context(), caller, id, req.RateBps); err != nil {
		return h.royaltyError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"token_id": id, "rate_bps": req.RateBps})
}

// GET /v1/royalties/:id
func (h *Controller) GetRate(c echo.Context) error {
	id, ok := tokenID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	rate, err := h.Svc.GetRate(c.Request().Context(), id)
	if err != nil {
		return h.royaltyError(c, err)
	}
	return c.JSON(http.StatusOK, rate)
}

// GET /v1/royalties/:id/quote?sale_price=...
func (h *Controller) Quote(c echo.Context) error {
	id, ok := tokenID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	price, err := strconv.ParseInt(c.QueryParam("sale_price"), 10, 64)
	if err != nil || price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid sale_price"})
	}
	amount, err := h.Svc.Quote(c.Request().Context(), id, price)
	if err != nil {
		return h.royaltyError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"token_id": id, "sale_price_wei": price, "royalty_wei": amount})
}

// POST /v1/royalties/sales  (admin)
func (h *Controller) RecordSale(c echo.Context) error {
	caller, err := jwtx.CallerAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var req RecordSaleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	accrued, err := h.Svc.RecordSale(c.Request().Context(), caller, req.TokenID, req.SalePriceWei)
	if err != nil {
		return h.royaltyError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"token_id": req.TokenID, "accrued_wei": accrued})
}

// POST /v1/royalties/withdraw
func (h *Controller) Withdraw(c echo.Context) error {
	caller, err := jwtx.CallerAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	w, err := h.Svc.Withdraw(c.Request().Context(), caller)
	if err != nil {
		return h.royaltyError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"amount_wei": w.AmountWei, "payout_id": w.PayoutID})
}

// GET /v1/royalties/balances/:address
func (h *Controller) Balance(c echo.Context) error {
	bal, err := h.Svc.Balance(c.Request().Context(), c.Param("address"))
	if err != nil {
		return h.royaltyError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"balance_wei": bal})
}

func (h *Controller) royaltyError(c echo.Context, err error) error {
	switch rs.Code(err) {
	case rs.ErrNotAdmin:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Must have admin role"})
	case rs.ErrTokenNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Token does not exist"})
	case rs.ErrRateOutOfRange:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Royalty rate out of bounds"})
	case rs.ErrBadSalePrice:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid sale price"})
	case rs.ErrNoBalance:
		return c.JSON(http.StatusConflict, echo.Map{"message": "No royalties to withdraw"})
	case rs.ErrPayoutFailed:
		return c.JSON(http.StatusBadGateway, echo.Map{"message": "payout failed, balance unchanged"})
	case rs.ErrBadAddress:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid address"})
	default:
		h.Log.Error("royalty error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
