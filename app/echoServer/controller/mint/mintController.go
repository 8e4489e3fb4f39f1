package mint

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/vmmuthu31/EzhuthAI/app/echoServer/jwtx"
	ms "github.com/vmmuthu31/EzhuthAI/service/mint"
)

type Controller struct {
	Svc ms.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/literature/mint
func (h *Controller) Mint(c echo.Context) error {
	caller, err := jwtx.CallerAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var req MintReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	tokenID, err := h.Svc.Mint(c.Request().Context(), caller, ms.MintParams{
		Recipient: req.Recipient,
		URI:       req.URI,
		Title:     req.Title,
		Author:    req.Author,
		Year:      req.Year,
		Category:  req.Category,
		WorkType:  req.WorkType,
	}, req.PaymentWei)
	if err != nil {
		return h.mintError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"token_id": tokenID})
}

// POST /v1/literature/batch-mint
func (h *Controller) BatchMint(c echo.Context) error {
	caller, err := jwtx.CallerAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var req BatchMintReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	params := make([]ms.MintParams, 0, len(req.Entries))
	for _, e := range req.Entries {
		params = append(params, ms.MintParams{
			Recipient: e.Recipient,
			URI:       e.URI,
			Title:     e.Title,
			Author:    e.Author,
			Year:      e.Year,
			Category:  e.Category,
			WorkType:  e.WorkType,
		})
	}

	ids, err := h.Svc.BatchMint(c.Request().Context(), caller, params)
	if err != nil {
		return h.mintError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"token_ids": ids})
}

func (h *Controller) mintError(c echo.Context, err error) error {
	switch ms.Code(err) {
	case ms.ErrPaused:
		return c.JSON(http.StatusConflict, echo.Map{"message": "Minting is paused"})
	case ms.ErrBlacklisted:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Sender is blacklisted"})
	case ms.ErrPaymentRequired:
		return c.JSON(http.StatusPaymentRequired, echo.Map{"message": "Insufficient payment or not authorized"})
	case ms.ErrCooldownActive:
		return c.JSON(http.StatusTooManyRequests, echo.Map{"message": "Cooldown period not elapsed"})
	case ms.ErrSupplyExhausted:
		return c.JSON(http.StatusConflict, echo.Map{"message": "Max supply reached"})
	case ms.ErrTitleExists:
		return c.JSON(http.StatusConflict, echo.Map{"message": "Title already exists"})
	case ms.ErrEmptyTitle:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Title cannot be empty"})
	case ms.ErrFutureYear:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Year cannot be in the future"})
	case ms.ErrNotMinter:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Must have minter role"})
	case ms.ErrEmptyBatch:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Empty batch"})
	case ms.ErrBatchTooLarge:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Batch too large"})
	case ms.ErrBadAddress:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid address"})
	default:
		h.Log.Error("mint error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
