package literature

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/vmmuthu31/EzhuthAI/app/echoServer/jwtx"
	ls "github.com/vmmuthu31/EzhuthAI/service/literature"
)

type Controller struct {
	Svc ls.Service
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

// POST /v1/literature/:id/verify  (curator)
func (h *Controller) Verify(c echo.Context) error {
	caller, err := jwtx.CallerAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, ok := tokenID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Verify(c.Request().Context(), caller, id); err != nil {
		return h.litError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"token_id": id, "is_verified": true})
}

// PUT /v1/literature/:id/metadata  (updater)
func (h *Controller) UpdateMetadata(c echo.Context) error {
	caller, err := jwtx.CallerAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, ok := tokenID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateMetadataReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	err = h.Svc.UpdateMetadata(c.Request().Context(), caller, id, ls.UpdateParams{
		Title:    req.Title,
		Author:   req.Author,
		Year:     req.Year,
		Category: req.Category,
		WorkType: req.WorkType,
	})
	if err != nil {
		return h.litError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"token_id": id})
}

// PUT /v1/literature/:id/uri  (updater)
func (h *Controller) UpdateURI(c echo.Context) error {
	caller, err := jwtx.CallerAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, ok := tokenID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateURIReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	if err := h.Svc.UpdateTokenURI(c.Request().Context(), caller, id, req.URI); err != nil {
		return h.litError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"token_id": id, "uri": req.URI})
}

// POST /v1/literature/:id/transfer  (current owner)
func (h *Controller) Transfer(c echo.Context) error {
	caller, err := jwtx.CallerAddress(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, ok := tokenID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req TransferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	if err := h.Svc.Transfer(c.Request().Context(), caller, id, req.To); err != nil {
		return h.litError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"token_id": id, "owner": req.To})
}

// GET /v1/literature/:id
func (h *Controller) Detail(c echo.Context) error {
	id, ok := tokenID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	lit, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return h.litError(c, err)
	}
	return c.JSON(http.StatusOK, lit)
}

// GET /v1/literature?category=...&author=...
func (h *Controller) Query(c echo.Context) error {
	ctx := c.Request().Context()
	if cat := c.QueryParam("category"); cat != "" {
		ids, err := h.Svc.TokensByCategory(ctx, cat)
		if err != nil {
			return h.litError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"token_ids": emptyOK(ids)})
	}
	if author := c.QueryParam("author"); author != "" {
		ids, err := h.Svc.TokensByAuthor(ctx, author)
		if err != nil {
			return h.litError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"token_ids": emptyOK(ids)})
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"message": "category or author query required"})
}

// GET /v1/owners/:address/tokens
func (h *Controller) OwnerTokens(c echo.Context) error {
	ids, err := h.Svc.TokensOfOwner(c.Request().Context(), c.Param("address"))
	if err != nil {
		return h.litError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"token_ids": emptyOK(ids)})
}

// GET /v1/owners/:address/balance
func (h *Controller) OwnerBalance(c echo.Context) error {
	n, err := h.Svc.BalanceOf(c.Request().Context(), c.Param("address"))
	if err != nil {
		return h.litError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"balance": n})
}

// GET /v1/literature/:id/events
func (h *Controller) Events(c echo.Context) error {
	id, ok := tokenID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	evs, err := h.Svc.Events(c.Request().Context(), id)
	if err != nil {
		return h.litError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": evs})
}

func emptyOK(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

func (h *Controller) litError(c echo.Context, err error) error {
	switch ls.Code(err) {
	case ls.ErrNotCurator:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Must have curator role"})
	case ls.ErrNotUpdater:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Must have updater role"})
	case ls.ErrNotOwner:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Not the token owner"})
	case ls.ErrTokenNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Token does not exist"})
	case ls.ErrTitleExists:
		return c.JSON(http.StatusConflict, echo.Map{"message": "Title already exists"})
	case ls.ErrEmptyTitle:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Title cannot be empty"})
	case ls.ErrFutureYear:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Year cannot be in the future"})
	case ls.ErrEmptyURI:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "URI cannot be empty"})
	case ls.ErrBadAddress:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid address"})
	default:
		h.Log.Error("literature error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
