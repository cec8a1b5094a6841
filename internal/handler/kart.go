package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/kart-track-reservation/internal/repository"
)

// KartHandler exposes plain CRUD on the kart catalog. Listing is public;
// mutations are restricted to the EMPLOYEE role by middleware.
type KartHandler struct {
	Karts *repository.KartRepo
}

func NewKartHandler(k *repository.KartRepo) *KartHandler {
	if k == nil {
		panic("nil repository passed to NewKartHandler")
	}
	return &KartHandler{Karts: k}
}

type kartResp struct {
	ID       uint64 `json:"id"`
	Code     string `json:"code"`
	Model    string `json:"model"`
	IsActive bool   `json:"is_active"`
}

// List handles GET /v1/karts.
func (h *KartHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	karts, err := h.Karts.ListAvailable(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]kartResp, 0, len(karts))
	for _, k := range karts {
		out = append(out, kartResp{ID: k.ID, Code: k.Code, Model: k.Model, IsActive: k.IsActive})
	}
	return c.JSON(http.StatusOK, out)
}

type createKartReq struct {
	Code  string `json:"code"`
	Model string `json:"model"`
}

// Create handles POST /v1/karts.
func (h *KartHandler) Create(c echo.Context) error {
	var req createKartReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Code = strings.TrimSpace(req.Code)
	req.Model = strings.TrimSpace(req.Model)
	if req.Code == "" || req.Model == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code/model required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Karts.Create(ctx, req.Code, req.Model)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create kart failed"})
	}
	return c.JSON(http.StatusCreated, kartResp{ID: id, Code: req.Code, Model: req.Model, IsActive: true})
}

type setActiveReq struct {
	IsActive bool `json:"is_active"`
}

// SetActive handles PATCH /v1/karts/:id and flips a unit in or out of the
// allocatable fleet.
func (h *KartHandler) SetActive(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid kart id"})
	}
	var req setActiveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Karts.SetActive(ctx, id, req.IsActive); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "kart not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
