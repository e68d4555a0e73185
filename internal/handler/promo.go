package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/turfbook/match-admin/internal/listquery"
	"github.com/turfbook/match-admin/internal/model"
	"github.com/turfbook/match-admin/internal/repository"
)

// PromoHandler manages promo codes and their usage report.
type PromoHandler struct {
	Promos *repository.PromoRepo
}

func NewPromoHandler(promos *repository.PromoRepo) *PromoHandler {
	return &PromoHandler{Promos: promos}
}

var promoSortCols = map[string]bool{
	"id": true, "code": true, "valid_until": true, "created_at": true,
}

type promoReq struct {
	Code        string    `json:"code"`
	DiscountPct uint8     `json:"discountPct"`
	MaxDiscount uint32    `json:"maxDiscount"`
	ValidFrom   time.Time `json:"validFrom"`
	ValidUntil  time.Time `json:"validUntil"`
	MaxUses     uint32    `json:"maxUses"`
	IsActive    *bool     `json:"isActive"`
}

func (r *promoReq) validate() string {
	switch {
	case r.DiscountPct == 0 || r.DiscountPct > 100:
		return "discountPct must be 1..100"
	case r.ValidFrom.IsZero() || r.ValidUntil.IsZero():
		return "validFrom and validUntil required"
	case !r.ValidUntil.After(r.ValidFrom):
		return "validUntil must be after validFrom"
	}
	return ""
}

type promoResp struct {
	ID          uint64    `json:"promoCodeId"`
	Code        string    `json:"code"`
	DiscountPct uint8     `json:"discountPct"`
	MaxDiscount uint32    `json:"maxDiscount"`
	ValidFrom   time.Time `json:"validFrom"`
	ValidUntil  time.Time `json:"validUntil"`
	MaxUses     uint32    `json:"maxUses"`
	IsActive    bool      `json:"isActive"`
}

func toPromoResp(p model.PromoCode) promoResp {
	return promoResp{
		ID:          p.ID,
		Code:        p.Code,
		DiscountPct: p.DiscountPct,
		MaxDiscount: p.MaxDiscountCents,
		ValidFrom:   p.ValidFrom,
		ValidUntil:  p.ValidUntil,
		MaxUses:     p.MaxUses,
		IsActive:    p.IsActive,
	}
}

// List returns a page of promo codes.
func (h *PromoHandler) List(c echo.Context) error {
	p := listquery.Parse(c, promoSortCols, "created_at")

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	promos, total, err := h.Promos.List(ctx, p.Limit, p.Offset, p.Sort, p.Order)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]promoResp, 0, len(promos))
	for _, pc := range promos {
		out = append(out, toPromoResp(pc))
	}
	return c.JSON(http.StatusOK, listResponse{Data: out, Total: total})
}

// Get returns one promo code.
func (h *PromoHandler) Get(c echo.Context) error {
	id := pathID(c)
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()
	p, err := h.Promos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPromoNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "promo code not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toPromoResp(*p))
}

// Create issues a new promo code. Codes are stored upper-cased so
// lookups at booking time are case-insensitive.
func (h *PromoHandler) Create(c echo.Context) error {
	var req promoReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	if req.Code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code required"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	p := model.PromoCode{
		Code:             req.Code,
		DiscountPct:      req.DiscountPct,
		MaxDiscountCents: req.MaxDiscount,
		ValidFrom:        req.ValidFrom,
		ValidUntil:       req.ValidUntil,
		MaxUses:          req.MaxUses,
		IsActive:         true,
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()
	if err := h.Promos.Create(ctx, &p); err != nil {
		if errors.Is(err, repository.ErrPromoCodeExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "code already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create promo code failed"})
	}
	return c.JSON(http.StatusCreated, toPromoResp(p))
}

// Update rewrites a promo code's terms. The code string itself stays
// fixed once issued.
func (h *PromoHandler) Update(c echo.Context) error {
	id := pathID(c)
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req promoReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	p, err := h.Promos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPromoNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "promo code not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	p.DiscountPct = req.DiscountPct
	p.MaxDiscountCents = req.MaxDiscount
	p.ValidFrom = req.ValidFrom
	p.ValidUntil = req.ValidUntil
	p.MaxUses = req.MaxUses
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := h.Promos.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrPromoNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "promo code not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update promo code failed"})
	}
	return c.JSON(http.StatusOK, toPromoResp(*p))
}

// Delete removes a promo code no booking has used.
func (h *PromoHandler) Delete(c echo.Context) error {
	id := pathID(c)
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()
	if err := h.Promos.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrPromoNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "promo code not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "promo code has been used; deactivate it instead"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete promo code failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Usage returns how often the code was applied and the discount total
// it granted.
func (h *PromoHandler) Usage(c echo.Context) error {
	id := pathID(c)
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	if _, err := h.Promos.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPromoNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "promo code not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	u, err := h.Promos.Usage(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"promoCodeId":   u.PromoCodeID,
		"uses":          u.Uses,
		"discountTotal": u.DiscountTotalCents,
	})
}
