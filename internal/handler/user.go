package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/turfbook/match-admin/internal/listquery"
	"github.com/turfbook/match-admin/internal/model"
	"github.com/turfbook/match-admin/internal/repository"
	"github.com/turfbook/match-admin/internal/roles"
)

// UserHandler manages admin and player accounts.
type UserHandler struct {
	Users *repository.UserRepo
}

func NewUserHandler(users *repository.UserRepo) *UserHandler {
	return &UserHandler{Users: users}
}

var userSortCols = map[string]bool{
	"id": true, "mobile": true, "first_name": true, "role": true, "created_at": true,
}

type userResp struct {
	ID        uint64 `json:"userId"`
	Mobile    string `json:"mobile"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	IsActive  bool   `json:"isActive"`
}

func toUserResp(u model.User) userResp {
	return userResp{ID: u.ID, Mobile: u.Mobile, FirstName: u.FirstName, LastName: u.LastName, Role: u.Role, IsActive: u.IsActive}
}

// List returns a page of users, optionally filtered by ?role=.
func (h *UserHandler) List(c echo.Context) error {
	role := c.QueryParam("role")
	if role != "" && !roles.Valid(role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
	}
	p := listquery.Parse(c, userSortCols, "id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	users, total, err := h.Users.List(ctx, role, p.Limit, p.Offset, p.Sort, p.Order)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]userResp, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResp(u))
	}
	return c.JSON(http.StatusOK, listResponse{Data: out, Total: total})
}

// Get returns one user.
func (h *UserHandler) Get(c echo.Context) error {
	id := pathID(c)
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()
	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toUserResp(*u))
}

type userReq struct {
	Mobile    string `json:"mobile"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	IsActive  *bool  `json:"isActive"`
}

// Create registers a new account. Mobile is the login identity and
// must be unique.
func (h *UserHandler) Create(c echo.Context) error {
	var req userReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Mobile == "" || req.FirstName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "mobile and firstName are required"})
	}
	if !roles.Valid(req.Role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
	}

	u := model.User{
		Mobile:    req.Mobile,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		IsActive:  true,
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()
	if err := h.Users.Create(ctx, &u); err != nil {
		if errors.Is(err, repository.ErrMobileExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "mobile already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	return c.JSON(http.StatusCreated, toUserResp(u))
}

// Update rewrites name, role and active flag. Mobile is immutable; it
// is the login identity.
func (h *UserHandler) Update(c echo.Context) error {
	id := pathID(c)
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req userReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.FirstName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "firstName is required"})
	}
	if !roles.Valid(req.Role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	u.FirstName = req.FirstName
	u.LastName = req.LastName
	u.Role = req.Role
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	if err := h.Users.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		case errors.Is(err, repository.ErrNoChange):
			return c.JSON(http.StatusOK, toUserResp(*u))
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update user failed"})
	}
	return c.JSON(http.StatusOK, toUserResp(*u))
}

// Deactivate disables the account instead of deleting it; historical
// bookings keep pointing at the row.
func (h *UserHandler) Deactivate(c echo.Context) error {
	id := pathID(c)
	if id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()
	if err := h.Users.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "deactivate user failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
