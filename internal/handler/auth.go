package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/turfbook/match-admin/internal/auth"
	"github.com/turfbook/match-admin/internal/config"
	"github.com/turfbook/match-admin/internal/repository"
	"github.com/turfbook/match-admin/internal/roles"
)

// AuthHandler bundles dependencies for the OTP login endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
	now   func() time.Time
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(cfg config.Config, users *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, now: time.Now}
}

// ----- DTOs -----

type sendOTPReq struct {
	Mobile string `json:"mobile"`
}
type sendOTPResp struct {
	EncryptedOTP string `json:"encryptedOtp"`
	IV           string `json:"iv"`
}
type verifyOTPReq struct {
	EncryptedOTP string `json:"encryptedOtp"`
	IV           string `json:"iv"`
	OTP          string `json:"otp"`
	Mobile       string `json:"mobile"`
}
type verifyOTPResp struct {
	Valid       bool   `json:"valid"`
	AccessToken string `json:"accessToken"`
	Role        string `json:"role"`
	ID          uint64 `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
}

// SendOTP: issue a sealed OTP challenge for a staff mobile. The sealed
// blob goes back to the client and returns on verify, so no per-login
// state is stored server-side. The challenge is issued even for
// unknown mobiles so the endpoint does not leak which numbers exist;
// verification fails for them regardless.
func (h *AuthHandler) SendOTP(c echo.Context) error {
	var req sendOTPReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Mobile = strings.TrimSpace(req.Mobile)
	if req.Mobile == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "mobile required"})
	}

	otp, err := auth.GenerateOTP()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue otp failed"})
	}
	sealed, iv, err := auth.SealOTP(h.Cfg.OTPSecret, req.Mobile, otp, h.now().Add(h.Cfg.OTPTTL))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue otp failed"})
	}
	// SMS delivery happens out of band. Local envs log the code so the
	// flow is testable without a gateway.
	if h.Cfg.Env == "local" {
		log.Printf("otp for %s: %s", req.Mobile, otp)
	}
	return c.JSON(http.StatusOK, sendOTPResp{EncryptedOTP: sealed, IV: iv})
}

// VerifyOTP: check the submitted code against the sealed challenge and
// issue an access token for the staff user owning the mobile.
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req verifyOTPReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Mobile = strings.TrimSpace(req.Mobile)
	if req.Mobile == "" || req.OTP == "" || req.EncryptedOTP == "" || req.IV == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "mobile, otp and challenge required"})
	}

	if err := auth.VerifyOTP(h.Cfg.OTPSecret, req.Mobile, req.EncryptedOTP, req.IV, req.OTP, h.now()); err != nil {
		switch {
		case errors.Is(err, auth.ErrOTPExpired):
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "otp expired"})
		case errors.Is(err, auth.ErrOTPMismatch), errors.Is(err, auth.ErrOTPMalformed):
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid otp"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "verify failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSeconds*time.Second)
	defer cancel()

	u, err := h.Users.GetByMobile(ctx, req.Mobile)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid otp"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !u.IsActive || !roles.Valid(u.Role) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "account disabled"})
	}

	access, err := auth.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	return c.JSON(http.StatusOK, verifyOTPResp{
		Valid:       true,
		AccessToken: access.Token,
		Role:        u.Role,
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
	})
}

// Me: simple protected endpoint returning the token's identity.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"user_id": c.Get("user_id"),
		"role":    c.Get("role"),
	})
}

// Logout: access tokens are stateless, so logout is the client
// discarding its stored session; the server just acknowledges.
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}
