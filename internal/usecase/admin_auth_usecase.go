package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const adminTokenTTL = 12 * time.Hour

// 単一のadminアカウント（環境変数で設定）のログイン
type AdminAuthUsecase struct {
	cfg config.Config
	now func() time.Time
}

func NewAdminAuthUsecase(cfg config.Config) *AdminAuthUsecase {
	return &AdminAuthUsecase{cfg: cfg, now: time.Now}
}

type AdminLoginInput struct {
	Email    string
	Password string
}

type AdminLoginOutput struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func (u *AdminAuthUsecase) Login(ctx context.Context, in AdminLoginInput) (AdminLoginOutput, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || in.Password == "" {
		return AdminLoginOutput{}, NewHTTPError(http.StatusBadRequest, "missing credentials")
	}

	if u.cfg.AdminEmail == "" || u.cfg.AdminPasswordHash == "" {
		return AdminLoginOutput{}, NewHTTPError(http.StatusUnauthorized, "admin login disabled")
	}
	if email != strings.ToLower(u.cfg.AdminEmail) {
		return AdminLoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.cfg.AdminPasswordHash), []byte(in.Password)); err != nil {
		return AdminLoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	now := u.now()
	expiresAt := now.Add(adminTokenTTL)

	claims := jwt.MapClaims{
		"sub":  "admin",
		"role": "ADMIN",
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(u.cfg.JWTSecret))
	if err != nil {
		return AdminLoginOutput{}, NewHTTPError(http.StatusInternalServerError, "token issue failed")
	}

	return AdminLoginOutput{
		AccessToken: signed,
		ExpiresIn:   int(adminTokenTTL.Seconds()),
	}, nil
}
