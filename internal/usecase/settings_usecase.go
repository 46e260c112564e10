package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/config"
	repo "app/internal/repository"
)

// 読み出し時にマスクするキー（決済の秘密鍵類）
var maskedSettingKeys = map[string]bool{
	"secretKey":     true,
	"webhookSecret": true,
}

type SettingsUsecase struct {
	settingsRepo repo.SettingsRepository
	cfg          config.Config
}

func NewSettingsUsecase(settingsRepo repo.SettingsRepository, cfg config.Config) *SettingsUsecase {
	return &SettingsUsecase{settingsRepo: settingsRepo, cfg: cfg}
}

type SettingsResponse struct {
	Data    map[string]any `json:"data"`
	Version int64          `json:"version"`
}

type UpdateSettingsInput struct {
	Data    map[string]any
	Version int64
}

// Get は設定を返す（秘密鍵は末尾4桁だけ残してマスク）
func (u *SettingsUsecase) Get(ctx context.Context) (SettingsResponse, error) {
	s, err := u.settingsRepo.Get(ctx, u.cfg.AdminSettingsID)
	if errors.Is(err, repo.ErrNotFound) {
		return SettingsResponse{Data: map[string]any{}, Version: 0}, nil
	}
	if err != nil {
		return SettingsResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return SettingsResponse{
		Data:    maskSecrets(s.Data),
		Version: s.Version,
	}, nil
}

// Update は楽観ロック付きの上書き。版ずれは409
func (u *SettingsUsecase) Update(ctx context.Context, in UpdateSettingsInput) (SettingsResponse, error) {
	if in.Data == nil {
		return SettingsResponse{}, NewHTTPError(http.StatusBadRequest, "missing data")
	}

	s, err := u.settingsRepo.Put(ctx, u.cfg.AdminSettingsID, in.Data, in.Version)
	if errors.Is(err, repo.ErrVersionConflict) {
		return SettingsResponse{}, NewHTTPError(http.StatusConflict, "settings changed by another writer")
	}
	if err != nil {
		return SettingsResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return SettingsResponse{
		Data:    maskSecrets(s.Data),
		Version: s.Version,
	}, nil
}

// ネストを辿って秘密鍵をマスクしたコピーを返す
func maskSecrets(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		switch val := v.(type) {
		case map[string]any:
			out[k] = maskSecrets(val)
		case string:
			if maskedSettingKeys[k] {
				out[k] = maskValue(val)
			} else {
				out[k] = val
			}
		default:
			out[k] = v
		}
	}
	return out
}

func maskValue(v string) string {
	if v == "" {
		return ""
	}
	if len(v) <= 4 {
		return "****"
	}
	return strings.Repeat("*", 4) + v[len(v)-4:]
}
