package usecase

import (
	"context"
	"net/http"
	"sort"

	repo "app/internal/repository"
)

// 更新を受け付ける設定キー。これ以外は黙って捨てる。
var allowedSettingKeys = []string{
	"site_name",
	"primary_color",
	"secondary_color",
	"logo_url",
	"meta_title",
	"meta_description",
	"meta_keywords",
	"og_title",
	"og_description",
	"og_image",
}

type SettingsUsecase struct {
	tx           repo.TransactionManager
	settingsRepo repo.SettingsRepository
}

func NewSettingsUsecase(tx repo.TransactionManager, settingsRepo repo.SettingsRepository) *SettingsUsecase {
	return &SettingsUsecase{tx: tx, settingsRepo: settingsRepo}
}

// 公開API。テーマ・SEOメタをフラットなmapで返す。
func (u *SettingsUsecase) GetAll(ctx context.Context) (map[string]string, error) {
	settings, err := u.settingsRepo.GetAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return settings, nil
}

// 許可キーだけを1トランザクションでまとめて更新する。
func (u *SettingsUsecase) UpdateSettings(ctx context.Context, adminUserID int64, data map[string]string) (map[string]string, error) {
	if adminUserID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	update := map[string]string{}
	for _, key := range allowedSettingKeys {
		if v, ok := data[key]; ok {
			update[key] = v
		}
	}

	if len(update) == 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "No valid settings provided")
	}

	//書き込み順を安定させる
	keys := make([]string, 0, len(update))
	for k := range update {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		for _, k := range keys {
			if err := r.Settings().Set(ctx, k, update[k]); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "Failed to update settings")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	settings, err := u.settingsRepo.GetAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return settings, nil
}

// ロゴアップロード後にlogo_urlを差し替える。
func (u *SettingsUsecase) SetLogoURL(ctx context.Context, adminUserID int64, logoURL string) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	if err := u.settingsRepo.Set(ctx, "logo_url", logoURL); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Failed to upload logo")
	}
	return nil
}
