package handler

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"app/internal/config"
	"app/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ロゴアップロードの上限（5MB）
const maxLogoSize = 5 << 20

// 拡張子はContent-Typeから決める
var logoExtByType = map[string]string{
	"image/jpeg":    "jpg",
	"image/jpg":     "jpg",
	"image/png":     "png",
	"image/gif":     "gif",
	"image/svg+xml": "svg",
}

// サイト設定・SEOメタの /settings
type SettingsHandler struct {
	cfg config.Config
	uc  *usecase.SettingsUsecase
}

func NewSettingsHandler(cfg config.Config, uc *usecase.SettingsUsecase) *SettingsHandler {
	return &SettingsHandler{cfg: cfg, uc: uc}
}

// 取得は公開、更新とロゴは管理者グループへ
func (h *SettingsHandler) RegisterPublicRoutes(e *echo.Echo) {
	e.GET("/settings", h.getAll)
}

func (h *SettingsHandler) RegisterAdminRoutes(g *echo.Group) {
	g.PUT("/settings", h.update)
	g.POST("/settings/upload-logo", h.uploadLogo)
}

func (h *SettingsHandler) getAll(c echo.Context) error {
	out, err := h.uc.GetAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SettingsHandler) update(c echo.Context) error {
	adminUserID := getUserIDFromContext(c)

	var req map[string]string
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	out, err := h.uc.UpdateSettings(c.Request().Context(), adminUserID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, updateSettingsResponse{Success: true, Settings: out})
}

type updateSettingsResponse struct {
	Success  bool              `json:"success"`
	Settings map[string]string `json:"settings"`
}

type uploadLogoResponse struct {
	Success bool   `json:"success"`
	LogoURL string `json:"logo_url"`
	FullURL string `json:"full_url"`
}

// multipartの"logo"を保存してlogo_urlを更新する。
// ファイル名はuuidで振り直す（元の名前は使わない）。
func (h *SettingsHandler) uploadLogo(c echo.Context) error {
	adminUserID := getUserIDFromContext(c)

	fh, err := c.FormFile("logo")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Logo file is required"})
	}

	if fh.Size > maxLogoSize {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "File too large. Maximum size is 5MB"})
	}

	contentType := fh.Header.Get("Content-Type")
	ext, ok := logoExtByType[strings.ToLower(contentType)]
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid file type. Only JPEG, PNG, GIF, and SVG images are allowed"})
	}

	if err := os.MkdirAll(h.cfg.UploadDir, 0o755); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to upload logo"})
	}

	filename := fmt.Sprintf("logo_%s.%s", uuid.NewString(), ext)
	dstPath := filepath.Join(h.cfg.UploadDir, filename)

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to upload logo"})
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to upload logo"})
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to upload logo"})
	}

	logoURL := "/uploads/" + filename
	if err := h.uc.SetLogoURL(c.Request().Context(), adminUserID, logoURL); err != nil {
		return writeError(c, err)
	}

	scheme := c.Scheme()
	host := c.Request().Host

	return c.JSON(http.StatusOK, uploadLogoResponse{
		Success: true,
		LogoURL: logoURL,
		FullURL: fmt.Sprintf("%s://%s%s", scheme, host, logoURL),
	})
}
