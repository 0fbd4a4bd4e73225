package handler

import (
	"net/http"
	"time"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /auth 配下。セッションcookieの発行・破棄もここでやる。
type AuthHandler struct {
	cfg config.Config
	uc  *usecase.AuthUsecase
}

// DIコンストラクタ
func NewAuthHandler(cfg config.Config, uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{cfg: cfg, uc: uc}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/auth/login", h.login)
	e.POST("/auth/logout", h.logout)
	e.GET("/auth/check", h.check)
}

// /auth/login のリクエストボディ。
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool            `json:"success"`
	User    usecase.UserDTO `json:"user"`
}

func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	out, err := h.uc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	h.setSessionCookie(c, out.SessionToken, out.ExpiresAt)

	return c.JSON(http.StatusOK, loginResponse{Success: true, User: out.User})
}

type logoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *AuthHandler) logout(c echo.Context) error {
	//cookieを消す（過去日時で上書き）
	h.clearSessionCookie(c)

	return c.JSON(http.StatusOK, logoutResponse{
		Success: true,
		Message: "Logged out successfully",
	})
}

type checkResponse struct {
	Authenticated bool             `json:"authenticated"`
	User          *usecase.UserDTO `json:"user,omitempty"`
}

// セッションの有無を返す。未ログインでも200。
func (h *AuthHandler) check(c echo.Context) error {
	su, ok := middleware.ParseSession(h.cfg, c)
	if !ok {
		return c.JSON(http.StatusOK, checkResponse{Authenticated: false})
	}

	return c.JSON(http.StatusOK, checkResponse{
		Authenticated: true,
		User: &usecase.UserDTO{
			ID:       su.ID,
			Username: su.Username,
			Role:     su.Role,
		},
	})
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string, expiresAt time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.GoEnv == "prod",
		SameSite: http.SameSiteLaxMode,
		Expires:  expiresAt,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.GoEnv == "prod",
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}
