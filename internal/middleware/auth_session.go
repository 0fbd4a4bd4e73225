package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"app/internal/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	SessionCookieName = "session"

	CtxUserIDKey   = "user_id"   // int64
	CtxUsernameKey = "username"  // string
	CtxUserRoleKey = "user_role" // string
)

// cookieに入っているセッション（HS256のJWT）の中身。
type SessionUser struct {
	ID       int64
	Username string
	Role     string
}

// セッションcookieを検証して中身を返す。cookieなし・不正はfalse。
func ParseSession(cfg config.Config, c echo.Context) (SessionUser, bool) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return SessionUser{}, false
	}

	token, err := jwt.Parse(cookie.Value, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.SessionSecret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return SessionUser{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return SessionUser{}, false
	}

	userID, err := parseUserID(claims["sub"])
	if err != nil || userID <= 0 {
		return SessionUser{}, false
	}

	username, err := parseString(claims["username"])
	if err != nil || username == "" {
		return SessionUser{}, false
	}

	role, err := parseString(claims["role"])
	if err != nil || role == "" {
		return SessionUser{}, false
	}

	return SessionUser{ID: userID, Username: username, Role: role}, true
}

// セッション必須のミドルウェア。検証できたらcontextへ保存。
func AuthSession(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			su, ok := ParseSession(cfg, c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("Unauthorized"))
			}

			c.Set(CtxUserIDKey, su.ID)
			c.Set(CtxUsernameKey, su.Username)
			c.Set(CtxUserRoleKey, su.Role)

			return next(c)
		}
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

// subをint64に変換する
func parseUserID(v interface{}) (int64, error) {
	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case string:
		return strconv.ParseInt(t, 10, 64)
	default:
		return 0, errors.New("invalid sub")
	}
}

func parseString(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errors.New("invalid string")
	}
	return s, nil
}
