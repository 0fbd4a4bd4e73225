package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/validator"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// セッションcookieの有効期限
const sessionTTL = 24 * time.Hour

type AuthUsecase struct {
	cfg      config.Config
	userRepo repo.UserRepository
}

func NewAuthUsecase(cfg config.Config, userRepo repo.UserRepository) *AuthUsecase {
	return &AuthUsecase{cfg: cfg, userRepo: userRepo}
}

type UserDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type AdminUserDTO struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginResult struct {
	User UserDTO
	//cookieに入れるセッショントークン（HS256 JWT）
	SessionToken string
	ExpiresAt    time.Time
}

func (u *AuthUsecase) Login(ctx context.Context, username string, password string) (*LoginResult, error) {
	if err := validator.ValidateLogin(username, password); err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := u.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err == repo.ErrNotFound {
		//存在しないユーザーもパスワード違いも同じ401
		return nil, NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	token, expiresAt, err := u.issueSessionToken(user)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return &LoginResult{
		User:         toUserDTO(user),
		SessionToken: token,
		ExpiresAt:    expiresAt,
	}, nil
}

type CreateUserInput struct {
	Username string
	Password string
	Email    string
	Role     string
}

// 管理者によるユーザー作成。roleを省略したらstore_owner。
func (u *AuthUsecase) CreateUser(ctx context.Context, actorAdminUserID int64, in CreateUserInput) (UserDTO, error) {
	if actorAdminUserID <= 0 {
		return UserDTO{}, NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	if err := validator.ValidateCreateUser(in.Username, in.Password, in.Email); err != nil {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role := model.Role(in.Role)
	if role == "" {
		role = model.RoleStoreOwner
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := &model.User{
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: string(pwHash),
		Email:        strings.TrimSpace(in.Email),
		Role:         role,
	}

	//username重複はunique制約で弾かれる
	if err := u.userRepo.Create(ctx, user); err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "Failed to create user")
	}

	return toUserDTO(*user), nil
}

func (u *AuthUsecase) ListUsers(ctx context.Context, actorAdminUserID int64) ([]AdminUserDTO, error) {
	if actorAdminUserID <= 0 {
		return []AdminUserDTO{}, NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	users, err := u.userRepo.ListAll(ctx)
	if err != nil {
		return []AdminUserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]AdminUserDTO, 0, len(users))
	for _, user := range users {
		outs = append(outs, AdminUserDTO{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			Role:      string(user.Role),
			CreatedAt: user.CreatedAt,
		})
	}
	return outs, nil
}

// セッショントークン発行
func (u *AuthUsecase) issueSessionToken(user model.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(sessionTTL)

	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(u.cfg.SessionSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func toUserDTO(u model.User) UserDTO {
	return UserDTO{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
	}
}
