package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

var testCfg = config.Config{SessionSecret: "test_secret"}

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(h)
}

// =====================
// Login
// =====================

func TestLogin_Success(t *testing.T) {
	users := new(userRepoMock)
	uc := NewAuthUsecase(testCfg, users)

	users.On("FindByUsername", mock.Anything, "admin").Return(model.User{
		ID:           1,
		Username:     "admin",
		PasswordHash: hashPassword(t, "secret123"),
		Email:        "admin@example.com",
		Role:         model.RoleAdmin,
	}, nil)

	out, err := uc.Login(context.Background(), "admin", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, "admin", out.User.Username)
	assert.Equal(t, "admin", out.User.Role)
	assert.NotEmpty(t, out.SessionToken)
	assert.True(t, out.ExpiresAt.After(time.Now()))

	//発行したトークンが自分のシークレットで検証できること
	token, err := jwt.Parse(out.SessionToken, func(tk *jwt.Token) (interface{}, error) {
		return []byte(testCfg.SessionSecret), nil
	})
	assert.NoError(t, err)
	assert.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(1), claims["sub"])
	assert.Equal(t, "admin", claims["username"])
	assert.Equal(t, "admin", claims["role"])
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(userRepoMock)
	uc := NewAuthUsecase(testCfg, users)

	users.On("FindByUsername", mock.Anything, "admin").Return(model.User{
		ID:           1,
		Username:     "admin",
		PasswordHash: hashPassword(t, "secret123"),
	}, nil)

	_, err := uc.Login(context.Background(), "admin", "wrong")
	assertHTTPError(t, err, http.StatusUnauthorized, "Invalid credentials")
}

// 未知ユーザーもパスワード違いと同じ401
func TestLogin_UnknownUser(t *testing.T) {
	users := new(userRepoMock)
	uc := NewAuthUsecase(testCfg, users)

	users.On("FindByUsername", mock.Anything, "nobody").Return(model.User{}, repo.ErrNotFound)

	_, err := uc.Login(context.Background(), "nobody", "whatever")
	assertHTTPError(t, err, http.StatusUnauthorized, "Invalid credentials")
}

func TestLogin_MissingFields(t *testing.T) {
	users := new(userRepoMock)
	uc := NewAuthUsecase(testCfg, users)

	_, err := uc.Login(context.Background(), "", "secret123")
	assertHTTPError(t, err, http.StatusBadRequest, "Username and password are required")

	_, err = uc.Login(context.Background(), "admin", "")
	assertHTTPError(t, err, http.StatusBadRequest, "Username and password are required")

	users.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
}

// =====================
// CreateUser
// =====================

func TestCreateUser_DefaultsToStoreOwner(t *testing.T) {
	users := new(userRepoMock)
	uc := NewAuthUsecase(testCfg, users)

	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		//平文がそのまま入っていないこと
		return u.Role == model.RoleStoreOwner &&
			u.Username == "shop_a" &&
			u.PasswordHash != "secret123" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")) == nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = 42
	}).Return(nil)

	out, err := uc.CreateUser(context.Background(), 1, CreateUserInput{
		Username: "shop_a",
		Password: "secret123",
		Email:    "a@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(42), out.ID)
	assert.Equal(t, "store_owner", out.Role)
	users.AssertExpectations(t)
}

func TestCreateUser_MissingFields(t *testing.T) {
	users := new(userRepoMock)
	uc := NewAuthUsecase(testCfg, users)

	_, err := uc.CreateUser(context.Background(), 1, CreateUserInput{Username: "x", Password: "y"})
	assertHTTPError(t, err, http.StatusBadRequest, "Username, password, and email are required")
}

func TestListUsers(t *testing.T) {
	users := new(userRepoMock)
	uc := NewAuthUsecase(testCfg, users)

	users.On("ListAll", mock.Anything).Return([]model.User{
		{ID: 2, Username: "shop_b", Role: model.RoleStoreOwner},
		{ID: 1, Username: "admin", Role: model.RoleAdmin},
	}, nil)

	outs, err := uc.ListUsers(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, outs, 2)
	assert.Equal(t, "shop_b", outs[0].Username)
}
