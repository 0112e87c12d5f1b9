package adminapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daksndt/catalog/internal/app"
	"github.com/daksndt/catalog/internal/domain"
	"github.com/daksndt/catalog/internal/webserver"
	"github.com/daksndt/catalog/pkg/common"
)

type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
	Admin   struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	} `json:"admin"`
}

func doLogin(t *testing.T, env *testEnv, body string) (*loginResponse, int) {
	t.Helper()
	c, rec := env.request(http.MethodPost, "/api/admin/login", strings.NewReader(body), "application/json")
	require.NoError(t, login(c))
	var resp loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return &resp, rec.Code
}

func TestLoginBootstrapsDefaultAdmin(t *testing.T) {
	env := newTestEnv(t)

	var count int64
	env.db.Model(&domain.SysAdmin{}).Count(&count)
	require.Zero(t, count)

	// First login against an empty store provisions the default admin and
	// succeeds with the default password.
	resp, code := doLogin(t, env, `{"password":"admin123"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin", resp.Admin.Username)
	assert.Equal(t, "admin@daksndt.com", resp.Admin.Email)

	env.db.Model(&domain.SysAdmin{}).Count(&count)
	assert.EqualValues(t, 1, count)

	// The token carries the admin identity and verifies with the secret.
	claims := new(webserver.AdminClaims)
	_, err := jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(env.cfg.Web.Secret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, resp.Admin.ID, claims.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)

	// Wrong password on the very first attempt still provisions the admin
	// but returns 401 with no token.
	resp, code := doLogin(t, env, `{"password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, resp.Success)
	assert.Empty(t, resp.Token)
	assert.Equal(t, "Invalid credentials", resp.Message)

	var count int64
	env.db.Model(&domain.SysAdmin{}).Count(&count)
	assert.EqualValues(t, 1, count)

	// Correct password afterwards succeeds.
	resp, code = doLogin(t, env, `{"password":"admin123"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, resp.Token)
}

func TestLoginMissingPassword(t *testing.T) {
	env := newTestEnv(t)
	resp, code := doLogin(t, env, `{}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, resp.Success)
}

func TestLoginUnknownUserSameMessage(t *testing.T) {
	env := newTestEnv(t)
	app.EnsureAdmin(env.db)

	unknown, code := doLogin(t, env, `{"username":"ghost","password":"admin123"}`)
	assert.Equal(t, http.StatusUnauthorized, code)

	wrongPass, code := doLogin(t, env, `{"username":"admin","password":"bad"}`)
	assert.Equal(t, http.StatusUnauthorized, code)

	// No username enumeration: both failures share one message.
	assert.Equal(t, unknown.Message, wrongPass.Message)
}

// asAdmin mimics the JWT middleware by planting a parsed token in context.
func asAdmin(c echo.Context, adminID int64) {
	claims := &webserver.AdminClaims{
		ID:       strconv.FormatInt(adminID, 10),
		Username: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	c.Set("user", jwt.NewWithClaims(jwt.SigningMethodHS256, claims))
}

func seedAdmin(t *testing.T, env *testEnv, password string) *domain.SysAdmin {
	t.Helper()
	hash, err := common.HashPassword(password)
	require.NoError(t, err)
	admin := &domain.SysAdmin{
		ID:       common.UUIDint64(),
		Username: "admin",
		Password: hash,
		Email:    "admin@daksndt.com",
	}
	require.NoError(t, env.db.Create(admin).Error)
	return admin
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	admin := seedAdmin(t, env, "admin123")

	c, rec := env.request(http.MethodPost, "/api/admin/change-password",
		strings.NewReader(`{"currentPassword":"admin123","newPassword":"s3cret99"}`), "application/json")
	asAdmin(c, admin.ID)
	require.NoError(t, changePassword(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var stored domain.SysAdmin
	require.NoError(t, env.db.First(&stored, admin.ID).Error)
	assert.True(t, common.CheckPassword(stored.Password, "s3cret99"))
	assert.False(t, common.CheckPassword(stored.Password, "admin123"))
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	env := newTestEnv(t)
	admin := seedAdmin(t, env, "admin123")

	c, rec := env.request(http.MethodPost, "/api/admin/change-password",
		strings.NewReader(`{"currentPassword":"wrong","newPassword":"s3cret99"}`), "application/json")
	asAdmin(c, admin.ID)
	require.NoError(t, changePassword(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var stored domain.SysAdmin
	require.NoError(t, env.db.First(&stored, admin.ID).Error)
	assert.True(t, common.CheckPassword(stored.Password, "admin123"))
}

func TestChangePasswordAdminMissing(t *testing.T) {
	env := newTestEnv(t)

	c, rec := env.request(http.MethodPost, "/api/admin/change-password",
		strings.NewReader(`{"currentPassword":"admin123","newPassword":"s3cret99"}`), "application/json")
	asAdmin(c, 424242)
	require.NoError(t, changePassword(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChangePasswordTooShort(t *testing.T) {
	env := newTestEnv(t)
	admin := seedAdmin(t, env, "admin123")

	c, rec := env.request(http.MethodPost, "/api/admin/change-password",
		strings.NewReader(`{"currentPassword":"admin123","newPassword":"abc"}`), "application/json")
	asAdmin(c, admin.ID)
	require.NoError(t, changePassword(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
