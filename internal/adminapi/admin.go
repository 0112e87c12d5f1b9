package adminapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/daksndt/catalog/internal/app"
	"github.com/daksndt/catalog/internal/domain"
	"github.com/daksndt/catalog/internal/webserver"
	"github.com/daksndt/catalog/pkg/common"
)

func registerAdminRoutes() {
	webserver.PubPOST("/admin/login", login)
	webserver.ApiPOST("/admin/change-password", changePassword)
}

type loginPayload struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type changePasswordPayload struct {
	CurrentPassword string `json:"currentPassword" form:"currentPassword"`
	NewPassword     string `json:"newPassword" form:"newPassword"`
}

// login authenticates the administrator and issues a 24-hour session token.
// Unknown user and wrong password share one generic message so usernames
// cannot be enumerated.
func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "Unable to parse login request")
	}

	username := payload.Username
	if username == "" {
		username = app.DefaultAdminUsername
	}

	db := GetDB(c)
	var admin domain.SysAdmin
	err := db.Where("username = ?", username).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// First-run bootstrap: an empty store gets the default admin before
		// the credential check proceeds.
		app.EnsureAdmin(db)
		err = db.Where("username = ?", username).First(&admin).Error
	}
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			zap.L().Error("admin lookup failed", zap.Error(err))
			return fail(c, http.StatusInternalServerError, "Server error during login")
		}
		return fail(c, http.StatusUnauthorized, "Invalid credentials")
	}

	if payload.Password == "" || !common.CheckPassword(admin.Password, payload.Password) {
		return fail(c, http.StatusUnauthorized, "Invalid credentials")
	}

	token, err := webserver.IssueToken(admin.ID, admin.Username, GetConfig(c).Web.Secret)
	if err != nil {
		zap.L().Error("failed to sign session token", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "Server error during login")
	}

	return ok(c, echo.Map{
		"token": token,
		"admin": echo.Map{
			"id":       strconv.FormatInt(admin.ID, 10),
			"username": admin.Username,
			"email":    admin.Email,
		},
	})
}

// changePassword verifies the current password and stores a new hash. It
// does not invalidate outstanding tokens.
func changePassword(c echo.Context) error {
	var payload changePasswordPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "Unable to parse request")
	}

	db := GetDB(c)
	var admin domain.SysAdmin
	err := db.Where("id = ?", webserver.CurrentAdminID(c)).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "Admin not found")
	} else if err != nil {
		zap.L().Error("admin lookup failed", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "Error changing password")
	}

	if !common.CheckPassword(admin.Password, payload.CurrentPassword) {
		return fail(c, http.StatusUnauthorized, "Current password is incorrect")
	}
	if len(payload.NewPassword) < 6 {
		return fail(c, http.StatusBadRequest, "New password must be at least 6 characters long")
	}

	hashed, err := common.HashPassword(payload.NewPassword)
	if err != nil {
		zap.L().Error("failed to hash password", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "Error changing password")
	}

	if err := db.Model(&admin).Updates(map[string]interface{}{
		"password":   hashed,
		"updated_at": time.Now(),
	}).Error; err != nil {
		zap.L().Error("failed to store password", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "Error changing password")
	}

	return ok(c, echo.Map{"message": "Password changed successfully"})
}
