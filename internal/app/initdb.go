package app

import (
	"errors"
	"time"

	"github.com/daksndt/catalog/internal/domain"
	"github.com/daksndt/catalog/pkg/common"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
	DefaultAdminEmail    = "admin@daksndt.com"
)

// checkAdmin provisions the default administrator account when the store is
// empty. The unique index on username turns a concurrent double-insert into a
// conflict, which is treated as "already provisioned".
func (a *Application) checkAdmin() {
	EnsureAdmin(a.gormDB)
}

// EnsureAdmin performs the idempotent default-admin bootstrap against db.
func EnsureAdmin(db *gorm.DB) {
	var admin domain.SysAdmin
	err := db.Where("username = ?", DefaultAdminUsername).First(&admin).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hashed, herr := common.HashPassword(DefaultAdminPassword)
		if herr != nil {
			zap.L().Error("failed to hash default admin password", zap.Error(herr))
			return
		}
		if cerr := db.Create(&domain.SysAdmin{
			ID:        common.UUIDint64(),
			Username:  DefaultAdminUsername,
			Password:  hashed,
			Email:     DefaultAdminEmail,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}).Error; cerr != nil {
			// A unique-constraint failure here means a concurrent bootstrap won.
			zap.L().Warn("default admin insert skipped", zap.Error(cerr))
			return
		}
		zap.L().Info("initialized default admin account",
			zap.String("username", DefaultAdminUsername))
	case err != nil:
		zap.L().Error("failed to query admin account", zap.Error(err))
	}
}
