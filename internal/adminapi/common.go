package adminapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/daksndt/catalog/config"
	"github.com/daksndt/catalog/internal/assetstore"
	"github.com/daksndt/catalog/internal/webserver"
)

// GetDB returns the request-scoped database handle.
func GetDB(c echo.Context) *gorm.DB {
	return c.Get(webserver.ContextDBKey).(*gorm.DB)
}

// GetConfig returns the application configuration.
func GetConfig(c echo.Context) *config.AppConfig {
	return c.Get(webserver.ContextConfigKey).(*config.AppConfig)
}

// GetAssets returns the image asset store.
func GetAssets(c echo.Context) *assetstore.Store {
	return c.Get(webserver.ContextAssetsKey).(*assetstore.Store)
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// formValue reports the first value for key and whether the key was present
// in the request form at all. Presence is what decides partial-update
// semantics: an explicit empty value overwrites, an absent key never does.
func formValue(c echo.Context, key string) (string, bool) {
	params, err := c.FormParams()
	if err != nil {
		return "", false
	}
	vs, ok := params[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}
