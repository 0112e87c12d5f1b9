package adminapi

import (
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"

	"github.com/daksndt/catalog/internal/webserver"
)

func registerHealthRoutes() {
	webserver.PubGET("/health", health)
}

// health reports service liveness plus a few host statistics.
func health(c echo.Context) error {
	cfg := GetConfig(c)

	payload := echo.Map{
		"success":  true,
		"status":   "OK",
		"message":  "Catalog backend is running",
		"database": cfg.Database.Type,
	}

	uploadsDir := cfg.UploadDir()
	payload["uploads_dir"] = uploadsDir
	if info, err := os.Stat(uploadsDir); err == nil && info.IsDir() {
		payload["uploads_exists"] = true
	} else {
		payload["uploads_exists"] = false
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		payload["mem_used_percent"] = vm.UsedPercent
	}
	if uptime, err := host.Uptime(); err == nil {
		payload["host_uptime"] = uptime
	}

	return c.JSON(http.StatusOK, payload)
}
