package adminapi

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/daksndt/catalog/config"
	"github.com/daksndt/catalog/internal/assetstore"
	"github.com/daksndt/catalog/internal/domain"
	"github.com/daksndt/catalog/internal/webserver"
)

type testEnv struct {
	db     *gorm.DB
	cfg    *config.AppConfig
	assets *assetstore.Store
	e      *echo.Echo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "catalog.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrator().AutoMigrate(domain.Tables...))

	cfg := new(config.AppConfig)
	*cfg = config.DefaultAppConfig
	cfg.System.Workdir = t.TempDir()
	cfg.Web.Secret = "test-secret"

	assets, err := assetstore.NewStore(cfg.UploadDir())
	require.NoError(t, err)

	return &testEnv{db: db, cfg: cfg, assets: assets, e: echo.New()}
}

// request builds an echo context wired with the per-request resources the
// middleware chain would normally inject.
func (env *testEnv) request(method, target string, body io.Reader, contentType string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	c.Set(webserver.ContextDBKey, env.db)
	c.Set(webserver.ContextConfigKey, env.cfg)
	c.Set(webserver.ContextAssetsKey, env.assets)
	return c, rec
}

func multipartBody(t *testing.T, fields map[string]string, imageName string, image []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if imageName != "" {
		fw, err := w.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = fw.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func validProductFields() map[string]string {
	return map[string]string{
		"name":           "Weld Block A36",
		"description":    "Carbon steel weld block with seeded lack-of-fusion flaws",
		"category":       domain.CategoryWelded,
		"subcategory":    "Plate",
		"specifications": "300x200x25mm",
		"price":          "1250.50",
	}
}
