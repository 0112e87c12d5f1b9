package adminapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/daksndt/catalog/internal/assetstore"
	"github.com/daksndt/catalog/internal/domain"
	"github.com/daksndt/catalog/internal/webserver"
	"github.com/daksndt/catalog/pkg/common"
)

func registerProductRoutes() {
	webserver.PubGET("/products", listProducts)
	webserver.PubGET("/products/:id", getProduct)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

// listProducts returns all products, newest first, optionally restricted by
// exact category and a case-insensitive search over name and description.
func listProducts(c echo.Context) error {
	db := GetDB(c).Model(&domain.Product{})

	category := strings.TrimSpace(c.QueryParam("category"))
	if category != "" && category != domain.CategoryAll {
		db = db.Where("category = ?", category)
	}

	if q := strings.TrimSpace(c.QueryParam("search")); q != "" {
		if strings.EqualFold(db.Name(), "postgres") { //nolint:staticcheck
			db = db.Where("name ILIKE ? OR description ILIKE ?", "%"+q+"%", "%"+q+"%")
		} else {
			lq := "%" + strings.ToLower(q) + "%"
			db = db.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", lq, lq)
		}
	}

	var products []domain.Product
	if err := db.Order("created_at DESC").Find(&products).Error; err != nil {
		zap.L().Error("failed to query products", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "Error fetching products")
	}

	return ok(c, echo.Map{
		"count":    len(products),
		"products": products,
	})
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusNotFound, "Product not found")
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "Product not found")
	} else if err != nil {
		zap.L().Error("failed to query product", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "Error fetching product")
	}
	return ok(c, echo.Map{"product": p})
}

// createProduct inserts a new product from a multipart form. The image file
// is mandatory; field validation collects every violation before anything is
// persisted.
func createProduct(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Product image is required")
	}

	name := c.FormValue("name")
	description := c.FormValue("description")
	category := c.FormValue("category")
	subcategory := c.FormValue("subcategory")

	if errs := validateProductFields(name, description, category, subcategory); len(errs) > 0 {
		return failValidation(c, errs)
	}

	price := cast.ToFloat64(c.FormValue("price"))
	if price < 0 {
		return fail(c, http.StatusBadRequest, "Price must not be negative")
	}
	inStock := true
	if v, present := formValue(c, "inStock"); present {
		inStock = cast.ToBool(v)
	}

	src, err := file.Open()
	if err != nil {
		zap.L().Error("failed to open upload", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "Error creating product")
	}
	defer src.Close()

	assets := GetAssets(c)
	ref, err := assets.Save(src, file.Filename, file.Size)
	if err != nil {
		return assetError(c, err, "Error creating product")
	}

	now := time.Now()
	p := domain.Product{
		ID:             common.UUIDint64(),
		Name:           strings.TrimSpace(name),
		Description:    description,
		Category:       category,
		Subcategory:    subcategory,
		ImageURL:       ref,
		Specifications: c.FormValue("specifications"),
		Price:          price,
		InStock:        inStock,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := GetDB(c).Create(&p).Error; err != nil {
		assets.Remove(ref)
		zap.L().Error("failed to create product", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "Error creating product")
	}

	return created(c, echo.Map{
		"message": "Product created successfully",
		"product": p,
	})
}

// updateProduct applies a partial update: a form key present in the request
// overwrites the stored value even when empty, zero or false; an absent key
// leaves it untouched. An uploaded image replaces the stored file.
func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusNotFound, "Product not found")
	}

	db := GetDB(c)
	var p domain.Product
	if err := db.Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "Product not found")
	} else if err != nil {
		zap.L().Error("failed to query product", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "Error updating product")
	}

	if v, present := formValue(c, "name"); present {
		p.Name = strings.TrimSpace(v)
	}
	if v, present := formValue(c, "description"); present {
		p.Description = v
	}
	if v, present := formValue(c, "category"); present {
		p.Category = v
	}
	if v, present := formValue(c, "subcategory"); present {
		p.Subcategory = v
	}
	if v, present := formValue(c, "specifications"); present {
		p.Specifications = v
	}
	if v, present := formValue(c, "price"); present {
		price := cast.ToFloat64(v)
		if price < 0 {
			return fail(c, http.StatusBadRequest, "Price must not be negative")
		}
		p.Price = price
	}
	if v, present := formValue(c, "inStock"); present {
		p.InStock = cast.ToBool(v)
	}

	if errs := validateProductFields(p.Name, p.Description, p.Category, p.Subcategory); len(errs) > 0 {
		return failValidation(c, errs)
	}

	if file, ferr := c.FormFile("image"); ferr == nil {
		src, oerr := file.Open()
		if oerr != nil {
			zap.L().Error("failed to open upload", zap.Error(oerr))
			return fail(c, http.StatusInternalServerError, "Error updating product")
		}
		defer src.Close()

		ref, serr := GetAssets(c).Replace(p.ImageURL, src, file.Filename, file.Size)
		if serr != nil {
			return assetError(c, serr, "Error updating product")
		}
		p.ImageURL = ref
	}

	p.UpdatedAt = time.Now()
	if err := db.Save(&p).Error; err != nil {
		zap.L().Error("failed to update product", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "Error updating product")
	}

	return ok(c, echo.Map{
		"message": "Product updated successfully",
		"product": p,
	})
}

// deleteProduct removes the record and its owned image file. The file
// removal is tolerant of absence; the record is only removed after a
// successful lookup.
func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusNotFound, "Product not found")
	}

	db := GetDB(c)
	var p domain.Product
	if err := db.Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "Product not found")
	} else if err != nil {
		zap.L().Error("failed to query product", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "Error deleting product")
	}

	GetAssets(c).Remove(p.ImageURL)

	if err := db.Delete(&domain.Product{}, p.ID).Error; err != nil {
		zap.L().Error("failed to delete product", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "Error deleting product")
	}

	return ok(c, echo.Map{"message": "Product deleted successfully"})
}

// assetError maps asset store failures onto the error taxonomy: client
// mistakes become 400, anything else is an internal error.
func assetError(c echo.Context, err error, generic string) error {
	switch {
	case errors.Is(err, assetstore.ErrUnsupportedType):
		return fail(c, http.StatusBadRequest, "Only jpeg, jpg, png, gif and webp images are allowed")
	case errors.Is(err, assetstore.ErrTooLarge):
		return fail(c, http.StatusBadRequest, "File too large. Maximum size is 5MB")
	default:
		zap.L().Error("asset store failure", zap.Error(err))
		return fail(c, http.StatusInternalServerError, generic)
	}
}
