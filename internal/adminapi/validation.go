package adminapi

import (
	"strings"

	"github.com/daksndt/catalog/internal/domain"
)

// validateProductFields checks the structural product rules. Every rule is
// evaluated; all violations are collected in order, not short-circuited.
func validateProductFields(name, description, category, subcategory string) []string {
	var errs []string

	if len(strings.TrimSpace(name)) < 3 {
		errs = append(errs, "Product name must be at least 3 characters long")
	}
	if len(strings.TrimSpace(description)) < 10 {
		errs = append(errs, "Description must be at least 10 characters long")
	}
	if !domain.ValidCategory(category) {
		errs = append(errs, "Invalid category selected")
	}
	if len(strings.TrimSpace(subcategory)) < 2 {
		errs = append(errs, "Subcategory is required")
	}
	return errs
}
