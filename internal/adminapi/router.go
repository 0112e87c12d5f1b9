// Package adminapi implements the JSON-over-HTTP handlers of the catalog
// admin API.
package adminapi

// Init registers every admin api route with the webserver.
func Init() {
	registerAdminRoutes()
	registerProductRoutes()
	registerHealthRoutes()
}
