package httpserver

import "net/http"

// Controller registers its routes on the shared mux.
type Controller interface {
	AddRoutes(*http.ServeMux)
}
