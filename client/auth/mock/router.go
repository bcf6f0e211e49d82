package mock

import (
	"net/http"
	"strings"
)

const (
	LoginPath    = "/auth/login"
	RefreshPath  = "/auth/refresh"
	TokenPath    = "/token"
	ResourcePath = "/api/"
)

// Handler routes HTTP requests to the appropriate mock portal endpoints.
type Handler struct {
	// Server is the mock portal backend with endpoint handlers.
	Server *PortalService
}

// ServeHTTP dispatches incoming HTTP requests based on URL path.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == LoginPath:
		if h.Server.LoginHandler != nil {
			h.Server.LoginHandler(w, r)
		} else {
			h.Server.defaultLoginHandler(w, r)
		}
	case r.URL.Path == RefreshPath:
		if h.Server.RefreshHandler != nil {
			h.Server.RefreshHandler(w, r)
		} else {
			h.Server.defaultRefreshHandler(w, r)
		}
	case r.URL.Path == TokenPath:
		if h.Server.TokenHandler != nil {
			h.Server.TokenHandler(w, r)
		} else {
			h.Server.defaultTokenHandler(w, r)
		}
	case strings.HasPrefix(r.URL.Path, ResourcePath):
		if h.Server.ResourceHandler != nil {
			h.Server.ResourceHandler(w, r)
		} else {
			h.Server.defaultResourceHandler(w, r)
		}
	default:
		http.NotFound(w, r)
	}
}
