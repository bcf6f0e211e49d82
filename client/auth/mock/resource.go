package mock

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// defaultResourceHandler simulates a protected portal API under /api/
func (m *PortalService) defaultResourceHandler(w http.ResponseWriter, r *http.Request) {
	m.resourceCalls.Add(1)
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		w.Header().Set("WWW-Authenticate", fmt.Sprintf(`Bearer realm="%s"`, m.Issuer))
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		http.Error(w, "Invalid authorization header", http.StatusBadRequest)
		return
	}
	subject, err := m.verifyJWT(parts[1])
	if err != nil {
		w.Header().Set("WWW-Authenticate", fmt.Sprintf(`Bearer realm="%s", error="invalid_token"`, m.Issuer))
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}
	var body string
	if r.Body != nil {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"message": "This is a protected resource",
		"path":    r.URL.Path,
		"subject": subject,
		"body":    body,
	})
}
