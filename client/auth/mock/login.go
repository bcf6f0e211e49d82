package mock

import (
	"encoding/json"
	"net/http"
)

// defaultLoginHandler handles /auth/login requests
func (m *PortalService) defaultLoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	m.loginCalls.Add(1)
	var request struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if request.Username != m.Username || request.Password != m.Password {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	accessToken, err := m.createJWT(request.Username, m.AccessTokenTTL)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	response := map[string]interface{}{
		"accessToken":  accessToken,
		"refreshToken": m.newRefreshToken(request.Username),
		"user":         map[string]string{"name": request.Username},
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}
