package mock

import (
	"encoding/json"
	"net/http"
	"time"
)

func (m *PortalService) beginRefresh() bool {
	m.refreshCalls.Add(1)
	if m.RefreshDelay > 0 {
		time.Sleep(m.RefreshDelay)
	}
	return !m.failRefresh.Load()
}

// defaultRefreshHandler handles /auth/refresh JSON requests
func (m *PortalService) defaultRefreshHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !m.beginRefresh() {
		http.Error(w, "Refresh rejected", http.StatusUnauthorized)
		return
	}
	var request struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.RefreshToken == "" {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	accessToken, refreshToken, err := m.rotate(request.RefreshToken)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// defaultTokenHandler handles OAuth2 refresh_token grants on /token
func (m *PortalService) defaultTokenHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	if grantType := r.FormValue("grant_type"); grantType != "refresh_token" {
		http.Error(w, "Unsupported grant type", http.StatusBadRequest)
		return
	}
	clientID, clientSecret, ok := r.BasicAuth()
	if !ok {
		clientID = r.FormValue("client_id")
		clientSecret = r.FormValue("client_secret")
	}
	if clientID != m.ClientID || clientSecret != m.ClientSecret {
		http.Error(w, "Invalid client credentials", http.StatusUnauthorized)
		return
	}
	if !m.beginRefresh() {
		writeOAuthError(w, "invalid_grant")
		return
	}
	accessToken, refreshToken, err := m.rotate(r.FormValue("refresh_token"))
	if err != nil {
		writeOAuthError(w, "invalid_grant")
		return
	}
	response := map[string]interface{}{
		"access_token":  accessToken,
		"token_type":    "Bearer",
		"refresh_token": refreshToken,
		"expires_in":    int(m.AccessTokenTTL.Seconds()),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

func writeOAuthError(w http.ResponseWriter, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
