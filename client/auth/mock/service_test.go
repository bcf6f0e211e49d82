package mock

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func login(t *testing.T, handler http.Handler, username, password string) (int, map[string]interface{}) {
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, LoginPath, bytes.NewReader(body)))
	output := map[string]interface{}{}
	_ = json.Unmarshal(recorder.Body.Bytes(), &output)
	return recorder.Code, output
}

func resource(handler http.Handler, accessToken string) int {
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, ResourcePath+"orders", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	handler.ServeHTTP(recorder, req)
	return recorder.Code
}

func refresh(handler http.Handler, refreshToken string) (int, map[string]string) {
	body, _ := json.Marshal(map[string]string{"refreshToken": refreshToken})
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, RefreshPath, bytes.NewReader(body)))
	output := map[string]string{}
	_ = json.Unmarshal(recorder.Body.Bytes(), &output)
	return recorder.Code, output
}

func TestPortalService(t *testing.T) {
	service, err := NewPortalService(WithUser("bob", "secret"))
	require.NoError(t, err)
	handler := service.Handler()

	code, _ := login(t, handler, "bob", "wrong")
	assert.Equal(t, http.StatusUnauthorized, code)
	code, tokens := login(t, handler, "bob", "secret")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, service.LoginCalls())
	assert.EqualValues(t, map[string]interface{}{"name": "bob"}, tokens["user"])

	accessToken := tokens["accessToken"].(string)
	assert.Equal(t, http.StatusOK, resource(handler, accessToken))
	service.ExpireAccessTokens()
	assert.Equal(t, http.StatusUnauthorized, resource(handler, accessToken))
	assert.Equal(t, 2, service.ResourceCalls())

	refreshToken := tokens["refreshToken"].(string)
	code, pair := refresh(handler, refreshToken)
	require.Equal(t, http.StatusOK, code)
	assert.NotEqual(t, refreshToken, pair["refreshToken"])
	assert.Equal(t, http.StatusOK, resource(handler, pair["accessToken"]))

	code, _ = refresh(handler, refreshToken)
	assert.Equal(t, http.StatusUnauthorized, code, "refresh tokens are single use")

	service.FailRefresh(true)
	code, _ = refresh(handler, pair["refreshToken"])
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, 3, service.RefreshCalls())
}

func TestPortalService_AccessTokenTTL(t *testing.T) {
	service, err := NewPortalService(WithAccessTokenTTL(-time.Minute))
	require.NoError(t, err)
	handler := service.Handler()
	code, tokens := login(t, handler, service.Username, service.Password)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, http.StatusUnauthorized, resource(handler, tokens["accessToken"].(string)))
}

func TestHandler_NotFound(t *testing.T) {
	service, err := NewPortalService()
	require.NoError(t, err)
	recorder := httptest.NewRecorder()
	service.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/unknown", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
