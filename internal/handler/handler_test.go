package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mro-inventory/internal/middleware"
	"mro-inventory/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("handler-test-secret")

type rolePermissions map[string][]string

func (p rolePermissions) CodesForRole(_ context.Context, role string) ([]string, error) {
	return p[role], nil
}

func newTestAuthorizer() *middleware.Authorizer {
	return middleware.NewAuthorizer(testSecret, rolePermissions{
		"admin": {
			model.PermInventoryRead, model.PermInventoryWrite, model.PermInventoryPost,
			model.PermInventoryCancel, model.PermInventoryBackorder, model.PermCatalogWrite,
		},
		"storekeeper": {model.PermInventoryRead, model.PermInventoryWrite, model.PermInventoryPost},
		"technician":  {model.PermInventoryRead},
	}, time.Minute)
}

func tokenFor(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString(testSecret)
	require.NoError(t, err)
	return token
}

type routeRegistrar interface {
	RegisterRoutes(router *gin.RouterGroup, auth *middleware.Authorizer)
}

func newTestRouter(handlers ...routeRegistrar) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := newTestAuthorizer()
	for _, h := range handlers {
		h.RegisterRoutes(&r.RouterGroup, auth)
	}
	return r
}

type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"status_code"`
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
	Details    json.RawMessage `json:"details"`
}

func doRequest(t *testing.T, r http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}
