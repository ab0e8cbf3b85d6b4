package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/23f3000115/agency-os/module/core/domain"
)

var (
	ownerPrincipal    = domain.Principal{UserID: uuid.MustParse("00000000-0000-0000-0000-0000000000aa"), Role: domain.RoleOwner, FullName: "Owner"}
	employeePrincipal = domain.Principal{UserID: uuid.MustParse("00000000-0000-0000-0000-0000000000e1"), Role: domain.RoleEmployee, FullName: "Asha"}
)

type registrar func(member, owner *gin.RouterGroup)

func withPrincipal(p domain.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(principalKey, p)
		c.Next()
	}
}

func setupRouter(p domain.Principal, register registrar) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	member := r.Group("", withPrincipal(p))
	owner := member.Group("", RequireRole(domain.RoleOwner))
	register(member, owner)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, _ := http.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("unmarshal %q: %v", w.Body.String(), err)
	}
}

func floatPtr(f float64) *float64 { return &f }
