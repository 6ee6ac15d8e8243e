package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventbuddy-server/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

const testSecret = "testsecret"

// buildAdminTestApp wires the real verifier and admin middleware in front of a
// trivial handler so the gate itself is what gets exercised.
func buildAdminTestApp() *iris.Application {
	app := iris.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(testSecret))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/ping", func(ctx iris.Context) {
			ctx.JSON(iris.Map{"success": true})
		})
	}
	return app
}

func signTestToken(t *testing.T, role string) string {
	t.Helper()
	signer := jwt.NewSigner(jwt.HS256, []byte(testSecret), time.Minute)
	token, err := signer.Sign(utils.AccessToken{ID: 1, Role: role})
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return string(token)
}

func TestAdminRoutesRBAC(t *testing.T) {
	app := buildAdminTestApp()
	if err := app.Build(); err != nil {
		t.Fatalf("failed to build app: %v", err)
	}

	// No token
	req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}

	// User role
	req2 := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	req2.Header.Set("Authorization", "Bearer "+signTestToken(t, "user"))
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for user role, got %d", resp2.Code)
	}

	// Admin role
	req3 := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	req3.Header.Set("Authorization", "Bearer "+signTestToken(t, "admin"))
	resp3 := httptest.NewRecorder()
	app.ServeHTTP(resp3, req3)
	if resp3.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin role, got %d", resp3.Code)
	}
}
