package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 20; i++ {
		otp := GenerateOTP(6)
		if len(otp) != 6 {
			t.Fatalf("expected 6 characters, got %q", otp)
		}
		for _, r := range otp {
			if r < '0' || r > '9' {
				t.Fatalf("expected digits only, got %q", otp)
			}
		}
	}
}

// A pair signed by CreateTokenPair must verify with the same secret and carry
// the id and role claims intact.
func TestCreateTokenPairRoundTrip(t *testing.T) {
	Cfg = &Config{
		AccessTokenSecret:  "access-test-secret",
		RefreshTokenSecret: "refresh-test-secret",
	}

	pair, err := CreateTokenPair(42, "user", LoginTokenTTL)
	if err != nil {
		t.Fatalf("failed to create token pair: %v", err)
	}
	if len(pair.AccessToken) == 0 || len(pair.RefreshToken) == 0 {
		t.Fatalf("expected both tokens populated, got %+v", pair)
	}

	app := iris.New()
	verifier := jwt.NewVerifier(jwt.HS256, []byte(Cfg.AccessTokenSecret))
	app.Get("/claims", verifier.Verify(func() interface{} {
		return new(AccessToken)
	}), func(ctx iris.Context) {
		claims := jwt.Get(ctx).(*AccessToken)
		ctx.JSON(iris.Map{"id": claims.ID, "role": claims.Role})
	})
	if err := app.Build(); err != nil {
		t.Fatalf("failed to build app: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/claims", nil)
	req.Header.Set("Authorization", "Bearer "+string(pair.AccessToken))
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected verified token to pass, got %d: %s", resp.Code, resp.Body.String())
	}
	body := resp.Body.String()
	if !strings.Contains(body, `"id":42`) || !strings.Contains(body, `"role":"user"`) {
		t.Fatalf("unexpected claims payload: %s", body)
	}

	// Wrong secret must be rejected.
	badVerifier := jwt.NewVerifier(jwt.HS256, []byte("other-secret"))
	badApp := iris.New()
	badApp.Get("/claims", badVerifier.Verify(func() interface{} {
		return new(AccessToken)
	}), func(ctx iris.Context) {
		ctx.JSON(iris.Map{"success": true})
	})
	if err := badApp.Build(); err != nil {
		t.Fatalf("failed to build app: %v", err)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/claims", nil)
	req2.Header.Set("Authorization", "Bearer "+string(pair.AccessToken))
	resp2 := httptest.NewRecorder()
	badApp.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong secret, got %d", resp2.Code)
	}
}
