package middleware

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func TestJWTAuth_ValidToken(t *testing.T) {
	called := false
	handler := JWTAuth(testSecret, nil)(func(ctx *fasthttp.RequestCtx) {
		called = true
	})

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set("Authorization", "Bearer "+signedToken(t, jwt.MapClaims{"user_id": "u1"}))

	handler(ctx)

	if !called {
		t.Fatalf("expected wrapped handler to run")
	}
	if got := string(ctx.Request.Header.Peek("X-User-ID")); got != "u1" {
		t.Fatalf("expected user id forwarded, got %q", got)
	}
}

func TestJWTAuth_SubClaimFallback(t *testing.T) {
	handler := JWTAuth(testSecret, nil)(func(ctx *fasthttp.RequestCtx) {})

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set("Authorization", "Bearer "+signedToken(t, jwt.MapClaims{"sub": "u2"}))

	handler(ctx)

	if got := string(ctx.Request.Header.Peek("X-User-ID")); got != "u2" {
		t.Fatalf("expected sub claim forwarded, got %q", got)
	}
}

func TestJWTAuth_MissingToken(t *testing.T) {
	called := false
	handler := JWTAuth(testSecret, nil)(func(ctx *fasthttp.RequestCtx) {
		called = true
	})

	ctx := &fasthttp.RequestCtx{}
	handler(ctx)

	if called {
		t.Fatalf("handler must not run without a token")
	}
	if ctx.Response.StatusCode() != fasthttp.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", ctx.Response.StatusCode())
	}
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	other, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "u1"}).
		SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}

	called := false
	handler := JWTAuth(testSecret, nil)(func(ctx *fasthttp.RequestCtx) {
		called = true
	})

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set("Authorization", "Bearer "+other)
	handler(ctx)

	if called {
		t.Fatalf("handler must not run with a badly signed token")
	}
	if ctx.Response.StatusCode() != fasthttp.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", ctx.Response.StatusCode())
	}
}
