package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lagerverwaltung-api/internal/application/auth"
	"github.com/jhoicas/lagerverwaltung-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/lagerverwaltung-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/lagerverwaltung-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-for-middleware"
	testIssuer    = "lagerverwaltung-test"
	testUserID    = int64(42)
	testUsername  = "lager"
)

func newVerifier() (*auth.AuthUseCase, *memory.Store) {
	store := memory.NewStore()
	uc := auth.NewAuthUseCase(store.Users(), store.Blacklist(), auth.JWTConfig{
		Secret:     testJWTSecret,
		Issuer:     testIssuer,
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	})
	return uc, store
}

// buildTestApp crea una app con una ruta protegida que devuelve los Locals.
func buildTestApp(verifier apphttp.TokenVerifier) *fiber.App {
	app := fiber.New()
	app.Get("/test", apphttp.AuthMiddleware(verifier), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  apphttp.GetUserID(c),
			"username": apphttp.GetUsername(c),
			"jti":      apphttp.GetClaims(c).ID,
		})
	})
	return app
}

func issue(t *testing.T, tokenType string, ttl time.Duration) *pkgjwt.Issued {
	t.Helper()
	issued, err := pkgjwt.Generate(testJWTSecret, testIssuer, tokenType, testUserID, testUsername, ttl)
	require.NoError(t, err)
	return issued
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	uc, _ := newVerifier()
	app := buildTestApp(uc)
	issued := issue(t, pkgjwt.TypeAccess, time.Hour)

	resp := doRequest(t, app, "Bearer "+issued.Token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(testUserID), body["user_id"])
	assert.Equal(t, testUsername, body["username"])
	assert.Equal(t, issued.ID, body["jti"])
}

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	uc, _ := newVerifier()
	resp := doRequest(t, buildTestApp(uc), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_FormatoInvalido_Retorna401(t *testing.T) {
	uc, _ := newVerifier()
	resp := doRequest(t, buildTestApp(uc), "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenMalformado_Retorna401(t *testing.T) {
	uc, _ := newVerifier()
	resp := doRequest(t, buildTestApp(uc), "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_RefreshNoSirveComoAccess(t *testing.T) {
	uc, _ := newVerifier()
	issued := issue(t, pkgjwt.TypeRefresh, time.Hour)

	resp := doRequest(t, buildTestApp(uc), "Bearer "+issued.Token)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"un refresh token no debe abrir rutas protegidas")
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	uc, _ := newVerifier()
	issued := issue(t, pkgjwt.TypeAccess, -time.Minute)

	resp := doRequest(t, buildTestApp(uc), "Bearer "+issued.Token)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenRevocado_Retorna401(t *testing.T) {
	uc, store := newVerifier()
	issued := issue(t, pkgjwt.TypeAccess, time.Hour)
	require.NoError(t, store.Blacklist().Revoke(context.Background(), issued.ID, issued.ExpiresAt))

	resp := doRequest(t, buildTestApp(uc), "Bearer "+issued.Token)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"un token revocado con logout no debe ser aceptado")
}
