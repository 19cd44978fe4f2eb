package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lagerverwaltung-api/internal/application/auth"
	"github.com/jhoicas/lagerverwaltung-api/internal/application/dto"
	"github.com/jhoicas/lagerverwaltung-api/internal/application/inventory"
	"github.com/jhoicas/lagerverwaltung-api/internal/application/report"
	"github.com/jhoicas/lagerverwaltung-api/internal/application/usecase"
	"github.com/jhoicas/lagerverwaltung-api/internal/infrastructure/memory"
	"github.com/jhoicas/lagerverwaltung-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/lagerverwaltung-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Servidor completo sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

func newTestServer(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	authUC := auth.NewAuthUseCase(store.Users(), store.Blacklist(), auth.JWTConfig{
		Secret: testJWTSecret,
		Issuer: testIssuer,
	})
	reports := report.NewUseCase(store.Reports(), store.Projects(), store.Customers(), pdf.NewMarotoPDFGenerator("Möbellager Test"))

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     authUC,
		SupplierUC: usecase.NewSupplierUseCase(store.Suppliers()),
		ArticleUC:  usecase.NewArticleUseCase(store.Articles(), store.Suppliers()),
		CustomerUC: usecase.NewCustomerUseCase(store.Customers()),
		ProjectUC:  usecase.NewProjectUseCase(store.Projects(), store.Customers()),
		Ledger:     inventory.NewLedgerUseCase(store.TxRunner(), store.Articles(), store.Projects(), store.Lots(), nil, nil),
		Reports:    reports,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func expectError(t *testing.T, resp *http.Response, status int, code string) {
	t.Helper()
	assert.Equal(t, status, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, code, body.Code)
}

func login(t *testing.T, app *fiber.App) dto.TokenResponse {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Username: "Lager", Password: "geheim123"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "lager", Password: "geheim123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[dto.TokenResponse](t, resp)
}

type catalogIDs struct {
	supplierID int64
	projectID  int64
}

// seedCatalog crea proveedor, artículo STUHL-07 (mínimo 12), cliente y proyecto.
func seedCatalog(t *testing.T, app *fiber.App, token string) catalogIDs {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/suppliers", token, dto.CreateSupplierRequest{Name: "Möbelwerk Nord"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sup := decode[dto.SupplierResponse](t, resp)

	minimum := 12
	resp = call(t, app, http.MethodPost, "/api/articles", token, dto.CreateArticleRequest{
		Code: "STUHL-07", Name: "Stuhl Eiche", SupplierID: sup.ID, MinimumStock: &minimum,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodPost, "/api/customers", token, dto.CreateCustomerRequest{Name: "Hotel Seeblick"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cust := decode[dto.CustomerResponse](t, resp)

	resp = call(t, app, http.MethodPost, "/api/projects", token, dto.CreateProjectRequest{Name: "Renovierung", CustomerID: cust.ID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	proj := decode[dto.ProjectResponse](t, resp)

	return catalogIDs{supplierID: sup.ID, projectID: proj.ID}
}

func receive(t *testing.T, app *fiber.App, token string, qty int, price, date string) {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/stock/receipts", token, map[string]any{
		"article_code": "STUHL-07", "quantity": qty, "unit_price": price, "receipt_date": date,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_LoginMeLogout(t *testing.T) {
	app := newTestServer(t)
	tokens := login(t, app)

	assert.Equal(t, "Bearer", tokens.TokenType)
	assert.Equal(t, int(time.Hour.Seconds()), tokens.ExpiresIn)
	assert.NotEmpty(t, tokens.RefreshToken)

	resp := call(t, app, http.MethodGet, "/api/auth/me", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode[dto.UserResponse](t, resp)
	assert.Equal(t, "lager", me.Username)

	resp = call(t, app, http.MethodPost, "/api/auth/logout", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, "/api/auth/me", tokens.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "el token revocado no debe servir")
	resp.Body.Close()
}

func TestAuth_RefreshPorBodyYHeader(t *testing.T) {
	app := newTestServer(t)
	tokens := login(t, app)

	resp := call(t, app, http.MethodPost, "/api/auth/refresh", "", dto.RefreshRequest{RefreshToken: tokens.RefreshToken})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fresh := decode[dto.TokenResponse](t, resp)
	assert.NotEmpty(t, fresh.AccessToken)

	resp = call(t, app, http.MethodPost, "/api/auth/refresh", tokens.RefreshToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Un access token no sirve como refresh.
	resp = call(t, app, http.MethodPost, "/api/auth/refresh", tokens.AccessToken, nil)
	expectError(t, resp, http.StatusUnauthorized, "UNAUTHORIZED")
}

func TestAuth_CredencialesInvalidas(t *testing.T) {
	app := newTestServer(t)
	login(t, app)

	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "lager", Password: "falsch"})
	expectError(t, resp, http.StatusUnauthorized, "UNAUTHORIZED")

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "niemand", Password: "geheim123"})
	expectError(t, resp, http.StatusUnauthorized, "UNAUTHORIZED")
}

func TestAuth_RegistroDuplicado(t *testing.T) {
	app := newTestServer(t)
	login(t, app)

	resp := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Username: "LAGER", Password: "geheim123"})
	expectError(t, resp, http.StatusConflict, "DUPLICATE")
}

func TestRutasProtegidas_SinToken(t *testing.T) {
	app := newTestServer(t)
	for _, path := range []string{"/api/articles", "/api/stock", "/api/reports/turnover", "/api/auth/users"} {
		resp := call(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		resp.Body.Close()
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ledger FIFO vía HTTP
// ──────────────────────────────────────────────────────────────────────────────

func TestVenta_ConsumeLotesFIFO(t *testing.T) {
	app := newTestServer(t)
	token := login(t, app).AccessToken
	ids := seedCatalog(t, app, token)
	receive(t, app, token, 25, "180", "2024-01-10")
	receive(t, app, token, 15, "190", "2024-01-20")

	resp := call(t, app, http.MethodPost, "/api/sales", token, map[string]any{
		"project_id": ids.projectID, "article_code": "STUHL-07", "quantity": 30, "unit_price": 280, "sale_date": "2024-02-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sale := decode[dto.SaleResponse](t, resp)

	assert.True(t, decimal.NewFromInt(8400).Equal(sale.Revenue), "revenue=%s", sale.Revenue)
	require.Len(t, sale.Allocations, 2)
	assert.Equal(t, 25, sale.Allocations[0].Quantity)
	assert.True(t, decimal.NewFromInt(180).Equal(sale.Allocations[0].UnitCost))
	assert.Equal(t, 5, sale.Allocations[1].Quantity)

	resp = call(t, app, http.MethodGet, "/api/stock/STUHL-07", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	lots := decode[dto.ListResponse[dto.LotResponse]](t, resp)
	require.Len(t, lots.Items, 1, "el lote agotado no se lista por defecto")
	assert.Equal(t, 10, lots.Items[0].AvailableQuantity)
	assert.Equal(t, "2024-01-20", lots.Items[0].ReceiptDate)

	resp = call(t, app, http.MethodGet, "/api/stock/STUHL-07?include_zero=true", token, nil)
	lots = decode[dto.ListResponse[dto.LotResponse]](t, resp)
	assert.Len(t, lots.Items, 2)
}

func TestVenta_StockInsuficienteNoModificaNada(t *testing.T) {
	app := newTestServer(t)
	token := login(t, app).AccessToken
	ids := seedCatalog(t, app, token)
	receive(t, app, token, 10, "180", "2024-01-10")

	resp := call(t, app, http.MethodPost, "/api/sales", token, map[string]any{
		"project_id": ids.projectID, "article_code": "STUHL-07", "quantity": 11, "unit_price": "250",
	})
	expectError(t, resp, http.StatusConflict, "INSUFFICIENT_STOCK")

	resp = call(t, app, http.MethodGet, "/api/stock", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decode[dto.ListResponse[dto.StockSummaryItem]](t, resp)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 10, summary.Items[0].TotalQuantity)
}

func TestVenta_ErroresDeEntrada(t *testing.T) {
	app := newTestServer(t)
	token := login(t, app).AccessToken
	ids := seedCatalog(t, app, token)

	resp := call(t, app, http.MethodPost, "/api/sales", token, map[string]any{
		"project_id": ids.projectID + 99, "article_code": "STUHL-07", "quantity": 1, "unit_price": 1,
	})
	expectError(t, resp, http.StatusNotFound, "NOT_FOUND")

	resp = call(t, app, http.MethodPost, "/api/sales", token, map[string]any{
		"project_id": ids.projectID, "article_code": "STUHL-07", "quantity": 0, "unit_price": 1,
	})
	expectError(t, resp, http.StatusBadRequest, "VALIDATION")

	resp = call(t, app, http.MethodPost, "/api/stock/receipts", token, map[string]any{
		"article_code": "GIBT-ES-NICHT", "quantity": 1, "unit_price": 1,
	})
	expectError(t, resp, http.StatusNotFound, "NOT_FOUND")

	resp = call(t, app, http.MethodPost, "/api/stock/receipts", token, map[string]any{
		"article_code": "STUHL-07", "quantity": 1, "unit_price": 0,
	})
	expectError(t, resp, http.StatusBadRequest, "VALIDATION")

	resp = call(t, app, http.MethodPost, "/api/stock/receipts", token, map[string]any{
		"article_code": "STUHL-07", "quantity": 3_000_000_000, "unit_price": 1,
	})
	expectError(t, resp, http.StatusBadRequest, "VALIDATION")

	resp = call(t, app, http.MethodPost, "/api/stock/receipts", token, map[string]any{
		"article_code": "STUHL-07", "quantity": 1, "unit_price": "180.555",
	})
	expectError(t, resp, http.StatusBadRequest, "VALIDATION")

	req := httptest.NewRequest(http.MethodPost, "/api/sales", bytes.NewBufferString("{no json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	raw, err := app.Test(req, -1)
	require.NoError(t, err)
	expectError(t, raw, http.StatusBadRequest, "INVALID_BODY")
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestProveedor_BorrarConArticulos_Conflicto(t *testing.T) {
	app := newTestServer(t)
	token := login(t, app).AccessToken
	ids := seedCatalog(t, app, token)

	resp := call(t, app, http.MethodDelete, fmt.Sprintf("/api/suppliers/%d", ids.supplierID), token, nil)
	expectError(t, resp, http.StatusConflict, "INTEGRITY")

	resp = call(t, app, http.MethodPut, fmt.Sprintf("/api/suppliers/%d", ids.supplierID), token, map[string]any{"contact": "info@moebelwerk.de"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sup := decode[dto.SupplierResponse](t, resp)
	assert.Equal(t, "Möbelwerk Nord", sup.Name)
	assert.Equal(t, "info@moebelwerk.de", sup.Contact)

	resp = call(t, app, http.MethodGet, "/api/suppliers/abc", token, nil)
	expectError(t, resp, http.StatusBadRequest, "INVALID_ID")
}

func TestArticulo_CodigoDuplicado(t *testing.T) {
	app := newTestServer(t)
	token := login(t, app).AccessToken
	ids := seedCatalog(t, app, token)

	resp := call(t, app, http.MethodPost, "/api/articles", token, dto.CreateArticleRequest{
		Code: "STUHL-07", Name: "Otro", SupplierID: ids.supplierID,
	})
	expectError(t, resp, http.StatusConflict, "DUPLICATE")

	resp = call(t, app, http.MethodGet, "/api/articles/STUHL-07", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	art := decode[dto.ArticleResponse](t, resp)
	assert.Equal(t, 12, art.MinimumStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestReportes(t *testing.T) {
	app := newTestServer(t)
	token := login(t, app).AccessToken
	ids := seedCatalog(t, app, token)
	receive(t, app, token, 25, "180", "2024-01-10")
	receive(t, app, token, 15, "190", "2024-01-20")
	resp := call(t, app, http.MethodPost, "/api/sales", token, map[string]any{
		"project_id": ids.projectID, "article_code": "STUHL-07", "quantity": 30, "unit_price": 280,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, "/api/reports/below-minimum", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	below := decode[dto.ListResponse[dto.BelowMinimumItem]](t, resp)
	require.Len(t, below.Items, 1)
	assert.Equal(t, 10, below.Items[0].CurrentStock)

	resp = call(t, app, http.MethodGet, "/api/reports/stock?detailed=true", token, nil)
	detail := decode[dto.ListResponse[dto.StockDetailItem]](t, resp)
	assert.Len(t, detail.Items, 1)

	resp = call(t, app, http.MethodGet, fmt.Sprintf("/api/reports/profit?project_id=%d&basis=fifo", ids.projectID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	profit := decode[dto.ProfitAnalysisResponse](t, resp)
	assert.Equal(t, "fifo", profit.CostBasis)
	assert.True(t, decimal.NewFromInt(5450).Equal(profit.TotalCost), "cost=%s", profit.TotalCost)

	resp = call(t, app, http.MethodGet, "/api/reports/profit?basis=lifo", token, nil)
	expectError(t, resp, http.StatusBadRequest, "VALIDATION")

	resp = call(t, app, http.MethodGet, "/api/reports/turnover", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	turnover := decode[dto.ListResponse[dto.TurnoverItem]](t, resp)
	require.Len(t, turnover.Items, 1)
	assert.Equal(t, 30, turnover.Items[0].Sold)

	resp = call(t, app, http.MethodGet, fmt.Sprintf("/api/projects/%d", ids.projectID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	overview := decode[dto.ProjectOverviewResponse](t, resp)
	assert.Equal(t, "Hotel Seeblick", overview.Customer)
	assert.Len(t, overview.Sales, 1)

	resp = call(t, app, http.MethodGet, fmt.Sprintf("/api/reports/projects/%d/pdf", ids.projectID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp = call(t, app, http.MethodGet, "/api/reports/projects/999/pdf", token, nil)
	expectError(t, resp, http.StatusNotFound, "NOT_FOUND")
}
