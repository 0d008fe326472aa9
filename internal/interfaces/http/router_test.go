package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appanalytics "github.com/jhoicas/sales-analytics-api/internal/application/analytics"
	"github.com/jhoicas/sales-analytics-api/internal/application/auth"
	"github.com/jhoicas/sales-analytics-api/internal/application/dto"
	"github.com/jhoicas/sales-analytics-api/internal/application/usecase"
	"github.com/jhoicas/sales-analytics-api/internal/infrastructure/cache"
	"github.com/jhoicas/sales-analytics-api/internal/infrastructure/memory"
	"github.com/jhoicas/sales-analytics-api/internal/infrastructure/metrics"
	"github.com/jhoicas/sales-analytics-api/internal/infrastructure/pdf"
	"github.com/jhoicas/sales-analytics-api/internal/infrastructure/seed"
	apphttp "github.com/jhoicas/sales-analytics-api/internal/interfaces/http"
	"github.com/jhoicas/sales-analytics-api/pkg/logger"
)

type appOptions struct {
	allowedHosts []string
	rateLimit    bool
}

// newTestApp levanta la API completa sobre el almacén en memoria con los datos de ejemplo.
func newTestApp(t *testing.T, opts appOptions) *fiber.App {
	t.Helper()
	store := memory.NewStore().Repositories()
	ds, err := seed.Default()
	require.NoError(t, err)
	_, err = seed.Apply(context.Background(), store, ds, bcrypt.MinCost)
	require.NoError(t, err)

	if opts.allowedHosts == nil {
		opts.allowedHosts = []string{"*"}
	}
	log := logger.Nop()
	m := metrics.New()

	authUC := auth.NewAuthUseCase(store.Users, cache.NoopSessionCache{}, m, auth.JWTConfig{
		Secret:     "router-test-secret",
		Issuer:     "sales-analytics-test",
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	}, log)

	app := apphttp.NewApp(apphttp.ServerConfig{
		AppName:        "sales-analytics-test",
		AllowedOrigins: []string{"*"},
		AllowedHosts:   opts.allowedHosts,
		Log:            log,
		Recorder:       m,
	})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  usecase.NewProductUseCase(store.Products),
		SaleUC:     usecase.NewSaleUseCase(store.Sales, store.Products, store.Customers),
		UserUC:     usecase.NewUserUseCase(store.Users, bcrypt.MinCost),
		CustomerUC: usecase.NewCustomerUseCase(store.Customers),
		KPIUC: appanalytics.NewKPIUseCase(store.Analytics, pdf.NewMarotoKPIReport("KPI Report"), m,
			appanalytics.KPIConfig{OperatingExpenseRate: 0.10, RevenueGrowth: 15.5}),
		Health:    apphttp.NewHealthHandler("sales-analytics-api", "test", store.Name, ""),
		Metrics:   m.Handler(),
		RateLimit: opts.rateLimit,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func login(t *testing.T, app *fiber.App, email, password string) dto.TokenResponse {
	t.Helper()
	resp, body := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: password})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	var tokens dto.TokenResponse
	require.NoError(t, json.Unmarshal(body, &tokens))
	return tokens
}

func TestLogin_YMe(t *testing.T) {
	app := newTestApp(t, appOptions{})
	tokens := login(t, app, "Admin@Example.com ", "admin123")

	assert.Equal(t, "bearer", tokens.TokenType)
	assert.Equal(t, 3600, tokens.ExpiresIn)
	assert.NotEmpty(t, tokens.RefreshToken)

	resp, body := call(t, app, http.MethodGet, "/api/auth/me", tokens.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var me dto.UserResponse
	require.NoError(t, json.Unmarshal(body, &me))
	assert.Equal(t, "admin@example.com", me.Email)
	assert.Equal(t, "admin", me.Role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	app := newTestApp(t, appOptions{})

	resp, body := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@example.com", Password: "mala"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "UNAUTHORIZED")

	resp, _ = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "nadie@example.com", Password: "x"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_CuerpoInvalido(t *testing.T) {
	app := newTestApp(t, appOptions{})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{no-json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRefresh(t *testing.T) {
	app := newTestApp(t, appOptions{})
	tokens := login(t, app, "analyst@example.com", "analyst123")

	// Por cuerpo
	resp, body := call(t, app, http.MethodPost, "/api/auth/refresh", "", dto.RefreshRequest{RefreshToken: tokens.RefreshToken})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	var fresh dto.TokenResponse
	require.NoError(t, json.Unmarshal(body, &fresh))
	assert.NotEqual(t, tokens.AccessToken, fresh.AccessToken)

	// Por query
	resp, _ = call(t, app, http.MethodPost, "/api/auth/refresh?refresh_token="+tokens.RefreshToken, "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "sin detección de reutilización el refresh anterior sigue vigente")

	// Un access token no sirve como refresh
	resp, body = call(t, app, http.MethodPost, "/api/auth/refresh", "", dto.RefreshRequest{RefreshToken: tokens.AccessToken})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestRefreshToken_NoAutenticaRutas(t *testing.T) {
	app := newTestApp(t, appOptions{})
	tokens := login(t, app, "viewer@example.com", "viewer123")

	resp, _ := call(t, app, http.MethodGet, "/api/auth/me", tokens.RefreshToken, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogout(t *testing.T) {
	app := newTestApp(t, appOptions{})
	tokens := login(t, app, "viewer@example.com", "viewer123")

	resp, _ := call(t, app, http.MethodPost, "/api/auth/logout", tokens.AccessToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestProducts_RedaccionFinanciera(t *testing.T) {
	app := newTestApp(t, appOptions{})
	viewer := login(t, app, "viewer@example.com", "viewer123")
	admin := login(t, app, "admin@example.com", "admin123")

	resp, body := call(t, app, http.MethodGet, "/api/products", viewer.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var raw struct {
		Items []map[string]any `json:"items"`
	}
	require.NoError(t, json.Unmarshal(body, &raw))
	require.NotEmpty(t, raw.Items)
	for _, p := range raw.Items {
		assert.Contains(t, p, "cost_price")
		assert.Nil(t, p["cost_price"])
		assert.Nil(t, p["profit_margin"])
	}

	resp, body = call(t, app, http.MethodGet, "/api/products/1", admin.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var full map[string]any
	require.NoError(t, json.Unmarshal(body, &full))
	assert.EqualValues(t, 900, full["cost_price"])
	assert.EqualValues(t, 25, full["profit_margin"])
}

func TestProducts_EscrituraRequiereCapacidad(t *testing.T) {
	app := newTestApp(t, appOptions{})
	viewer := login(t, app, "viewer@example.com", "viewer123")
	analyst := login(t, app, "analyst@example.com", "analyst123")

	in := map[string]any{"name": "Webcam", "category": "Accessories", "unit_price": 80, "cost_price": 50, "stock_quantity": 10}

	resp, _ := call(t, app, http.MethodPost, "/api/products", viewer.AccessToken, in)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, body := call(t, app, http.MethodPost, "/api/products", analyst.AccessToken, in)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	var created map[string]any
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Nil(t, created["cost_price"], "analyst no tiene acceso financiero")
}

func TestProducts_NoEncontradoYIDInvalido(t *testing.T) {
	app := newTestApp(t, appOptions{})
	admin := login(t, app, "admin@example.com", "admin123")

	resp, body := call(t, app, http.MethodGet, "/api/products/9999", admin.AccessToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "NOT_FOUND")

	resp, _ = call(t, app, http.MethodGet, "/api/products/abc", admin.AccessToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProducts_EliminarConVentas_Conflicto(t *testing.T) {
	app := newTestApp(t, appOptions{})
	admin := login(t, app, "admin@example.com", "admin123")

	resp, body := call(t, app, http.MethodDelete, "/api/products/1", admin.AccessToken, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "CONFLICT")
}

func TestSales_TotalCalculado(t *testing.T) {
	app := newTestApp(t, appOptions{})
	analyst := login(t, app, "analyst@example.com", "analyst123")

	in := map[string]any{"product_id": 1, "quantity": 2, "unit_price": 200, "total_amount": 99999, "region": "North"}
	resp, body := call(t, app, http.MethodPost, "/api/sales", analyst.AccessToken, in)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	var created dto.SaleResponse
	require.NoError(t, json.Unmarshal(body, &created))

	resp, body = call(t, app, http.MethodGet, "/api/sales/"+itoa(created.ID), analyst.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	assert.EqualValues(t, 400, got["total_amount"])
	assert.Equal(t, "Laptop Pro", got["product_name"])
	assert.Nil(t, got["profit_margin"])
}

func TestSales_ProductoInexistente(t *testing.T) {
	app := newTestApp(t, appOptions{})
	admin := login(t, app, "admin@example.com", "admin123")

	resp, _ := call(t, app, http.MethodPost, "/api/sales", admin.AccessToken, map[string]any{"product_id": 9999, "quantity": 1})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUsers_SoloAdmin(t *testing.T) {
	app := newTestApp(t, appOptions{})
	analyst := login(t, app, "analyst@example.com", "analyst123")
	admin := login(t, app, "admin@example.com", "admin123")

	resp, body := call(t, app, http.MethodGet, "/api/users", analyst.AccessToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Contains(t, string(body), "FORBIDDEN")

	in := dto.CreateUserRequest{Email: "nuevo@example.com", Password: "secreto1", Name: "Nuevo", Permissions: []string{"sales"}}
	resp, body = call(t, app, http.MethodPost, "/api/users", admin.AccessToken, in)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	assert.NotContains(t, string(body), "password")

	resp, _ = call(t, app, http.MethodPost, "/api/users", admin.AccessToken, in)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode, "email duplicado")

	in.Email = "otro@example.com"
	in.Permissions = []string{"superpoder"}
	resp, _ = call(t, app, http.MethodPost, "/api/users", admin.AccessToken, in)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "capacidad desconocida")
}

func TestCustomers_CualquierAutenticado(t *testing.T) {
	app := newTestApp(t, appOptions{})
	viewer := login(t, app, "viewer@example.com", "viewer123")

	resp, body := call(t, app, http.MethodPost, "/api/customers", viewer.AccessToken, map[string]any{"name": "Globex", "email": "ops@globex.example"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	var created dto.CustomerResponse
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "individual", created.CustomerType)
	assert.Equal(t, "active", created.Status)
	require.NotNil(t, created.CreatedBy)

	resp, _ = call(t, app, http.MethodDelete, "/api/customers/"+itoa(created.ID), viewer.AccessToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCustomers_CreditLimitSinRedaccion(t *testing.T) {
	app := newTestApp(t, appOptions{})
	admin := login(t, app, "admin@example.com", "admin123")
	viewer := login(t, app, "viewer@example.com", "viewer123")

	resp, body := call(t, app, http.MethodPost, "/api/customers", admin.AccessToken,
		map[string]any{"name": "Initech", "credit_limit": "1500.50"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	var created dto.CustomerResponse
	require.NoError(t, json.Unmarshal(body, &created))

	resp, body = call(t, app, http.MethodGet, "/api/customers/"+itoa(created.ID), viewer.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got dto.CustomerResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "1500.5", got.CreditLimit.String())
}

func TestKPI_Redaccion(t *testing.T) {
	app := newTestApp(t, appOptions{})
	viewer := login(t, app, "viewer@example.com", "viewer123")
	admin := login(t, app, "admin@example.com", "admin123")

	resp, body := call(t, app, http.MethodGet, "/api/analytics/kpi", viewer.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var limited map[string]any
	require.NoError(t, json.Unmarshal(body, &limited))
	assert.Contains(t, limited, "profit_margin")
	assert.Nil(t, limited["profit_margin"])
	assert.NotContains(t, limited, "total_cogs")
	assert.NotContains(t, limited, "net_profit")
	assert.EqualValues(t, 15.5, limited["revenue_growth"])

	resp, body = call(t, app, http.MethodGet, "/api/analytics/kpis", admin.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var full map[string]any
	require.NoError(t, json.Unmarshal(body, &full))
	assert.NotNil(t, full["profit_margin"])
	assert.Contains(t, full, "total_cogs")
	assert.Equal(t, limited["total_revenue"], full["total_revenue"])
}

func TestKPIReport_PDF(t *testing.T) {
	app := newTestApp(t, appOptions{})
	admin := login(t, app, "admin@example.com", "admin123")

	resp, body := call(t, app, http.MethodGet, "/api/analytics/kpi/report", admin.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestHealthEInfo(t *testing.T) {
	app := newTestApp(t, appOptions{})

	resp, body := call(t, app, http.MethodGet, "/health", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var health dto.HealthResponse
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "memory", health.Store)
	_, err := time.Parse(time.RFC3339, health.Timestamp)
	assert.NoError(t, err)

	resp, body = call(t, app, http.MethodGet, "/", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "running")
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestTrustedHosts(t *testing.T) {
	app := newTestApp(t, appOptions{allowedHosts: []string{"api.example.com", "*.internal.example"}})

	req := httptest.NewRequest(http.MethodGet, "http://evil.example.org/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	for _, host := range []string{"api.example.com", "api.example.com:8000", "svc.internal.example"} {
		req = httptest.NewRequest(http.MethodGet, "http://"+host+"/health", nil)
		resp, err = app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, host)
	}
}

func TestRateLimit_Login(t *testing.T) {
	app := newTestApp(t, appOptions{rateLimit: true})
	in := dto.LoginRequest{Email: "admin@example.com", Password: "mala"}

	for i := 0; i < 5; i++ {
		resp, _ := call(t, app, http.MethodPost, "/api/auth/login", "", in)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	}
	resp, body := call(t, app, http.MethodPost, "/api/auth/login", "", in)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Contains(t, string(body), "RATE_LIMITED")
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t, appOptions{})
	_, _ = call(t, app, http.MethodGet, "/health", "", nil)

	resp, body := call(t, app, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "sales_analytics_http_requests_total")
}

func TestRutaInexistente_404(t *testing.T) {
	app := newTestApp(t, appOptions{})
	resp, body := call(t, app, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "NOT_FOUND")
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestSales_CantidadFueraDeRango(t *testing.T) {
	app := newTestApp(t, appOptions{})
	admin := login(t, app, "admin@example.com", "admin123")

	before, body := call(t, app, http.MethodGet, "/api/analytics/kpi", admin.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, before.StatusCode, string(body))
	var want map[string]any
	require.NoError(t, json.Unmarshal(body, &want))

	resp, body := call(t, app, http.MethodPost, "/api/sales", admin.AccessToken,
		map[string]any{"product_id": 2, "quantity": int64(math.MaxInt64)})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode, string(body))
	assert.Contains(t, string(body), "VALIDATION")

	after, body := call(t, app, http.MethodGet, "/api/analytics/kpi", admin.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, after.StatusCode)
	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, want["top_selling_product"], got["top_selling_product"])
	assert.Equal(t, want["total_sales"], got["total_sales"])
}
