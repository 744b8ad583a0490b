package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/Mamba1099/milk-farm-sub002/internal/application/analytics"
	"github.com/Mamba1099/milk-farm-sub002/internal/application/auth"
	"github.com/Mamba1099/milk-farm-sub002/internal/application/dto"
	"github.com/Mamba1099/milk-farm-sub002/internal/application/media"
	"github.com/Mamba1099/milk-farm-sub002/internal/application/production"
	"github.com/Mamba1099/milk-farm-sub002/internal/application/usecase"
	"github.com/Mamba1099/milk-farm-sub002/internal/infrastructure/pdf"
	"github.com/Mamba1099/milk-farm-sub002/internal/infrastructure/storage"
	apphttp "github.com/Mamba1099/milk-farm-sub002/internal/interfaces/http"
	"github.com/Mamba1099/milk-farm-sub002/internal/testutil"
)

type apiClient struct {
	t   *testing.T
	app *fiber.App
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	users := testutil.NewUserRepo()
	animals := testutil.NewAnimalRepo()
	prod := testutil.NewProductionRepo()
	summaries := testutil.NewSummaryRepo()
	servings := testutil.NewServingRepo()
	sales := testutil.NewSaleRepo()
	ledgerTx := &testutil.LedgerTx{Production: prod, Summaries: summaries}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(users, auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: 5, RefreshExpHours: 1, Issuer: testIssuer,
		}),
		UserUC:   usecase.NewUserUseCase(users),
		AnimalUC: usecase.NewAnimalUseCase(animals),
		RecordUC: production.NewRecordUseCase(ledgerTx, prod, animals),
		LedgerUC: production.NewLedgerUseCase(
			ledgerTx, prod, summaries, pdf.NewMarotoLedgerGenerator("Granja de prueba"),
		),
		ServingUC: usecase.NewServingUseCase(servings, animals),
		SaleUC:    usecase.NewSaleUseCase(sales),
		UploadUC:  media.NewUploadUseCase(storage.NewMemoryStorage("http://files.test"), 1024),
		DashboardUC: appanalytics.NewDashboardUseCase(
			&testutil.DashboardRepo{Production: prod, Sales: sales, Servings: servings},
			animals, summaries,
		),
		JWTSecret: testJWTSecret,
	})
	return &apiClient{t: t, app: app}
}

func (a *apiClient) do(method, path, token string, body interface{}) *http.Response {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var e dto.ErrorResponse
	decode(t, resp, &e)
	return e.Code
}

// registerAndLogin registra un usuario y devuelve su access token.
func (a *apiClient) registerAndLogin(email, role string) (string, dto.UserResponse) {
	a.t.Helper()
	resp := a.do(http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Username: strings.Split(email, "@")[0], Email: email, Password: "password123", Role: role,
	})
	require.Equal(a.t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = a.do(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: "password123"})
	require.Equal(a.t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	decode(a.t, resp, &out)
	return out.AccessToken, out.User
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "esperado %s, obtenido %s", want, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_RegistroUnicoFarmManager(t *testing.T) {
	api := newAPI(t)

	var exists dto.FarmManagerExistsResponse
	decode(t, api.do(http.MethodGet, "/api/auth/farm-manager/exists", "", nil), &exists)
	assert.False(t, exists.Exists)

	api.registerAndLogin("boss@farm.test", "farm_manager")

	decode(t, api.do(http.MethodGet, "/api/auth/farm-manager/exists", "", nil), &exists)
	assert.True(t, exists.Exists)

	resp := api.do(http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Username: "otro", Email: "otro@farm.test", Password: "password123", Role: "farm_manager",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "FARM_MANAGER_EXISTS", errorCode(t, resp))

	resp = api.do(http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Username: "dup", Email: "BOSS@farm.test", Password: "password123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EMAIL_EXISTS", errorCode(t, resp))
}

func TestAuth_LoginRefreshLogout(t *testing.T) {
	api := newAPI(t)
	api.registerAndLogin("emp@farm.test", "")

	resp := api.do(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "emp@farm.test", Password: "password123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == apphttp.RefreshCookie {
			cookie = c
		}
	}
	resp.Body.Close()
	require.NotNil(t, cookie, "login debe dejar la cookie de refresh")
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: apphttp.RefreshCookie, Value: cookie.Value})
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var refreshed dto.RefreshResponse
	decode(t, resp, &refreshed)
	assert.NotEmpty(t, refreshed.AccessToken)

	resp = api.do(http.MethodGet, "/api/auth/me", refreshed.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me dto.UserResponse
	decode(t, resp, &me)
	assert.Equal(t, "emp@farm.test", me.Email)

	resp = api.do(http.MethodPost, "/api/auth/refresh", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, resp))

	resp = api.do(http.MethodPost, "/api/auth/logout", "", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == apphttp.RefreshCookie {
			assert.Empty(t, c.Value)
		}
	}
}

func TestAuth_CredencialesInvalidas(t *testing.T) {
	api := newAPI(t)
	api.registerAndLogin("emp@farm.test", "")

	resp := api.do(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "emp@farm.test", Password: "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// Permisos
// ──────────────────────────────────────────────────────────────────────────────

func TestRutasProtegidas_SinToken(t *testing.T) {
	api := newAPI(t)
	for _, path := range []string{"/api/animals", "/api/production", "/api/sales", "/api/dashboard/summary", "/api/users"} {
		resp := api.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		resp.Body.Close()
	}
}

func TestPermisos_EmployeeVsManager(t *testing.T) {
	api := newAPI(t)
	boss, _ := api.registerAndLogin("boss@farm.test", "farm_manager")
	emp, empUser := api.registerAndLogin("emp@farm.test", "")

	resp := api.do(http.MethodGet, "/api/users", emp, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = api.do(http.MethodGet, "/api/users", boss, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.UserListResponse
	decode(t, resp, &list)
	assert.Len(t, list.Items, 2)

	role := "farm_manager"
	resp = api.do(http.MethodPut, "/api/users/"+empUser.ID, emp, dto.UpdateUserRequest{Role: &role})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	var animal dto.AnimalResponse
	resp = api.do(http.MethodPost, "/api/animals", emp, dto.CreateAnimalRequest{
		TagNumber: "c-1", Name: "Luna", Type: "cow", Gender: "female",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &animal)
	assert.Equal(t, "C-1", animal.TagNumber)

	resp = api.do(http.MethodDelete, "/api/animals/"+animal.ID, emp, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = api.do(http.MethodDelete, "/api/animals/"+animal.ID, boss, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = api.do(http.MethodGet, "/api/animals/"+animal.ID, boss, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// Producción y libro
// ──────────────────────────────────────────────────────────────────────────────

func TestProduccion_CierreYLibro(t *testing.T) {
	api := newAPI(t)
	token, _ := api.registerAndLogin("boss@farm.test", "farm_manager")

	var cow dto.AnimalResponse
	decode(t, api.do(http.MethodPost, "/api/animals", token, dto.CreateAnimalRequest{
		TagNumber: "C-1", Type: "cow", Gender: "female",
	}), &cow)

	ten, twenty := decimal.NewFromInt(10), decimal.NewFromInt(20)
	calf := decimal.NewFromInt(2)
	resp := api.do(http.MethodPost, "/api/production", token, dto.CreateProductionRequest{
		AnimalID: cow.ID, Date: "2024-03-01", QuantityAM: &ten, QuantityPM: &twenty, CalfQuantityAM: &calf,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var rec dto.ProductionResponse
	decode(t, resp, &rec)
	require.NotNil(t, rec.BalanceAM)
	assertDec(t, "8", *rec.BalanceAM)

	resp = api.do(http.MethodPost, "/api/production", token, dto.CreateProductionRequest{
		AnimalID: cow.ID, Date: "2024-03-01", QuantityAM: &ten,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	for _, posho := range []string{"-1", "0.125"} {
		resp = api.do(http.MethodPost, "/api/production/ledger/2024-03-01/close", token, map[string]string{
			"posho_am": posho, "posho_pm": "0",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, posho)
		assert.Equal(t, "VALIDATION", errorCode(t, resp), posho)
	}

	resp = api.do(http.MethodPost, "/api/production/ledger/2024-03-01/close", token, map[string]string{
		"posho_am": "1", "posho_pm": "3",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var closed dto.DayBalanceResponse
	decode(t, resp, &closed)
	assertDec(t, "8", closed.TotalMorning)
	assertDec(t, "7", closed.BalanceMorning)
	assertDec(t, "24", closed.BalanceEvening)
	assert.True(t, closed.Closed)

	resp = api.do(http.MethodGet, "/api/production/ledger?from=2024-03-01&to=2024-03-02", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rng dto.LedgerRangeResponse
	decode(t, resp, &rng)
	require.Len(t, rng.Days, 2)
	assertDec(t, "24", rng.Days[1].CarriedIn)
	assertDec(t, "24", rng.Days[1].BalanceEvening)
	assert.False(t, rng.Days[1].Closed)

	// cierre sin cuerpo ni Content-Type: posho 0
	resp = api.do(http.MethodPost, "/api/production/ledger/2024-03-02/close", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var empty dto.DayBalanceResponse
	decode(t, resp, &empty)
	assertDec(t, "24", empty.CarriedIn)
	assertDec(t, "0", empty.DeductionAM)
	assertDec(t, "0", empty.DeductionPM)
	assertDec(t, "24", empty.BalanceEvening)

	resp = api.do(http.MethodGet, "/api/production/ledger?from=2024-03-02&to=2024-03-01", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = api.do(http.MethodGet, "/api/production/ledger/pdf?from=2024-03-01&to=2024-03-02", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp = api.do(http.MethodGet, "/api/production?date=2024-03-01", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var day dto.ProductionListResponse
	decode(t, resp, &day)
	assert.Len(t, day.Items, 1)
}

func TestLedgerPreview_Publico(t *testing.T) {
	api := newAPI(t)
	body := `{"entries":[{"balance_am":10,"balance_pm":20},{"balance_am":5}],
		"carried_from_yesterday":2,"deduction_am":1,"deduction_pm":3}`
	req := httptest.NewRequest(http.MethodPost, "/api/ledger/preview", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.LedgerPreviewResponse
	decode(t, resp, &out)
	assertDec(t, "15", out.TotalMorning)
	assertDec(t, "16", out.BalanceMorning)
	assertDec(t, "20", out.TotalEvening)
	assertDec(t, "33", out.BalanceEvening)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas, servicios, subidas y dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestVentas_TotalYListado(t *testing.T) {
	api := newAPI(t)
	token, _ := api.registerAndLogin("boss@farm.test", "farm_manager")

	resp := api.do(http.MethodPost, "/api/sales", token, dto.CreateSaleRequest{
		Date: "2024-03-01", Session: "morning",
		Quantity: decimal.RequireFromString("12.5"), PricePerLiter: decimal.RequireFromString("0.333"),
		BuyerName: "Cooperativa",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sale dto.SaleResponse
	decode(t, resp, &sale)
	assertDec(t, "4.16", sale.TotalAmount)

	resp = api.do(http.MethodGet, "/api/sales?from=2024-03-01&to=2024-03-31", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.SaleListResponse
	decode(t, resp, &list)
	assert.Len(t, list.Items, 1)

	resp = api.do(http.MethodPost, "/api/sales", token, dto.CreateSaleRequest{
		Date: "2024-03-01", Session: "morning", Quantity: decimal.Zero, PricePerLiter: decimal.NewFromInt(1),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))
}

func TestServicios_FechaEsperadaDeParto(t *testing.T) {
	api := newAPI(t)
	token, _ := api.registerAndLogin("boss@farm.test", "farm_manager")

	var cow dto.AnimalResponse
	decode(t, api.do(http.MethodPost, "/api/animals", token, dto.CreateAnimalRequest{
		TagNumber: "C-9", Type: "cow", Gender: "female",
	}), &cow)

	resp := api.do(http.MethodPost, "/api/servings", token, dto.CreateServingRequest{
		FemaleID: cow.ID, ServedAt: "2024-01-01", ServingType: "natural", BullName: "Toro",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var s dto.ServingResponse
	decode(t, resp, &s)
	assert.Equal(t, "2024-10-10", s.ExpectedCalvingDate)
	assert.Equal(t, "pending", s.Outcome)

	outcome := "successful"
	resp = api.do(http.MethodPut, "/api/servings/"+s.ID, token, dto.UpdateServingRequest{Outcome: &outcome})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &s)
	assert.Equal(t, "successful", s.Outcome)
}

func TestUploads_SubirYBorrar(t *testing.T) {
	api := newAPI(t)
	boss, _ := api.registerAndLogin("boss@farm.test", "farm_manager")
	emp, _ := api.registerAndLogin("emp@farm.test", "")

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "vaca.png")
	require.NoError(t, err)
	_, err = part.Write(png)
	require.NoError(t, err)
	require.NoError(t, w.WriteField("folder", "animals"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+emp)
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var up dto.UploadResponse
	decode(t, resp, &up)
	assert.Equal(t, "image/png", up.ContentType)
	assert.True(t, strings.HasPrefix(up.Path, "animals/"))

	resp = api.do(http.MethodDelete, "/api/uploads/"+up.Path, emp, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = api.do(http.MethodDelete, "/api/uploads/"+up.Path, boss, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = api.do(http.MethodDelete, "/api/uploads/"+up.Path, boss, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestDashboard_Summary(t *testing.T) {
	api := newAPI(t)
	token, _ := api.registerAndLogin("emp@farm.test", "")

	resp := api.do(http.MethodGet, "/api/dashboard/summary", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.DashboardSummaryDTO
	decode(t, resp, &out)
	assert.NotEmpty(t, out.Date)
	assert.Nil(t, out.LastClosedDate)
	assert.Equal(t, 0, out.PendingServings)
}
