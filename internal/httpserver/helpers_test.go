package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/minipos/minipos/internal/events"
	"github.com/minipos/minipos/internal/models"
	"github.com/minipos/minipos/internal/repo"
	"github.com/minipos/minipos/internal/service"
	"github.com/minipos/minipos/internal/service/search"
	"github.com/minipos/minipos/internal/tokens"
)

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	DB     *gorm.DB
	Issuer *tokens.Issuer
}

func InitTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Item{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := InitTestDB(t)
	issuer := &tokens.Issuer{
		AccessSecret:  []byte("test-access-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}
	r := &repo.GormRepo{DB: db}
	producer := events.NewProducer(nil)

	e := echo.New()
	Register(e, &Deps{
		AuthHandler: &AuthHandler{
			Svc: &service.AuthService{Repo: r, Issuer: issuer, Producer: producer},
		},
		CustomerHandler: &CustomerHandler{
			Svc: &service.CustomerService{Repo: r, Producer: producer},
		},
		ItemHandler: &ItemHandler{
			Svc: &service.ItemService{Repo: r, Producer: producer, Index: &search.Index{}},
		},
		OrderHandler: &OrderHandler{
			Svc: &service.OrderService{Repo: r, Producer: producer},
		},
		Issuer: issuer,
	})

	return &testEnv{T: t, E: e, DB: db, Issuer: issuer}
}

// request runs one request through the full router and returns the recorder.
func (env *testEnv) request(method, path, token string, body any) *httptest.ResponseRecorder {
	env.T.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(env.T, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) newRefreshRequest(refreshToken string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: refreshToken})
	return req
}

func (env *testEnv) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

// signupAndLogin registers a user through the API and returns a live access
// token for protected routes.
func (env *testEnv) signupAndLogin() string {
	env.T.Helper()

	rec := env.request(http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     "Test User",
		"email":    "test@x.com",
		"password": "password",
	})
	require.Equal(env.T, http.StatusCreated, rec.Code)

	rec = env.request(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "test@x.com",
		"password": "password",
	})
	require.Equal(env.T, http.StatusOK, rec.Code)

	var res struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(env.T, res.AccessToken)
	return res.AccessToken
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}
