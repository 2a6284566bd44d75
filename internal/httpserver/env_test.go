package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"storefront/internal/service"
	"storefront/internal/store"
	"storefront/internal/upload"
)

type testEnv struct {
	E      *echo.Echo
	Store  *store.GormStore
	Saver  *upload.Saver
	Auth   *AuthHTTP
	P      *ProductHTTP
	Secret []byte
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	st := &store.GormStore{DB: db}
	require.NoError(t, st.Migrate())
	_, err = st.SeedAdmin(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	saver := &upload.Saver{
		WorkDir:   filepath.Join(t.TempDir(), "assets", "images"),
		PublicDir: filepath.Join(t.TempDir(), "public", "assets", "images"),
	}

	secret := []byte("test-jwt-secret")

	return &testEnv{
		E:      echo.New(),
		Store:  st,
		Saver:  saver,
		Auth:   &AuthHTTP{Svc: &service.AuthService{Store: st, JWTSecret: secret}},
		P:      &ProductHTTP{Svc: &service.ProductService{Store: st, Uploads: saver}},
		Secret: secret,
	}
}

func (env *testEnv) doJSONRequest(t *testing.T, method, target string, payload any) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

type formFile struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

func (env *testEnv) doMultipartRequest(t *testing.T, fields map[string]string, file *formFile) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+file.Field+`"; filename="`+file.Filename+`"`)
		h.Set("Content-Type", file.ContentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.Data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/products", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func requireHTTPError(t *testing.T, err error, wantCode int) *echo.HTTPError {
	t.Helper()

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError, got %v", err)
	require.Equal(t, wantCode, he.Code)
	return he
}
