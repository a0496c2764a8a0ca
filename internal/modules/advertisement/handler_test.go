package advertisement

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmaguide/pharmaguide-backend/internal/web"
)

func newTestRouter(f fixture) *chi.Mux {
	r := chi.NewRouter()
	NewHandler(f.svc, web.Paging{Default: 10, Max: 100}, 1<<20).RegisterRoutes(r)
	return r
}

func form(t *testing.T, method, path string, fields map[string]string, file []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		fw, err := mw.CreateFormFile("file", "banner.png")
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRoutes(t *testing.T) {
	f := newFixture()
	r := newTestRouter(f)

	rec := serve(r, form(t, http.MethodPost, "/api/v1/advertisements", map[string]string{
		"advertisement_title":       "Flu season",
		"advertisement_description": "Vaccines in stock",
		"owner":                     "1",
	}, []byte("png")))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created Advertisement
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "img-1.jpg", created.Image)
	require.NotNil(t, created.Owner)
	assert.Equal(t, int64(1), *created.Owner)

	rec = serve(r, form(t, http.MethodPatch, "/api/v1/advertisements/1", map[string]string{
		"advertisement_title": "Allergy relief",
	}, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"advertisement_title":"Allergy relief"`)
	assert.Contains(t, rec.Body.String(), `"advertisement_image":"img-1.jpg"`)

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/advertisements?skip=0&limit=5", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var list []Advertisement
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	rec = serve(r, httptest.NewRequest(http.MethodDelete, "/api/v1/advertisements/1", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/advertisements/1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateRouteErrors(t *testing.T) {
	f := newFixture()
	r := newTestRouter(f)

	rec := serve(r, form(t, http.MethodPost, "/api/v1/advertisements", map[string]string{
		"advertisement_title": "t", "advertisement_description": "d",
	}, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(r, form(t, http.MethodPost, "/api/v1/advertisements", map[string]string{
		"advertisement_title": "t", "advertisement_description": "d", "owner": "abc",
	}, []byte("png")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/advertisements/x", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, f.files.Count())
}
