package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumengrid/ledcast/internal/http/api"
	"github.com/lumengrid/ledcast/internal/http/middleware"
	"github.com/lumengrid/ledcast/internal/media"
	"github.com/lumengrid/ledcast/internal/model"
	"github.com/lumengrid/ledcast/internal/state"
	"github.com/lumengrid/ledcast/internal/store"
)

const (
	testSecret   = "test-secret"
	testPassword = "operator-password"
)

type nullStorage struct{}

func (nullStorage) SaveFile(_ *multipart.FileHeader, filename string) (string, error) {
	return "/uploads/" + filename, nil
}
func (nullStorage) DeleteFile(string) error { return nil }

type stubProber struct{}

func (stubProber) Probe(context.Context, string) (*media.ProbeResult, error) {
	return &media.ProbeResult{Duration: 12, Width: 1920, Height: 1080}, nil
}

type testEnv struct {
	router *gin.Engine
	ctl    *state.Controller
	token  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctl := state.New(state.DefaultConfig(), nullStorage{}, nil)
	ctl.Bootstrap(nil)
	pipeline := media.NewPipeline(nullStorage{}, stubProber{}, media.NewThumbnailer())

	hash, err := middleware.HashPassword(testPassword)
	require.NoError(t, err)

	router := gin.New()
	api.MountGroup(router, api.GroupConfig{
		Prefix: "/api/admin",
	}, AuthModule(testSecret, hash))
	api.MountGroup(router, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: testSecret,
	},
		ScreenModule(ctl),
		ContentModule(ctl, pipeline),
		BroadcastModule(ctl),
		SystemModule(ctl, store.NewMemoryStore()),
		ExportModule(ctl, "LED Broadcast Control", "1.0.0"),
	)

	token, err := middleware.GenerateJWT(testSecret)
	require.NoError(t, err)

	return &testEnv{router: router, ctl: ctl, token: token}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.token)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/admin/auth/login", map[string]string{"password": testPassword})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[map[string]string](t, w)
	assert.NotEmpty(t, resp["token"])

	w = env.do(t, http.MethodPost, "/api/admin/auth/login", map[string]string{"password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/screens", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestScreenLifecycle(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/admin/screens", nil)
	require.Equal(t, http.StatusOK, w.Code)
	screens := decode[[]model.Screen](t, w)
	require.Len(t, screens, 5)

	// custom create
	w = env.do(t, http.MethodPost, "/api/admin/screens", map[string]string{
		"name":     "Lobby Wall",
		"location": "HQ Lobby",
	})
	require.Equal(t, http.StatusOK, w.Code)
	created := decode[model.Screen](t, w)
	assert.Equal(t, "Lobby Wall", created.Name)
	assert.Equal(t, "HQ Lobby", created.Location)
	assert.Equal(t, model.ScreenOnline, created.Status)

	// toggle it offline
	w = env.do(t, http.MethodPost, "/api/admin/screens/"+created.ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	toggled := decode[model.Screen](t, w)
	assert.Equal(t, model.ScreenOffline, toggled.Status)

	// offline screens cannot be selected
	w = env.do(t, http.MethodPost, "/api/admin/selection", map[string]string{"id": created.ID})
	assert.Equal(t, http.StatusConflict, w.Code)

	// remove it
	w = env.do(t, http.MethodDelete, "/api/admin/screens/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodGet, "/api/admin/screens/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBulkAddValidation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/admin/screens/bulk", map[string]int{"count": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/admin/screens/bulk", map[string]int{"count": 3})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[map[string]int](t, w)
	assert.Equal(t, 3, resp["added"])
	assert.Equal(t, 8, resp["total"])
}

func TestBroadcastPreconditionsOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/admin/broadcasts", map[string]string{})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "please select content first")

	w = env.do(t, http.MethodPost, "/api/admin/content/sample1/select", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/admin/broadcasts", map[string]string{})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "please select at least one screen")

	w = env.do(t, http.MethodPost, "/api/admin/selection/all", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/admin/broadcasts", map[string]string{
		"scheduleType": "scheduled",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "please select schedule time")

	// nothing was recorded along the way
	w = env.do(t, http.MethodGet, "/api/admin/broadcasts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]model.Broadcast](t, w))
}

func TestImmediateBroadcastOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/admin/content/sample1/select", nil).Code)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/admin/selection/all", nil).Code)

	w := env.do(t, http.MethodPost, "/api/admin/broadcasts", map[string]string{})
	require.Equal(t, http.StatusOK, w.Code)
	broadcast := decode[model.Broadcast](t, w)
	assert.Equal(t, model.BroadcastBroadcasting, broadcast.Status)
	assert.NotEmpty(t, broadcast.ScreenIDs)

	w = env.do(t, http.MethodGet, "/api/admin/broadcasts/active", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.Broadcast](t, w), 1)
}

func TestUploadRejectsUnsupportedFile(t *testing.T) {
	env := newTestEnv(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="files"; filename="logo.png"`)
	header.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("not a video"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/content", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+env.token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[map[string][]map[string]string](t, w)
	require.Len(t, resp["results"], 1)
	assert.Equal(t, "logo.png", resp["results"][0]["filename"])
	assert.NotEmpty(t, resp["results"][0]["error"])

	// the rejection landed in the event log
	errorLogs := env.ctl.Logs(model.LogError)
	require.NotEmpty(t, errorLogs)
	assert.Contains(t, errorLogs[len(errorLogs)-1].Message, "logo.png")
}

func TestUploadIngestsVideo(t *testing.T) {
	env := newTestEnv(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="files"; filename="spot.mp4"`)
	header.Set("Content-Type", "video/mp4")
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake video bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/content", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+env.token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[map[string][]map[string]string](t, w)
	require.Len(t, resp["results"], 1)
	id := resp["results"][0]["id"]
	assert.True(t, strings.HasPrefix(id, "video_"))

	w = env.do(t, http.MethodGet, "/api/admin/content/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	item := decode[model.Content](t, w)
	assert.Equal(t, "spot.mp4", item.Filename)
	assert.Equal(t, 12, item.Duration)
	assert.Equal(t, "1920x1080", item.Resolution)
}

func TestDeleteSampleContentIsForbidden(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodDelete, "/api/admin/content/sample1", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodDelete, "/api/admin/content/ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSettingsRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPut, "/api/admin/system/settings", map[string]bool{
		"autoConnect":       false,
		"simulateNetwork":   false,
		"showNotifications": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	settings := env.ctl.Settings()
	assert.False(t, settings.AutoConnect)
	assert.False(t, settings.SimulateNetwork)
	assert.True(t, settings.ShowNotifications)
}

func TestLogsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/admin/logs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode[[]model.LogEntry](t, w))

	w = env.do(t, http.MethodGet, "/api/admin/logs?type=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodDelete, "/api/admin/logs", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSimulateNetworkEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/admin/simulate/network", map[string]string{"event": "disconnect"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/admin/simulate/network", map[string]string{"event": "flood"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResetEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.ctl.BulkAddScreens(4)

	w := env.do(t, http.MethodPost, "/api/admin/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, env.ctl.Screens(), 5)
}

func TestExportEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/admin/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "led-broadcast-export-")

	export := decode[model.Export](t, w)
	assert.Equal(t, "LED Broadcast Control", export.App)
	assert.Equal(t, "1.0.0", export.Version)
	assert.Len(t, export.State.Screens, 5)
}
